package domain

// StoreBackend selects the workspace store implementation.
type StoreBackend string

// Available store backends.
const (
	// StoreBackendMemory keeps the workspace in memory for one session.
	StoreBackendMemory StoreBackend = "memory"

	// StoreBackendSQLite persists folder contributions between sessions.
	StoreBackendSQLite StoreBackend = "sqlite"
)

// IsValid returns true if the store backend is recognised.
func (b StoreBackend) IsValid() bool {
	return b == StoreBackendMemory || b == StoreBackendSQLite
}

// Built-in importer names, in default priority order.
const (
	ImporterWorkspaceJSON = "workspace-json"
	ImporterMaven         = "maven"
)

// Compiler baselines used when neither plugin configuration nor build
// properties name a value.
const (
	DefaultAPIVersion      = "2.1"
	DefaultLanguageVersion = "2.1"
	DefaultTargetVersion   = "1.8"
)

// CompilerDefaults are the baseline compiler flags of a facet.
type CompilerDefaults struct {
	APIVersion      string
	LanguageVersion string
	TargetVersion   string
}

// Settings holds the engine configuration.
type Settings struct {
	// PathPolicy controls URL canonicalisation.
	PathPolicy PathPolicy

	// MavenLocalRepository overrides ~/.m2/repository.
	MavenLocalRepository string

	// SDKRoots are directories scanned for installed SDKs.
	SDKRoots []string

	// JavaHome overrides the JAVA_HOME environment variable.
	JavaHome string

	Compiler CompilerDefaults

	// ImporterOrder lists importer names in priority order.
	ImporterOrder []string

	StoreBackend StoreBackend

	// DataDir is where the SQLite store keeps its database.
	DataDir string

	// Concurrency bounds parallel folder imports.
	Concurrency int
}

// DefaultSettings returns settings with built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		PathPolicy: PathAbsolute,
		Compiler: CompilerDefaults{
			APIVersion:      DefaultAPIVersion,
			LanguageVersion: DefaultLanguageVersion,
			TargetVersion:   DefaultTargetVersion,
		},
		ImporterOrder: []string{ImporterWorkspaceJSON, ImporterMaven},
		StoreBackend:  StoreBackendMemory,
		Concurrency:   4,
	}
}
