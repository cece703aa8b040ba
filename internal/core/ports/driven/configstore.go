package driven

// ConfigStore holds engine settings as flat dot-notation keys such as
// "paths.policy" or "import.concurrency".
// Values are strings, integers or string lists; accessors return the zero
// value when a key is absent or holds another type.
type ConfigStore interface {
	// Value returns the raw value stored under key.
	Value(key string) (any, bool)

	String(key string) string

	// Int reports false when the key is absent or not an integer.
	Int(key string) (int, bool)

	Strings(key string) []string

	// Set stores a value. File-backed stores persist immediately.
	Set(key string, value any) error

	// Unset removes a key so its built-in default applies again.
	// Removing an absent key is not an error.
	Unset(key string) error

	// Save persists all values.
	Save() error

	// Path returns the backing file, or ":memory:".
	Path() string
}
