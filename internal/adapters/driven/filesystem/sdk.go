package filesystem

import (
	"bufio"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/wsimport/internal/core/domain"
	"github.com/custodia-labs/wsimport/internal/core/ports/driven"
	"github.com/custodia-labs/wsimport/internal/logger"
)

// Ensure SDKLocator implements the interface.
var _ driven.SDKLocator = (*SDKLocator)(nil)

// releaseFile is written by JDK installations and carries JAVA_VERSION.
const releaseFile = "release"

// SDKLocator discovers installed JDKs.
// Candidates are the configured java home (or $JAVA_HOME) followed by
// every directory under the SDK roots. The scan runs once, on first use.
type SDKLocator struct {
	javaHome string
	roots    []string

	once sync.Once
	sdks []domain.SDK
}

// NewSDKLocator creates a locator. An empty javaHome falls back to
// $JAVA_HOME; nil roots select the platform's conventional locations.
func NewSDKLocator(javaHome string, roots []string) *SDKLocator {
	if javaHome == "" {
		javaHome = os.Getenv("JAVA_HOME")
	}
	if roots == nil {
		roots = defaultRoots()
	}
	return &SDKLocator{
		javaHome: javaHome,
		roots:    roots,
	}
}

func defaultRoots() []string {
	var roots []string
	switch runtime.GOOS {
	case "darwin":
		roots = append(roots, "/Library/Java/JavaVirtualMachines")
	case "windows":
		roots = append(roots, `C:\Program Files\Java`)
	default:
		roots = append(roots, "/usr/lib/jvm", "/usr/java")
	}
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots, filepath.Join(home, ".sdkman", "candidates", "java"), filepath.Join(home, ".jdks"))
	}
	return roots
}

// Find returns the first installed SDK whose major version matches the
// hint.
func (l *SDKLocator) Find(version string) (*domain.SDK, bool) {
	want := domain.MajorVersion(version)
	if want == "" {
		return nil, false
	}
	for _, sdk := range l.installed() {
		if sdk.Name == want {
			s := sdk
			return &s, true
		}
	}
	return nil, false
}

// Default returns the java home SDK if present, else the newest
// installed SDK.
func (l *SDKLocator) Default() (*domain.SDK, error) {
	sdks := l.installed()
	if len(sdks) == 0 {
		return nil, domain.ErrNotFound
	}
	s := sdks[0]
	return &s, nil
}

// installed scans the candidates once. The java home SDK comes first,
// the rest are ordered newest first.
func (l *SDKLocator) installed() []domain.SDK {
	l.once.Do(func() {
		seen := make(map[string]bool)
		if sdk, ok := probe(l.javaHome); ok {
			l.sdks = append(l.sdks, sdk)
			seen[sdk.HomePath] = true
		}

		var found []domain.SDK
		for _, root := range l.roots {
			entries, err := os.ReadDir(root)
			if err != nil {
				continue
			}
			for _, e := range entries {
				if !e.IsDir() {
					continue
				}
				home := filepath.Join(root, e.Name())
				// macOS bundles keep the JDK under Contents/Home.
				if bundle := filepath.Join(home, "Contents", "Home"); isDir(bundle) {
					home = bundle
				}
				if seen[home] {
					continue
				}
				if sdk, ok := probe(home); ok {
					found = append(found, sdk)
					seen[home] = true
				}
			}
		}
		sort.SliceStable(found, func(i, j int) bool {
			return newer(found[i].Version, found[j].Version)
		})
		l.sdks = append(l.sdks, found...)
		logger.Debug("sdk: found %d installed SDKs", len(l.sdks))
	})
	return l.sdks
}

// probe reads the release file of a JDK home.
func probe(home string) (domain.SDK, bool) {
	if home == "" {
		return domain.SDK{}, false
	}
	f, err := os.Open(filepath.Join(home, releaseFile))
	if err != nil {
		return domain.SDK{}, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok || strings.TrimSpace(key) != "JAVA_VERSION" {
			continue
		}
		version := strings.Trim(strings.TrimSpace(value), `"`)
		if version == "" {
			return domain.SDK{}, false
		}
		return domain.SDK{
			Name:     domain.MajorVersion(version),
			Version:  version,
			HomePath: home,
		}, true
	}
	return domain.SDK{}, false
}

// newer compares versions by their numeric dot-separated components.
func newer(a, b string) bool {
	pa, pb := versionParts(a), versionParts(b)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] != pb[i] {
			return pa[i] > pb[i]
		}
	}
	return len(pa) > len(pb)
}

func versionParts(v string) []int {
	v = strings.TrimPrefix(v, "1.")
	var parts []int
	for _, field := range strings.FieldsFunc(v, func(r rune) bool { return r < '0' || r > '9' }) {
		n := 0
		for _, r := range field {
			n = n*10 + int(r-'0')
		}
		parts = append(parts, n)
	}
	return parts
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
