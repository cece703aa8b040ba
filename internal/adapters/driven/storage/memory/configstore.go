package memory

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/wsimport/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a map for tests and sessions without a
// config dir. Values are normalised on Set so reads are plain assertions.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore creates an empty in-memory config store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]any)}
}

func (s *ConfigStore) Value(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

func (s *ConfigStore) String(key string) string {
	val, _ := s.Value(key)
	str, _ := val.(string)
	return str
}

func (s *ConfigStore) Int(key string) (int, bool) {
	val, _ := s.Value(key)
	n, ok := val.(int)
	return n, ok
}

func (s *ConfigStore) Strings(key string) []string {
	val, _ := s.Value(key)
	list, _ := val.([]string)
	return append([]string(nil), list...)
}

// Set stores value after normalising integer and list types.
func (s *ConfigStore) Set(key string, value any) error {
	v, err := normalise(value)
	if err != nil {
		return fmt.Errorf("config %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = v
	return nil
}

func (s *ConfigStore) Unset(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Save is a no-op.
func (s *ConfigStore) Save() error { return nil }

func (s *ConfigStore) Path() string { return ":memory:" }

func normalise(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return nil, fmt.Errorf("non-integer number %v", v)
		}
		return int(v), nil
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("list item %v is not a string", item)
			}
			list = append(list, str)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", value)
	}
}
