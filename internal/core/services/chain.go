package services

// Lookup is one step of a priority chain.
// It returns the value and whether this step supplied one.
type Lookup func() (string, bool)

// ResolveChain returns the value of the first lookup that supplies one.
// Lookups run in order and later ones are not evaluated after a hit.
func ResolveChain(lookups ...Lookup) (string, bool) {
	for _, lookup := range lookups {
		if v, ok := lookup(); ok {
			return v, true
		}
	}
	return "", false
}

// MapLookup reads a non-empty value from m.
func MapLookup(m map[string]string, key string) Lookup {
	return func() (string, bool) {
		v, ok := m[key]
		if !ok || v == "" {
			return "", false
		}
		return v, true
	}
}

// Constant supplies v when it is non-empty.
func Constant(v string) Lookup {
	return func() (string, bool) {
		return v, v != ""
	}
}
