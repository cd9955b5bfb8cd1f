package bicluster

import (
	"fmt"
	"sort"
)

// builtins maps the family names accepted in config files to their
// constructors.
var builtins = map[string]Constructor{
	"spectral-coclustering": NewSpectralCoclustering,
	"spectral-biclustering": NewSpectralBiclustering,
}

// Lookup resolves a built-in model family constructor by name.
func Lookup(name string) (Constructor, error) {
	c, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown model family %q (available: %v)", name, BuiltinNames())
	}
	return c, nil
}

// BuiltinNames lists the registered family names, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
