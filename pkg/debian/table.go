package debian

import (
	"maps"
	"slices"
)

// Merge adds the records to the table. A record replaces any earlier
// record with the same name.
func (t Table) Merge(pkgs ...Package) {
	for _, p := range pkgs {
		t[p.Name] = p
	}
}

// Get returns the record for the named package.
func (t Table) Get(name string) (Package, bool) {
	p, ok := t[name]
	return p, ok
}

// SortedKeys returns package names sorted alphabetically.
func (t Table) SortedKeys() []string {
	return slices.Sorted(maps.Keys(t))
}
