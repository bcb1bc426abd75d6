package debian

// Package is a single stanza of a binary Packages index.
//
// Depends and Suggests hold the raw relationship expressions. The
// digest fields are empty until their header has been seen.
type Package struct {
	Name         string
	Architecture string
	Version      string
	Depends      string
	Suggests     string
	Filename     string
	Size         uint64
	MD5sum       string
	SHA1         string
	SHA256       string
}

// HashIndex maps a path relative to dists/<distribution>/ to the
// digest announced for it by the release manifest.
type HashIndex map[string]string

// Has reports whether the manifest announced the given path.
func (h HashIndex) Has(path string) bool {
	_, ok := h[path]
	return ok
}

// Table holds the packages of a single architecture, keyed by name.
type Table map[string]Package

type PackageVersion struct {
	Names      []string
	Version    string
	Constraint string
}
