package debian

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-logr/logr"
	version "github.com/knqyf263/go-deb-version"
	"pault.ag/go/debian/dependency"
)

// ParsePackageVersion parses a single relationship as used in the
// "Depends" field, e.g. "libc6 (>= 2.34) | libc6-udeb".
//
// https://www.debian.org/doc/debian-policy/ch-relationships.html
func ParsePackageVersion(s string) (*PackageVersion, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("unable to extract package names")
	}
	dep, err := dependency.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("parsing relationship %q: %w", s, err)
	}
	if len(dep.Relations) != 1 {
		return nil, fmt.Errorf("expected a single relationship, got %d", len(dep.Relations))
	}
	pv := &PackageVersion{}
	for _, p := range dep.Relations[0].Possibilities {
		pv.Names = append(pv.Names, p.Name)
		if p.Version != nil && pv.Version == "" {
			pv.Version = p.Version.Number
			pv.Constraint = p.Version.Operator
		}
	}
	return pv, nil
}

// Relations parses the Depends field of the package.
func (p *Package) Relations() ([]dependency.Relation, error) {
	if strings.TrimSpace(p.Depends) == "" {
		return nil, nil
	}
	dep, err := dependency.Parse(p.Depends)
	if err != nil {
		return nil, fmt.Errorf("parsing dependencies of %s: %w", p.Name, err)
	}
	return dep.Relations, nil
}

func (p *Package) String() string {
	return p.Name + " " + p.Version
}

// GetPackageWithDependencies returns the first package matching pv
// together with everything it transitively depends on. Dependencies
// that cannot be satisfied from this table (virtual packages, other
// components) are logged and skipped.
func (t Table) GetPackageWithDependencies(ctx context.Context, pv *PackageVersion) ([]Package, error) {
	existing := map[string]Package{}
	ok, err := t.collect(ctx, existing, pv)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	out := make([]Package, 0, len(existing))
	for _, k := range slices.Sorted(maps.Keys(existing)) {
		out = append(out, existing[k])
	}
	return out, nil
}

func (t Table) collect(ctx context.Context, existing map[string]Package, pv *PackageVersion) (bool, error) {
	log := logr.FromContextOrDiscard(ctx)
	for _, name := range pv.Names {
		p, ok := t[name]
		if !ok || !pv.Matches(p.Version) {
			continue
		}
		// skip packages we have already walked
		if _, ok := existing[p.Name]; ok {
			return true, nil
		}
		log.V(5).Info("found package match", "name", p.Name, "version", p.Version)
		existing[p.Name] = p

		relations, err := p.Relations()
		if err != nil {
			return false, err
		}
		for _, rel := range relations {
			satisfied, err := t.collectAny(ctx, existing, rel)
			if err != nil {
				return false, err
			}
			if !satisfied {
				log.V(3).Info("unable to satisfy dependency from table", "pkg", p.Name, "alternatives", possibilityNames(rel))
			}
		}
		return true, nil
	}
	return false, nil
}

// collectAny walks the first alternative of a relation that the table
// can satisfy.
func (t Table) collectAny(ctx context.Context, existing map[string]Package, rel dependency.Relation) (bool, error) {
	for _, p := range rel.Possibilities {
		pv := &PackageVersion{Names: []string{p.Name}}
		if p.Version != nil {
			pv.Version = p.Version.Number
			pv.Constraint = p.Version.Operator
		}
		ok, err := t.collect(ctx, existing, pv)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Matches reports whether s1 satisfies the version constraint.
func (pv *PackageVersion) Matches(s1 string) bool {
	// if there's a version missing, match
	// anything
	if s1 == "" || pv.Version == "" {
		return true
	}
	v1, err := version.NewVersion(s1)
	if err != nil {
		return false
	}
	v2, err := version.NewVersion(pv.Version)
	if err != nil {
		return false
	}
	switch pv.Constraint {
	case ">>":
		return v1.GreaterThan(v2)
	case "<<":
		return v1.LessThan(v2)
	case "=":
		return v1.Equal(v2)
	case ">=":
		return v1.GreaterThan(v2) || v1.Equal(v2)
	case "<=":
		return v1.LessThan(v2) || v1.Equal(v2)
	default:
		return true
	}
}

func possibilityNames(rel dependency.Relation) []string {
	names := make([]string, len(rel.Possibilities))
	for i := range rel.Possibilities {
		names[i] = rel.Possibilities[i].Name
	}
	return names
}
