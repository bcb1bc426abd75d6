package debian

import (
	"context"
	"fmt"

	"github.com/djcass44/apt-mirror/pkg/cache"
	"github.com/djcass44/apt-mirror/pkg/fetch"
	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"
)

const PackageFile = "Packages"

// DefaultPreference matches the order the archive tooling prefers when
// nothing else is configured.
var DefaultPreference = []Variant{Identity, Gzip, XZ}

// Resolver builds package tables from the indices announced by a
// release manifest.
type Resolver struct {
	Fetcher fetch.Fetcher
	// Sink receives every index that was downloaded. It may be nil.
	Sink cache.Sink
	// Preference is the order in which variants are tried.
	Preference []Variant
	// Parallelism bounds how many (component, architecture) pairs are
	// processed at once. Values below 1 mean sequential.
	Parallelism int
	// MirrorAllVariants keeps downloading the remaining announced
	// variants of a pair after one has been parsed, purely so they end
	// up in the Sink.
	MirrorAllVariants bool
}

// IndexPath returns the canonical path of a package index, relative to
// the distribution root.
func IndexPath(component, arch string, v Variant) string {
	return fmt.Sprintf("%s/binary-%s/%s%s", component, arch, PackageFile, v.Extension())
}

type indexPair struct {
	arch      string
	component string
}

// Resolve returns one Table per architecture.
//
// Variants that are not in the index are never requested. Failures are
// logged and only cost the affected pair its contribution. Results are
// merged once every pair has completed, in the order the components
// were given, so the output does not depend on scheduling.
func (r *Resolver) Resolve(ctx context.Context, index HashIndex, components, architectures []string) map[string]Table {
	log := logr.FromContextOrDiscard(ctx)

	var pairs []indexPair
	for _, arch := range architectures {
		for _, component := range components {
			pairs = append(pairs, indexPair{arch: arch, component: component})
		}
	}

	limit := r.Parallelism
	if limit < 1 {
		limit = 1
	}
	log.V(1).Info("resolving package indices", "pairs", len(pairs), "parallelism", limit)

	results := make([][]Package, len(pairs))
	var g errgroup.Group
	g.SetLimit(limit)
	for i, p := range pairs {
		g.Go(func() error {
			results[i] = r.resolvePair(ctx, index, p.component, p.arch)
			return nil
		})
	}
	_ = g.Wait()

	tables := make(map[string]Table, len(architectures))
	for _, arch := range architectures {
		tables[arch] = Table{}
	}
	for i, p := range pairs {
		tables[p.arch].Merge(results[i]...)
	}
	for arch, t := range tables {
		log.Info("resolved package table", "arch", arch, "count", len(t))
	}
	return tables
}

func (r *Resolver) preference() []Variant {
	if len(r.Preference) == 0 {
		return DefaultPreference
	}
	return r.Preference
}

func (r *Resolver) resolvePair(ctx context.Context, index HashIndex, component, arch string) []Package {
	log := logr.FromContextOrDiscard(ctx).WithValues("component", component, "arch", arch)
	ctx = logr.NewContext(ctx, log)

	var parsed bool
	var out []Package
	for _, v := range r.preference() {
		if parsed && !r.MirrorAllVariants {
			break
		}
		path := IndexPath(component, arch, v)
		if !index.Has(path) {
			log.V(2).Info("skipping variant missing from release manifest", "path", path)
			continue
		}
		data, ok := r.fetch(ctx, path)
		if !ok {
			continue
		}
		r.persist(ctx, path, data)
		if parsed {
			continue
		}
		// the first download claims the parse, even if it fails to decode
		parsed = true
		out = r.parse(ctx, path, data, v)
	}
	if !parsed {
		log.Info("no package index could be downloaded")
	}
	return out
}

func (r *Resolver) fetch(ctx context.Context, path string) ([]byte, bool) {
	log := logr.FromContextOrDiscard(ctx).WithValues("path", path)
	resp, err := r.Fetcher.Fetch(ctx, path)
	if err != nil {
		log.Error(err, "failed to download package index")
		return nil, false
	}
	switch {
	case resp.OK():
		log.V(1).Info("successfully downloaded index", "code", resp.StatusCode)
		return resp.Body, true
	case resp.NotFound():
		log.V(1).Info("failed to locate package index")
	default:
		log.Error(fmt.Errorf("http response failed with code: %d", resp.StatusCode), "failed to download package index", "body", string(resp.Body))
	}
	return nil, false
}

func (r *Resolver) persist(ctx context.Context, path string, data []byte) {
	if r.Sink == nil {
		return
	}
	if err := r.Sink.Put(ctx, path, data); err != nil {
		logr.FromContextOrDiscard(ctx).Error(err, "failed to cache package index", "path", path)
	}
}

func (r *Resolver) parse(ctx context.Context, path string, data []byte, v Variant) []Package {
	log := logr.FromContextOrDiscard(ctx).WithValues("path", path, "variant", v.String())
	text, err := Decode(data, v)
	if err != nil {
		log.Error(err, "failed to decode package index")
		return nil
	}
	pkgs, err := ParseStanzas(text)
	if err != nil {
		log.Error(err, "skipped malformed stanzas")
	}
	log.V(1).Info("successfully decoded index", "count", len(pkgs))
	return pkgs
}
