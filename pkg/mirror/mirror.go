package mirror

import (
	"context"
	"fmt"
	"slices"

	v1 "github.com/djcass44/apt-mirror/pkg/api/v1"
	"github.com/djcass44/apt-mirror/pkg/cache"
	"github.com/djcass44/apt-mirror/pkg/debian"
	"github.com/djcass44/apt-mirror/pkg/fetch"
	"github.com/go-logr/logr"
)

// Mirror synchronises the package indices of a single distribution.
type Mirror struct {
	fetcher       fetch.Fetcher
	sink          cache.Sink
	resolver      *debian.Resolver
	components    []string
	architectures []string
}

type Options struct {
	Components        []string
	Architectures     []string
	Preference        []debian.Variant
	Parallelism       int
	MirrorAllVariants bool
}

// Result is the outcome of a successful Sync.
type Result struct {
	// Info is nil if the manifest header could not be decoded.
	Info   *debian.ReleaseInfo
	Index  debian.HashIndex
	Tables map[string]debian.Table
}

func New(fetcher fetch.Fetcher, sink cache.Sink, opts Options) *Mirror {
	if sink == nil {
		sink = cache.Discard
	}
	return &Mirror{
		fetcher: fetcher,
		sink:    sink,
		resolver: &debian.Resolver{
			Fetcher:           fetcher,
			Sink:              sink,
			Preference:        opts.Preference,
			Parallelism:       opts.Parallelism,
			MirrorAllVariants: opts.MirrorAllVariants,
		},
		components:    opts.Components,
		architectures: opts.Architectures,
	}
}

// NewFromSpec wires an HTTP fetcher and the configured cache backend.
// The spec is expected to have had its defaults applied.
func NewFromSpec(ctx context.Context, spec v1.MirrorSpec) (*Mirror, error) {
	preference, err := debian.ParseVariants(spec.Extensions)
	if err != nil {
		return nil, err
	}
	fetcher, err := fetch.NewHTTPFetcher(spec.Archive, spec.Distribution, spec.UserAgent, spec.Timeout.Duration)
	if err != nil {
		return nil, err
	}
	sink, err := newSink(ctx, spec)
	if err != nil {
		return nil, err
	}
	return New(fetcher, sink, Options{
		Components:        spec.Components,
		Architectures:     spec.Architectures,
		Preference:        preference,
		Parallelism:       spec.Parallelism,
		MirrorAllVariants: spec.MirrorAllVariants,
	}), nil
}

func newSink(ctx context.Context, spec v1.MirrorSpec) (cache.Sink, error) {
	switch spec.Cache.Type {
	case v1.CacheFS, "":
		return cache.NewFSSink(cache.Dir(spec.Cache.Dir), spec.OS, spec.Distribution)
	case v1.CacheS3:
		if spec.Cache.S3.Bucket == "" {
			return nil, fmt.Errorf("s3 cache requires a bucket")
		}
		client, err := cache.NewS3Client(ctx, spec.Cache.S3.Endpoint)
		if err != nil {
			return nil, err
		}
		return cache.NewS3Sink(client, spec.Cache.S3.Bucket, spec.Cache.S3.Prefix, spec.OS, spec.Distribution), nil
	case v1.CacheDisable:
		return cache.Discard, nil
	default:
		return nil, fmt.Errorf("unknown cache type: %s", spec.Cache.Type)
	}
}

// Sync downloads the release manifest and resolves a package table for
// every configured architecture.
//
// Only a missing or unreadable manifest is fatal. Problems with
// individual package indices are logged and skipped.
func (m *Mirror) Sync(ctx context.Context) (*Result, error) {
	log := logr.FromContextOrDiscard(ctx)

	files := m.fetchManifests(ctx)
	text, err := selectManifest(ctx, files)
	if err != nil {
		log.Error(err, "no release file")
		return nil, err
	}
	index, err := debian.ParseRelease(text)
	if err != nil {
		log.Error(err, "failed to read hash index from release manifest")
		return nil, err
	}
	log.V(1).Info("read hash index", "entries", len(index))

	info, err := debian.ParseReleaseInfo(text)
	if err != nil {
		log.Error(err, "failed to decode release header")
	} else {
		m.checkAnnounced(ctx, info)
	}

	return &Result{
		Info:   info,
		Index:  index,
		Tables: m.resolver.Resolve(ctx, index, m.components, m.architectures),
	}, nil
}

// checkAnnounced warns about requested components or architectures the
// manifest does not list.
func (m *Mirror) checkAnnounced(ctx context.Context, info *debian.ReleaseInfo) {
	log := logr.FromContextOrDiscard(ctx).WithValues("suite", info.Suite, "codename", info.Codename)
	if len(info.Components) > 0 {
		for _, c := range m.components {
			if !slices.Contains(info.Components, c) {
				log.Info("warning: component is not listed in the release manifest", "component", c)
			}
		}
	}
	if len(info.Architectures) > 0 {
		for _, a := range m.architectures {
			if !slices.Contains(info.Architectures, a) {
				log.Info("warning: architecture is not listed in the release manifest", "arch", a)
			}
		}
	}
}
