package cache

import "context"

// Sink persists raw files fetched from the archive. Paths are relative
// to dists/<distribution>/.
type Sink interface {
	Put(ctx context.Context, path string, data []byte) error
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Put(context.Context, string, []byte) error {
	return nil
}
