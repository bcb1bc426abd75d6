package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
)

// FSSink mirrors files beneath <root>/<os>/dists/<distribution>/.
type FSSink struct {
	dir string
}

func NewFSSink(root, osID, distribution string) (*FSSink, error) {
	dir := filepath.Join(root, osID, "dists", distribution)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	return &FSSink{dir: dir}, nil
}

// Path returns the location a relative path is written to.
func (s *FSSink) Path(path string) string {
	return filepath.Join(s.dir, filepath.FromSlash(filepath.Clean("/" + path)))
}

func (s *FSSink) Put(ctx context.Context, path string, data []byte) error {
	dst := s.Path(path)
	log := logr.FromContextOrDiscard(ctx).WithValues("path", dst)

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		log.Error(err, "failed to create parent directory")
		return fmt.Errorf("creating parent directory: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		log.Error(err, "failed to write file")
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	log.V(2).Info("saved file", "size", len(data))
	return nil
}

// Dir returns the cache root, falling back to the user cache directory
// when d is empty.
func Dir(d string) string {
	if d == "" {
		d, _ = os.UserCacheDir()
		d = filepath.Join(d, "apt-mirror")
	}
	return filepath.Clean(d)
}
