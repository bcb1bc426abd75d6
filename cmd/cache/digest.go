package cache

import (
	"fmt"

	"github.com/djcass44/apt-mirror/pkg/cache"
	"github.com/go-logr/logr"
	"github.com/gosimple/hashdir"
	"github.com/spf13/cobra"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Prints a sha256 digest of the mirrored files",
	RunE:  digest,
}

func digest(cmd *cobra.Command, _ []string) error {
	log := logr.FromContextOrDiscard(cmd.Context())

	cacheDir, _ := cmd.Flags().GetString(flagCacheDir)
	cacheDir = cache.Dir(cacheDir)

	log.V(1).Info("hashing directory", "dir", cacheDir)
	sum, err := hashdir.Make(cacheDir, "sha256")
	if err != nil {
		log.Error(err, "failed to generate directory digest", "alg", "sha256", "path", cacheDir)
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sha256:%s\n", sum)
	return nil
}
