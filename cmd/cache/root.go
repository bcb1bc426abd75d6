package cache

import (
	v1 "github.com/djcass44/apt-mirror/pkg/api/v1"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "cache",
	Short: "Cache utilities",
}

const (
	flagCacheDir = "cache-dir"
)

func init() {
	Command.PersistentFlags().String(flagCacheDir, v1.DefaultCacheDir, "cache directory (empty selects the user cache dir)")
	Command.AddCommand(cleanCmd, digestCmd)
}
