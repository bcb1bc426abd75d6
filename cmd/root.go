package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/djcass44/apt-mirror/cmd/cache"
	"github.com/djcass44/apt-mirror/pkg/mirror"
	"github.com/djcass44/go-utils/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var command = &cobra.Command{
	Use:          "apt-mirror",
	Short:        "mirror the package indices of a Debian archive",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel, _ := cmd.Flags().GetInt(flagLogLevel)

		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.Level(logLevel * -1))

		_, ctx := logging.NewZap(cmd.Context(), zc)
		cmd.SetContext(ctx)
	},
}

const flagLogLevel = "v"

const (
	exitFailure        = 1
	exitMissingRelease = 2
)

func init() {
	command.PersistentFlags().Int(flagLogLevel, 0, "log level. Higher is more")
	command.AddCommand(syncCmd, cache.Command)
}

func Execute(version string) {
	command.Version = version
	if err := command.ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, mirror.ErrMissingRelease) {
			os.Exit(exitMissingRelease)
		}
		os.Exit(exitFailure)
	}
}
