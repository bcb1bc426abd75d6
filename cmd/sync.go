package cmd

import (
	"fmt"
	"maps"
	"slices"

	"github.com/djcass44/apt-mirror/pkg/debian"
	"github.com/djcass44/apt-mirror/pkg/mirror"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "download the release manifest and package indices",
	RunE:  sync,
}

const (
	flagConfig   = "config"
	flagLookup   = "lookup"
	flagWithDeps = "with-deps"
)

func init() {
	syncCmd.Flags().StringP(flagConfig, "c", "", "path to a mirror configuration file")
	syncCmd.Flags().String(flagLookup, "", "print the record of a package once the indices are resolved")
	syncCmd.Flags().Bool(flagWithDeps, false, "also print the dependencies of the looked up package")

	_ = syncCmd.MarkFlagFilename(flagConfig, ".yaml", ".yml", ".json")
}

func sync(cmd *cobra.Command, _ []string) error {
	log := logr.FromContextOrDiscard(cmd.Context()).WithValues("run", uuid.NewString())
	ctx := logr.NewContext(cmd.Context(), log)

	configPath, _ := cmd.Flags().GetString(flagConfig)
	lookup, _ := cmd.Flags().GetString(flagLookup)
	withDeps, _ := cmd.Flags().GetBool(flagWithDeps)

	cfg, err := readConfig(configPath)
	if err != nil {
		return err
	}
	spec := cfg.Spec
	log.Info("starting sync", "archive", spec.Archive, "distribution", spec.Distribution, "components", spec.Components, "architectures", spec.Architectures)

	m, err := mirror.NewFromSpec(ctx, spec)
	if err != nil {
		return err
	}
	result, err := m.Sync(ctx)
	if err != nil {
		return err
	}

	if lookup == "" {
		return nil
	}
	return printLookup(cmd, result, lookup, withDeps)
}

func printLookup(cmd *cobra.Command, result *mirror.Result, lookup string, withDeps bool) error {
	pv, err := debian.ParsePackageVersion(lookup)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, arch := range slices.Sorted(maps.Keys(result.Tables)) {
		table := result.Tables[arch]
		if !withDeps {
			for _, name := range pv.Names {
				if p, ok := table.Get(name); ok && pv.Matches(p.Version) {
					_, _ = fmt.Fprintf(out, "%s: %+v\n", arch, p)
				}
			}
			continue
		}
		pkgs, err := table.GetPackageWithDependencies(cmd.Context(), pv)
		if err != nil {
			return err
		}
		for _, p := range pkgs {
			_, _ = fmt.Fprintf(out, "%s: %s (%s)\n", arch, p.String(), p.Filename)
		}
	}
	return nil
}
