package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resultsgen/internal/config"
	"resultsgen/internal/namemap"
)

func newSlugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slug NAME...",
		Short: "Print the fallback party id for each name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, namemap.Slugify(name))
			}
			return nil
		},
	}
}

func newNamesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "names",
		Short: "Print the effective name map as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configFile, cmd.Flags())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			names, err := namemap.Build(cfg.NameMap.Path, cfg.NameMap.ExtendDefault)
			if err != nil {
				return err
			}
			out, err := namemap.Encode(names)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
