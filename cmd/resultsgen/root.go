package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"resultsgen/internal/config"
	"resultsgen/internal/csvexport"
	"resultsgen/internal/domain"
	"resultsgen/internal/loader"
	"resultsgen/internal/logging"
	"resultsgen/internal/namemap"
	"resultsgen/internal/port"
	"resultsgen/internal/report"
	"resultsgen/internal/service"
)

type rootOptions struct {
	configFile string
	dryRun     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "resultsgen",
		Short: "Build a region results JSON report from a party vote spreadsheet",
		Long: `resultsgen reads (party name, votes) rows from an .xlsx or .csv file,
maps party names to canonical ids, computes vote shares and writes a ranked
JSON report for one region and election.

The output file is replaced without confirmation. Turnout is not computed;
it is taken from --turnout or the configuration as given.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "YAML config file (default $RESULTSGEN_CONFIG)")
	pf.String("name-map", "", "YAML file of display name to party id entries")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: console or json")

	f := cmd.Flags()
	f.StringP("input", "i", "", "input spreadsheet (.xlsx or .csv)")
	f.StringP("output", "o", "", "output JSON file")
	f.String("csv", "", "also write the ranked table to this CSV file")
	f.String("sheet", "", "worksheet to read (default first sheet)")
	f.String("header", "", "first-row handling: auto, always, never")
	f.String("region", "", "region id stamped on the report")
	f.String("election", "", "election id stamped on the report")
	f.Float64("turnout", 0, "turnout percentage stamped on the report")
	f.BoolVar(&opts.dryRun, "dry-run", false, "compute and print the report without writing files")

	cmd.AddCommand(newSlugCmd(), newNamesCmd(opts))
	return cmd
}

func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(opts.configFile, cmd.Flags())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func runGenerate(cmd *cobra.Command, opts *rootOptions) error {
	cfg, logger, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	names, err := namemap.Build(cfg.NameMap.Path, cfg.NameMap.ExtendDefault)
	if err != nil {
		return err
	}
	logger.Debug("name map ready", zap.Int("entries", names.Len()), zap.String("path", cfg.NameMap.Path))

	entryLoader, err := loader.New(cfg.Input.Path, loader.Options{
		Sheet:  cfg.Input.Sheet,
		Header: cfg.Input.Header,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	writers := []port.ReportWriter{report.NewFileWriter(cfg.Output.Path)}
	if cfg.Output.CSVPath != "" {
		writers = append(writers, csvexport.NewFileWriter(cfg.Output.CSVPath))
	}

	svc := service.NewResultsService(entryLoader, names, cfg.Report, writers, logger)
	summary, err := svc.Run(cmd.Context(), service.RunInput{Path: cfg.Input.Path, DryRun: opts.dryRun})
	if err != nil {
		logger.Error("run failed", zap.Error(err))
		return err
	}

	if summary.DryRun {
		return report.Encode(cmd.OutOrStdout(), []domain.RegionReport{*summary.Report})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Successfully updated %s\n", strings.Join(summary.Written, ", "))
	return nil
}
