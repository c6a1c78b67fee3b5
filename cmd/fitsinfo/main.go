// Command fitsinfo inspects FITS files: header listings, per-layer
// statistics and decoded data dumps.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-fits/fits"
	"github.com/robert-malhotra/go-fits/internal/config"
	"github.com/robert-malhotra/go-fits/internal/logger"
	"github.com/robert-malhotra/go-fits/internal/metrics"
)

// Set with -ldflags at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries state shared by every subcommand once flags are parsed.
type app struct {
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
	metrics *metrics.Collector

	tracer *sdktrace.TracerProvider
	span   trace.Span
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "fitsinfo",
		Short: "Inspect FITS files",
		Long: `fitsinfo reads FITS files from local paths, file://, s3:// or gs:// URIs
(optionally gzip, zstd or lz4 compressed) and reports their header/data units.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.teardown()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "YAML configuration file")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("log-encoding", "console", "log encoding (console or json)")
	flags.StringP("output", "o", config.OutputText, "output format (text, json or yaml)")
	flags.Int("workers", 4, "files processed concurrently")
	flags.String("s3-region", "", "AWS region for s3:// URIs")
	flags.String("s3-endpoint", "", "S3-compatible endpoint for s3:// URIs")
	flags.String("gcs-credentials", "", "service account file for gs:// URIs")
	flags.String("metrics-file", "", "write Prometheus metrics to this textfile on exit")
	flags.Bool("trace", false, "print OpenTelemetry spans to stderr")

	cmd.AddCommand(a.flushOnError(newHeadersCommand(a)))
	cmd.AddCommand(a.flushOnError(newStatsCommand(a)))
	cmd.AddCommand(a.flushOnError(newDumpCommand(a)))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// flushOnError runs teardown when cmd fails. Cobra skips
// PersistentPostRunE after a RunE error, which would drop pending spans and
// the metrics textfile.
func (a *app) flushOnError(cmd *cobra.Command) *cobra.Command {
	run := cmd.RunE
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if err != nil {
			if terr := a.teardown(); terr != nil {
				return errors.Join(err, terr)
			}
		}
		return err
	}
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	a.metrics = metrics.NewCollector()
	return a.startTracing(cmd)
}

func (a *app) teardown() error {
	defer func() { _ = a.log.Sync() }()

	if err := a.stopTracing(); err != nil {
		return err
	}
	if a.cfg.Metrics.File == "" {
		return nil
	}
	if err := a.metrics.WriteTextfile(a.cfg.Metrics.File); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	a.log.Debug("metrics written", zap.String("path", a.cfg.Metrics.File))
	return nil
}

// openOptions returns the fits options implied by the configuration.
func (a *app) openOptions() []fits.Option {
	return []fits.Option{
		fits.WithLogger(a.log),
		fits.WithObserver(a.metrics),
		fits.WithS3(a.cfg.S3.Region, a.cfg.S3.Endpoint),
		fits.WithGCSCredentials(a.cfg.GCS.CredentialsFile),
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,

		// No configuration is loaded for version.
		PersistentPreRun:  func(*cobra.Command, []string) {},
		PersistentPostRun: func(*cobra.Command, []string) {},

		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fitsinfo %s\ncommit: %s\nbuilt: %s\n", Version, GitCommit, BuildDate)
		},
	}
}
