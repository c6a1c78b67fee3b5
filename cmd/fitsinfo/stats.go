package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/robert-malhotra/go-fits/fits"
)

type layerReport struct {
	File  string           `json:"file" yaml:"file"`
	Unit  int              `json:"unit" yaml:"unit"`
	Kind  string           `json:"kind" yaml:"kind"`
	Stats *fits.Statistics `json:"stats,omitempty" yaml:"stats,omitempty"`
	Error string           `json:"error,omitempty" yaml:"error,omitempty"`
}

func newStatsCommand(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "stats FILE...",
		Short: "Summarise the samples of each image layer",
		Long: `stats decodes every image extension (or, with --all, every unit that
carries data) and prints min, max, mean, population standard deviation and
median. Files are processed concurrently.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			perFile := make([][]layerReport, len(args))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(a.cfg.Workers)
			for i, uri := range args {
				i, uri := i, uri
				g.Go(func() error {
					f, err := fits.OpenURI(ctx, uri, a.openOptions()...)
					if err != nil {
						return err
					}
					perFile[i] = a.layers(uri, f, all)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			var reports []layerReport
			for _, r := range perFile {
				reports = append(reports, r...)
			}
			return render(cmd.OutOrStdout(), a.cfg.Output, reports, func(w *tabwriter.Writer) {
				writeStats(w, reports)
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include every unit with data, not only image extensions")

	return cmd
}

// layers computes statistics for the selected units of f. Per-unit failures
// are reported in place rather than aborting the file.
func (a *app) layers(uri string, f *fits.File, all bool) []layerReport {
	units := f.ImageUnits()
	if all {
		units = nil
		for _, u := range f.Units() {
			if u.DataSize() > 0 {
				units = append(units, u)
			}
		}
	}

	reports := make([]layerReport, 0, len(units))
	for _, u := range units {
		r := layerReport{File: uri, Unit: u.Index(), Kind: u.Kind()}
		s, err := f.LayerStatistics(u.Index())
		if err != nil {
			a.log.Warn("layer statistics failed",
				zap.String("file", uri), zap.Int("unit", u.Index()), zap.Error(err))
			r.Error = err.Error()
		} else {
			r.Stats = &s
		}
		reports = append(reports, r)
	}
	return reports
}

func writeStats(w *tabwriter.Writer, reports []layerReport) {
	fmt.Fprintln(w, "FILE\tUNIT\tKIND\tCOUNT\tMIN\tMAX\tMEAN\tSTDDEV\tMEDIAN")
	for _, r := range reports {
		if r.Stats == nil {
			fmt.Fprintf(w, "%s\t%d\t%s\terror: %s\n", r.File, r.Unit, r.Kind, r.Error)
			continue
		}
		s := r.Stats
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%g\t%g\t%g\t%g\t%g\n",
			r.File, r.Unit, r.Kind, s.Count, s.Min, s.Max, s.Mean, s.StdDev, s.Median)
	}
}
