package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-fits/fits"
	"github.com/robert-malhotra/go-fits/internal/pixel"
)

type dumpReport struct {
	File     string `json:"file" yaml:"file"`
	Unit     int    `json:"unit" yaml:"unit"`
	BITPIX   int    `json:"bitpix" yaml:"bitpix"`
	Axes     []int  `json:"axes" yaml:"axes"`
	Physical bool   `json:"physical" yaml:"physical"`
	Data     any    `json:"data" yaml:"data"`
}

func newDumpCommand(a *app) *cobra.Command {
	var (
		unit     int
		physical bool
	)

	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the decoded data of one unit",
		Long: `dump decodes one unit's data array. JSON and YAML output nest the samples
slowest axis first; text output prints NAXIS1 samples per line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fits.OpenURI(cmd.Context(), args[0], a.openOptions()...)
			if err != nil {
				return err
			}
			u, err := f.UnitAt(unit)
			if err != nil {
				return err
			}
			arr, err := decode(u, physical)
			if err != nil {
				return err
			}
			t, err := u.PixelEncoding()
			if err != nil {
				return err
			}

			r := dumpReport{
				File:     args[0],
				Unit:     unit,
				BITPIX:   int(t),
				Axes:     arr.Axes,
				Physical: physical,
				Data:     arr.Nested(),
			}
			return render(cmd.OutOrStdout(), a.cfg.Output, r, func(w *tabwriter.Writer) {
				writeRows(w, arr)
			})
		},
	}

	cmd.Flags().IntVar(&unit, "unit", 0, "unit to dump (0 is the primary HDU)")
	cmd.Flags().BoolVar(&physical, "physical", false, "apply BSCALE and BZERO")

	return cmd
}

func decode(u *fits.Unit, physical bool) (*fits.Array, error) {
	if !physical {
		return u.DecodeND()
	}
	axes, err := u.Axes()
	if err != nil {
		return nil, err
	}
	samples, err := u.PhysicalSamples()
	if err != nil {
		return nil, err
	}
	return pixel.Reshape(samples, axes)
}

func writeRows(w *tabwriter.Writer, arr *fits.Array) {
	if len(arr.Axes) == 0 {
		return
	}
	width := arr.Axes[0]
	for i, v := range arr.Data {
		sep := "\t"
		if (i+1)%width == 0 {
			sep = "\n"
		}
		fmt.Fprintf(w, "%g%s", v, sep)
	}
}
