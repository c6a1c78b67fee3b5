package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-fits/fits"
)

type fileReport struct {
	File  string       `json:"file" yaml:"file"`
	Units []unitReport `json:"units" yaml:"units"`
}

type unitReport struct {
	Index        int             `json:"index" yaml:"index"`
	Kind         string          `json:"kind" yaml:"kind"`
	Offset       int64           `json:"offset" yaml:"offset"`
	HeaderBlocks int             `json:"header_blocks" yaml:"header_blocks"`
	DataBlocks   int             `json:"data_blocks" yaml:"data_blocks"`
	DataSize     int64           `json:"data_size" yaml:"data_size"`
	BITPIX       int             `json:"bitpix,omitempty" yaml:"bitpix,omitempty"`
	Axes         []int           `json:"axes" yaml:"axes"`
	Keywords     []keywordReport `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

type keywordReport struct {
	Keyword    string   `json:"keyword" yaml:"keyword"`
	Value      string   `json:"value,omitempty" yaml:"value,omitempty"`
	Comment    string   `json:"comment,omitempty" yaml:"comment,omitempty"`
	Commentary []string `json:"commentary,omitempty" yaml:"commentary,omitempty"`
}

func newHeadersCommand(a *app) *cobra.Command {
	var (
		unit    int
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "headers FILE...",
		Short: "List the header/data units and their keywords",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports := make([]fileReport, 0, len(args))
			for _, uri := range args {
				f, err := fits.OpenURI(cmd.Context(), uri, a.openOptions()...)
				if err != nil {
					return err
				}
				r, err := describe(uri, f, unit, !summary)
				if err != nil {
					return err
				}
				reports = append(reports, r)
			}

			return render(cmd.OutOrStdout(), a.cfg.Output, reports, func(w *tabwriter.Writer) {
				writeHeaders(w, reports)
			})
		},
	}

	cmd.Flags().IntVar(&unit, "unit", -1, "only this unit (0 is the primary HDU)")
	cmd.Flags().BoolVar(&summary, "summary", false, "omit keywords")

	return cmd
}

// describe builds the report for one file. unit < 0 selects every unit.
func describe(uri string, f *fits.File, unit int, keywords bool) (fileReport, error) {
	r := fileReport{File: uri}
	err := f.Walk(func(i int, u *fits.Unit) error {
		if unit >= 0 && i != unit {
			return nil
		}
		ur, err := describeUnit(u, keywords)
		if err != nil {
			return err
		}
		r.Units = append(r.Units, ur)
		return nil
	})
	if err != nil {
		return r, err
	}
	if unit >= 0 && len(r.Units) == 0 {
		_, err := f.UnitAt(unit)
		return r, err
	}
	return r, nil
}

func describeUnit(u *fits.Unit, keywords bool) (unitReport, error) {
	axes, err := u.Axes()
	if err != nil {
		return unitReport{}, err
	}
	ur := unitReport{
		Index:        u.Index(),
		Kind:         u.Kind(),
		Offset:       u.Offset(),
		HeaderBlocks: u.HeaderBlockCount(),
		DataBlocks:   u.DataBlockCount(),
		DataSize:     u.DataSize(),
		Axes:         axes,
	}
	if t, err := u.PixelEncoding(); err == nil {
		ur.BITPIX = int(t)
	}
	if !keywords {
		return ur, nil
	}

	for _, k := range u.Keywords() {
		kr := keywordReport{Keyword: k}
		if v, ok := u.Value(k); ok {
			kr.Value = v
			kr.Comment = u.Comment(k)
		} else {
			kr.Commentary = u.Commentary(k)
		}
		ur.Keywords = append(ur.Keywords, kr)
	}
	return ur, nil
}

func writeHeaders(w *tabwriter.Writer, reports []fileReport) {
	for _, r := range reports {
		fmt.Fprintf(w, "=== %s ===\n", r.File)
		for _, u := range r.Units {
			fmt.Fprintf(w, "\nUnit %d\t%s\toffset %d\tBITPIX %d\taxes %s\n",
				u.Index, u.Kind, u.Offset, u.BITPIX, formatAxes(u.Axes))
			fmt.Fprintf(w, "  blocks\theader %d\tdata %d (%d bytes)\n", u.HeaderBlocks, u.DataBlocks, u.DataSize)
			for _, k := range u.Keywords {
				if k.Commentary != nil {
					for _, c := range k.Commentary {
						fmt.Fprintf(w, "  %s\t%s\n", k.Keyword, strings.TrimSpace(c))
					}
					continue
				}
				if k.Comment != "" {
					fmt.Fprintf(w, "  %s\t= %s\t/ %s\n", k.Keyword, k.Value, k.Comment)
				} else {
					fmt.Fprintf(w, "  %s\t= %s\n", k.Keyword, k.Value)
				}
			}
		}
		fmt.Fprintln(w)
	}
}

func formatAxes(axes []int) string {
	if len(axes) == 0 {
		return "-"
	}
	parts := make([]string, len(axes))
	for i, a := range axes {
		parts[i] = fmt.Sprint(a)
	}
	return strings.Join(parts, "x")
}
