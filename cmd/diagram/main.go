// seehuhn.de/go/diagram - piecewise-linear diagrams on 2D surfaces
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command diagram renders line diagrams from a JSON description and a
// table of data.
//
// Usage:
//
//	diagram render -c desc.json -d data.xlsx -o out.png
//	diagram domains -d data.csv --column T_core
//
// The output format of render is chosen by the file name extension of
// the output file: .png, .svg or .pdf.  Data files are read as Excel
// workbooks (.xlsx, .xlsm, .xltx) or as CSV; the first row names the
// columns.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"seehuhn.de/go/diagram"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootFlags struct {
	verbose bool
	log     *slog.Logger
}

func newRootCmd() *cobra.Command {
	rf := &rootFlags{}
	rootCmd := &cobra.Command{
		Use:          "diagram",
		Short:        "Render line diagrams from tabular data",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if rf.verbose {
				level = slog.LevelDebug
			}
			rf.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&rf.verbose, "verbose", "v", false, "Log layout details to stderr")

	rootCmd.AddCommand(newRenderCmd(rf), newDomainsCmd(rf))
	return rootCmd
}

func newRenderCmd(rf *rootFlags) *cobra.Command {
	var (
		descPath, dataPath, outPath, sheet string
		opt                                renderOptions
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw a diagram into a PNG, SVG or PDF file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := readDescription(descPath)
			if err != nil {
				return fmt.Errorf("reading description: %w", err)
			}
			tab := &table{columns: map[string][]float64{}}
			if dataPath != "" {
				tab, err = loadTable(dataPath, sheet)
				if err != nil {
					return fmt.Errorf("reading data: %w", err)
				}
			}
			opt.log = rf.log
			if err := renderFile(desc, tab, outPath, opt); err != nil {
				return fmt.Errorf("rendering %s: %w", outPath, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&descPath, "config", "c", "", "JSON diagram description")
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "Data file (.xlsx or .csv)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "diagram.png", "Output file (.png, .svg or .pdf)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name (default: first sheet)")
	cmd.Flags().Float64Var(&opt.width, "width", 0, "Diagram width, overrides the description")
	cmd.Flags().Float64Var(&opt.height, "height", 0, "Diagram height, overrides the description")
	cmd.Flags().BoolVar(&opt.extent, "extent", false, "Outline the title, axis and plot areas")
	cmd.MarkFlagRequired("config")
	return cmd
}

func newDomainsCmd(rf *rootFlags) *cobra.Command {
	var (
		dataPath, sheet string
		columns         []string
		steps           int
	)
	cmd := &cobra.Command{
		Use:   "domains",
		Short: "Print value domains covering data columns as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, err := loadTable(dataPath, sheet)
			if err != nil {
				return fmt.Errorf("reading data: %w", err)
			}
			if len(columns) == 0 {
				columns = tab.names
			}
			res := make(map[string]diagram.ValueDomain, len(columns))
			for _, name := range columns {
				col, err := tab.column(name)
				if err != nil {
					return err
				}
				dom, err := diagram.DataDomain(col, steps)
				if err != nil {
					return fmt.Errorf("column %q: %w", name, err)
				}
				rf.log.Debug("data domain", "column", name, "start", dom.Start, "end", dom.End())
				res[name] = dom
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "Data file (.xlsx or .csv)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name (default: first sheet)")
	cmd.Flags().StringSliceVar(&columns, "column", nil, "Data columns (default: all)")
	cmd.Flags().IntVar(&steps, "steps", autoSteps, "Maximal number of ticks")
	cmd.MarkFlagRequired("data")
	return cmd
}
