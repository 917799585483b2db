package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/couchcryptid/umbrella-gate/internal/display"
	"github.com/couchcryptid/umbrella-gate/internal/domain"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	var in domain.InputState
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate one input combination and exit",
		Example: `  umbrella eval --rain
  umbrella eval --drizzle --wind --night --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			row := domain.TruthTableRow{Inputs: in, Result: domain.Evaluate(in)}
			if asJSON {
				return writeRowJSON(cmd.OutOrStdout(), row)
			}
			writeRowText(cmd.OutOrStdout(), row)
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&in.Rain, "rain", false, "heavy rain")
	f.BoolVar(&in.Drizzle, "drizzle", false, "drizzle")
	f.BoolVar(&in.Wind, "wind", false, "strong wind")
	f.BoolVar(&in.Time, "night", false, "night time")
	f.BoolVar(&asJSON, "json", false, "print the inputs and gate outputs as JSON")
	return cmd
}

func writeRowJSON(w io.Writer, row domain.TruthTableRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(row)
}

func writeRowText(w io.Writer, row domain.TruthTableRow) {
	v := display.Build(domain.Evaluation{Inputs: row.Inputs, Result: row.Result})
	for _, l := range v.Inputs {
		fmt.Fprintf(w, "%-14s %s\n", l.Label, l.Bit)
	}
	fmt.Fprintln(w)
	for _, l := range v.Gates {
		fmt.Fprintf(w, "%-5s %-13s %s\n", l.Gate, l.Key, l.Bit)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", v.Output.Icon, v.Output.Text)
}
