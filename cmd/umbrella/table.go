package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/couchcryptid/umbrella-gate/internal/display"
	"github.com/couchcryptid/umbrella-gate/internal/domain"
	"github.com/spf13/cobra"
)

func newTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the truth table for all sixteen input combinations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), renderTruthTable(domain.TruthTable()))
			return err
		},
	}
}

func renderTruthTable(rows []domain.TruthTableRow) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("rain", "drizzle", "wind", "night", "O_Risk", "A_Hazard", "N_NoRain", "X_Consistent", "reminder")

	for _, r := range rows {
		t.Row(
			display.Bit(r.Inputs.Rain),
			display.Bit(r.Inputs.Drizzle),
			display.Bit(r.Inputs.Wind),
			display.Bit(r.Inputs.Time),
			display.Bit(r.Result.OrRisk),
			display.Bit(r.Result.Hazard),
			display.Bit(r.Result.NorNoRain),
			display.Bit(r.Result.XnorConsistent),
			display.Bit(r.Result.ReminderOn),
		)
	}
	return t.String()
}
