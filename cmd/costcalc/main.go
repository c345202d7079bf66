package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Simplici0/printcost/internal/cli"
)

func main() {
	command := NewCostCalcCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewCostCalcCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "costcalc [command]",
		Short: "costcalc estimates the amortized cost of 3D prints.",
		Long: `costcalc estimates the cost of a print from the printer's depreciation,
its electricity use, consumables, a handling fee and an implicit overhead
percentage. Saved printer rows live in a local SQLite file.`,
		SilenceUsage: true,
	}
	cmd.AddCommand(cli.NewCmdEstimate())
	cmd.AddCommand(cli.NewCmdDuration())
	cmd.AddCommand(cli.NewCmdTable())
	cmd.AddCommand(cli.NewCmdSet())
	cmd.AddCommand(cli.NewCmdReset())

	return cmd
}
