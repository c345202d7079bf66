package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func NewCmdSet() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Edit a saved field and recompute the affected costs",
	}
	cmd.AddCommand(newCmdSetGlobal())
	cmd.AddCommand(newCmdSetUnit())
	return cmd
}

func newCmdSetGlobal() *cobra.Command {
	o := &GlobalOptions{}
	cmd := &cobra.Command{
		Use:     "global <key> <value>",
		Short:   "Set electricity-price, handling-cost or implicit-cost",
		Example: `  costcalc set global electricity-price 4.2`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.calc.OnGlobalChanged(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			return writeTable(cmd.OutOrStdout(), s.calc)
		},
	}
	o.Bind(cmd)
	return cmd
}

func newCmdSetUnit() *cobra.Command {
	o := &GlobalOptions{}
	cmd := &cobra.Command{
		Use:   "unit <row> <field> <value>",
		Short: "Set a row field: name, p, l, t, w or m",
		Example: `  costcalc set unit 3 t 2h15m
  costcalc set unit 1 name "Prusa MK4"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := rowNumber(args[0])
			if err != nil {
				return err
			}

			s, err := o.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			row, err := s.calc.OnUnitChanged(cmd.Context(), index, args[1], args[2])
			if err != nil {
				return fmt.Errorf("set row %s: %w", args[0], err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			writeRow(tw, row)
			return tw.Flush()
		},
	}
	o.Bind(cmd)
	return cmd
}
