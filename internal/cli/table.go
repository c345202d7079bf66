package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Simplici0/printcost/internal/calculator"
	"github.com/Simplici0/printcost/internal/sheet"
)

func NewCmdTable() *cobra.Command {
	o := &GlobalOptions{}
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print every printer row with its current cost",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()
			return writeTable(cmd.OutOrStdout(), s.calc)
		},
	}
	o.Bind(cmd)
	return cmd
}

func writeTable(w io.Writer, calc *calculator.Calculator) error {
	globals := calc.Globals()
	for _, key := range sheet.GlobalKeys {
		fmt.Fprintf(w, "%s: %s\n", key, globals[key])
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tPRICE\tLIFETIME(h)\tTIME\tPOWER(W)\tCONSUMABLE\tCOST")
	for _, row := range calc.Rows() {
		writeRow(tw, row)
	}
	return tw.Flush()
}

func writeRow(w io.Writer, row calculator.Row) {
	p := row.Printer
	fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n", row.Index+1, p.Name, p.P, p.L, p.T, p.W, p.M, row.Display)
}
