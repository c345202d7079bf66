package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Simplici0/printcost/internal/duration"
)

func NewCmdDuration() *cobra.Command {
	return &cobra.Command{
		Use:     "duration <text>",
		Short:   "Convert duration text such as 1d2h30m into hours",
		Example: `  costcalc duration 0d1h30m`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours := duration.ParseHours(strings.Join(args, " "))
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s h (%s)\n", strconv.FormatFloat(hours, 'f', -1, 64), duration.Format(hours))
			return err
		},
	}
}
