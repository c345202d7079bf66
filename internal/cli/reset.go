package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

const resetPrompt = "Clear all saved data and restore the defaults? This cannot be undone. [y/N] "

type ResetOptions struct {
	GlobalOptions
	Yes bool
}

func NewCmdReset() *cobra.Command {
	o := &ResetOptions{}
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete saved state and restore the default sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !o.Yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout()) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}

			s, err := o.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.calc.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved state cleared.")
			return nil
		},
	}
	o.Bind(cmd)
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func confirm(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, resetPrompt)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
