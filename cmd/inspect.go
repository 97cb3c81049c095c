package cmd

import (
	"fmt"
	"strings"

	"github.com/porthorian/pwhash"
	"github.com/spf13/cobra"
)

func newInspectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <hash>",
		Short: "Print the prefix, cost and salt of an encoded bcrypt hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := a.service()
			if err != nil {
				return err
			}

			info, err := svc.Inspect(pwhash.PasswordHash(strings.TrimSpace(args[0])))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "prefix: %s\n", info.Prefix)
			fmt.Fprintf(out, "cost: %d\n", info.Cost)
			fmt.Fprintf(out, "salt: %s\n", info.Salt)
			fmt.Fprintf(out, "needs_rehash: %t\n", info.NeedsRehash)
			return nil
		},
	}
}
