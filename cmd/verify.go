package cmd

import (
	"fmt"
	"strings"

	"github.com/porthorian/pwhash"
	"github.com/spf13/cobra"
)

func newVerifyCommand(a *app) *cobra.Command {
	var passwordStdin bool

	verifyCmd := &cobra.Command{
		Use:   "verify <hash>",
		Short: "Check a credential against an encoded bcrypt hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Cost and prefix come from the encoded hash.
			svc, err := pwhash.New(pwhash.Config{Logger: a.logger})
			if err != nil {
				return err
			}

			credential, err := a.resolveCredential(cmd, passwordStdin)
			if err != nil {
				return err
			}

			ok, err := svc.Verify(credential, pwhash.PasswordHash(strings.TrimSpace(args[0])))
			if err != nil {
				return err
			}

			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "FAILED: Password does not match!")
				return ErrMismatch
			}

			fmt.Fprintln(cmd.OutOrStdout(), "SUCCESS: Password matches!")
			return nil
		},
	}

	verifyCmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the credential from the first line of stdin.")

	return verifyCmd
}
