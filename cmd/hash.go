package cmd

import (
	"fmt"

	ocrypto "github.com/porthorian/pwhash/pkg/crypto"
	"github.com/spf13/cobra"
)

func newHashCommand(a *app) *cobra.Command {
	var passwordStdin bool

	hashCmd := &cobra.Command{
		Use:   "hash",
		Short: "Generate a bcrypt hash for a credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, s, err := a.service()
			if err != nil {
				return err
			}

			credential, err := a.resolveCredential(cmd, passwordStdin)
			if err != nil {
				return err
			}

			encoded, err := svc.Hash(credential, s.Cost, s.Prefix)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), encoded)
			return nil
		},
	}

	hashCmd.Flags().Int(keyCost, ocrypto.DefaultCost, fmt.Sprintf("bcrypt cost factor [%d..%d]. Can also be set via PWHASH_COST.", ocrypto.MinCost, ocrypto.MaxCost))
	hashCmd.Flags().String(keyPrefix, string(ocrypto.DefaultVariant), "Hash variant prefix: 2a, 2b or 2y. Can also be set via PWHASH_PREFIX.")
	hashCmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the credential from the first line of stdin.")

	mustBindPFlag(a.v, keyCost, hashCmd.Flags().Lookup(keyCost))
	mustBindPFlag(a.v, keyPrefix, hashCmd.Flags().Lookup(keyPrefix))

	return hashCmd
}
