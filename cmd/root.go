package cmd

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/google/uuid"
	"github.com/porthorian/pwhash"
	pwerrors "github.com/porthorian/pwhash/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var BuildVersion = "dev"

// ErrMismatch is returned by verify when the credential does not match. The
// FAILED line has already been printed, so Execute does not print it again.
var ErrMismatch = errors.New("password does not match")

// skipConfig marks commands that run without reading pwhash.yaml or the
// environment.
const skipConfig = "pwhash/skip-config"

type app struct {
	configPath string
	verbosity  int

	v      *viper.Viper
	logger logr.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{
		v:      newViper(),
		logger: logr.Discard(),
	}

	rootCmd := &cobra.Command{
		Use:           "pwhash",
		Short:         "pwhash CLI",
		Long:          "CLI for generating, verifying and inspecting bcrypt password hashes.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = newCLILogger(cmd, a.verbosity).WithValues("invocation_id", uuid.NewString())
			if _, ok := cmd.Annotations[skipConfig]; ok {
				return nil
			}
			if err := loadConfig(a.v, a.configPath); err != nil {
				return err
			}
			a.logger.V(1).Info("loaded configuration", "command", cmd.Name(), "config_file", a.v.ConfigFileUsed())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a config file. Defaults to pwhash.yaml in . or $HOME/.config/pwhash.")
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "Increase log verbosity on stderr (repeatable).")

	rootCmd.AddCommand(&cobra.Command{
		Use:         "version",
		Short:       "Print the version number of pwhash CLI",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", BuildVersion)
		},
	})
	rootCmd.AddCommand(newHashCommand(a))
	rootCmd.AddCommand(newVerifyCommand(a))
	rootCmd.AddCommand(newInspectCommand(a))

	return rootCmd
}

// service builds a Service from the resolved cost and prefix settings.
func (a *app) service() (*pwhash.Service, settings, error) {
	s, err := resolveSettings(a.v)
	if err != nil {
		return nil, settings{}, err
	}

	svc, err := pwhash.New(pwhash.Config{
		Logger: a.logger,
		Cost:   s.Cost,
		Prefix: s.Prefix,
	})
	if err != nil {
		return nil, settings{}, err
	}
	return svc, s, nil
}

func newCLILogger(cmd *cobra.Command, verbosity int) logr.Logger {
	out := cmd.ErrOrStderr()
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(out, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(out, args)
	}, funcr.Options{Verbosity: verbosity})
}

func Execute() error {
	return execute(newRootCommand())
}

func execute(rootCmd *cobra.Command) error {
	err := rootCmd.Execute()
	switch {
	case err == nil, errors.Is(err, ErrMismatch):
	case pwerrors.IsInternalCode(err):
		rootCmd.PrintErrf("ERROR: %v (internal)\n", err)
	default:
		rootCmd.PrintErrf("ERROR: %v\n", err)
	}
	return err
}

// ExitCode maps an Execute result to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
