package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	pwerrors "github.com/porthorian/pwhash/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type credentialSource string

const (
	credentialSourceStdin  credentialSource = "stdin"
	credentialSourceConfig credentialSource = "config"
	credentialSourcePrompt credentialSource = "prompt"
)

var errMissingCredential = pwerrors.New(
	pwerrors.CodeInvalidParameter,
	"missing credential: use --password-stdin, set PWHASH_CREDENTIAL, or run from a terminal",
)

// resolveCredential picks the credential from stdin, then config/env, then
// an interactive prompt.
func (a *app) resolveCredential(cmd *cobra.Command, fromStdin bool) (string, error) {
	credential, source, err := a.readCredential(cmd, fromStdin)
	if err != nil {
		return "", err
	}
	a.logger.V(1).Info("resolved credential", "source", string(source))
	return credential, nil
}

func (a *app) readCredential(cmd *cobra.Command, fromStdin bool) (string, credentialSource, error) {
	if fromStdin {
		credential, err := readCredentialLine(cmd.InOrStdin())
		return credential, credentialSourceStdin, err
	}

	if credential := a.v.GetString(keyCredential); credential != "" {
		return credential, credentialSourceConfig, nil
	}

	if file, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		cmd.PrintErr("Password: ")
		raw, err := term.ReadPassword(int(file.Fd()))
		cmd.PrintErrln()
		if err != nil {
			return "", credentialSourcePrompt, fmt.Errorf("read password: %w", err)
		}
		if len(raw) == 0 {
			return "", credentialSourcePrompt, errMissingCredential
		}
		return string(raw), credentialSourcePrompt, nil
	}

	return "", "", errMissingCredential
}

// readCredentialLine returns the first line of r without its line ending.
func readCredentialLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read credential from stdin: %w", err)
	}

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errMissingCredential
	}
	return line, nil
}
