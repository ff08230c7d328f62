package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// errNotConfirmed is returned when the operator declines a destructive action
var errNotConfirmed = errors.New("aborted")

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func readStdinSecret() (string, error) {
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}

// confirm asks a yes/no question. Without a terminal the caller must pass --yes.
func (a *App) confirm(question string, yes bool) error {
	if yes {
		return nil
	}
	if !a.IsTerminal() {
		return errors.New("refusing to continue without --yes: stdin is not a terminal")
	}

	fmt.Fprintf(a.Out, "%s [y/N]: ", question)
	line, err := bufio.NewReader(a.In).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return nil
	default:
		return errNotConfirmed
	}
}

// secret returns value, or prompts for it without echo when value is empty
// and stdin is a terminal.
func (a *App) secret(label, value string) (string, error) {
	if value != "" || !a.IsTerminal() {
		return value, nil
	}
	fmt.Fprintf(a.Out, "%s: ", label)
	v, err := a.ReadSecret()
	fmt.Fprintln(a.Out)
	return v, err
}
