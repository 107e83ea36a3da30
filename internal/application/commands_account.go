package application

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"pwvault/internal/domain"
	"pwvault/internal/integrations/keyringstore"
)

func (a *App) RunInitCommand(args []string, cliName string) error {
	flags := flag.NewFlagSet("init", flag.ContinueOnError)
	flags.SetOutput(a.out)
	if err := flags.Parse(args); err != nil {
		return err
	}

	if a.account.Exists() {
		return fmt.Errorf("a master password is already configured. run: %s reset", cliName)
	}

	a.printf("Master password rules: at least %d characters, upper and lower case letters, a digit and one of %s. No other characters.\n", domain.MinPasswordLength, domain.SpecialChars)
	password, err := a.promptNewSecret("New master password")
	if err != nil {
		return err
	}
	if violations := domain.PolicyViolations(password); len(violations) > 0 {
		return fmt.Errorf("master password rejected: %s", strings.Join(violations, ", "))
	}
	if err := a.account.Create(password); err != nil {
		return err
	}

	a.printf("Master password created. Vault home: %s\n", a.cfg.Home)
	return nil
}

func (a *App) RunResetCommand(args []string, cliName string) error {
	flags := flag.NewFlagSet("reset", flag.ContinueOnError)
	flags.SetOutput(a.out)
	if err := flags.Parse(args); err != nil {
		return err
	}

	if !a.account.Exists() {
		return fmt.Errorf("no master password configured. run: %s init", cliName)
	}
	current, err := a.promptSecret("Current master password")
	if err != nil {
		return err
	}
	if !a.account.Authenticate(current) {
		return errNotAuthenticated
	}

	next, err := a.promptNewSecret("New master password")
	if err != nil {
		return err
	}
	if violations := domain.PolicyViolations(next); len(violations) > 0 {
		return fmt.Errorf("master password rejected: %s", strings.Join(violations, ", "))
	}
	if err := a.account.Reset(current, next); err != nil {
		return err
	}

	a.println("Master password updated.")
	return nil
}

func (a *App) RunKeyCommand(args []string, cliName string) error {
	sub := "show"
	if len(args) > 0 {
		sub = args[0]
	}
	if sub != "show" {
		return fmt.Errorf("unknown key subcommand: %s", sub)
	}

	a.printf("Key backend: %s\n", a.keys.Describe())
	key, err := a.keys.LoadKey()
	if err != nil {
		if errors.Is(err, keyringstore.ErrKeyNotFound) {
			a.println("No encryption key yet. One is created when the first credential is stored.")
			if len(a.vault.Sites()) > 0 {
				a.printf("Warning: %s holds credentials that can no longer be decrypted.\n", a.vault.Path())
			}
			return nil
		}
		return err
	}
	a.printf("Key fingerprint: %s\n", keyringstore.Fingerprint(key))
	return nil
}
