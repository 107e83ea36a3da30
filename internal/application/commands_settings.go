package application

import (
	"flag"
	"fmt"
	"strings"

	"pwvault/internal/domain"
)

func (a *App) RunAutofillCommand(args []string, cliName string) error {
	sub := "show"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "show":
		username, ok := a.settings.GetAutofill()
		if !ok {
			a.println("No autofill username configured.")
			a.printf("Run: %s autofill set <username>\n", cliName)
			return nil
		}
		a.printf("Autofill username: %s\n", username)
		return nil
	case "set":
		username := strings.Join(args[1:], " ")
		if strings.TrimSpace(username) == "" {
			var err error
			if username, err = a.promptInput("Autofill username", ""); err != nil {
				return err
			}
		}
		if err := a.settings.SetAutofill(username); err != nil {
			return err
		}
		a.printf("Autofill username set to %s\n", username)
		return nil
	default:
		return fmt.Errorf("unknown autofill subcommand: %s", sub)
	}
}

func (a *App) RunGenerateCommand(args []string) error {
	flags := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags.SetOutput(a.out)
	var length int
	flags.IntVar(&length, "length", domain.DefaultGeneratedLength, "password length")
	if err := flags.Parse(args); err != nil {
		return err
	}

	password, err := domain.GeneratePassword(length)
	if err != nil {
		return err
	}
	a.println(password)
	return nil
}

// RunStatusCommand reports what exists in the vault home without asking for
// the master password or decrypting anything.
func (a *App) RunStatusCommand(args []string) error {
	flags := flag.NewFlagSet("status", flag.ContinueOnError)
	flags.SetOutput(a.out)
	if err := flags.Parse(args); err != nil {
		return err
	}

	_, keyErr := a.keys.LoadKey()
	a.printf("Vault home:         %s\n", a.cfg.Home)
	a.printf("Settings file:      %s (%s)\n", a.settings.Path(), a.settings.Status())
	a.printf("Master password:    %s\n", domain.YesNo(a.account.Exists()))
	a.printf("Credentials file:   %s\n", domain.YesNo(domain.FileExists(a.vault.Path())))
	a.printf("Stored sites:       %d\n", len(a.vault.Sites()))
	a.printf("Encryption key:     %s (%s)\n", domain.YesNo(keyErr == nil), a.keys.Describe())
	a.printf("Export directory:   %s\n", a.cfg.ExportDir)
	return nil
}
