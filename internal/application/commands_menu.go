package application

import "fmt"

// RunMenu offers the main commands as a numbered list and runs the chosen one
// with its defaults.
func (a *App) RunMenu(cliName string) error {
	options := []promptOption{
		{Value: "add", Label: "add", Description: "store or replace credentials for a site"},
		{Value: "find", Label: "find", Description: "show credentials for a site"},
		{Value: "list", Label: "list", Description: "show every stored credential"},
		{Value: "generate", Label: "generate", Description: "print a random password"},
		{Value: "export", Label: "export", Description: "write all credentials to a plaintext file"},
		{Value: "autofill", Label: "autofill", Description: "show the default username"},
		{Value: "reset", Label: "reset", Description: "change the master password"},
		{Value: "key", Label: "key", Description: "show the encryption key backend"},
		{Value: "status", Label: "status", Description: "show what the vault home contains"},
	}
	if !a.account.Exists() {
		options = append([]promptOption{{Value: "init", Label: "init", Description: "create the master password"}}, options...)
	}

	choice, err := a.promptSelect("Choose a command:", options)
	if err != nil {
		return err
	}

	switch choice {
	case "init":
		return a.RunInitCommand(nil, cliName)
	case "add":
		return a.RunAddCommand(nil, cliName)
	case "find":
		return a.RunFindCommand(nil, cliName)
	case "list":
		return a.RunListCommand(nil, cliName)
	case "generate":
		return a.RunGenerateCommand(nil)
	case "export":
		return a.RunExportCommand(nil, cliName)
	case "autofill":
		return a.RunAutofillCommand(nil, cliName)
	case "reset":
		return a.RunResetCommand(nil, cliName)
	case "key":
		return a.RunKeyCommand(nil, cliName)
	case "status":
		return a.RunStatusCommand(nil)
	default:
		return fmt.Errorf("unknown command: %s", choice)
	}
}
