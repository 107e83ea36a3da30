package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"pwvault/internal/application"
	"pwvault/internal/config"
	"pwvault/internal/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		exitWithError(err)
	}
}

func run(args []string, in io.Reader, out, errOut io.Writer) error {
	name := cliName()

	if len(args) == 0 {
		if !hasInteractiveStdio() {
			printUsage(out)
			return errors.New("missing command")
		}
		app, err := newApp(in, out, errOut)
		if err != nil {
			return err
		}
		return app.RunMenu(name)
	}

	switch args[0] {
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	}

	app, err := newApp(in, out, errOut)
	if err != nil {
		return err
	}

	rest := args[1:]
	switch args[0] {
	case "init":
		return app.RunInitCommand(rest, name)
	case "add":
		return app.RunAddCommand(rest, name)
	case "find":
		return app.RunFindCommand(rest, name)
	case "list":
		return app.RunListCommand(rest, name)
	case "delete":
		return app.RunDeleteCommand(rest, name)
	case "export":
		return app.RunExportCommand(rest, name)
	case "autofill":
		return app.RunAutofillCommand(rest, name)
	case "generate":
		return app.RunGenerateCommand(rest)
	case "reset":
		return app.RunResetCommand(rest, name)
	case "key":
		return app.RunKeyCommand(rest, name)
	case "status":
		return app.RunStatusCommand(rest)
	default:
		printUsage(out)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func newApp(in io.Reader, out, errOut io.Writer) (*application.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(errOut, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("home", cfg.Home).Str("key_backend", cfg.KeyBackend).Msg("configuration loaded")
	return application.New(cfg, log, in, out)
}
