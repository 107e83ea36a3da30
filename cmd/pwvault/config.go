package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"
)

const defaultCLIName = "pwvault"

func printUsage(w io.Writer) {
	name := cliName()
	fmt.Fprintf(w, "%s - local password vault\n", name)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s init\n", name)
	fmt.Fprintf(w, "  %s add [--site <site>] [--username <name>] [--password <value> | --generate [--length N]]\n", name)
	fmt.Fprintf(w, "  %s find <site>\n", name)
	fmt.Fprintf(w, "  %s list\n", name)
	fmt.Fprintf(w, "  %s delete [--yes] <site>\n", name)
	fmt.Fprintf(w, "  %s export [--dir <directory>]\n", name)
	fmt.Fprintf(w, "  %s autofill [show|set <username>]\n", name)
	fmt.Fprintf(w, "  %s generate [--length N]\n", name)
	fmt.Fprintf(w, "  %s reset\n", name)
	fmt.Fprintf(w, "  %s key show\n", name)
	fmt.Fprintf(w, "  %s status\n", name)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment: PWVAULT_HOME, PWVAULT_KEY_BACKEND, PWVAULT_EXPORT_DIR, PWVAULT_BCRYPT_COST, PWVAULT_LOG_LEVEL")
}

func cliName() string {
	if len(os.Args) == 0 {
		return defaultCLIName
	}
	name := strings.TrimSpace(filepath.Base(os.Args[0]))
	if name == "" || name == "." || strings.HasSuffix(name, ".test") {
		return defaultCLIName
	}
	return name
}

func hasInteractiveStdio() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
