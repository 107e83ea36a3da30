package application

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

type promptOption struct {
	Value       string
	Label       string
	Description string
}

// isInteractiveTerminal reports whether both the app's input and stdout are
// terminals.
func (a *App) isInteractiveTerminal() bool {
	if a.inFile == nil {
		return false
	}
	return term.IsTerminal(int(a.inFile.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func (a *App) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", errors.New("unexpected end of input")
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (a *App) promptSelect(title string, options []promptOption) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options available")
	}

	a.println(title)
	for i, option := range options {
		if strings.TrimSpace(option.Description) == "" {
			a.printf("%d) %s\n", i+1, option.Label)
			continue
		}
		a.printf("%d) %s - %s\n", i+1, option.Label, option.Description)
	}

	for {
		a.printf("Select option [1-%d] (default 1): ", len(options))
		line, err := a.readLine()
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return options[0].Value, nil
		}
		idx, err := strconv.Atoi(line)
		if err != nil || idx < 1 || idx > len(options) {
			a.println("Invalid selection.")
			continue
		}
		return options[idx-1].Value, nil
	}
}

func (a *App) promptInput(label, defaultValue string) (string, error) {
	prompt := label
	if strings.TrimSpace(defaultValue) != "" {
		prompt = fmt.Sprintf("%s [%s]", label, defaultValue)
	}
	a.printf("%s: ", prompt)
	line, err := a.readLine()
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return strings.TrimSpace(defaultValue), nil
	}
	return line, nil
}

// promptSecret reads without echo on a terminal and a plain line otherwise.
// The value is returned untrimmed.
func (a *App) promptSecret(label string) (string, error) {
	a.printf("%s: ", label)
	if a.isInteractiveTerminal() {
		b, err := term.ReadPassword(int(a.inFile.Fd()))
		a.println()
		return string(b), err
	}
	return a.readLine()
}

func (a *App) promptNewSecret(label string) (string, error) {
	first, err := a.promptSecret(label)
	if err != nil {
		return "", err
	}
	second, err := a.promptSecret("Confirm " + strings.ToLower(label))
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.New("passwords do not match")
	}
	return first, nil
}

func (a *App) confirm(label string) (bool, error) {
	answer, err := a.promptInput(label+" [y/N]", "")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
