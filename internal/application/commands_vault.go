package application

import (
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"pwvault/internal/domain"
)

func (a *App) RunAddCommand(args []string, cliName string) error {
	flags := flag.NewFlagSet("add", flag.ContinueOnError)
	flags.SetOutput(a.out)
	var site, username, password string
	var generate bool
	var length int
	flags.StringVar(&site, "site", "", "site the credential belongs to")
	flags.StringVar(&username, "username", "", "username or email (defaults to the autofill username)")
	flags.StringVar(&password, "password", "", "password to store (prompted when omitted)")
	flags.BoolVar(&generate, "generate", false, "generate a random password")
	flags.IntVar(&length, "length", domain.DefaultGeneratedLength, "length of a generated password")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if generate && password != "" {
		return fmt.Errorf("--generate and --password are mutually exclusive")
	}
	if site == "" && flags.NArg() > 0 {
		site = flags.Arg(0)
	}

	if err := a.authenticate(cliName); err != nil {
		return err
	}

	var err error
	if strings.TrimSpace(site) == "" {
		if site, err = a.promptInput("Site", ""); err != nil {
			return err
		}
	}
	if strings.TrimSpace(username) == "" {
		autofill, _ := a.settings.GetAutofill()
		if username, err = a.promptInput("Username/Email", autofill); err != nil {
			return err
		}
	}

	switch {
	case generate:
		if password, err = domain.GeneratePassword(length); err != nil {
			return err
		}
		a.printf("Generated password: %s\n", password)
	case password == "":
		if password, err = a.promptSecret("Password"); err != nil {
			return err
		}
	}

	if _, exists := a.vault.Find(site); exists {
		a.printf("Replacing existing credentials for %s\n", site)
	}
	if err := a.vault.AddOrUpdate(site, username, password); err != nil {
		return err
	}
	a.printf("Stored credentials for %s\n", site)
	return nil
}

func (a *App) RunFindCommand(args []string, cliName string) error {
	flags := flag.NewFlagSet("find", flag.ContinueOnError)
	flags.SetOutput(a.out)
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := a.authenticate(cliName); err != nil {
		return err
	}

	site := strings.Join(flags.Args(), " ")
	if strings.TrimSpace(site) == "" {
		var err error
		if site, err = a.promptInput("Site", ""); err != nil {
			return err
		}
	}

	cred, ok := a.vault.Find(site)
	if !ok {
		a.printf("No credentials stored for %s\n", site)
		return nil
	}
	a.printf("Site:     %s\n", site)
	a.printf("Username: %s\n", cred.Username)
	a.printf("Password: %s\n", cred.Password)
	return nil
}

func (a *App) RunListCommand(args []string, cliName string) error {
	flags := flag.NewFlagSet("list", flag.ContinueOnError)
	flags.SetOutput(a.out)
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := a.authenticate(cliName); err != nil {
		return err
	}

	creds, err := a.vault.ListAll()
	if err != nil {
		return err
	}
	if len(creds) == 0 {
		a.println("No credentials stored.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SITE\tUSERNAME\tPASSWORD")
	for _, site := range domain.SortedKeys(creds) {
		cred := creds[site]
		fmt.Fprintf(w, "%s\t%s\t%s\n", site, cred.Username, cred.Password)
	}
	return w.Flush()
}

func (a *App) RunDeleteCommand(args []string, cliName string) error {
	flags := flag.NewFlagSet("delete", flag.ContinueOnError)
	flags.SetOutput(a.out)
	var yes bool
	flags.BoolVar(&yes, "yes", false, "skip confirmation")
	if err := flags.Parse(args); err != nil {
		return err
	}
	site := strings.Join(flags.Args(), " ")
	if strings.TrimSpace(site) == "" {
		return fmt.Errorf("missing site. usage: %s delete [--yes] <site>", cliName)
	}

	if err := a.authenticate(cliName); err != nil {
		return err
	}

	if !yes {
		ok, err := a.confirm(fmt.Sprintf("Delete credentials for %s?", site))
		if err != nil {
			return err
		}
		if !ok {
			a.println("Cancelled.")
			return nil
		}
	}

	removed, err := a.vault.Delete(site)
	if err != nil {
		return err
	}
	if !removed {
		a.printf("No credentials stored for %s\n", site)
		return nil
	}
	a.printf("Deleted credentials for %s\n", site)
	return nil
}

func (a *App) RunExportCommand(args []string, cliName string) error {
	flags := flag.NewFlagSet("export", flag.ContinueOnError)
	flags.SetOutput(a.out)
	var dir string
	flags.StringVar(&dir, "dir", a.cfg.ExportDir, "directory to write the export into")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := a.authenticate(cliName); err != nil {
		return err
	}

	path, err := a.exporter.ExportAll(dir)
	if err != nil {
		return err
	}
	a.printf("Exported credentials to %s\n", path)
	a.println("Warning: this file is NOT encrypted. Delete it as soon as you no longer need it.")
	return nil
}
