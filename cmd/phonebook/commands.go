package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/jeanpaul/phonebook/internal/config"
	"github.com/jeanpaul/phonebook/internal/contacts"
	"github.com/jeanpaul/phonebook/internal/health"
	"github.com/jeanpaul/phonebook/internal/menu"
	"github.com/jeanpaul/phonebook/internal/transfer"
	"github.com/jeanpaul/phonebook/internal/tui"
)

// parseIndex converts a contact number as displayed (1-based) to a store
// index. Range checking is left to the store.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid contact number %q", s)
	}
	return n - 1, nil
}

// describe turns store errors into messages that use displayed numbering.
func describe(err error) error {
	var ie *contacts.IndexError
	if errors.As(err, &ie) {
		if ie.Len == 0 {
			return errors.New("the phonebook is empty")
		}
		return fmt.Errorf("no contact number %d (have 1-%d)", ie.Index+1, ie.Len)
	}
	return err
}

func cmdAdd(ctx context.Context, cfg *config.Config, log *slog.Logger, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: phonebook add <name> <phone>")
	}
	store, err := openStore(cfg, log, menu.Printer(os.Stdout))
	if err != nil {
		return err
	}
	c := contacts.Contact{Name: strings.TrimSpace(args[0]), Phone: strings.TrimSpace(args[1])}
	if c.Name == "" || c.Phone == "" {
		return errors.New("name and phone are both required")
	}
	ok, err := store.Create(ctx, c)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println(tui.WarningStyle.Render(c.String() + " already exists"))
	}
	return nil
}

func cmdList(ctx context.Context, cfg *config.Config, log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	markdown := fs.Bool("markdown", false, "Render the list as a Markdown table")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	list, err := store.ReadAll(ctx)
	if err != nil {
		return err
	}

	if *markdown {
		out, err := renderMarkdown(transfer.Markdown(list))
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	}

	if len(list) == 0 {
		fmt.Println(tui.HelpStyle.Render("The phonebook is empty"))
		return nil
	}
	printList(os.Stdout, list)
	return nil
}

func printList(w io.Writer, list []contacts.Contact) {
	for i, c := range list {
		fmt.Fprintf(w, "%s %s%s%s\n",
			tui.IndexStyle.Render(fmt.Sprintf("%3d.", i+1)),
			tui.NameStyle.Render(c.Name),
			tui.HelpStyle.Render(":"),
			tui.PhoneStyle.Render(c.Phone),
		)
	}
}

func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	return r.Render(md)
}

func cmdUpdate(ctx context.Context, cfg *config.Config, log *slog.Logger, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: phonebook update <n> <name> <phone>")
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	c := contacts.Contact{Name: strings.TrimSpace(args[1]), Phone: strings.TrimSpace(args[2])}
	if c.Name == "" || c.Phone == "" {
		return errors.New("name and phone are both required")
	}
	store, err := openStore(cfg, log, menu.Printer(os.Stdout))
	if err != nil {
		return err
	}
	return describe(store.Update(ctx, index, c))
}

func cmdDelete(ctx context.Context, cfg *config.Config, log *slog.Logger, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: phonebook delete <n>")
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	store, err := openStore(cfg, log, menu.Printer(os.Stdout))
	if err != nil {
		return err
	}
	return describe(store.Delete(ctx, index))
}

func cmdExport(ctx context.Context, cfg *config.Config, log *slog.Logger, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: phonebook export <file.xlsx|file.json|file.md|file.txt>")
	}
	store, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	list, err := store.ReadAll(ctx)
	if err != nil {
		return err
	}
	if err := transfer.Export(args[0], list); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	log.Info("exported", "path", args[0], "contacts", len(list))
	fmt.Println(tui.SuccessStyle.Render(fmt.Sprintf("✓ Exported %d contacts to %s", len(list), args[0])))
	return nil
}

func cmdImport(ctx context.Context, cfg *config.Config, log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	dryRun := fs.Bool("dry-run", false, "Show the changes without writing them")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("usage: phonebook import [--dry-run] <pattern>...")
	}

	var incoming []contacts.Contact
	for _, pattern := range fs.Args() {
		paths, err := transfer.Expand(pattern)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Println(tui.WarningStyle.Render("- No files match " + pattern))
			continue
		}
		for _, path := range paths {
			list, err := transfer.Read(path)
			if err != nil {
				return err
			}
			log.Debug("read import source", "path", path, "contacts", len(list))
			fmt.Printf("  %s %s %s\n",
				tui.LabelStyle.Render("●"),
				tui.NameStyle.Render(path),
				tui.HelpStyle.Render(fmt.Sprintf("(%d contacts)", len(list))),
			)
			incoming = append(incoming, list...)
		}
	}

	store, err := openStore(cfg, log)
	if err != nil {
		return err
	}

	if *dryRun {
		current, err := store.ReadAll(ctx)
		if err != nil {
			return err
		}
		diff, err := transfer.Preview(store.Path(), current, incoming)
		if err != nil {
			return err
		}
		if diff == "" {
			fmt.Println(tui.HelpStyle.Render("No changes"))
			return nil
		}
		fmt.Print(diff)
		return nil
	}

	res, err := transfer.Import(ctx, store, incoming)
	if err != nil {
		return err
	}
	log.Info("imported", "added", res.Added, "skipped", res.Skipped)
	fmt.Println(tui.SuccessStyle.Render(fmt.Sprintf("✓ Added %d contacts", res.Added)))
	if res.Skipped > 0 {
		fmt.Println(tui.HelpStyle.Render(fmt.Sprintf("  (%d already present)", res.Skipped)))
	}
	return nil
}

func cmdConfig(path string, args []string) error {
	if len(args) == 0 || args[0] != "init" {
		return errors.New("usage: phonebook config init [--force]")
	}
	fs := flag.NewFlagSet("config init", flag.ContinueOnError)
	force := fs.Bool("force", false, "Overwrite an existing config file")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	if path == "" {
		path = config.DefaultPath()
	}
	if _, err := os.Stat(path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(config.DefaultConfig(), path); err != nil {
		return err
	}
	fmt.Println(tui.SuccessStyle.Render("✓ Wrote " + path))
	return nil
}

func cmdDoctor(ctx context.Context, cfg *config.Config, configPath string) error {
	fmt.Println(tui.TitleStyle.Render("Phonebook Health Check"))
	fmt.Println()

	// Check config file
	fmt.Printf("  %s %s ... ", tui.LabelStyle.Render("●"), tui.NameStyle.Render("config"))
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	if _, err := os.Stat(configPath); err == nil {
		fmt.Println(tui.SuccessStyle.Render("✓ " + configPath))
	} else {
		fmt.Println(tui.HelpStyle.Render("- Using defaults (run 'phonebook config init' to customize)"))
	}

	// Check data file
	fmt.Printf("  %s %s ... ", tui.LabelStyle.Render("●"), tui.NameStyle.Render("data"))
	status := health.Check(ctx, cfg.DataFile)
	switch {
	case !status.OK():
		fmt.Println(tui.ErrorStyle.Render("✗ " + status.Error))
	case !status.Exists:
		fmt.Println(tui.HelpStyle.Render("- " + status.Path + " not found (created on first use)"))
	default:
		fmt.Printf("%s %s\n",
			tui.SuccessStyle.Render(fmt.Sprintf("✓ %s (%d contacts)", status.Path, status.Contacts)),
			tui.HelpStyle.Render(status.Latency.Round(time.Microsecond).String()),
		)
	}

	// Check log file
	if cfg.Log.File != "" && cfg.Log.File != "-" {
		fmt.Printf("  %s %s ... ", tui.LabelStyle.Render("●"), tui.NameStyle.Render("log"))
		f, err := os.OpenFile(cfg.Log.File, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
		if err != nil {
			fmt.Println(tui.ErrorStyle.Render("✗ " + err.Error()))
		} else {
			f.Close()
			fmt.Println(tui.SuccessStyle.Render("✓ " + cfg.Log.File))
		}
	}

	fmt.Println()
	if !status.OK() {
		return errors.New("data file is unusable")
	}
	fmt.Println(tui.SuccessStyle.Render("  All checks passed!"))
	return nil
}
