package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeanpaul/phonebook/internal/config"
	"github.com/jeanpaul/phonebook/internal/contacts"
	"github.com/jeanpaul/phonebook/internal/logger"
	"github.com/jeanpaul/phonebook/internal/menu"
	"github.com/jeanpaul/phonebook/internal/tui"
	"github.com/jeanpaul/phonebook/internal/watch"
	"github.com/jeanpaul/phonebook/pkg/version"
)

func main() {
	fileFlag := flag.String("file", "", "Data file (overrides data_file from config)")
	configFlag := flag.String("config", "", "Config file path")
	plainFlag := flag.Bool("plain", false, "Use the numbered text menu instead of the full-screen UI")
	versionFlag := flag.Bool("version", false, "Print version")
	helpFlag := flag.Bool("help", false, "Show help")
	flag.BoolVar(helpFlag, "h", false, "Show help")

	flag.Usage = showHelp
	flag.Parse()

	if *helpFlag {
		showHelp()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("phonebook %s (%s)\n", version.Version, version.Commit)
		os.Exit(0)
	}

	args := flag.Args()

	// Subcommands that do not need a loaded configuration
	if len(args) > 0 {
		switch args[0] {
		case "help":
			showHelp()
			return
		case "config":
			if err := cmdConfig(*configFlag, args[1:]); err != nil {
				fatal("%s", err)
			}
			return
		}
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fatal("%s", err)
	}
	overrideDataFile(cfg, *fileFlag)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(args) == 0 {
		plain := *plainFlag || cfg.UI == config.UIPlain || !isTerminal()
		if plain {
			err = launchMenu(ctx, cfg)
		} else {
			err = launchTUI(ctx, cfg)
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			fatal("%s", err)
		}
		return
	}

	log, closeLog := newLogger(cfg, os.Stderr)
	switch args[0] {
	case "add":
		err = cmdAdd(ctx, cfg, log, args[1:])
	case "list":
		err = cmdList(ctx, cfg, log, args[1:])
	case "update":
		err = cmdUpdate(ctx, cfg, log, args[1:])
	case "delete":
		err = cmdDelete(ctx, cfg, log, args[1:])
	case "export":
		err = cmdExport(ctx, cfg, log, args[1:])
	case "import":
		err = cmdImport(ctx, cfg, log, args[1:])
	case "doctor":
		err = cmdDoctor(ctx, cfg, *configFlag)
	default:
		err = fmt.Errorf("unknown command %q (see 'phonebook help')", args[0])
	}
	closeLog()
	if err != nil {
		fatal("%s", err)
	}
}

// overrideDataFile applies --file, expanded like data_file in the config.
func overrideDataFile(cfg *config.Config, path string) {
	if path != "" {
		cfg.DataFile = config.ExpandPath(path)
	}
}

func newLogger(cfg *config.Config, fallback io.Writer) (*slog.Logger, func() error) {
	return logger.New(&logger.Options{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		Format: cfg.Log.Format,
	}, fallback)
}

// openStore opens the configured data file. CLI commands print change
// notifications; pass extra observers for other front ends.
func openStore(cfg *config.Config, log *slog.Logger, observers ...contacts.Observer) (*contacts.FileStore, error) {
	opts := []contacts.Option{contacts.WithLogger(log)}
	for _, o := range observers {
		opts = append(opts, contacts.WithObserver(o))
	}
	store, err := contacts.NewFileStore(cfg.DataFile, opts...)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DataFile, err)
	}
	return store, nil
}

func launchMenu(ctx context.Context, cfg *config.Config) error {
	log, closeLog := newLogger(cfg, os.Stderr)
	defer closeLog()
	store, err := openStore(cfg, log, menu.Printer(os.Stdout))
	if err != nil {
		return err
	}
	log.Debug("starting menu", "file", store.Path())
	return menu.New(store, os.Stdin, os.Stdout).Run(ctx)
}

func launchTUI(ctx context.Context, cfg *config.Config) error {
	// Anything written to stderr would tear the alternate screen, so logs
	// only go to a configured file.
	log, closeLog := newLogger(cfg, nil)
	defer closeLog()

	notifier := tui.NewNotifier()
	store, err := openStore(cfg, log, notifier)
	if err != nil {
		return err
	}

	changes, err := watch.File(ctx, store.Path(), log)
	if err != nil {
		log.Warn("file watching disabled", "error", err)
		changes = nil
	}

	m := tui.New(ctx, store, notifier, changes)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// isTerminal checks if stdin is a terminal
func isTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("error: "+msg))
	os.Exit(1)
}

func showHelp() {
	help := `
` + tui.TitleStyle.Render("Phonebook") + ` - contacts in a plain text file

` + tui.LabelStyle.Render("USAGE:") + `
  phonebook [flags]                   Open the interactive phonebook
  phonebook [flags] <command> [args]  Run a command

` + tui.LabelStyle.Render("COMMANDS:") + `
  add <name> <phone>                  Add a contact
  list [--markdown]                   List contacts
  update <n> <name> <phone>           Replace contact number n
  delete <n>                          Delete contact number n
  export <file>                       Export to .xlsx, .json, .md or text
  import [--dry-run] <pattern>...     Import from .xlsx, .json or text files
  config init [--force]               Write a default config file
  doctor                              Check config and data file
  help                                Show this help

` + tui.LabelStyle.Render("FLAGS:") + `
  --file <path>                       Data file (default phonebook.txt)
  --config <path>                     Config file
  --plain                             Use the numbered menu instead of the full-screen UI
  --version                           Show version
  --help, -h                          Show this help

` + tui.LabelStyle.Render("EXAMPLES:") + `
  phonebook add Alice 555-0100
  phonebook list --markdown
  phonebook import --dry-run 'backup/**/*.xlsx'
  phonebook --file ~/work.txt export work.json

` + tui.LabelStyle.Render("KEYBOARD SHORTCUTS:") + `
  a                                   Add contact
  e, Enter                            Edit selected contact
  d                                   Delete selected contact
  /                                   Filter
  r                                   Reload from disk
  q, Ctrl+C                           Quit

` + tui.HelpStyle.Render("Contacts are numbered from 1 in the order they appear in the file.") + `
`
	fmt.Println(help)
}
