package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nullmedium/exek/config"
	"github.com/nullmedium/exek/launcher"
	"github.com/nullmedium/exek/log"
	"github.com/nullmedium/exek/model"
	"github.com/nullmedium/exek/pathcomp"
	"github.com/nullmedium/exek/scanner"
	"github.com/nullmedium/exek/search"
	"github.com/nullmedium/exek/session"
	"github.com/nullmedium/exek/tui"
	"github.com/nullmedium/exek/usage"
)

var (
	configFlag   string
	logLevelFlag string
	dryRunFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "exek",
	Short: "Fuzzy application launcher",
	Long: `exek ranks installed applications by fuzzy match and launch history.
Typing a path (/, ./, ../ or ~) switches to filesystem completion.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default $XDG_CONFIG_HOME/exek/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error, off")
	rootCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "print the command instead of launching it")
}

// env is everything a command needs after startup.
type env struct {
	cfg   *config.Config
	store *usage.Store
	apps  []model.Application
}

// setup loads configuration, starts logging and opens the usage store.
// A store that cannot be read is fatal.
func setup() (*env, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}
	if err := log.Init(cfg.LogFile, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	if logLevelFlag != "" {
		log.SetLevel(logLevelFlag)
	}

	store, err := usage.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", store.Path()).Msg("usage store opened")

	start := time.Now()
	dirs := cfg.ApplicationDirs
	if len(dirs) == 0 {
		dirs = scanner.DefaultApplicationDirs()
	}
	apps := scanner.ScanApplications(dirs)
	if cfg.HistoryPaths {
		apps = scanner.Merge(apps, scanner.HistoryApplications(store))
	}
	log.Info().
		Int("apps", len(apps)).
		Strs("dirs", dirs).
		Dur("took", time.Since(start)).
		Msg("applications loaded")

	return &env{cfg: cfg, store: store, apps: apps}, nil
}

func (e *env) launchOptions() launcher.Options {
	return launcher.Options{Terminals: e.cfg.Terminals}
}

func runTUI(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}

	engine := search.NewEngine(e.apps, e.store)
	state := session.New(engine, pathcomp.New())

	p := tea.NewProgram(tui.NewModel(state), tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return err
	}

	// after the TUI exits, launch whatever was confirmed
	sel := result.(tui.Model).Selected()
	if sel == nil {
		return nil
	}
	return launch(e, sel)
}

// launch records the selection and starts it. A failed usage write is
// reported but does not stop the launch.
func launch(e *env, sel model.Candidate) error {
	if dryRunFlag {
		c, err := launcher.Command(sel, e.launchOptions())
		if err != nil {
			return err
		}
		fmt.Println(launcher.Describe(c))
		return nil
	}

	if err := e.store.Record(sel.Key()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save usage: %v\n", err)
		log.Error().Err(err).Str("key", sel.Key()).Msg("record usage")
	}
	if err := launcher.Launch(sel, e.launchOptions()); err != nil {
		log.Error().Err(err).Str("key", sel.Key()).Msg("launch")
		return err
	}
	return nil
}
