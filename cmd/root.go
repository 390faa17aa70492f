package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/scrawl/internal/app"
	"github.com/zjrosen/scrawl/internal/config"
	"github.com/zjrosen/scrawl/internal/history"
	"github.com/zjrosen/scrawl/internal/log"
	"github.com/zjrosen/scrawl/internal/paths"
	"github.com/zjrosen/scrawl/internal/persist"
	"github.com/zjrosen/scrawl/internal/session"
	"github.com/zjrosen/scrawl/internal/tracing"
	"github.com/zjrosen/scrawl/internal/ui/styles"
	"github.com/zjrosen/scrawl/internal/watcher"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin, so the
	// OSC 11 reply is not read as key presses.
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
	cfgErr    error
)

var rootCmd = &cobra.Command{
	Use:     "scrawl [file]",
	Short:   "A small modal text editor for the terminal",
	Long:    `scrawl edits one plain text file with vi-style normal, insert and command modes.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runEditor,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/scrawl/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (also SCRAWL_DEBUG=1)")
	rootCmd.Flags().Bool("no-color", false, "disable colors")

	_ = viper.BindPFlag("ui.no_color", rootCmd.Flags().Lookup("no-color"))
}

func initConfig() {
	cfg, cfgErr = loadConfig(viper.GetViper(), cfgFile)
}

// loadConfig reads the config into v and decodes it. Lookup order is the
// explicit path, .scrawl/config.yaml, then ~/.config/scrawl/config.yaml,
// which is created from the default template when nothing is found.
func loadConfig(v *viper.Viper, explicit string) (config.Config, error) {
	config.ApplyDefaults(v)

	switch {
	case explicit != "":
		v.SetConfigFile(explicit)
	case fileExists(paths.LocalConfigFile()):
		v.SetConfigFile(paths.LocalConfigFile())
	default:
		v.AddConfigPath(paths.ConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config.Config{}, fmt.Errorf("reading config: %w", err)
		}
		if path := paths.ConfigFile(); path != "" {
			if writeErr := config.WriteDefaultConfig(path); writeErr == nil {
				v.SetConfigFile(path)
				_ = v.ReadInConfig()
			}
			// If the write fails the defaults still apply.
		}
	}

	return config.Decode(v)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// configPath is the file that `config set` edits.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return paths.ConfigFile()
}

func initLogging(prefix string) (func(), error) {
	if os.Getenv("SCRAWL_DEBUG") == "" && !debugFlag {
		return func() {}, nil
	}
	logPath := os.Getenv("SCRAWL_LOG")
	if logPath == "" {
		logPath = paths.DebugLogFile()
	}
	level := log.LevelDebug
	if name := os.Getenv("SCRAWL_LOG_LEVEL"); name != "" {
		level = log.ParseLevel(name)
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix, level)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "scrawl starting", "version", version, "logPath", logPath)
	return cleanup, nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	if cfgErr != nil {
		return cfgErr
	}

	cleanup, err := initLogging("scrawl")
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.UI.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	if err := styles.ApplyTheme(cfg.UI.Theme.Styles()); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	provider, err := tracing.NewProvider(cfg.Tracing.Provider())
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.Warn(log.CatTrace, "Tracing shutdown failed", "error", err)
		}
	}()

	var name string
	if len(args) == 1 {
		name = args[0]
	}

	ctx := cmd.Context()
	reg := cfg.FlagRegistry()
	log.Debug(log.CatConfig, "Feature flags", "enabled", reg.Names())

	var store *history.Store
	if cfg.RestoreCursor(reg) && name != "" {
		db, err := history.NewDB(cfg.History.ResolvedPath())
		if err != nil {
			// The editor works without history.
			log.Warn(log.CatHistory, "Cursor history unavailable", "error", err)
		} else {
			defer func() { _ = db.Close() }()
			store = db.Store()
		}
	}

	var gwOpts []persist.Option
	var w *watcher.Watcher
	if cfg.WatchFile(reg) && name != "" {
		w, err = startWatcher(name)
		if err != nil {
			log.Warn(log.CatWatcher, "File watching unavailable", "error", err)
		} else {
			defer func() { _ = w.Stop() }()
			gwOpts = append(gwOpts, persist.WithSaveHook(func(_ string, data []byte) {
				w.Acknowledge(data)
			}))
		}
	}

	opts := []session.Option{session.WithVirtualEdit(cfg.Editor.OneMore())}
	opts = append(opts, restoreCursor(ctx, store, name)...)
	s := session.Open(ctx, persist.NewGateway(gwOpts...), name, opts...)

	model := app.New(ctx, s, app.Options{
		FrameInterval: cfg.Editor.FrameInterval,
		TabWidth:      cfg.Editor.TabWidth,
		ShowHeader:    cfg.UI.ShowHeader,
		Watcher:       w,
	})
	final, err := app.Run(ctx, model)
	if store != nil {
		app.Remember(ctx, store, final)
		if _, pruneErr := store.Prune(ctx, historyKeep); pruneErr != nil {
			log.Warn(log.CatHistory, "Pruning history failed", "error", pruneErr)
		}
	}
	return err
}

// historyKeep bounds the number of files the cursor history remembers.
const historyKeep = 1000

func restoreCursor(ctx context.Context, store *history.Store, name string) []session.Option {
	if store == nil || name == "" {
		return nil
	}
	pos, err := store.Lookup(ctx, name)
	if err != nil {
		if !errors.Is(err, history.ErrNotFound) {
			log.Warn(log.CatHistory, "Cursor lookup failed", "file", name, "error", err)
		}
		return nil
	}
	return []session.Option{session.WithCursor(pos.Line, pos.Col)}
}

func startWatcher(name string) (*watcher.Watcher, error) {
	w, err := watcher.New(watcher.DefaultConfig(name))
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		_ = w.Stop()
		return nil, err
	}
	return w, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
