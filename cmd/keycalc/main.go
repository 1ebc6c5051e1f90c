package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"keycalc/cmd/keycalc/tui"
	"keycalc/cmd/keycalc/ui"
	"keycalc/internal/config"
	"keycalc/internal/logging"
	"keycalc/internal/sound"
	"keycalc/internal/ux"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose   bool
	workspace string
	noSound   bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "keycalc",
	Short: "keycalc - a keyboard-first terminal calculator",
	Long: `keycalc is a calculator for the terminal.

Type an expression with the keyboard or click the keypad with the mouse.
Results flash, errors shake, and every key plays a short tone.

Run without arguments to start the interactive calculator.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: nearest directory containing .keycalc)")
	rootCmd.PersistentFlags().BoolVar(&noSound, "no-sound", false, "Disable button tones for this run")

	rootCmd.AddCommand(evalCmd, keysCmd, themesCmd)
}

// loadEnvironment resolves the workspace, loads config.yaml and starts
// file logging.
func loadEnvironment() (string, *config.Config, error) {
	ws := workspace
	if ws == "" {
		root, err := config.FindWorkspaceRoot()
		if err != nil {
			return "", nil, fmt.Errorf("failed to resolve workspace: %w", err)
		}
		ws = root
	}

	cfg, err := config.Load(config.Path(ws))
	if err != nil {
		return "", nil, err
	}
	// With no config file and no env override, follow the terminal background.
	if _, statErr := os.Stat(config.Path(ws)); os.IsNotExist(statErr) && os.Getenv("KEYCALC_THEME") == "" {
		cfg.UI.DefaultTheme = ui.DetectTheme().Name
	}
	if err := cfg.Validate(); err != nil {
		return "", nil, fmt.Errorf("invalid config: %w", err)
	}
	if noSound {
		cfg.Sound.Enabled = false
	}

	if err := logging.InitializeWith(ws, logging.Settings{
		DebugMode:  cfg.Logging.DebugMode,
		Categories: cfg.Logging.Categories,
		Level:      cfg.Logging.Level,
		JSONFormat: cfg.Logging.JSONFormat,
	}); err != nil {
		logger.Warn("file logging unavailable", zap.Error(err))
	} else if logging.IsDebugMode() {
		logger.Info("writing debug logs", zap.String("dir", filepath.Join(ws, config.DirName, "logs")))
	}
	logging.BootDebug("config resolved: theme=%s sound=%v sample_rate=%d max_voices=%d particles=%v",
		cfg.UI.DefaultTheme, cfg.Sound.Enabled, cfg.Sound.SampleRate, cfg.Sound.MaxVoices, cfg.UI.Particles)
	logger.Debug("environment loaded",
		zap.String("workspace", ws),
		zap.String("default_theme", cfg.UI.DefaultTheme),
		zap.Bool("sound", cfg.Sound.Enabled))
	return ws, cfg, nil
}

// openPreferences loads preferences, seeding unsaved values from config.
func openPreferences(ws string, cfg *config.Config) (*ux.PreferencesManager, error) {
	pm := ux.NewPreferencesManagerWithDefaults(ws, ux.UserPreferences{
		Theme:        cfg.UI.DefaultTheme,
		SoundEnabled: cfg.Sound.Enabled,
	})
	if err := pm.Load(); err != nil {
		return nil, err
	}
	return pm, nil
}

func runInteractive(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ws, cfg, err := loadEnvironment()
	if err != nil {
		return err
	}
	logging.Boot("starting interactive session in %s", ws)

	pm, err := openPreferences(ws, cfg)
	if err != nil {
		logger.Warn("preferences unreadable, using defaults", zap.Error(err))
		logging.BootWarn("preferences unreadable, using defaults: %v", err)
		pm = ux.NewPreferencesManager(ws)
	}

	var player sound.Player = sound.Nop{}
	if p, err := sound.NewPlayer(cfg.Sound.SampleRate, os.Stderr); err != nil {
		logger.Warn("audio unavailable", zap.Error(err))
		logging.SoundWarn("audio unavailable: %v", err)
	} else {
		player = p
	}
	mixer := sound.NewMixer(player, cfg.Sound)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	watcher, err := ux.NewWatcher(pm)
	if err != nil {
		logger.Warn("preference watcher unavailable", zap.Error(err))
		logging.BootWarn("preference watcher unavailable: %v", err)
		watcher = nil
	} else if err := watcher.Start(watchCtx); err != nil {
		logger.Warn("preference watcher failed to start", zap.Error(err))
		watcher.Stop()
		watcher = nil
	}

	return tui.Run(tui.Options{
		UI:      cfg.UI,
		Prefs:   pm,
		Watcher: watcher,
		Mixer:   mixer,
		Mute:    noSound,
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
