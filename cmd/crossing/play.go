package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-crossing/internal/config"
	"github.com/vovakirdan/tui-crossing/internal/core"
	"github.com/vovakirdan/tui-crossing/internal/platform/tui"
	"github.com/vovakirdan/tui-crossing/internal/storage"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Arrows/WASD/HJKL - Move one tile
  ?                - Toggle help
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - New bugs speed up slowly with your score
  normal - New bugs speed up with your score
  hard   - New bugs speed up quickly with your score
  fixed  - Bug speed never changes

With --watch the config file is reloaded whenever it changes; new values
apply from the next round. Board dimensions cannot change mid-game.

Examples:
  crossing play
  crossing play --difficulty easy
  crossing play --seed 42
  crossing play --config ./crossing.yaml --watch --log-file crossing.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload --config when it changes")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, preset, settings, err := loadSettings()
	if err != nil {
		return err
	}

	// The terminal belongs to the game, so logs only go to --log-file.
	logger, closeLog, err := newLogger("crossing", nil)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	opts := tui.Options{
		Session: "local",
		Runtime: runtime,
		Logger:  logger,
	}

	// Open the journal
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open journal", "error", err)
		// Continue without storage - game still works
	} else {
		defer store.Close()
		opts.Journal = store
	}

	model, err := tui.NewModel(settings, opts)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	if flagWatch {
		if flagConfig == "" {
			return fmt.Errorf("--watch needs --config")
		}
		watcher, err := config.Watch(flagConfig, preset)
		if err != nil {
			return fmt.Errorf("cannot watch config: %w", err)
		}
		defer watcher.Close()

		go func() {
			for updated := range watcher.Updates {
				logger.Info("config reloaded", "path", flagConfig)
				model.Reconfigure(updated.Settings())
			}
		}()
		go func() {
			for err := range watcher.Errors {
				logger.Warn("config reload failed", "error", err)
			}
		}()
	}
	logger.Debug("starting game", "difficulty", preset, "width", width, "height", height,
		"speed_per_goal", cfg.Difficulty.Scaling.SpeedPerGoal)

	return tui.Run(model)
}
