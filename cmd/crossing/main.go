// crossing is a lane-crossing arcade game for the terminal: walk the
// player from the bottom row to the top while bugs race across the lanes.
//
// Usage:
//
//	crossing play            - Play in this terminal
//	crossing serve           - Start SSH server for remote play
//	crossing simulate        - Run a headless game with an autopilot
//	crossing journal         - Show recently finished rounds
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set journal path (default: ~/.crossing/journal.db)
//	--config <path>       - Load a custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-crossing/internal/config"
	"github.com/vovakirdan/tui-crossing/internal/crossing"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "crossing",
	Short: "Bug Crossing - a lane-crossing arcade game in your terminal",
	Long: `Bug Crossing is a terminal arcade game. Walk from the grass at the
bottom to the water at the top without touching a bug. Every crossing
scores a point and makes new bugs faster; a collision resets the score.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  simulate  - Run a headless game driven by an autopilot
  journal   - Show recently finished rounds

Examples:
  crossing play
  crossing play --difficulty hard --watch --config ./crossing.yaml
  crossing serve --ssh :2222 --feed :8080
  crossing simulate --seed 42 --duration 60s
  crossing journal --plain`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.crossing/journal.db", "Path to round journal")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(journalCmd)
}

// loadSettings reads the config selected by the global flags and applies
// the difficulty preset.
func loadSettings() (config.CrossingConfig, config.DifficultyPreset, crossing.Settings, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.CrossingConfig{}, "", crossing.Settings{}, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.CrossingConfig{}, "", crossing.Settings{}, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, preset, cfg.Settings(), nil
}

// newLogger builds a logger for the global log flags. When the fallback
// writer is nil and no log file is set, logs are discarded. The returned
// closer releases the log file.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out := fallback
	closer := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closer = func() { f.Close() }
	}
	if out == nil {
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}
