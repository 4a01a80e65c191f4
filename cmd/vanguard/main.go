// vanguard is a vertical arcade shooter for the terminal, a desktop window
// or SSH.
//
// Usage:
//
//	vanguard play            - Play in the terminal
//	vanguard window          - Play in a desktop window
//	vanguard serve           - Start SSH server for remote play
//	vanguard simulate        - Fly the autopilot headless
//	vanguard runs            - Browse recorded runs
//	vanguard replay <id>     - Re-simulate a recorded run
//	vanguard config          - Print the effective tuning
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: from config)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--db <path>            - Set run journal path (default: ~/.vanguard/runs.db)
//	--config <path>        - Load tuning from a YAML file
//	--difficulty <preset>  - easy, normal or hard
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/vertical-vanguard/internal/config"
	"github.com/vovakirdan/vertical-vanguard/internal/core"
	"github.com/vovakirdan/vertical-vanguard/internal/games/vanguard"
	"github.com/vovakirdan/vertical-vanguard/internal/storage"
)

// annotationTerminal marks commands whose UI owns the terminal, so logs go
// to a file instead of stderr.
const annotationTerminal = "terminal"

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

// envOverrides maps flags to the environment variables that set them when
// the flag is not given on the command line.
var envOverrides = map[string]string{
	"db":        "VANGUARD_DB",
	"log-level": "VANGUARD_LOG_LEVEL",
	"ssh":       "VANGUARD_SSH_ADDR",
}

var (
	logger   = log.New(io.Discard)
	closeLog = func() {}
)

func main() {
	err := rootCmd.Execute()
	closeLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vanguard",
	Short: "Vertical Vanguard - a vertical arcade shooter",
	Long: `Vertical Vanguard is a vertical scrolling shooter on a 64x64 playfield.
Keep health, ammo and fuel up, shoot what comes down and survive as the
levels speed up.

Available commands:
  play      - Play in the terminal
  window    - Play in a desktop window
  serve     - Start SSH server for remote play
  simulate  - Fly the autopilot without a display
  runs      - Browse recorded runs
  replay    - Re-simulate a recorded run and verify it
  config    - Print the effective tuning as YAML

Examples:
  vanguard play
  vanguard play --difficulty hard --seed 42
  vanguard serve --ssh :2222
  vanguard simulate --seconds 300
  vanguard replay 12`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.vanguard/runs.db", "Path to run journal database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.vanguard/vanguard.log", "Log file used while the terminal UI runs")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads .env, applies environment overrides and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot load .env: %w", err)
	}
	if err := applyEnv(cmd); err != nil {
		return err
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	if cmd.Annotations[annotationTerminal] == "true" {
		f, err := openLogFile(flagLogFile)
		if err != nil {
			return err
		}
		w = f
		closeLog = func() { f.Close() }
	}

	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "vanguard",
		Level:           level,
	})
	return nil
}

// applyEnv sets flags left at their defaults from the environment.
func applyEnv(cmd *cobra.Command) error {
	for name, env := range envOverrides {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || flag.Changed {
			continue
		}
		v, ok := os.LookupEnv(env)
		if !ok {
			continue
		}
		if err := flag.Value.Set(v); err != nil {
			return fmt.Errorf("invalid %s: %w", env, err)
		}
	}
	return nil
}

func openLogFile(path string) (*os.File, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// loadConfig loads the tuning and applies the difficulty preset.
func loadConfig() (config.VanguardConfig, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.VanguardConfig{}, "", err
	}
	cfg, err := config.LoadVanguard(flagConfig)
	if err != nil {
		return cfg, "", err
	}
	config.ApplyVanguardPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, "", err
	}
	return cfg, preset, nil
}

// runtimeConfig returns the screen size and timing for the game.
func runtimeConfig(cfg config.VanguardConfig) core.RuntimeConfig {
	cols, rows := vanguard.ScreenSize(cfg.Playfield.Width, cfg.Playfield.Height)
	rc := core.RuntimeConfig{
		ScreenW:  cols,
		ScreenH:  rows,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if rc.TickRate <= 0 {
		rc.TickRate = cfg.Timing.TickRate
	}
	return rc
}

// openStore opens the run journal. Games still work without it, so a
// failure is only logged.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run journal", "error", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("could not close run journal", "error", err)
	}
}
