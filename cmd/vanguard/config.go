package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vertical-vanguard/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective tuning as YAML",
	Long: `Print the tuning a game would be played with, after the config file
search and the difficulty preset are applied. The output is a valid config
file and can be edited and passed back with --config.

Examples:
  vanguard config > ~/.vanguard/configs/vanguard.yaml
  vanguard config --preset hard`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagDifficulty, "preset", "", "Difficulty preset to apply: easy, normal, hard")
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
