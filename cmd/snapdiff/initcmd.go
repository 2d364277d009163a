package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"snapdiff/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize snapdiff configuration",
	Long:  "Creates a .snapdiff/ directory with default configuration in the current directory",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing configuration")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(cwd, config.ConfigDir, "config.json")
	if _, statErr := os.Stat(configPath); statErr == nil && !initForce {
		// repeated init without --force is not an error
		fmt.Println("snapdiff already initialized.")
		fmt.Printf("Configuration at: %s\n", configPath)
		fmt.Println("\nRun 'snapdiff init --force' to overwrite.")
		return nil
	}

	if err := config.DefaultConfig().Save(cwd); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	fmt.Println("snapdiff initialized.")
	fmt.Printf("Configuration at: %s\n", configPath)
	return nil
}
