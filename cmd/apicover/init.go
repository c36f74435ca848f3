package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/apicover/apicover/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize apicover with default configuration and directories",
	Long: `Creates the default configuration file (config.yaml) and the report
directory structure.

If config.yaml already exists, it will not be overwritten unless --force is
used.`,
	RunE: runInit,
}

var (
	initForce bool
	initPath  string
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing config file")
	initCmd.Flags().StringVarP(&initPath, "path", "p", ".", "Path where to initialize (default: current directory)")
}

func runInit(cmd *cobra.Command, args []string) error {
	absPath, err := filepath.Abs(initPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	configFile := filepath.Join(absPath, "config.yaml")

	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("config.yaml already exists. Use --force to overwrite")
	}

	defaults := config.Default()
	dirs := []string{
		filepath.Join(absPath, defaults.Report.Dir),
		filepath.Join(absPath, defaults.Report.ArchiveDir),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		fmt.Printf("Created directory: %s\n", dir)
	}

	data, err := yaml.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("failed to generate config: %w", err)
	}

	header := "# apicover configuration\n\n"
	if err := os.WriteFile(configFile, []byte(header+string(data)), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	fmt.Printf("Created config file: %s\n", configFile)

	fmt.Println()
	fmt.Println("Initialization complete! Generate a report with:")
	fmt.Println()
	fmt.Printf("  cd %s\n", absPath)
	fmt.Println("  apicover report")
	fmt.Println()

	return nil
}
