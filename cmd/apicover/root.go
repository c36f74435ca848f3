package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apicover/apicover/internal/config"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "apicover",
		Short: "apicover - API endpoint coverage reporting",
		Long: `apicover analyzes test coverage of API endpoints by comparing
operationIds declared in an OpenAPI schema against @apiOperation:<id>
markers in BDD feature files, and renders the result as console, JSON,
HTML or markdown reports.`,
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(initCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}

		// Search config in current directory
		viper.AddConfigPath(cwd)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("APICOVER")
	viper.AutomaticEnv()

	setDefaults()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults mirrors config.Default so flag/env/file resolution starts from
// the same baseline everywhere.
func setDefaults() {
	defaults := config.Default()

	viper.SetDefault("schema.path", defaults.Schema.Path)
	viper.SetDefault("features.dir", defaults.Features.Dir)
	viper.SetDefault("features.base", defaults.Features.Base)
	viper.SetDefault("report.dir", defaults.Report.Dir)
	viper.SetDefault("report.archiveDir", defaults.Report.ArchiveDir)
	viper.SetDefault("server.host", defaults.Server.Host)
	viper.SetDefault("server.port", defaults.Server.Port)
}

// resolveConfig builds the effective configuration from viper.
func resolveConfig() *config.Config {
	return &config.Config{
		Schema: config.SchemaConfig{
			Path: viper.GetString("schema.path"),
		},
		Features: config.FeaturesConfig{
			Dir:  viper.GetString("features.dir"),
			Base: viper.GetString("features.base"),
		},
		Report: config.ReportConfig{
			Dir:        viper.GetString("report.dir"),
			ArchiveDir: viper.GetString("report.archiveDir"),
		},
		Server: config.ServerConfig{
			Host: viper.GetString("server.host"),
			Port: viper.GetInt("server.port"),
		},
	}
}
