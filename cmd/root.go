// Package cmd implements the crimewatch command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/crimewatch/internal/config"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "crimewatch",
		Short: "Crime news extraction and deduplication",
		Long: `crimewatch harvests local crime reporting, extracts structured
fields (who, what, where, when, how, why) from each article, and
deduplicates re-reports of the same event across sources.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so environment variables are available to viper.
	_ = godotenv.Load()

	// Parse flags early so --config and --debug influence initConfig.
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("initialize configuration: %w", err)
	}
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is ./config.yaml or ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("crimewatch version %s\n", version)
		},
	})

	rootCmd.AddCommand(
		newScrapeCmd(),
		newScheduleCmd(),
		newServeCmd(),
		newSourcesCmd(),
	)
}

// initConfig reads the config file and environment variables into
// viper. The config file is optional; defaults plus environment
// variables are enough to run.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config.SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr,
			"Warning: config file not found: %v (using defaults and environment variables)\n", err)
	}

	if err := viper.BindEnv("logging.level", "LOG_LEVEL"); err != nil {
		return fmt.Errorf("bind LOG_LEVEL: %w", err)
	}
	if err := viper.BindEnv("store.path", "STORE_PATH"); err != nil {
		return fmt.Errorf("bind STORE_PATH: %w", err)
	}

	if debug {
		viper.Set("logging.level", "debug")
		viper.Set("logging.development", true)
	}
	return nil
}
