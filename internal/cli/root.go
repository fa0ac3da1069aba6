// Package cli wires the eventscout commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/silverhaven/eventscout/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "eventscout",
	Short: "Eventscout - senior-living event discovery pipeline",
	Long: `Eventscout discovers community events for the Silver Haven directory.

It visits a fixed catalog of neighborhood community pages, extracts
calendar events from their unstructured text, normalizes and
deduplicates them, and persists them idempotently so repeated runs
converge instead of accumulating duplicates.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("eventscout v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.eventscout/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and EVENTSCOUT_* environment variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.eventscout")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("EVENTSCOUT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig merges defaults, config file, environment, and flags.
// Secrets come only from the environment.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if key := os.Getenv("EVENTSCOUT_READER_API_KEY"); key != "" {
		cfg.Fetch.APIKey = key
	}
	if secret := os.Getenv("EVENTSCOUT_CRON_SECRET"); secret != "" {
		cfg.Server.CronSecret = secret
	}
	if key := os.Getenv("EVENTSCOUT_MANUAL_KEY"); key != "" {
		cfg.Server.ManualKey = key
	}
	if uri := os.Getenv("EVENTSCOUT_MONGO_URI"); uri != "" {
		cfg.Store.MongoURI = uri
	}

	cfg.Output.Verbose = verbose
	return cfg, nil
}
