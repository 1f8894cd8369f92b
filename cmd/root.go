// Package cmd implements the command-line interface for spacesync.
// It provides the root command and subcommands for syncing a remote content
// space into a local snapshot.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/spacesync/cmd/contenttypes"
	"github.com/jonesrussell/spacesync/cmd/locales"
	"github.com/jonesrussell/spacesync/cmd/schedule"
	cmdsync "github.com/jonesrussell/spacesync/cmd/sync"
	"github.com/jonesrussell/spacesync/internal/config"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug mode for all commands
	Debug bool

	// rootCmd represents the root command for the spacesync CLI.
	rootCmd = &cobra.Command{
		Use:   "spacesync",
		Short: "Sync a remote content space into a local snapshot",
		Long: `spacesync downloads every entry, asset, content type, and locale of a
remote content space, resolves entry links into direct references, and stores
the result as a local snapshot.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Load .env file early so environment variables are available
	_ = godotenv.Load()

	// Parse flags early to get debug flag before creating logger
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("spacesync version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(cmdsync.Command())
	rootCmd.AddCommand(schedule.Command())
	rootCmd.AddCommand(locales.Command())
	rootCmd.AddCommand(contenttypes.Command())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Enable automatic environment variable reading before setting defaults
	// so environment variables take precedence over defaults.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Config file is optional: settings can come from file, environment
	// variables, or defaults.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Config file not found: %v (using defaults and environment variables)\n", err)
	}

	if err := bindCommandLineFlags(); err != nil {
		return err
	}
	if err := bindSpaceEnvVars(); err != nil {
		return err
	}

	if Debug {
		viper.Set("app.debug", true)
	}
	Debug = viper.GetBool("app.debug")

	return nil
}

// bindCommandLineFlags binds command-line flags to Viper.
func bindCommandLineFlags() error {
	if err := viper.BindPFlag("app.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}
	if err := viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")); err != nil {
		return fmt.Errorf("failed to bind config flag: %w", err)
	}
	return nil
}

// bindSpaceEnvVars binds space environment variables to config keys.
func bindSpaceEnvVars() error {
	if err := viper.BindEnv("space.id", "SPACESYNC_SPACE_ID"); err != nil {
		return fmt.Errorf("failed to bind SPACESYNC_SPACE_ID: %w", err)
	}
	if err := viper.BindEnv("space.access_token", "SPACESYNC_ACCESS_TOKEN"); err != nil {
		return fmt.Errorf("failed to bind SPACESYNC_ACCESS_TOKEN: %w", err)
	}
	if err := viper.BindEnv("space.host", "SPACESYNC_HOST"); err != nil {
		return fmt.Errorf("failed to bind SPACESYNC_HOST: %w", err)
	}
	if err := viper.BindEnv("space.environment", "SPACESYNC_ENVIRONMENT"); err != nil {
		return fmt.Errorf("failed to bind SPACESYNC_ENVIRONMENT: %w", err)
	}
	if err := viper.BindEnv("app.debug", "SPACESYNC_DEBUG"); err != nil {
		return fmt.Errorf("failed to bind SPACESYNC_DEBUG: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app", map[string]any{
		"name":    "spacesync",
		"version": "1.0.0",
		"debug":   false,
	})

	viper.SetDefault("space", map[string]any{
		"host":                   config.DefaultHost,
		"environment":            config.DefaultEnvironment,
		"request_timeout":        config.DefaultRequestTimeout.String(),
		"content_type_page_size": config.DefaultContentTypePageSize,
	})

	viper.SetDefault("store", map[string]any{
		"path": config.DefaultStorePath,
	})
}
