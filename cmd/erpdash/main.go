package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Veraticus/erpdash/internal/cli"
	"github.com/Veraticus/erpdash/internal/common"
	"github.com/Veraticus/erpdash/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "erpdash",
		Short: cli.ERPIcon + " ERP status dashboard",
		Long: `erpdash: classifies ERP records (stock, titles, orders, employees, machines...)
into canonical statuses, presents them as labelled severity badges, and
formats the numbers around them the way the dashboard shows them.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/erpdash/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("locale", "", "number and currency locale (pt-BR, en-US)")

	// Bind flags to viper
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag(config.KeyLocale, rootCmd.PersistentFlags().Lookup("locale"))

	// Add commands
	rootCmd.AddCommand(authCmd())
	rootCmd.AddCommand(cashflowCmd())
	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(domainsCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(formatCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	interrupts := cli.NewInterruptHandler(os.Stderr)
	ctx, cancel := context.WithCancel(context.Background())
	ctx = interrupts.HandleInterrupts(ctx, "Operação", "")

	err := newRootCmd().ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		if interrupts.WasInterrupted() && errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, cli.FormatError(common.UserMessage(err)))
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	v := viper.GetViper()
	config.SetDefaults(v)

	// Set up config file
	if cfgFile != "" {
		v.SetConfigFile(config.ExpandPath(cfgFile))
	} else {
		// Search for config in standard locations
		v.AddConfigPath(config.Dir())
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Environment variables
	config.BindEnv(v)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	// Set up logging
	if err := setupLogging(v); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging(v *viper.Viper) error {
	level, err := common.ParseLevel(v.GetString(config.KeyLogLevel))
	if err != nil {
		return err
	}
	return common.SetupLogger(level, v.GetString(config.KeyLogFormat))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "erpdash %s\n", version)
		},
	}
}
