// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/fintrack/internal/config"
	"fjacquet/fintrack/internal/container"
	"fjacquet/fintrack/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to all commands
type CommonFlags struct {
	ConfigFile string
	Database   string
	Year       int
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "fintrack",
		Short: "A CLI tool to import CIBC statements into a categorized SQLite ledger.",
		Long: `fintrack reads CIBC bank-account and credit-card statement PDFs, extracts
their transactions, categorizes them by keyword and stores them in a local
SQLite ledger. The ledger can be exported to CSV, synced to Google Sheets or
served as a read-only JSON API.`,
		SilenceUsage:      true,
		PersistentPreRunE: initContainer,
		PersistentPostRun: closeContainer,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// SharedFlags holds the persistent flags of the root command.
	SharedFlags = CommonFlags{}

	// ContainerOptions are passed to every container the root command
	// builds. Tests use it to inject page sources and fakes.
	ContainerOptions []container.Option

	appContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.ConfigFile, "config", "c", "", "Config file (default searches $HOME/.fintrack, .fintrack and .)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Database, "db", "", "SQLite ledger path (overrides database.path)")
	Cmd.PersistentFlags().IntVar(&SharedFlags.Year, "year", 0, "Year for statement dates (overrides parser.year, 0 = current year)")
}

func initContainer(cmd *cobra.Command, args []string) error {
	cfg, err := config.InitializeConfig(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	if SharedFlags.Database != "" {
		cfg.Database.Path = SharedFlags.Database
	}
	if SharedFlags.Year != 0 {
		if SharedFlags.Year < 0 || SharedFlags.Year > 9999 {
			return fmt.Errorf("--year must be between 1 and 9999, got %d", SharedFlags.Year)
		}
		cfg.Parser.Year = SharedFlags.Year
	}

	c, err := container.NewContainer(cmd.Context(), cfg, ContainerOptions...)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	appContainer = c
	return nil
}

func closeContainer(cmd *cobra.Command, args []string) {
	if appContainer == nil {
		return
	}
	if err := appContainer.Close(); err != nil {
		appContainer.GetLogger().WithError(err).Warn("Failed to close ledger")
	}
	appContainer = nil
}

// GetContainer returns the container built for the running command.
func GetContainer() *container.Container {
	return appContainer
}

// GetLogger returns the container logger, or the default logger before the
// container exists.
func GetLogger() logging.Logger {
	if appContainer == nil {
		return logging.GetLogger()
	}
	return appContainer.GetLogger()
}
