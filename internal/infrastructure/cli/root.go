// Package cli implements the devstandards command line interface.
package cli

import (
	"github.com/felixgeelhaar/devstandards/internal/infrastructure/wiring"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	cfgPath string
	verbose bool
	logger  *zap.Logger
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "devstandards",
	Version: Version,
	Short:   "A queryable catalog of coding standards and best practices",
	Long: `DevStandards loads coding-standard records from pluggable CSV packs
into an in-memory catalog and answers four query shapes:
filter by fields, full-text search, category enumeration, and get by id.
The catalog is served to MCP clients and to this CLI.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Logs go to stderr so stdio MCP framing stays clean.
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

// loadServices builds the service graph from the configured catalog.
func loadServices() (*wiring.Services, error) {
	return wiring.BuildServices(cfgPath, Version, logger)
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to devstandards.yaml (default ./devstandards.yaml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
