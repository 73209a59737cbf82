// Package cmd implements the timebank operator CLI.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"timebank/lib/config"
	"timebank/lib/data"
	"timebank/lib/util"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// RepositoryFactory builds the Severa repository used by the commands
type RepositoryFactory func() (data.SeveraRepository, error)

// defaultRepository reads the Severa settings from the environment
func defaultRepository() (data.SeveraRepository, error) {
	severaConfig, err := config.LoadSeveraConfig(config.NewSource(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := util.NewLogger(true, os.Getenv("LOG_LEVEL"))
	logger.SetOutput(os.Stderr)
	return data.NewSeveraRepository(severaConfig, logger), nil
}

// NewRootCmd builds the command tree
func NewRootCmd(factory RepositoryFactory) *cobra.Command {
	var envFile string
	rootCmd := &cobra.Command{
		Use:   "timebank",
		Short: "Operator tooling for the timebank backend",
		Long: `Runs the timebank backend adapters from a terminal.
Settings are read from the environment, e.g. SEVERA_BASE_URL, SEVERA_CLIENT_ID and SEVERA_CLIENT_SECRET.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvFile(envFile, cmd.Flags().Changed("env-file"))
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "file with environment variables to load before running")
	rootCmd.AddCommand(newSeveraCmd(factory))
	return rootCmd
}

func Execute() {
	if err := NewRootCmd(defaultRepository).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadEnvFile loads path into the environment. A missing default file is ignored.
// Variables already set in the environment win.
func loadEnvFile(path string, explicit bool) error {
	err := godotenv.Load(path)
	if err == nil || (!explicit && errors.Is(err, fs.ErrNotExist)) {
		return nil
	}
	return fmt.Errorf("failed to load env file %s: %w", path, err)
}

func printJSON(out io.Writer, value interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
