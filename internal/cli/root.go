// Package cli implements the ice command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/synbiotools/ice-cli/internal/config"
	"github.com/synbiotools/ice-cli/internal/connectors/ice"
	"github.com/synbiotools/ice-cli/internal/logger"
)

// version is stamped by the release build.
var version = "dev"

var (
	cfgPath     string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "ice",
	Short: "Client for the ICE biological parts registry",
	Long: `ice talks to an ICE (Inventory of Composable Elements) registry:
fetching and saving part entries and their SBOL sequence documents,
searching by exact sequence, granting group permissions and rebuilding
the blast index.

Run "ice login" once to store the registry connection.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.ice/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose output")
}

// configPath resolves the config file location.
func configPath() (string, error) {
	if cfgPath != "" {
		return cfgPath, nil
	}
	return config.DefaultPath()
}

// loadConfig reads the CLI configuration.
func loadConfig() (*config.Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// connect builds a logged-in registry client from the stored
// configuration, prompting for the password when none is stored.
func connect(ctx context.Context) (*ice.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	reg := cfg.Registry
	if reg.URL == "" || reg.Email == "" {
		return nil, errors.New(`registry not configured: run "ice login" first`)
	}

	password := reg.Password
	if password == "" {
		password, err = promptPassword(fmt.Sprintf("Password for %s: ", reg.Email))
		if err != nil {
			return nil, err
		}
	}

	return ice.Connect(ctx, ice.Config{
		URL:        reg.URL,
		Email:      reg.Email,
		Password:   password,
		PartPrefix: reg.PartPrefix,
		Timeout:    reg.Timeout(),
	})
}
