package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/go-arrower/relationship"
)

var ErrInvalidConfig = errors.New("invalid configuration")

func newValidateCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a relation configuration file",
		Long: `Loads the configuration file and checks every relation:
all fields are given, the cardinality is known and both ends of a relation point at each other.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			green := color.New(color.FgGreen, color.Bold).FprintfFunc()
			red := color.New(color.FgRed, color.Bold).FprintlnFunc()

			_, reg, err := loadRegistry(configFile)
			if err != nil {
				red(cmd.ErrOrStderr(), err)

				return fmt.Errorf("%w: %s", ErrInvalidConfig, configFile)
			}

			green(cmd.OutOrStdout(), "%s is valid: %d relations\n", configFile, len(reg.Relations()))

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", defaultConfigFile(), "relation configuration file")

	return cmd
}

func loadRegistry(configFile string) (relationship.Config, *relationship.Registry, error) {
	conf, err := relationship.LoadConfig(configFile)
	if err != nil {
		return relationship.Config{}, nil, err
	}

	reg, err := conf.Registry()
	if err != nil {
		return relationship.Config{}, nil, err
	}

	return conf, reg, nil
}
