package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-arrower/relationship"
	"github.com/go-arrower/relationship/inflect"
)

// newParseCmd shows how a method name is dispatched, e.g. `parse addAuthor`.
func newParseCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "parse <method>...",
		Short: "Show the verb and property a method name resolves to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plural := inflect.English()

			if configFile != "" {
				conf, err := relationship.LoadConfig(configFile)
				if err != nil {
					return err
				}

				plural = conf.Pluralizer()
			}

			for _, method := range args {
				verb, property := relationship.ParseMethod(method)

				name := verb.String()
				if verb == relationship.Access {
					name = "access"
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s: verb=%s property=%s fallback=%s\n",
					method, name, property, plural.Plural(property))
			}

			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "relation configuration file with irregular plurals")

	return cmd
}
