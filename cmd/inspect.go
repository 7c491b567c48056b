package cmd

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-arrower/relationship"
)

var ErrUnknownFormat = errors.New("unknown output format")

func newInspectCmd() *cobra.Command {
	var (
		configFile string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List the relations of a configuration file",
		Long: `Lists the relations sorted by owner and property.
Use --format yaml to print the normalised configuration, e.g. to check how cardinalities are read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, reg, err := loadRegistry(configFile)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)

				return fmt.Errorf("%w: %s", ErrInvalidConfig, configFile)
			}

			switch format {
			case "table":
				return printTable(cmd.OutOrStdout(), conf, reg)
			case "yaml":
				return printYAML(cmd.OutOrStdout(), conf, reg)
			default:
				return fmt.Errorf("%w: %s, use one of: table, yaml", ErrUnknownFormat, format)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", defaultConfigFile(), "relation configuration file")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table or yaml")

	return cmd
}

func printTable(out io.Writer, conf relationship.Config, reg *relationship.Registry) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0) //nolint:mnd // padding between columns

	fmt.Fprintln(w, "OWNER\tPROPERTY\tTARGET\tINVERSE\tCARDINALITY")

	for _, rel := range reg.Relations() {
		cardinality := string(rel.Cardinality)
		if cardinality == "" {
			cardinality = "-"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", rel.Owner, rel.Property, rel.Target, rel.Inverse, cardinality)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("could not write relations: %w", err)
	}

	if len(conf.Plurals) == 0 {
		return nil
	}

	singulars := make([]string, 0, len(conf.Plurals))
	for singular := range conf.Plurals {
		singulars = append(singulars, singular)
	}

	slices.Sort(singulars)

	fmt.Fprintln(out, "\nirregular plurals:")

	for _, singular := range singulars {
		fmt.Fprintf(out, "  %s -> %s\n", singular, conf.Plurals[singular])
	}

	return nil
}

func printYAML(out io.Writer, conf relationship.Config, reg *relationship.Registry) error {
	type relation struct {
		Owner       string `yaml:"owner"`
		Property    string `yaml:"property"`
		Target      string `yaml:"target"`
		Inverse     string `yaml:"inverse"`
		Cardinality string `yaml:"cardinality,omitempty"`
	}

	doc := struct {
		Relations []relation        `yaml:"relations"`
		Plurals   map[string]string `yaml:"plurals,omitempty"`
	}{
		Relations: make([]relation, 0, len(reg.Relations())),
		Plurals:   conf.Plurals,
	}

	for _, rel := range reg.Relations() {
		doc.Relations = append(doc.Relations, relation{
			Owner:       rel.Owner,
			Property:    rel.Property,
			Target:      rel.Target,
			Inverse:     rel.Inverse,
			Cardinality: string(rel.Cardinality),
		})
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2) //nolint:mnd // same indentation as the configuration files

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("could not write relations: %w", err)
	}

	return enc.Close() //nolint:wrapcheck // flushes only
}
