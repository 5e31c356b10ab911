package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wippyai/tide/internal/formats"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List the built-in schemas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, s := range state.registry.All() {
			fmt.Fprintf(w, "%s\t%s\n", s.Name(), s.Description())
		}
		return w.Flush()
	},
}

var sampleFormat string

var sampleCmd = &cobra.Command{
	Use:   "sample <schema>",
	Short: "Print the sample value of a schema",
	Long: `Print the sample value of a schema in the given format.

Example:
  tide sample player --format toml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := state.registry.Lookup(args[0])
		if err != nil {
			return err
		}
		format, err := state.format(sampleFormat)
		if err != nil {
			return err
		}
		opts := state.options()
		opts.Indent = true
		data, err := s.Sample(format, opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), formats.ToText(format, data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemasCmd)
	rootCmd.AddCommand(sampleCmd)
	sampleCmd.Flags().StringVarP(&sampleFormat, "format", "f", "", "output format (default from config)")
}
