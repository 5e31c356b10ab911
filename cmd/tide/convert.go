package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/tide/internal/formats"
)

var (
	convertSchema string
	convertFrom   string
	convertTo     string
	convertIn     string
	convertIndent bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a document between formats",
	Long: `Decode a document with a schema and encode it in another format.
Binary and protovalue documents are read and written as hex text.

Example:
  tide sample person -f json | tide convert --schema person --from json --to binary`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := state.registry.Lookup(convertSchema)
		if err != nil {
			return err
		}
		from, err := state.format(convertFrom)
		if err != nil {
			return err
		}
		to, err := state.format(convertTo)
		if err != nil {
			return err
		}

		text, err := readInput(cmd.InOrStdin(), convertIn)
		if err != nil {
			return err
		}
		data, err := formats.FromText(from, string(text))
		if err != nil {
			return err
		}

		opts := state.options()
		opts.Indent = convertIndent
		out, err := s.Convert(data, from, to, opts)
		if err != nil {
			return err
		}
		state.log.Debug("converted",
			zap.String("schema", s.Name()),
			zap.String("from", from),
			zap.String("to", to),
			zap.Int("in_bytes", len(data)),
			zap.Int("out_bytes", len(out)))

		fmt.Fprintln(cmd.OutOrStdout(), formats.ToText(to, out))
		return nil
	},
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&convertSchema, "schema", "s", "", "schema name (see tide schemas)")
	convertCmd.Flags().StringVar(&convertFrom, "from", "", "input format (default from config)")
	convertCmd.Flags().StringVar(&convertTo, "to", "", "output format (default from config)")
	convertCmd.Flags().StringVarP(&convertIn, "in", "i", "", "input file, - or empty for stdin")
	convertCmd.Flags().BoolVar(&convertIndent, "indent", false, "indent JSON output")
	_ = convertCmd.MarkFlagRequired("schema")
}
