// Command tide converts sample documents between the formats tide supports.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/tide/codec"
	"github.com/wippyai/tide/internal/formats"
	"github.com/wippyai/tide/internal/schemas"
	"github.com/wippyai/tide/metrics"
	"github.com/wippyai/tide/stream"
)

// app holds what the root command prepares for its subcommands.
type app struct {
	cfg      Config
	log      *zap.Logger
	registry *schemas.Registry
	metrics  *prometheus.Registry
}

var (
	configPath string
	showStats  bool

	state app
)

var rootCmd = &cobra.Command{
	Use:   "tide",
	Short: "Convert documents between tide formats",
	Long: `tide decodes documents with a built-in schema and encodes them again in
another format: binary (hex), json, toml, yaml or protovalue (hex).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			return err
		}
		log, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		codec.SetLogger(log.Named("codec"))
		stream.SetLogger(log.Named("stream"))

		state = app{cfg: cfg, log: log, registry: schemas.Builtin()}
		if showStats {
			state.metrics = prometheus.NewRegistry()
			state.registry = state.registry.Instrument(metrics.NewCollector(state.metrics, "tide"))
		}
		log.Debug("config loaded",
			zap.String("path", configPath),
			zap.String("default_format", cfg.DefaultFormat),
			zap.Int("max_string_length", cfg.MaxStringLength))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if state.metrics != nil {
			if err := printStats(cmd.ErrOrStderr(), state.metrics); err != nil {
				return err
			}
		}
		_ = state.log.Sync()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "tide.toml", "config file (TOML)")
	rootCmd.PersistentFlags().BoolVar(&showStats, "stats", false, "print codec counters to stderr when done")
}

func (a app) options() formats.Options {
	return formats.Options{MaxStringLength: a.cfg.MaxStringLength}
}

// format returns name, or the configured default when name is empty.
func (a app) format(name string) (string, error) {
	if name == "" {
		name = a.cfg.DefaultFormat
	}
	if !formats.Known(name) {
		return "", fmt.Errorf("unknown format %q, expected one of %s", name, strings.Join(formats.Names, ", "))
	}
	return name, nil
}

func printStats(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
