// Package cli implements the kvs command tree.
//
// Every invocation builds a fresh in-memory store, runs exactly one
// operation against it and throws it away. Argument validation happens
// here, before a store exists; the store never sees a malformed request.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/heysubinoy/kvs/internal/logging"
	"github.com/heysubinoy/kvs/internal/store"
	"github.com/heysubinoy/kvs/internal/version"
	"github.com/heysubinoy/kvs/pkg/config"
	"github.com/heysubinoy/kvs/pkg/kv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var errNoCommand = errors.New("a command is required: set, get, or rm")

// Option customizes the command tree.
type Option func(*app)

// WithLogger makes the commands log to l instead of building a logger
// from configuration.
func WithLogger(l log.Logger) Option {
	return func(a *app) { a.logger = l }
}

// WithStore replaces the backing store constructor. The returned store
// is still wrapped with metrics.
func WithStore(newStore func() kv.Store) Option {
	return func(a *app) { a.newStore = newStore }
}

type app struct {
	configPath  string
	logLevel    string
	logFormat   string
	metricsFile string

	cfg      *config.Config
	logger   log.Logger
	newStore func() kv.Store
}

// NewRootCommand returns the kvs root command with the set, get and rm
// subcommands attached.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{
		newStore: func() kv.Store { return store.NewMemStore() },
	}
	for _, o := range opts {
		o(a)
	}

	cmd := &cobra.Command{
		Use:     "kvs",
		Short:   "An in-memory key-value store",
		Version: version.Version,
		Args:    cobra.NoArgs,

		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(*cobra.Command, []string) error {
			return errNoCommand
		},
	}
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	cmd.Flags().BoolP("version", "V", false, "Print version information and exit")

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	pf.StringVar(&a.logLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error, or none")
	pf.StringVar(&a.logFormat, "log-format", config.DefaultLogFormat, "Log format: logfmt or json")
	pf.StringVar(&a.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the command runs")

	cmd.AddCommand(
		cmdSet(a),
		cmdGet(a),
		cmdRm(a),
	)

	return cmd
}

func cmdSet(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set the value of a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			return a.run(cmd, "set", key, func(s kv.Store, out io.Writer) {
				fmt.Fprintf(out, "set key: %s val: %s\n", key, value)
				s.Set(key, value)
			})
		},
	}
}

func cmdGet(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get the value of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			return a.run(cmd, "get", key, func(s kv.Store, out io.Writer) {
				fmt.Fprintf(out, "get val from key: %s\n", key)
				if val, ok := s.Get(key); ok {
					fmt.Fprintln(out, val)
				}
			})
		},
	}
}

func cmdRm(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <key>",
		Short: "Remove a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			return a.run(cmd, "rm", key, func(s kv.Store, out io.Writer) {
				fmt.Fprintf(out, "remove key from val: %s\n", key)
				s.Remove(key)
			})
		},
	}
}

// setup loads configuration and builds the logger. Flags that were set
// explicitly win over the config file and environment.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = a.metricsFile
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	if a.logger == nil {
		l, err := logging.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)
		if err != nil {
			return err
		}
		a.logger = l
	}
	return nil
}

// run executes op against a new store and reports metrics afterwards.
func (a *app) run(cmd *cobra.Command, op, key string, fn func(s kv.Store, out io.Writer)) error {
	s := store.NewInstrumentedStore(a.newStore())

	level.Debug(a.logger).Log("msg", "running command", "op", op, "key", key)
	fn(s, cmd.OutOrStdout())

	snap := s.Snapshot()
	level.Debug(a.logger).Log(
		"msg", "command finished",
		"op", op,
		"gets", snap.GetCount,
		"sets", snap.SetCount,
		"removes", snap.RemoveCount,
		"hits", snap.Hits,
		"misses", snap.Misses,
	)

	if a.cfg.MetricsFile != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(s)
		if err := prometheus.WriteToTextfile(a.cfg.MetricsFile, reg); err != nil {
			level.Warn(a.logger).Log("msg", "failed to write metrics file", "path", a.cfg.MetricsFile, "err", err)
		}
	}
	return nil
}
