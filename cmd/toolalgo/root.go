package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jonwraymond/toolalgo/config"
	"github.com/jonwraymond/toolalgo/dispatch"
	"github.com/jonwraymond/toolalgo/registry"
)

const (
	serverName = "toolalgo"
	version    = "0.1.0"
)

type options struct {
	configPath string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           serverName,
		Short:         "Search and sort algorithms exposed as MCP tools",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file")

	root.AddCommand(newServeCmd(opts), newListCmd(opts), newCallCmd(opts))
	return root
}

// load merges the config layers and applies flags the user set explicitly.
func (o *options) load(flags *pflag.FlagSet) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = o.cfg.Addr
		case "transport":
			cfg.Transport = o.cfg.Transport
		case "log-level":
			cfg.LogLevel = o.cfg.LogLevel
		case "log-json":
			cfg.LogJSON = o.cfg.LogJSON
		case "rate-limit":
			cfg.RateLimit = o.cfg.RateLimit
		case "batch-workers":
			cfg.BatchWorkers = o.cfg.BatchWorkers
		case "geometry-url":
			cfg.GeometryURL = o.cfg.GeometryURL
		}
	})
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newRegistry wires the dispatcher and, when configured, the geometry
// backend into a registry.
func newRegistry(cfg config.Config, logOut io.Writer) (*registry.Registry, error) {
	logger := cfg.Logger(logOut)
	reg := registry.New(registry.Config{
		ServerInfo:   registry.ServerInfo{Name: serverName, Version: version},
		Logger:       logger,
		BatchWorkers: cfg.BatchWorkers,
	})
	if err := reg.RegisterDispatcher(dispatch.New(dispatch.WithLogger(logger)), ""); err != nil {
		_ = reg.Close()
		return nil, err
	}
	if cfg.GeometryURL != "" {
		if err := reg.RegisterMCP(registry.BackendConfig{Name: "geometry", URL: cfg.GeometryURL, MaxRetries: 3}); err != nil {
			_ = reg.Close()
			return nil, err
		}
	}
	return reg, nil
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd.Flags())
			if err != nil {
				return err
			}
			cfg.GeometryURL = ""
			reg, err := newRegistry(cfg, io.Discard)
			if err != nil {
				return err
			}
			defer func() { _ = reg.Close() }()

			tools, err := reg.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, tool := range tools {
				_, _ = fmt.Fprintf(w, "%s\t%s\n", tool.ToolID(), firstLine(tool.Description))
			}
			return w.Flush()
		},
	}
}

func newCallCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "call <operation> [json-arguments]",
		Short: "Run one operation and print its JSON result",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, argv []string) error {
			cfg, err := opts.load(cmd.Flags())
			if err != nil {
				return err
			}
			reg, err := newRegistry(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = reg.Close() }()

			var args map[string]any
			if len(argv) == 2 {
				dec := json.NewDecoder(strings.NewReader(argv[1]))
				dec.UseNumber()
				if err := dec.Decode(&args); err != nil {
					return fmt.Errorf("arguments: %w", err)
				}
			}

			ctx := cmd.Context()
			if err := reg.Start(ctx); err != nil {
				return err
			}
			res, err := reg.Execute(ctx, argv[0], args)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			return enc.Encode(res)
		},
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
