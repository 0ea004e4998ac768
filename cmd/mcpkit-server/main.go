// Command mcpkit-server runs a JSON-RPC tool server over stdio, with the
// tool set selected by a YAML manifest.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcpkit/mcpkit/config"
	"github.com/mcpkit/mcpkit/mcp"
	"github.com/mcpkit/mcpkit/observability"
	"github.com/mcpkit/mcpkit/tools/fetchtool"
	"github.com/mcpkit/mcpkit/tools/timetool"
	"github.com/mcpkit/mcpkit/tools/translatetool"
	"github.com/mcpkit/mcpkit/tools/weathertool"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var logLevel string

	cmd := &cobra.Command{
		Use:           "mcpkit-server",
		Short:         "Serve tools, prompts and resources over stdio JSON-RPC",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}

			server, err := buildServer(cfg)
			if err != nil {
				return err
			}
			return mcp.NewStdIOServer(server, cmd.InOrStdin(), cmd.OutOrStdout()).
				Run(context.Background())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the YAML server manifest")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	return cmd
}

func buildServer(cfg *config.Config) (*mcp.Server, error) {
	server := mcp.NewServer(
		mcp.UseServerInfo(cfg.Server.Name, cfg.Server.Version),
		mcp.UseLogger(observability.NewLoggerWithLevel(cfg.LogLevel)),
	)

	for name, content := range cfg.Prompts {
		server.RegisterPrompt(name, content)
	}
	for name, content := range cfg.Resources {
		server.RegisterResource(name, content)
	}

	for _, tool := range cfg.Tools {
		var err error
		switch tool {
		case "time":
			err = timetool.Register(server)
		case "fetch":
			err = fetchtool.New(nil).Register(server)
		case "translate":
			err = translatetool.New(cfg.Translate.Endpoint, nil).Register(server)
		case "weather":
			err = weathertool.New(cfg.Weather.GeocodeURL, cfg.Weather.ForecastURL, nil).Register(server)
		default:
			err = fmt.Errorf("unknown tool %q in config", tool)
		}
		if err != nil {
			return nil, err
		}
	}
	return server, nil
}
