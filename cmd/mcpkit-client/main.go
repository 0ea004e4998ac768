// Command mcpkit-client spawns a stdio tool server and drives it over
// JSON-RPC: listing capabilities, fetching prompts and resources, and
// calling tools.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcpkit/mcpkit/mcp"
	"github.com/mcpkit/mcpkit/observability"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// processConn is the duplex stream of a spawned server: writes go to its
// stdin, reads come from its stdout.
type processConn struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
}

func (p *processConn) Read(b []byte) (int, error)  { return p.stdout.Read(b) }
func (p *processConn) Write(b []byte) (int, error) { return p.stdin.Write(b) }

func (p *processConn) Close() error {
	p.stdin.Close()
	p.stdout.Close()
	return p.cmd.Wait()
}

func spawn(command string) (*processConn, error) {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty server command")
	}

	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("open server stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("open server stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start server: %w", err)
	}
	return &processConn{cmd: cmd, stdin: stdin, stdout: stdout}, nil
}

func newRootCmd() *cobra.Command {
	var serverCommand string
	var verbose bool

	root := &cobra.Command{
		Use:           "mcpkit-client",
		Short:         "Drive a stdio JSON-RPC tool server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&serverCommand, "server", "s", "mcpkit-server",
		"server command to spawn")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// withClient spawns the server, completes the handshake, runs fn and
	// shuts everything down.
	withClient := func(fn func(*mcp.Client) error) error {
		conn, err := spawn(serverCommand)
		if err != nil {
			return err
		}

		logger := observability.NewNullLogger()
		if verbose {
			logger = observability.NewLoggerWithLevel("debug")
		}
		client := mcp.NewClient(mcp.ClientConfig{Logger: logger})
		client.Connect(conn)
		defer client.Close()

		if err := client.Initialize(); err != nil {
			return err
		}
		return fn(client)
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "list-tools",
			Short: "List the server's tools",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withClient(func(client *mcp.Client) error {
					tools, err := client.ListTools("")
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), tools)
				})
			},
		},
		&cobra.Command{
			Use:   "list-resources",
			Short: "List the server's resources",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withClient(func(client *mcp.Client) error {
					resources, err := client.ListResources("")
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), resources)
				})
			},
		},
		&cobra.Command{
			Use:   "list-prompts",
			Short: "List the server's prompts",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withClient(func(client *mcp.Client) error {
					prompts, err := client.ListPrompts("")
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), prompts)
				})
			},
		},
		&cobra.Command{
			Use:   "get-resource <name>",
			Short: "Fetch one resource by name",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withClient(func(client *mcp.Client) error {
					resource, err := client.GetResource(args[0])
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), resource)
				})
			},
		},
		&cobra.Command{
			Use:   "get-prompt <name>",
			Short: "Fetch one prompt by name",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withClient(func(client *mcp.Client) error {
					prompt, err := client.GetPrompt(args[0])
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), prompt)
				})
			},
		},
		newCallCmd(withClient),
	)
	return root
}

func newCallCmd(withClient func(func(*mcp.Client) error) error) *cobra.Command {
	var paramsJSON string
	var extract bool

	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Call a tool with JSON parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parameters := map[string]any{}
			if paramsJSON != "" {
				if err := json.Unmarshal([]byte(paramsJSON), &parameters); err != nil {
					return fmt.Errorf("parse --params: %w", err)
				}
			}
			return withClient(func(client *mcp.Client) error {
				result, err := client.CallTool(args[0], parameters)
				if err != nil {
					return err
				}
				if extract {
					return printJSON(cmd.OutOrStdout(), client.ExtractContent(result))
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}
	cmd.Flags().StringVarP(&paramsJSON, "params", "p", "", "tool parameters as a JSON object")
	cmd.Flags().BoolVar(&extract, "extract", false, "flatten the tool response content")
	return cmd
}

func printJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
