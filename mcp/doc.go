// Package mcp implements a JSON-RPC 2.0 request/response dispatcher that
// exposes a registry of named tools, prompts and resources over a
// newline-delimited JSON stream.
//
// A Server owns the registries and the routing state machine; StdIOServer
// runs it over any duplex byte stream, one message per line. Client is the
// matching correlator: it writes requests with monotonically increasing ids
// and reads one reply line per request.
//
//	server := mcp.NewServer(mcp.UseServerInfo("time-server", "1.0.0"))
//	server.RegisterToolFunc("echo", func(params map[string]any) (any, error) {
//		return params, nil
//	}, nil)
//	mcp.NewStdIOServer(server, os.Stdin, os.Stdout).Run(context.Background())
package mcp
