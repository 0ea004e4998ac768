package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/mcpkit/mcpkit/observability"
)

// StdIOServer runs a Server over a newline-delimited JSON duplex stream:
// one message per line, read to end-of-stream, every reply flushed before
// the next read.
type StdIOServer struct {
	*Server
	in  io.Reader
	out io.Writer
}

// NewStdIOServer attaches a Server to an input and output stream.
func NewStdIOServer(server *Server, in io.Reader, out io.Writer) *StdIOServer {
	return &StdIOServer{
		Server: server,
		in:     in,
		out:    out,
	}
}

// Run processes requests until the input stream ends. Empty lines are
// skipped without a reply; unparseable lines are answered with a parse
// error carrying a null id. The loop itself never fails on a bad message.
func (s *StdIOServer) Run(ctx context.Context) error {
	ctx, span := observability.StartSpan(ctx, "StdIOServer.Run")
	defer span.End()

	connectionID := uuid.NewString()
	logger := s.logger.WithFields(map[string]any{"connection_id": connectionID})
	logger.Info("stdio server started")

	scanner := bufio.NewScanner(s.in)
	buffer := make([]byte, 0, 64*1024)
	scanner.Buffer(buffer, 1024*1024)

	writer := bufio.NewWriter(s.out)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var response Response
		request, err := ParseRequest(line)
		if err != nil {
			logger.WithErr(err).Error("failed to parse request line")
			response = NewParseErrorResponse(nil)
		} else {
			response = s.HandleRequest(request)
		}

		if err := writeLine(writer, response); err != nil {
			logger.WithErr(err).Error("failed to write response")
			return fmt.Errorf("write response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		logger.WithErr(err).Error("stdio server read failed")
		return fmt.Errorf("read request: %w", err)
	}
	logger.Info("stdio server shutting down")
	return nil
}

func writeLine(writer *bufio.Writer, response Response) error {
	payload, err := json.Marshal(response)
	if err != nil {
		// Handler results are arbitrary values; fall back to a reply the
		// peer can still correlate.
		payload, err = json.Marshal(NewInternalErrorResponse(
			"failed to marshal response", response.ResponseID()))
		if err != nil {
			return err
		}
	}
	if _, err := writer.Write(payload); err != nil {
		return err
	}
	if err := writer.WriteByte('\n'); err != nil {
		return err
	}
	return writer.Flush()
}
