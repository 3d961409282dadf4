package mcp

import (
	"context"
	"fmt"
	"log"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ServerName    = "tripplanner-tools"
	ServerVersion = "0.1.0"
)

// NewServer exposes every tool in reg over MCP. Tool failures are reported
// as error results so the calling agent can read them and retry.
func NewServer(reg *Registry, logger *log.Logger) *sdk.Server {
	if logger == nil {
		logger = log.Default()
	}
	server := sdk.NewServer(&sdk.Implementation{Name: ServerName, Version: ServerVersion}, nil)
	for _, spec := range reg.Specs() {
		name := spec.Name
		server.AddTool(&sdk.Tool{
			Name:        name,
			Description: spec.Description,
			InputSchema: spec.InputSchema,
		}, func(ctx context.Context, req *sdk.CallToolRequest) (*sdk.CallToolResult, error) {
			out, err := reg.Call(ctx, name, req.Params.Arguments)
			if err != nil {
				logger.Printf("mcp: %s failed: %v", name, err)
				return &sdk.CallToolResult{
					IsError: true,
					Content: []sdk.Content{&sdk.TextContent{Text: err.Error()}},
				}, nil
			}
			return &sdk.CallToolResult{Content: []sdk.Content{&sdk.TextContent{Text: string(out)}}}, nil
		})
	}
	return server
}

// ServeStdio runs the tool server on stdin/stdout until ctx is done or the
// client disconnects.
func ServeStdio(ctx context.Context, reg *Registry, logger *log.Logger) error {
	if err := NewServer(reg, logger).Run(ctx, &sdk.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp: serve stdio: %w", err)
	}
	return nil
}
