package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tripplanner/internal/mcp"
)

func newServeToolsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve-tools",
		Short: "Serve the planner tools over MCP on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			req, err := loadRequest(opts.requestPath)
			if err != nil {
				return err
			}
			a, err := newApp(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			reg, err := mcp.NewPlannerRegistry(a.toolSet(&req))
			if err != nil {
				return err
			}
			a.logger.Printf("tripplanner: serving %d tools over stdio", len(reg.Specs()))
			return mcp.ServeStdio(ctx, reg, a.logger)
		},
	}
}
