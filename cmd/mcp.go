package cmd

import (
	"fmt"
	"log/slog"

	"github.com/jcdickinson/doclinks/internal/config"
	"github.com/jcdickinson/doclinks/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as MCP server over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		srv, err := mcp.NewServer(cfg, slog.Default())
		if err != nil {
			return err
		}
		return srv.Run()
	},
}
