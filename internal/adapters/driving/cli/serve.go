package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/openboard-labs/miroview-cli/internal/adapters/driven/config/file"
	"github.com/openboard-labs/miroview-cli/internal/adapters/driving/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP front-ends: the command endpoint for filter-style clients
(POST /filter/board/analyze) and the direct REST API (/api/board/...).

The listen address comes from --addr, falling back to the serve.addr config
key, then to :8787.

Examples:
  miroview serve
  miroview serve --addr :9000`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, else :8787)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	addr := serveAddr
	if addr == "" && configStore != nil {
		addr = configStore.GetString(file.KeyServeAddr)
	}
	if addr == "" {
		addr = ":8787"
	}

	opts := []web.Option{}
	if boardCache != nil {
		opts = append(opts, web.WithCacheStats(boardCache.Stats))
	}
	if configStore != nil {
		opts = append(opts, web.WithTokenConfigured(configStore.AccessToken() != ""))
	}

	server := web.NewServer(queryService, opts...)
	cmd.Printf("miroview listening on %s\n", addr)
	return server.Run(cmd.Context(), addr)
}
