// Package cli implements the miroview command line interface. Every
// subcommand drives the same board query service; the long-running front-ends
// (serve, mcp serve) and the one-shot board commands share one snapshot cache
// per process.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/openboard-labs/miroview-cli/internal/adapters/driven/cache"
	"github.com/openboard-labs/miroview-cli/internal/adapters/driven/config/file"
	"github.com/openboard-labs/miroview-cli/internal/connectors/miro"
	"github.com/openboard-labs/miroview-cli/internal/core/ports/driving"
	"github.com/openboard-labs/miroview-cli/internal/core/services"
	"github.com/openboard-labs/miroview-cli/internal/logger"
)

const version = "0.2.0"

// Services shared across subcommands, wired by initServices. Tests may
// pre-populate these to bypass config and upstream wiring.
var (
	configStore  *file.ConfigStore
	boardCache   *cache.BoardCache
	queryService driving.BoardQueryService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "miroview",
	Short: "Query and trace Miro boards",
	Long: `MiroView reads Miro boards through the REST API and answers structured
queries over them: full or filtered board content, spatial region lookups,
text search, and connection tracing from any item.

The same query engine is exposed three ways:
  miroview serve        HTTP command endpoint and direct REST API
  miroview mcp serve    Model Context Protocol server for AI assistants
  miroview board ...    one-shot queries from the terminal`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return initServices()
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// initServices builds the config store, upstream client, snapshot cache and
// query service. Idempotent so tests can inject fakes before Execute.
func initServices() error {
	if queryService != nil {
		return nil
	}

	store, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	configStore = store

	client := miro.NewClient(miro.Config{
		AccessToken: store.AccessToken(),
		BaseURL:     store.GetString(file.KeyBaseURL),
	})

	ttl := time.Duration(store.GetInt(file.KeyCacheTTLSeconds)) * time.Second
	boardCache = cache.New(client, ttl)

	svc := services.NewBoardQueryService(boardCache)
	if n := store.GetInt(file.KeyMaxItems); n > 0 {
		svc.SetMaxItems(n)
	}
	queryService = svc

	return nil
}
