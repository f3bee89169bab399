package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openboard-labs/miroview-cli/internal/core/domain"
)

var (
	boardJSON  bool
	boardTypes []string

	boardLeft   float64
	boardRight  float64
	boardTop    float64
	boardBottom float64

	searchCaseSensitive bool
	traceDepth          int
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "One-shot board queries",
	Long:  `Query a Miro board directly from the terminal.`,
}

var boardGetCmd = &cobra.Command{
	Use:   "get [board-id]",
	Short: "Get board content",
	Long: `Fetch a board's items and connections, optionally limited to a spatial
region and a set of item types.

The four bound flags form one region: give all of --left, --right, --top and
--bottom, or none of them.

Examples:
  miroview board get uXjVNxyz123
  miroview board get uXjVNxyz123 --types sticky_note,shape
  miroview board get uXjVNxyz123 --left -500 --right 500 --top -300 --bottom 300`,
	Args: cobra.ExactArgs(1),
	RunE: runBoardGet,
}

var boardSearchCmd = &cobra.Command{
	Use:   "search [board-id] [text]",
	Short: "Search board items by text",
	Args:  cobra.ExactArgs(2),
	RunE:  runBoardSearch,
}

var boardTraceCmd = &cobra.Command{
	Use:   "trace [board-id] [item-id]",
	Short: "Trace connections from an item",
	Long: `Follow connectors outward from a starting item, in both directions, up to
--depth hops. Reports every reached item and the path steps taken.`,
	Args: cobra.ExactArgs(2),
	RunE: runBoardTrace,
}

func init() {
	boardCmd.PersistentFlags().BoolVar(&boardJSON, "json", false, "output results as JSON")

	boardGetCmd.Flags().StringSliceVar(&boardTypes, "types", nil, "item types to include (comma separated)")
	boardGetCmd.Flags().Float64Var(&boardLeft, "left", 0, "region left bound")
	boardGetCmd.Flags().Float64Var(&boardRight, "right", 0, "region right bound")
	boardGetCmd.Flags().Float64Var(&boardTop, "top", 0, "region top bound")
	boardGetCmd.Flags().Float64Var(&boardBottom, "bottom", 0, "region bottom bound")

	boardSearchCmd.Flags().BoolVar(&searchCaseSensitive, "case-sensitive", false, "match case exactly")

	boardTraceCmd.Flags().IntVar(&traceDepth, "depth", 0, "maximum traversal depth (default 5)")

	boardCmd.AddCommand(boardGetCmd)
	boardCmd.AddCommand(boardSearchCmd)
	boardCmd.AddCommand(boardTraceCmd)
	rootCmd.AddCommand(boardCmd)
}

func runBoardGet(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	region, err := regionFromFlags(cmd)
	if err != nil {
		return err
	}

	filter := domain.ContentFilter{Region: region}
	for _, t := range boardTypes {
		filter.Types = append(filter.Types, domain.ItemType(strings.TrimSpace(t)))
	}

	result, err := queryService.GetBoardContent(cmd.Context(), args[0], filter)
	if err != nil {
		return fmt.Errorf("board query failed: %w", err)
	}

	if boardJSON {
		return outputJSON(cmd, result)
	}
	return outputBoardTable(cmd, result)
}

func runBoardSearch(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	opts := domain.SearchOptions{CaseSensitive: searchCaseSensitive}
	result, err := queryService.SearchItems(cmd.Context(), args[0], args[1], opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if boardJSON {
		return outputJSON(cmd, result)
	}
	return outputSearchTable(cmd, result)
}

func runBoardTrace(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	// An explicitly given zero or negative depth is a caller error; leaving
	// the flag off means the default depth.
	if cmd.Flags().Changed("depth") && traceDepth <= 0 {
		return fmt.Errorf("depth must be positive: %w", domain.ErrInvalidParameters)
	}

	opts := domain.PathOptions{MaxDepth: traceDepth}
	result, err := queryService.ConnectedPath(cmd.Context(), args[0], args[1], opts)
	if err != nil {
		return fmt.Errorf("trace failed: %w", err)
	}

	if boardJSON {
		return outputJSON(cmd, result)
	}
	return outputTraceTable(cmd, result)
}

// regionFromFlags builds a region from the four bound flags. All four or
// none.
func regionFromFlags(cmd *cobra.Command) (*domain.Region, error) {
	names := []string{"left", "right", "top", "bottom"}
	set := 0
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			set++
		}
	}

	switch set {
	case 0:
		return nil, nil
	case 4:
		return &domain.Region{
			Left: boardLeft, Right: boardRight, Top: boardTop, Bottom: boardBottom,
		}, nil
	default:
		return nil, fmt.Errorf("a region needs all of --left, --right, --top, --bottom: %w",
			domain.ErrInvalidParameters)
	}
}

func outputJSON(cmd *cobra.Command, result *domain.QueryResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputBoardTable(cmd *cobra.Command, result *domain.QueryResult) error {
	cmd.Printf("Board %s: %d items, %d connections\n",
		result.Metadata.BoardID, result.Metadata.ItemCount, result.Metadata.ConnectorCount)
	if result.Metadata.Truncated {
		cmd.Println("(result truncated by item cap)")
	}
	cmd.Println()

	for i := range result.Items {
		printItem(cmd, &result.Items[i])
	}

	if len(result.Connectors) > 0 {
		cmd.Println("Connections:")
		for _, conn := range result.Connectors {
			printConnector(cmd, conn)
		}
	}
	return nil
}

func outputSearchTable(cmd *cobra.Command, result *domain.QueryResult) error {
	if result.Search != nil {
		cmd.Printf("Search %q: %d matches\n\n", result.Search.Query, result.Search.ResultCount)
	}
	if len(result.Items) == 0 {
		cmd.Println("No matching items.")
		return nil
	}
	for i := range result.Items {
		printItem(cmd, &result.Items[i])
	}
	return nil
}

func outputTraceTable(cmd *cobra.Command, result *domain.QueryResult) error {
	if result.Traversal != nil {
		cmd.Printf("Trace from %s (depth %d): %d items reached\n",
			result.Traversal.StartItem, result.Traversal.MaxDepth, result.Metadata.ItemCount)
		if result.Traversal.MaxDepthReached >= result.Traversal.MaxDepth {
			cmd.Println("(depth limit reached, the component may extend further)")
		}
		cmd.Println()

		for _, step := range result.Traversal.Paths {
			label := step.Label
			if label == "" {
				label = "-"
			}
			cmd.Printf("  [%d] %s -> %s (%s)\n", step.Depth, step.From, step.To, label)
		}
		cmd.Println()
	}

	for i := range result.Items {
		printItem(cmd, &result.Items[i])
	}
	return nil
}

func printItem(cmd *cobra.Command, item *domain.Item) {
	text := item.Text
	if text == "" {
		text = "(no text)"
	}
	cmd.Printf("  [%s] %s: %s\n", item.Type, item.ID, text)
	cmd.Printf("      at (%.0f, %.0f)\n", item.Position.X, item.Position.Y)
}

func printConnector(cmd *cobra.Command, conn domain.Connector) {
	if conn.Label != "" {
		cmd.Printf("  %s -> %s (%s)\n", conn.From, conn.To, conn.Label)
		return
	}
	cmd.Printf("  %s -> %s\n", conn.From, conn.To)
}
