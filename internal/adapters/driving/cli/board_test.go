package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openboard-labs/miroview-cli/internal/core/domain"
)

// runCommand executes the root command with the given args against a mock
// query service and returns the captured output.
func runCommand(t *testing.T, mock *mockQueryService, args ...string) (string, error) {
	t.Helper()

	prev := queryService
	queryService = mock
	t.Cleanup(func() { queryService = prev })

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		boardJSON = false
		boardTypes = nil
		searchCaseSensitive = false
		traceDepth = 0
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags clears flag values and Changed state on cmd and its
// subcommands so flags parsed in one test do not leak into the next.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestBoardGet(t *testing.T) {
	t.Run("plain output", func(t *testing.T) {
		mock := &mockQueryService{result: sampleResult("board-1")}

		out, err := runCommand(t, mock, "board", "get", "board-1")

		require.NoError(t, err)
		assert.Equal(t, "board-1", mock.lastBoardID)
		assert.Contains(t, out, "2 items, 1 connections")
		assert.Contains(t, out, "item-1")
		assert.Contains(t, out, "plan")
	})

	t.Run("json output", func(t *testing.T) {
		mock := &mockQueryService{result: sampleResult("board-1")}

		out, err := runCommand(t, mock, "board", "get", "board-1", "--json")

		require.NoError(t, err)
		var result domain.QueryResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, "board-1", result.Metadata.BoardID)
		assert.Len(t, result.Items, 2)
	})

	t.Run("types filter", func(t *testing.T) {
		mock := &mockQueryService{result: sampleResult("board-1")}

		_, err := runCommand(t, mock, "board", "get", "board-1", "--types", "sticky_note,card")

		require.NoError(t, err)
		assert.Equal(t, []domain.ItemType{domain.ItemTypeStickyNote, domain.ItemTypeCard}, mock.lastFilter.Types)
	})

	t.Run("full region flags", func(t *testing.T) {
		mock := &mockQueryService{result: sampleResult("board-1")}

		_, err := runCommand(t, mock, "board", "get", "board-1",
			"--left", "-100", "--right", "100", "--top", "-50", "--bottom", "50")

		require.NoError(t, err)
		require.NotNil(t, mock.lastFilter.Region)
		assert.Equal(t, domain.Region{Left: -100, Right: 100, Top: -50, Bottom: 50}, *mock.lastFilter.Region)
	})

	t.Run("partial region flags fail", func(t *testing.T) {
		mock := &mockQueryService{result: sampleResult("board-1")}

		_, err := runCommand(t, mock, "board", "get", "board-1", "--left", "-100", "--right", "100")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidParameters)
		assert.Empty(t, mock.lastBoardID)
	})
}

func TestBoardSearch(t *testing.T) {
	t.Run("passes flags through", func(t *testing.T) {
		mock := &mockQueryService{result: sampleResult("board-1")}

		out, err := runCommand(t, mock, "board", "search", "board-1", "plan", "--case-sensitive")

		require.NoError(t, err)
		assert.Equal(t, "plan", mock.lastSearch)
		assert.True(t, mock.lastOpts.CaseSensitive)
		assert.Contains(t, out, "plan")
	})

	t.Run("no matches", func(t *testing.T) {
		mock := &mockQueryService{result: &domain.QueryResult{
			Metadata: domain.ResultMetadata{BoardID: "board-1"},
			Search:   &domain.SearchInfo{Query: "absent"},
		}}

		out, err := runCommand(t, mock, "board", "search", "board-1", "absent")

		require.NoError(t, err)
		assert.Contains(t, out, "No matching items")
	})
}

func TestBoardTrace(t *testing.T) {
	t.Run("renders path steps", func(t *testing.T) {
		result := sampleResult("board-1")
		result.Traversal = &domain.TraversalInfo{
			StartItem: "item-1",
			MaxDepth:  5,
			Paths: []domain.PathStep{
				{From: "item-1", To: "item-2", Label: "then", Depth: 1},
			},
		}
		mock := &mockQueryService{result: result}

		out, err := runCommand(t, mock, "board", "trace", "board-1", "item-1", "--depth", "3")

		require.NoError(t, err)
		assert.Equal(t, "item-1", mock.lastStartID)
		assert.Equal(t, 3, mock.lastPath.MaxDepth)
		assert.Contains(t, out, "item-1 -> item-2 (then)")
	})

	t.Run("explicit zero depth fails", func(t *testing.T) {
		mock := &mockQueryService{result: sampleResult("board-1")}

		_, err := runCommand(t, mock, "board", "trace", "board-1", "item-1", "--depth", "0")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidParameters)
		assert.Empty(t, mock.lastStartID)
	})

	t.Run("unknown start item surfaces the error", func(t *testing.T) {
		mock := &mockQueryService{err: domain.ErrItemNotFound}

		_, err := runCommand(t, mock, "board", "trace", "board-1", "nope")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})
}
