package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/openboard-labs/miroview-cli/internal/adapters/driven/config/file"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the access token, cache behavior and server address.

Known keys:
  miro.access_token   Miro REST API token (MIRO_ACCESS_TOKEN overrides)
  miro.base_url       API root override, mainly for testing
  cache.ttl_seconds   snapshot cache freshness window
  query.max_items     item cap per query result
  serve.addr          HTTP server listen address`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a setting",
	Long:  `Set a configuration value and persist it immediately. Integer-looking values are stored as integers.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Miro]")
	if token := configStore.AccessToken(); token != "" {
		cmd.Printf("  Access token: %s\n", maskToken(token))
	} else {
		cmd.Println("  Access token: (not set)")
	}
	if base := configStore.GetString(file.KeyBaseURL); base != "" {
		cmd.Printf("  Base URL: %s\n", base)
	}
	cmd.Println()

	cmd.Println("[Cache]")
	if ttl := configStore.GetInt(file.KeyCacheTTLSeconds); ttl > 0 {
		cmd.Printf("  TTL: %ds\n", ttl)
	} else {
		cmd.Println("  TTL: (default)")
	}
	cmd.Println()

	cmd.Println("[Query]")
	if n := configStore.GetInt(file.KeyMaxItems); n > 0 {
		cmd.Printf("  Max items: %d\n", n)
	} else {
		cmd.Println("  Max items: (default)")
	}
	cmd.Println()

	cmd.Printf("Config file: %s\n", configStore.Path())
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	val, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}
	if args[0] == file.KeyAccessToken {
		cmd.Println(maskToken(fmt.Sprint(val)))
		return nil
	}
	cmd.Println(val)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]

	var value any = raw
	if n, err := strconv.Atoi(raw); err == nil {
		value = n
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("Set %s\n", key)
	return nil
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
