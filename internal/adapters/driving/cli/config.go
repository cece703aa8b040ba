package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage engine settings",
	Long: `View and change the settings stored in config.toml.

Keys use dot notation, e.g. "paths.policy". List values such as sdk.roots
take a comma-separated string.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List recognised config keys",
	RunE:  runConfigKeys,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Restore a config value to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := requireSettingsService(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Paths]")
	cmd.Printf("  Policy: %s\n", settings.PathPolicy)
	cmd.Println()

	cmd.Println("[Maven]")
	cmd.Printf("  Local repository: %s\n", orDefault(settings.MavenLocalRepository, "~/.m2/repository"))
	cmd.Println()

	cmd.Println("[SDK]")
	cmd.Printf("  Java home: %s\n", orDefault(settings.JavaHome, "$JAVA_HOME"))
	cmd.Printf("  Roots: %s\n", orDefault(strings.Join(settings.SDKRoots, ", "), "(platform defaults)"))
	cmd.Println()

	cmd.Println("[Compiler]")
	cmd.Printf("  API version: %s\n", settings.Compiler.APIVersion)
	cmd.Printf("  Language version: %s\n", settings.Compiler.LanguageVersion)
	cmd.Printf("  Target version: %s\n", settings.Compiler.TargetVersion)
	cmd.Println()

	cmd.Println("[Importers]")
	cmd.Printf("  Order: %s\n", strings.Join(settings.ImporterOrder, ", "))
	cmd.Println()

	cmd.Println("[Store]")
	cmd.Printf("  Backend: %s\n", settings.StoreBackend)
	cmd.Printf("  Data dir: %s\n", orDefault(settings.DataDir, "~/.wsimport/data"))
	cmd.Println()

	cmd.Println("[Import]")
	cmd.Printf("  Concurrency: %s\n", strconv.Itoa(settings.Concurrency))
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	if err := requireSettingsService(); err != nil {
		return err
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := requireSettingsService(); err != nil {
		return err
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if err := requireSettingsService(); err != nil {
		return err
	}
	if err := settingsService.Reset(args[0]); err != nil {
		return fmt.Errorf("failed to unset %s: %w", args[0], err)
	}
	cmd.Printf("%s restored to default\n", args[0])
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
