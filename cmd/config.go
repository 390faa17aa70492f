package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/scrawl/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or change the config file",
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set one config key, keeping comments",
	Example: `  scrawl config set editor.virtual_edit onemore
  scrawl config set flags.watch-file false`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		if err := config.SetValue(path, args[0], args[1]); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (%s)\n", args[0], args[1], path)
		return nil
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the keys `config set` accepts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(config.Keys(), "\n")+"\nflags.<name>")
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), configPath())
		return err
	},
}

func init() {
	configCmd.AddCommand(configSetCmd, configKeysCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
