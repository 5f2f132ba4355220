package cli

import (
	"fmt"
	"strings"

	"github.com/agentx-labs/expertkit/internal/config"
	"github.com/agentx-labs/expertkit/internal/errors"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tool settings",
	Long: `Read and write settings stored at ~/agents/config.yaml.

Known keys: ` + strings.Join(config.Keys(), ", "),
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.Open()
		if err != nil {
			return errors.Wrap(errors.EInvalidConfig, err.Error(), err)
		}
		key, value := args[0], args[1]
		if err := store.Set(key, value); err != nil {
			return errors.Wrap(errors.EInvalidConfig, fmt.Sprintf("setting config key %q: %v", key, err), err)
		}
		printf(cmd, "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.Open()
		if err != nil {
			return errors.Wrap(errors.EInvalidConfig, err.Error(), err)
		}
		printf(cmd, "%s\n", store.Get(args[0]))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.Open()
		if err != nil {
			return errors.Wrap(errors.EInvalidConfig, err.Error(), err)
		}
		printf(cmd, "%s\n", store.Path())
		return nil
	},
}
