package cli

import (
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/agentx-labs/expertkit/internal/errors"
	"github.com/agentx-labs/expertkit/internal/memory"
	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
)

var memoryListMatch string

func init() {
	addProjectFlag(memoryListCmd)
	addProjectFlag(memoryGetCmd)
	addProjectFlag(memorySetCmd)
	memoryListCmd.Flags().StringVar(&memoryListMatch, "match", "", "Only list keys matching a glob, e.g. 'session-*'")

	memoryCmd.AddCommand(memoryListCmd)
	memoryCmd.AddCommand(memoryGetCmd)
	memoryCmd.AddCommand(memorySetCmd)
	rootCmd.AddCommand(memoryCmd)
}

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Inspect and edit the agent's memory",
	Long:  `Commands in this group use the memory backend and namespace from configs/project.yaml.`,
}

var memoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var matcher glob.Glob
		if memoryListMatch != "" {
			g, err := glob.Compile(memoryListMatch)
			if err != nil {
				return errors.Newf(errors.EUsage, "invalid --match pattern %q: %v", memoryListMatch, err)
			}
			matcher = g
		}

		store, err := openMemory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		keys, err := store.Keys(cmd.Context())
		if err != nil {
			return errors.Wrap(errors.EMemory, err.Error(), err)
		}
		for _, key := range filterKeys(keys, matcher) {
			printf(cmd, "%s\n", key)
		}
		return nil
	},
}

var memoryGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a stored value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openMemory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		rec, err := store.Load(cmd.Context(), args[0])
		if stderrors.Is(err, memory.ErrNotFound) {
			return errors.Newf(errors.EMemory, "no value stored for %q in namespace %q", args[0], store.Namespace())
		}
		if err != nil {
			return errors.Wrap(errors.EMemory, err.Error(), err)
		}
		out, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding record: %w", err)
		}
		printf(cmd, "%s\n", out)
		return nil
	},
}

var memorySetCmd = &cobra.Command{
	Use:   "set <key> <json>",
	Short: "Store a JSON value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if !json.Valid([]byte(value)) {
			return errors.Newf(errors.EUsage, "value for %q is not valid JSON (quote strings, e.g. '\"text\"')", key)
		}

		store, err := openMemory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Save(cmd.Context(), key, json.RawMessage(value)); err != nil {
			return errors.Wrap(errors.EMemory, err.Error(), err)
		}
		printf(cmd, "Stored %s in namespace %s\n", key, store.Namespace())
		return nil
	},
}

func openMemory(cmd *cobra.Command) (memory.Store, error) {
	p, err := openProject()
	if err != nil {
		return nil, err
	}
	return p.OpenMemory(cmd.Context())
}

// filterKeys returns the keys matched by g, or all keys when g is nil.
func filterKeys(keys []string, g glob.Glob) []string {
	if g == nil {
		return keys
	}
	var out []string
	for _, k := range keys {
		if g.Match(k) {
			out = append(out, k)
		}
	}
	return out
}
