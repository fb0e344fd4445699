package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oneconcern/datagit/pkg/core"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List keys",
	Long:  `Lists the keys with a history, sorted`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withRepository("keys", func(ctx context.Context, repo *core.Repository) error {
			keys, err := repo.Keys(ctx)
			if err != nil {
				return err
			}
			if format := formatOr(formatText); format != formatText {
				return render(stdout, format, keys)
			}
			for _, k := range keys {
				fmt.Fprintln(stdout, k)
			}
			return nil
		})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <key>",
	Short: "Remove a key",
	Long: `Removes a key. Its commits remain in the store, and stay reachable
from the keys which share its history.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withRepository("remove", func(ctx context.Context, repo *core.Repository) error {
			return repo.Remove(ctx, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(removeCmd)
}
