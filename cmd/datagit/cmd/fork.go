package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/oneconcern/datagit/pkg/core"
)

var forkCmd = &cobra.Command{
	Use:   "fork <new key> <from key>",
	Short: "Fork a key",
	Long: `Creates a new key sharing the history of an existing key.

The new key must not exist yet.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		withRepository("fork", func(ctx context.Context, repo *core.Repository) error {
			c, err := repo.Fork(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			return render(stdout, formatOr(formatJSON), c.Describe())
		})
	},
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout <source key> <destination key>",
	Short: "Commit the value of a key onto another",
	Long: `Commits the value at the head of the source key onto the destination key.

The new commit has the head of the source as its only parent.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var opts []core.CommitOption
		if datagitFlags.commit.message != "" {
			opts = append(opts, core.Message(datagitFlags.commit.message))
		}

		withRepository("checkout", func(ctx context.Context, repo *core.Repository) error {
			c, err := repo.Checkout(ctx, args[0], args[1], opts...)
			if err != nil {
				return err
			}
			return render(stdout, formatOr(formatJSON), c.Describe())
		})
	},
}

func init() {
	rootCmd.AddCommand(forkCmd)

	addMessageFlag(checkoutCmd, &datagitFlags.commit.message)
	rootCmd.AddCommand(checkoutCmd)
}
