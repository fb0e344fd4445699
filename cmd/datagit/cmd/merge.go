// Copyright © 2018 One Concern

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/oneconcern/datagit/pkg/core"
	"github.com/oneconcern/datagit/pkg/merge"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <source key> <destination key>",
	Short: "Merge a key into another",
	Long: `Merges the head of the source key into the destination key.

The destination is fast-forwarded when its head is an ancestor of the source.
Otherwise, both values are merged against their shared ancestor, and the result
is committed to the destination.

When both sides edited the same paths, the conflict is reported and the destination
is left untouched. The command then exits with status 2, as it does when both keys
have no history in common.`,
	Example: `% datagit fork draft flowers
% datagit commit draft '{"roses": "red", "violets": "blue"}'
% datagit merge draft flowers`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var opts []core.MergeOption
		if datagitFlags.merge.message != "" {
			opts = append(opts, core.MergeMessage(datagitFlags.merge.message))
		}

		var status merge.Status
		withRepository("merge", func(ctx context.Context, repo *core.Repository) error {
			out, err := repo.Merge(ctx, args[0], args[1], opts...)
			if err != nil {
				return err
			}
			status = out.Status
			return render(stdout, formatOr(formatJSON), describeOutcome(out))
		})

		if !status.Merged() {
			wrapFatalWithCodef(exitUnmerged, "%s was not merged into %s: %v", args[0], args[1], status)
		}
	},
}

func init() {
	addMessageFlag(mergeCmd, &datagitFlags.merge.message)
	rootCmd.AddCommand(mergeCmd)
}
