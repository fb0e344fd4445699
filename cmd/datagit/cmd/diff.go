package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/oneconcern/datagit/pkg/core"
)

var diffCmd = &cobra.Command{
	Use:   "diff <from key> <to key>",
	Short: "Show the difference between two keys",
	Long: `Shows the structural difference between the values at the head of two keys.

Entries are reported as appended, updated or removed. A value replaced by a value of
another kind is reported as a replacement. Equal values have no difference: null is printed.`,
	Example: `% datagit diff flowers draft
{
  "append": {
    "violets": "blue"
  }
}`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		withRepository("diff", func(ctx context.Context, repo *core.Repository) error {
			d, err := repo.DiffKeys(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			return render(stdout, formatOr(formatJSON), d.Interface())
		})
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
