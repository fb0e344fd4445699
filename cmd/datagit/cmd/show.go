package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/oneconcern/datagit/pkg/core"
)

var showCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Show the value of a key",
	Long:  `Shows the value at the head of a key, or some commits back from the head with --back.`,
	Example: `% datagit show flowers
% datagit show flowers --back 2 --format yaml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withRepository("show", func(ctx context.Context, repo *core.Repository) error {
			v, err := repo.Show(ctx, args[0], datagitFlags.show.back)
			if err != nil {
				return err
			}
			return render(stdout, formatOr(formatJSON), v.Interface())
		})
	},
}

var headCmd = &cobra.Command{
	Use:   "head <key>",
	Short: "Show the head commit of a key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withRepository("head", func(ctx context.Context, repo *core.Repository) error {
			c, err := repo.Get(ctx, args[0], datagitFlags.show.back)
			if err != nil {
				return err
			}
			return render(stdout, formatOr(formatJSON), c.Describe())
		})
	},
}

func init() {
	addBackFlag(showCmd)
	rootCmd.AddCommand(showCmd)

	addBackFlag(headCmd)
	rootCmd.AddCommand(headCmd)
}
