// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oneconcern/datagit/pkg/core"
	"github.com/oneconcern/datagit/pkg/model"
)

func commitOptions() ([]core.CommitOption, error) {
	opts := []core.CommitOption{core.Message(datagitFlags.commit.message)}

	if len(datagitFlags.commit.parents) > 0 {
		oids := make([]model.Oid, 0, len(datagitFlags.commit.parents))
		for _, p := range datagitFlags.commit.parents {
			oid, err := model.ParseOid(p)
			if err != nil {
				return nil, err
			}
			oids = append(oids, oid)
		}
		opts = append(opts, core.ParentOids(oids...))
	}

	switch expect := strings.ToLower(datagitFlags.commit.expect); expect {
	case "":
	case "none":
		opts = append(opts, core.ExpectHead(model.ZeroOid))
	default:
		oid, err := model.ParseOid(expect)
		if err != nil {
			return nil, err
		}
		opts = append(opts, core.ExpectHead(oid))
	}
	return opts, nil
}

// commitCmd represents the commit command
var commitCmd = &cobra.Command{
	Use:   "commit <key> [json value]",
	Short: "Commit a value",
	Long: `Commits a JSON value to a key.

The new commit follows the head of the key, unless explicit parents are given.`,
	Example: `% datagit commit flowers '{"roses": "red"}' -m "first bouquet"
% datagit commit flowers --file bouquet.json`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		v, err := readValue(cmd.InOrStdin(), args[1:])
		if err != nil {
			wrapFatalln("read value", err)
			return
		}
		opts, err := commitOptions()
		if err != nil {
			wrapFatalln("invalid commit options", err)
			return
		}

		withRepository("commit", func(ctx context.Context, repo *core.Repository) error {
			c, erc := repo.Commit(ctx, args[0], v, opts...)
			if erc != nil {
				return erc
			}
			return render(stdout, formatOr(formatJSON), c.Describe())
		})
	},
}

func init() {
	addMessageFlag(commitCmd, &datagitFlags.commit.message)
	addFileFlag(commitCmd)
	addParentFlag(commitCmd)
	addExpectFlag(commitCmd)
	rootCmd.AddCommand(commitCmd)
}
