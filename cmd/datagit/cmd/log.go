// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/oneconcern/datagit/pkg/core"
	"github.com/oneconcern/datagit/pkg/history"
	"github.com/oneconcern/datagit/pkg/model"
)

var (
	oidColor    = color.New(color.FgMagenta)
	authorColor = color.New(color.FgYellow)
)

func printCommit(w io.Writer, c *model.Commit) {
	fmt.Fprint(w, "     ID: ")
	oidColor.Fprintln(w, c.Oid.String())
	if c.IsMerge() {
		short := make([]string, 0, len(c.Parents))
		for _, p := range c.Parents {
			short = append(short, p.Short())
		}
		fmt.Fprintf(w, "  Merge: %s\n", strings.Join(short, " "))
	}
	fmt.Fprint(w, " Author: ")
	authorColor.Fprintln(w, c.Author.String())
	if c.Committer != c.Author {
		fmt.Fprint(w, "Committer: ")
		authorColor.Fprintln(w, c.Committer.String())
	}
	fmt.Fprint(w, "   Date: ")
	authorColor.Fprintln(w, c.Timestamp.Format(time.RFC3339))
	fmt.Fprintln(w)
	if c.Message != "" {
		fmt.Fprintf(w, "    %s\n\n", c.Message)
	}
}

// logCmd represents the log command
var logCmd = &cobra.Command{
	Use:   "log <key>",
	Short: "Get commit history",
	Long:  `Displays the commits reachable from the head of a key, with their messages`,
	Example: `% datagit log flowers --order time --limit 10
% datagit log flowers --format json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		order, err := model.ParseLogOrder(datagitFlags.log.order)
		if err != nil {
			wrapFatalln("invalid order", err)
			return
		}
		format := formatOr(formatText)

		withRepository("log", func(ctx context.Context, repo *core.Repository) error {
			it, erl := repo.Log(ctx, args[0], order)
			if erl != nil {
				return erl
			}
			commits, erl := history.Collect(it, datagitFlags.log.limit)
			if erl != nil {
				return erl
			}

			if format != formatText {
				descriptors := make([]model.CommitDescriptor, 0, len(commits))
				for _, c := range commits {
					descriptors = append(descriptors, c.Describe())
				}
				return render(stdout, format, descriptors)
			}
			for _, c := range commits {
				printCommit(stdout, c)
			}
			return nil
		})
	},
}

func init() {
	addOrderFlag(logCmd)
	addLimitFlag(logCmd)
	rootCmd.AddCommand(logCmd)
}
