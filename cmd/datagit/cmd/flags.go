// Copyright © 2018 One Concern

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/oneconcern/datagit/pkg/core"
	"github.com/oneconcern/datagit/pkg/dlogger"
	"github.com/oneconcern/datagit/pkg/model"
)

type flagsT struct {
	root struct {
		format      string
		metricsFile string
	}
	commit struct {
		message string
		file    string
		parents []string
		expect  string
	}
	show struct {
		back int
	}
	log struct {
		order string
		limit int
	}
	merge struct {
		message string
	}
	config struct {
		output string
	}
}

var datagitFlags = flagsT{}

// bind a persistent flag to a configuration key
func bind(flags *pflag.FlagSet, key, name string) {
	if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
		panic(err)
	}
}

func addRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.String("dir", defaultDir, "The directory of the datagit store")
	bind(flags, "dir", "dir")

	flags.String("loglevel", dlogger.LogLevelWarn, "The logging level: debug, info, warn or none")
	bind(flags, "loglevel", "loglevel")

	flags.String("author-name", "", "The name of the author of commits")
	bind(flags, "author.name", "author-name")
	flags.String("author-email", "", "The email of the author of commits")
	bind(flags, "author.email", "author-email")

	flags.String("committer-name", "", "The name of the committer of commits. Defaults to the author")
	bind(flags, "committer.name", "committer-name")
	flags.String("committer-email", "", "The email of the committer of commits. Defaults to the author")
	bind(flags, "committer.email", "committer-email")

	flags.Int("retries", core.DefaultMaxRetries, "How many times an update is retried after a concurrent modification")
	bind(flags, "retries", "retries")

	flags.String("max-value-size", defaultMaxValueSize, "The largest value that may be committed, e.g. 16MiB")
	bind(flags, "maxvaluesize", "max-value-size")

	flags.StringVar(&datagitFlags.root.format, "format", "", "Output format: json, yaml (or text for log)")
	flags.StringVar(&datagitFlags.root.metricsFile, "metrics-file", "", "Write the metrics of the command to this file, in the prometheus text format")
}

func addMessageFlag(cmd *cobra.Command, target *string) string {
	message := "message"
	cmd.Flags().StringVarP(target, message, "m", "", "The message of the commit")
	return message
}

func addFileFlag(cmd *cobra.Command) string {
	file := "file"
	cmd.Flags().StringVar(&datagitFlags.commit.file, file, "", "Read the JSON value from a file, - for stdin")
	return file
}

func addParentFlag(cmd *cobra.Command) string {
	parent := "parent"
	cmd.Flags().StringSliceVar(&datagitFlags.commit.parents, parent, nil,
		"Explicit parent commit oids. Defaults to the head of the key")
	return parent
}

func addExpectFlag(cmd *cobra.Command) string {
	expect := "expect"
	cmd.Flags().StringVar(&datagitFlags.commit.expect, expect, "",
		`Fail unless the head of the key is this oid. Use "none" for a key with no history`)
	return expect
}

func addBackFlag(cmd *cobra.Command) string {
	back := "back"
	cmd.Flags().IntVar(&datagitFlags.show.back, back, 0, "How many commits back from the head")
	return back
}

func addOrderFlag(cmd *cobra.Command) string {
	order := "order"
	cmd.Flags().StringVar(&datagitFlags.log.order, order, model.Topological.String(),
		"The order of the log: topological, time or reverse")
	return order
}

func addLimitFlag(cmd *cobra.Command) string {
	limit := "limit"
	cmd.Flags().IntVar(&datagitFlags.log.limit, limit, 0, "The maximum number of commits to show. 0 shows all")
	return limit
}

func addOutputFlag(cmd *cobra.Command) string {
	output := "output"
	cmd.Flags().StringVar(&datagitFlags.config.output, output, "",
		"Where to write the config file. Defaults to $HOME/.datagit/datagit.yaml")
	return output
}
