// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "datagit",
	Short: "Datagit keeps the history of structured values",
	Long: `Datagit keeps the history of structured values (maps, lists and scalars) under keys.

Every commit of a value is kept. Keys may be forked, and independent lines of history
are reconciled by a structural three-way merge, which either succeeds or reports
the conflicting paths.

Values are exchanged as JSON.
`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger()
	},
}

var config *Config

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)
	addRootFlags(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if os.Getenv("DATAGIT_CONFIG") != "" {
		// Use config file from the environment.
		viper.SetConfigFile(os.Getenv("DATAGIT_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.datagit")
		viper.AddConfigPath("/etc/datagit")
		viper.SetConfigName("datagit")
	}

	viper.SetEnvPrefix("datagit")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}

	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
	}
}
