package cmd

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// appFs is the file system used to read values and write config files
var appFs = afero.NewOsFs()

func defaultConfigFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".datagit", "datagit.yaml"), nil
}

var configCreate = &cobra.Command{
	Use:   "create",
	Short: "Create a config",
	Long: `Create a config to use for datagit, from the current settings.

The config file is placed in $HOME/.datagit/datagit.yaml unless --output is given.`,
	Example: `% datagit config create --author-name jane --author-email jane@example.com --dir /data/datagit`,
	Run: func(cmd *cobra.Command, args []string) {
		if config.Author.Name == "" {
			wrapFatalln("an author name is required: use --author-name", nil)
			return
		}

		target := datagitFlags.config.output
		if target == "" {
			var err error
			if target, err = defaultConfigFile(); err != nil {
				wrapFatalln("could not get home directory for user", err)
				return
			}
		}

		o, err := yaml.Marshal(config)
		if err != nil {
			wrapFatalln("serialize config to yaml", err)
			return
		}
		if err = appFs.MkdirAll(filepath.Dir(target), 0700); err != nil {
			wrapFatalln("create config directory", err)
			return
		}
		if err = afero.WriteFile(appFs, target, o, 0600); err != nil {
			wrapFatalln("write config file", err)
			return
		}
		log.Println("Config written to", target)
	},
}

func init() {
	addOutputFlag(configCreate)
	configCmd.AddCommand(configCreate)
}
