package cmd

import (
	units "github.com/docker/go-units"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oneconcern/datagit/pkg/model"
)

const (
	defaultDir          = ".datagit"
	defaultMaxValueSize = "16MiB"
)

// ContributorConfig identifies an author or a committer
type ContributorConfig struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Email string `json:"email,omitempty" yaml:"email,omitempty" mapstructure:"email"`
}

func (c ContributorConfig) contributor() model.Contributor {
	return model.NewContributor(c.Name, c.Email)
}

// Config describes the CLI configuration.
type Config struct {
	// bug in viper? Need to keep names of fields the same as the serialized names..
	Dir          string            `json:"dir" yaml:"dir" mapstructure:"dir"`
	Author       ContributorConfig `json:"author,omitempty" yaml:"author,omitempty" mapstructure:"author"`
	Committer    ContributorConfig `json:"committer,omitempty" yaml:"committer,omitempty" mapstructure:"committer"`
	LogLevel     string            `json:"loglevel" yaml:"loglevel" mapstructure:"loglevel"`
	Retries      int               `json:"retries" yaml:"retries" mapstructure:"retries"`
	MaxValueSize string            `json:"maxvaluesize" yaml:"maxvaluesize" mapstructure:"maxvaluesize"`
}

func newConfig() (*Config, error) {
	var config Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// maxValueSize parses the configured limit on values, e.g. "16MiB"
func (c *Config) maxValueSize() (int64, error) {
	if c.MaxValueSize == "" {
		return units.RAMInBytes(defaultMaxValueSize)
	}
	return units.RAMInBytes(c.MaxValueSize)
}

// configCmd represents the config related commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage a config",
	Long: `Commands to manage datagit CLI config.

Configuration for datagit is the common set of flags that are needed for most commands and do not change across runs,
analogous to "git config ...". Settings are read from datagit.yaml in the current directory, $HOME/.datagit or /etc/datagit,
or from the file pointed to by $DATAGIT_CONFIG. Environment variables prefixed with DATAGIT_ override the file,
e.g. DATAGIT_AUTHOR_NAME.`,
}

var configShow = &cobra.Command{
	Use:   "show",
	Short: "Show the current config",
	Run: func(cmd *cobra.Command, args []string) {
		if err := render(stdout, formatOr(formatYAML), config); err != nil {
			wrapFatalln("render config", err)
			return
		}
	},
}

func init() {
	configCmd.AddCommand(configShow)
	rootCmd.AddCommand(configCmd)
}
