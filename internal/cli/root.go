package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ssbtools/ssbctl/internal/client"
	"github.com/ssbtools/ssbctl/internal/config"
	"github.com/ssbtools/ssbctl/internal/output"
	"github.com/ssbtools/ssbctl/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "ssbctl",
	Short: "Command-line client for the SQL Stream Builder REST API",
	Long: `ssbctl wraps the SQL Stream Builder (SSB) management REST API: listing
projects, listing jobs and their state, and updating, starting, or
stopping jobs.

Connection settings come from flags, a YAML configuration file
(--config), or the SSB_PASSWORD environment variable. When no password
is supplied anywhere, ssbctl prompts for one on the terminal.`,
	Version:       "0.1.0-dev",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "configuration file (YAML format)")
	flags.StringP("base-url", "b", "", "SSB API base URL")
	flags.StringP("username", "u", "", "SSB username")
	flags.StringP("password", "p", "", "SSB password; prompted when absent everywhere (recommended)")
	flags.Bool("debug", false, "enable debugging output")
	flags.Bool("json", false, "print raw JSON instead of tables")
	flags.Bool("insecure", true, "skip TLS certificate verification (--insecure=false to verify)")

	cobra.CheckErr(config.BindFlags(viper.GetViper(), flags))
}

// newSession resolves the configuration and builds the API client and
// printer shared by every command. Configuration errors surface here,
// before any network call.
func newSession() (*client.Client, *output.Printer, error) {
	cfg, err := config.Resolve(viper.GetViper(), nil)
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(cfg.Debug)
	if cfg.Debug {
		if dump, err := cfg.RedactedYAML(); err == nil {
			log.Debug("effective configuration\n" + dump)
		}
	}
	jsonMode := cfg.Debug || viper.GetBool("json")
	return client.New(cfg, log.With("component", "api")), output.New(jsonMode), nil
}
