// Package cli implements the folio command line.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/folio-blog/folio/internal/folio/category"
	"github.com/folio-blog/folio/internal/folio/config"
	"github.com/folio-blog/folio/internal/folio/logger"
)

// Version is set at link time.
var Version = "dev"

const envPrefix = "FOLIO"

// app carries state shared by the subcommands of one invocation.
type app struct {
	v        *viper.Viper
	registry *prometheus.Registry
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCommand builds the folio command tree. Flags can also be set
// through FOLIO_* environment variables, e.g. FOLIO_BASE_URL.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New(), registry: prometheus.NewRegistry()}

	root := &cobra.Command{
		Use:           "folio",
		Short:         "Folio builds a static developer blog from Markdown",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.v.BindPFlags(cmd.Flags())
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "folio.yaml", "path to the site config file")
	flags.String("output", "", "output directory, relative to the working directory (overrides paths.output)")
	flags.String("base-url", "", "site base URL (overrides site.base_url)")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error")
	flags.Bool("drafts", false, "include draft posts")

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		a.newBuildCommand(),
		a.newServeCommand(),
		newCategoriesCommand(),
		newVersionCommand(),
	)
	return root
}

// loadConfig reads the config file with flag and environment overrides,
// checks the category set and initializes logging.
func (a *app) loadConfig() (*config.Config, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}

	cfg, err := config.LoadWithOverrides(a.v.GetString("config"), config.Overrides{
		OutputDir: a.v.GetString("output"),
		BaseURL:   a.v.GetString("base-url"),
		LogLevel:  a.v.GetString("log-level"),
		Drafts:    a.v.GetBool("drafts"),
	})
	if err != nil {
		return nil, err
	}

	if err := logger.Init(cfg.Log, a.registry); err != nil {
		return nil, errors.Wrap(err, "initializing logger")
	}
	return cfg, nil
}
