package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/folio-blog/folio/internal/folio/build"
	"github.com/folio-blog/folio/internal/folio/category"
	"github.com/folio-blog/folio/internal/folio/serve"
)

func (a *app) newBuildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Render the site into the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			report, err := build.NewBuilder(cfg, build.WithMetrics(build.NewMetrics(a.registry))).Build(cmd.Context())
			if err != nil {
				return err
			}
			if report.PageErrors > 0 {
				return fmt.Errorf("%d pages failed to render", report.PageErrors)
			}
			return nil
		},
	}
}

func (a *app) newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build the site, serve it locally and rebuild on changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			builder := build.NewBuilder(cfg, build.WithMetrics(build.NewMetrics(a.registry)))
			log.Info().Str("url", "http://"+addr).Msg("press Ctrl+C to stop")
			return serve.New(cfg, builder, a.registry, addr).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:1313", "address to listen on")
	return cmd
}

func newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the post categories and their labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := category.Validate(); err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range category.All() {
				fmt.Fprintf(tw, "%s\t%s\n", c, c.Label())
			}
			return tw.Flush()
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the folio version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "folio", Version)
		},
	}
}
