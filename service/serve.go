package service

import (
	"os"
	"os/signal"
	"syscall"

	"blogview/app/controllers"
	"blogview/app/models"
	"blogview/app/repositories"
	"blogview/app/routes"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the blog page, view API and post pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			cfg, logger := app.Config, app.Logger
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			source, release, err := buildSource(cfg)
			if err != nil {
				return err
			}
			defer release()

			store := buildStore(cfg, source, logger)
			collection, err := store.Load(ctx)
			if err != nil {
				logger.Warn("posts could not be loaded", zap.Error(err))
				collection = models.FailedCollection()
			}

			// An http source may point back at this server.
			var document repositories.Source
			if cfg.Source.Kind != "http" {
				document = source
			}

			blog := controllers.NewBlogController(controllers.BlogControllerConfig{
				Collection: collection,
				Store:      store,
				Renderer:   buildRenderer(cfg, logger),
				Document:   document,
				Logger:     logger.Named("http"),
			})
			return routes.StartServer(ctx, cfg.Server.Addr, routes.Setup(blog, cfg.Server.StaticDir, logger.Named("http")), logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
