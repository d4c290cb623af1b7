package service

import (
	"io"
	"sync"

	"blogview/app/navigation"
	"blogview/app/router"
	"blogview/app/targets"

	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var fragment string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the view for one fragment to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nav := navigation.NewMemory(fragment)
			// A closed navigator yields exactly one evaluation.
			nav.Close()
			return runRouter(cmd, nav)
		},
	}

	cmd.Flags().StringVarP(&fragment, "fragment", "f", "", "navigation fragment, e.g. #hello-world")
	return cmd
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-render for every fragment read from stdin, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			nav := navigation.NewLines(cmd.InOrStdin(), app.Logger.Named("navigation"))
			return runRouter(cmd, nav)
		},
	}
}

func runRouter(cmd *cobra.Command, nav router.Navigator) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}
	cfg, logger := app.Config, app.Logger

	source, release, err := buildSource(cfg)
	if err != nil {
		return err
	}
	defer release()

	store := buildStore(cfg, source, logger)
	featured, grid := newWriterTargets(cmd.OutOrStdout())

	r := router.New(router.Config{
		Loader:    store,
		Store:     store,
		Renderer:  buildRenderer(cfg, logger),
		Navigator: nav,
		Featured:  featured,
		Grid:      grid,
		Logger:    logger.Named("router"),
	})
	if err := r.Run(cmd.Context()); err != nil {
		return err
	}
	if err := featured.Err(); err != nil {
		return err
	}
	return grid.Err()
}

func newWriterTargets(w io.Writer) (*targets.Writer, *targets.Writer) {
	var mu sync.Mutex
	return targets.NewWriter("blog-featured", w, &mu), targets.NewWriter("blog-grid", w, &mu)
}
