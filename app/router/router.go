package router

import (
	"context"

	"blogview/app/models"

	"go.uber.org/zap"
)

// Router drives the two render targets from navigation events.
type Router struct {
	loader   Loader
	store    Store
	renderer Renderer
	nav      Navigator
	featured Target
	grid     Target
	logger   *zap.Logger
}

// Config holds the collaborators of a Router.
type Config struct {
	Loader    Loader
	Store     Store
	Renderer  Renderer
	Navigator Navigator
	Featured  Target
	Grid      Target
	Logger    *zap.Logger
}

// New creates a Router.
func New(cfg Config) *Router {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		loader:   cfg.Loader,
		store:    cfg.Store,
		renderer: cfg.Renderer,
		nav:      cfg.Navigator,
		featured: cfg.Featured,
		grid:     cfg.Grid,
		logger:   logger,
	}
}

// Evaluate renders the view for the current fragment into both targets and
// clears the fragment if it named no post.
func (r *Router) Evaluate(c models.Collection) View {
	return r.apply(c, r.nav.Fragment())
}

func (r *Router) apply(c models.Collection, fragment string) View {
	v := Resolve(r.renderer, r.store, c, fragment)
	r.featured.SetContent(v.Featured)
	r.grid.SetContent(v.Grid)

	if v.ClearFragment {
		r.logger.Debug("unknown slug, returning to list", zap.String("fragment", fragment))
		r.nav.SetFragment("")
	}
	return v
}

// Run loads the collection once, renders the initial view, and then renders
// once per navigation event until the event stream ends or ctx is done.
//
// Run is a no-op when either target is missing. A load failure renders the
// failure view and returns without watching for navigation. The only errors
// Run returns come from ctx.
func (r *Router) Run(ctx context.Context) error {
	if r.featured == nil || r.grid == nil || r.nav == nil {
		r.logger.Debug("render target missing, router disabled")
		return nil
	}

	c, err := r.loader.Load(ctx)
	if err != nil {
		r.logger.Warn("posts could not be loaded", zap.Error(err))
		r.apply(models.FailedCollection(), "")
		return nil
	}

	// Watch before the first evaluation so a corrective clear arrives as an
	// event, the same as a browser's hashchange.
	events := r.nav.Watch(ctx)
	r.Evaluate(c)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fragment, ok := <-events:
			if !ok {
				return ctx.Err()
			}
			r.apply(c, fragment)
		}
	}
}
