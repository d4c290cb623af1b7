package service

import (
	"fmt"

	"blogview/app/config"
	"blogview/app/markup"
	"blogview/app/repositories"
	"blogview/app/services"
	"blogview/app/views"

	"go.uber.org/zap"
)

// buildSource returns the configured posts source and a func releasing it.
func buildSource(cfg *config.Config) (repositories.Source, func(), error) {
	switch cfg.Source.Kind {
	case "http":
		return repositories.NewHTTPSource(cfg.Source.URL, cfg.Source.Timeout), func() {}, nil
	case "file":
		return repositories.NewFileSource(cfg.Source.Path), func() {}, nil
	case "badger":
		db, err := repositories.OpenBadger(cfg.Store.Dir)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewBadgerDocumentRepository(db), func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}

func buildStore(cfg *config.Config, source repositories.Source, logger *zap.Logger) *services.PostStore {
	return services.NewPostStore(source,
		services.WithMissingDatePolicy(services.MissingDatePolicy(cfg.Sort.MissingDates)),
		services.WithLogger(logger.Named("store")),
	)
}

func buildRenderer(cfg *config.Config, logger *zap.Logger) *views.Renderer {
	opts := []views.Option{
		views.WithBlogPath(cfg.Site.BlogPath),
		views.WithBackLabel(cfg.Site.BackLabel),
		views.WithLocale(cfg.Site.Locale),
		views.WithLogger(logger.Named("views")),
	}
	if cfg.Render.Markdown {
		opts = append(opts, views.WithFormatter(markup.NewMarkdown(logger.Named("markdown"))))
	}
	return views.NewRenderer(opts...)
}
