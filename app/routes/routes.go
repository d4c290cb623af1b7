package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	"blogview/app/controllers"
	"blogview/app/middleware"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// DocumentPath is where the posts document is served.
const DocumentPath = "/content/blog/posts.json"

// Setup defines the application's routes and returns a router. A non-empty
// staticDir is served under /static/.
func Setup(blog *controllers.BlogController, staticDir string, logger *zap.Logger) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))

	// Serve static files
	if staticDir != "" {
		router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	}

	// Web routes
	if blog.BlogPath() != "/" {
		router.HandleFunc("/", blog.Index).Methods("GET")
	}
	router.HandleFunc(blog.BlogPath(), blog.Page).Methods("GET")
	router.HandleFunc("/posts/{slug}", blog.Show).Methods("GET")

	// The document is always read fresh
	router.Handle(DocumentPath, middleware.NoStore(http.HandlerFunc(blog.Document))).Methods("GET")

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)
	api.Use(middleware.NoStore)
	api.HandleFunc("/view", blog.View).Methods("GET")

	return router
}

// StartServer serves router on addr until ctx is done, then shuts down
// gracefully.
func StartServer(ctx context.Context, addr string, router http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
