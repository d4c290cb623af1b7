package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"blogview/app/models"
	"blogview/app/repositories"
	"blogview/app/router"
	"blogview/app/views"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// BlogController serves the blog page, its view API and the no-script post
// pages from one loaded collection.
type BlogController struct {
	collection models.Collection
	store      router.Store
	renderer   *views.Renderer
	document   repositories.Source
	title      string
	logger     *zap.Logger
}

// BlogControllerConfig holds the collaborators of a BlogController.
type BlogControllerConfig struct {
	Collection models.Collection
	Store      router.Store
	Renderer   *views.Renderer
	// Document serves /content/blog/posts.json. Nil disables the route.
	Document repositories.Source
	Title    string
	Logger   *zap.Logger
}

// NewBlogController creates a new BlogController
func NewBlogController(cfg BlogControllerConfig) *BlogController {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = views.NewRenderer()
	}
	title := cfg.Title
	if title == "" {
		title = "Blog"
	}
	return &BlogController{
		collection: cfg.Collection,
		store:      cfg.Store,
		renderer:   renderer,
		document:   cfg.Document,
		title:      title,
		logger:     logger,
	}
}

// BlogPath returns the path the page shell is served at.
func (bc *BlogController) BlogPath() string {
	return bc.renderer.BlogPath()
}

// Index redirects to the blog page.
func (bc *BlogController) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, bc.renderer.BlogPath(), http.StatusFound)
}

// Page serves the blog shell. The list view is rendered in place and the
// relay script takes over from the fragment once the page loads.
func (bc *BlogController) Page(w http.ResponseWriter, r *http.Request) {
	v := router.Resolve(bc.renderer, bc.store, bc.collection, "")
	bc.sendHTML(w, bc.renderer.Page(views.PageData{
		Title:    bc.title,
		Featured: v.Featured,
		Grid:     v.Grid,
		Script:   true,
	}))
}

// View resolves the fragment query parameter to the markup of both render
// areas.
func (bc *BlogController) View(w http.ResponseWriter, r *http.Request) {
	fragment := r.URL.Query().Get("fragment")
	v := router.Resolve(bc.renderer, bc.store, bc.collection, fragment)
	bc.logger.Debug("view resolved",
		zap.String("fragment", fragment),
		zap.Stringer("state", v.State),
		zap.Bool("clear_fragment", v.ClearFragment),
	)
	bc.sendJSON(w, v)
}

// Document serves the raw posts document from the configured source.
func (bc *BlogController) Document(w http.ResponseWriter, r *http.Request) {
	if bc.document == nil {
		bc.sendError(w, r, "Not found", http.StatusNotFound)
		return
	}

	data, err := bc.document.Fetch(r.Context())
	if errors.Is(err, repositories.ErrNotFound) {
		bc.sendError(w, r, "Posts document not found", http.StatusNotFound)
		return
	}
	if err != nil {
		bc.logger.Error("failed to read posts document", zap.Error(err))
		bc.sendError(w, r, "Failed to read posts document", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// Show serves a single post as a complete page without the relay script.
func (bc *BlogController) Show(w http.ResponseWriter, r *http.Request) {
	if bc.collection.Failed() {
		bc.sendError(w, r, "Could not load posts.", http.StatusServiceUnavailable)
		return
	}

	slug := mux.Vars(r)["slug"]
	post, ok := bc.store.FindBySlug(bc.collection, slug)
	if !ok {
		bc.sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}

	bc.sendHTML(w, bc.renderer.Page(views.PageData{
		Title: post.Title,
		Grid:  bc.renderer.Full(post),
	}))
}

// Helper methods for consistent response handling

func (bc *BlogController) sendHTML(w http.ResponseWriter, page string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

func (bc *BlogController) sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		bc.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (bc *BlogController) sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	accept := r.Header.Get("Accept")
	if accept == "application/json" || strings.HasPrefix(r.URL.Path, "/api/") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
	} else {
		http.Error(w, message, status)
	}
}
