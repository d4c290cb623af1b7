package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"blogview/app/controllers"
	"blogview/app/repositories/mock"
	"blogview/app/services"
	"blogview/app/views"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const testDocument = `{"posts":[{"title":"Hello, World!","date":"2024-01-01","body":"<p>hi</p>"}]}`

func setupTestRouter(t *testing.T, blogPath, staticDir string) (http.Handler, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	source := mock.NewSource(testDocument)
	store := services.NewPostStore(source)
	c, err := store.Load(context.Background())
	require.NoError(t, err)

	blog := controllers.NewBlogController(controllers.BlogControllerConfig{
		Collection: c,
		Store:      store,
		Renderer:   views.NewRenderer(views.WithBlogPath(blogPath)),
		Document:   source,
		Logger:     logger,
	})
	return Setup(blog, staticDir, logger), logs
}

func TestSetup(t *testing.T) {
	router, logs := setupTestRouter(t, "/news.html", "")

	tests := []struct {
		name         string
		method       string
		path         string
		status       int
		contentType  string
		cacheControl string
	}{
		{name: "root", method: "GET", path: "/", status: http.StatusFound},
		{name: "blog page", method: "GET", path: "/news.html", status: http.StatusOK, contentType: "text/html; charset=utf-8"},
		{name: "default blog path not served", method: "GET", path: "/blog.html", status: http.StatusNotFound},
		{name: "view api", method: "GET", path: "/api/view?fragment=hello-world", status: http.StatusOK, contentType: "application/json", cacheControl: "no-store"},
		{name: "document", method: "GET", path: DocumentPath, status: http.StatusOK, contentType: "application/json", cacheControl: "no-store"},
		{name: "post page", method: "GET", path: "/posts/hello-world", status: http.StatusOK, contentType: "text/html; charset=utf-8"},
		{name: "unknown post", method: "GET", path: "/posts/missing", status: http.StatusNotFound},
		{name: "wrong method", method: "POST", path: "/api/view", status: http.StatusMethodNotAllowed},
		{name: "static disabled", method: "GET", path: "/static/style.css", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.contentType != "" {
				assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
			}
			if tt.cacheControl != "" {
				assert.Equal(t, tt.cacheControl, w.Header().Get("Cache-Control"))
			}
		})
	}

	t.Run("root redirects to configured path", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, "/news.html", w.Header().Get("Location"))
	})

	requests := logs.FilterMessage("request")
	assert.GreaterOrEqual(t, requests.Len(), 6)
}

func TestSetupRootBlogPath(t *testing.T) {
	router, _ := setupTestRouter(t, "/", "")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
	assert.Contains(t, w.Body.String(), "Hello, World!")
}

func TestStaticFiles(t *testing.T) {
	staticDir := t.TempDir()
	cssContent := "body { background: #f0f0f0; }"
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "style.css"), []byte(cssContent), 0644))
	router, _ := setupTestRouter(t, "/blog.html", staticDir)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/static/style.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, cssContent, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/static/missing.css", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStartServer(t *testing.T) {
	router, _ := setupTestRouter(t, "/blog.html", "")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- StartServer(ctx, "127.0.0.1:0", router, zap.NewNop()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
