// Package views renders posts into markup fragments.
package views

import (
	"embed"
	"encoding/json"
	"strings"
	"text/template"
	"time"

	"blogview/app/markup"
	"blogview/app/models"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("views").
		Funcs(template.FuncMap{"escape": markup.Escape}).
		ParseFS(templateFS, "templates/*.tmpl"),
)

const (
	DefaultBlogPath  = "/blog.html"
	DefaultBackLabel = "← Back to Resource Center"
	DefaultViewPath  = "/api/view"
)

var supportedLocales = []language.Tag{
	language.English,
	language.Japanese,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// Renderer produces markup fragments for posts. It holds configuration only,
// so every method is a pure function of its arguments.
type Renderer struct {
	blogPath  string
	backLabel string
	locale    language.Tag
	formatter markup.Formatter
	logger    *zap.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithBlogPath sets the page that post links point at.
func WithBlogPath(path string) Option {
	return func(r *Renderer) {
		if path != "" {
			r.blogPath = path
		}
	}
}

// WithBackLabel sets the label of the full view's back link.
func WithBackLabel(label string) Option {
	return func(r *Renderer) {
		if label != "" {
			r.backLabel = label
		}
	}
}

// WithLocale sets the date locale, e.g. "en-US" or "ja". Unsupported
// locales fall back to the closest supported one.
func WithLocale(locale string) Option {
	return func(r *Renderer) {
		r.locale = matchLocale(locale)
	}
}

// WithFormatter sets the body formatter.
func WithFormatter(f markup.Formatter) Option {
	return func(r *Renderer) {
		if f != nil {
			r.formatter = f
		}
	}
}

// WithLogger sets the renderer logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer creates a Renderer. Bodies pass through unchanged unless a
// formatter is supplied.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		blogPath:  DefaultBlogPath,
		backLabel: DefaultBackLabel,
		locale:    language.English,
		formatter: markup.PassThrough{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BlogPath returns the page that post links point at.
func (r *Renderer) BlogPath() string {
	return r.blogPath
}

// Lang returns the BCP 47 tag of the date locale.
func (r *Renderer) Lang() string {
	base, _ := r.locale.Base()
	return base.String()
}

type entryData struct {
	Post models.Post
	Link string
	Date string
}

type fullData struct {
	Post      models.Post
	Date      string
	Body      string
	BlogPath  string
	BackLabel string
}

// Link returns the list-page link that opens p.
func (r *Renderer) Link(p models.Post) string {
	return markup.Escape(r.blogPath) + "#" + p.Key()
}

// Featured renders the highlighted layout used for the most recent post.
func (r *Renderer) Featured(p models.Post) string {
	return r.execute("featured", entryData{Post: p, Link: r.Link(p), Date: r.FormatDate(p.Date)})
}

// Card renders the compact grid layout.
func (r *Renderer) Card(p models.Post) string {
	return r.execute("card", entryData{Post: p, Link: r.Link(p), Date: r.FormatDate(p.Date)})
}

// Full renders the single-post view. The body goes through the formatter
// and is never escaped.
func (r *Renderer) Full(p models.Post) string {
	return r.execute("full", fullData{
		Post:      p,
		Date:      r.FormatDate(p.Date),
		Body:      r.formatter.Format(p.Body),
		BlogPath:  r.blogPath,
		BackLabel: r.backLabel,
	})
}

// EmptyList renders the featured-area placeholder for an empty collection.
func (r *Renderer) EmptyList() string {
	return r.execute("empty-list", nil)
}

// EmptyGrid renders the grid placeholder when no posts follow the featured one.
func (r *Renderer) EmptyGrid() string {
	return r.execute("empty-grid", nil)
}

// LoadFailure renders the placeholder shown when the posts could not be loaded.
func (r *Renderer) LoadFailure() string {
	return r.execute("load-failure", nil)
}

// PageData fills the page shell.
type PageData struct {
	Title    string
	Featured string
	Grid     string
	// Script enables the fragment relay that asks ViewPath for each view.
	Script   bool
	ViewPath string
}

// Page renders a complete HTML document around the two render areas.
func (r *Renderer) Page(d PageData) string {
	if d.ViewPath == "" {
		d.ViewPath = DefaultViewPath
	}
	failure, _ := json.Marshal(r.LoadFailure())
	return r.execute("page", struct {
		PageData
		Lang      string
		FailureJS string
	}{PageData: d, Lang: r.Lang(), FailureJS: string(failure)})
}

// FormatDate renders d in the long localized form, e.g. "January 5, 2024".
// Absent or unparseable dates render as "".
func (r *Renderer) FormatDate(d models.Date) string {
	t, ok := d.Time()
	if !ok {
		return ""
	}
	return formatLong(t, r.locale)
}

func formatLong(t time.Time, tag language.Tag) string {
	switch base, _ := tag.Base(); base.String() {
	case "ja":
		return t.Format("2006年1月2日")
	default:
		return t.Format("January 2, 2006")
	}
}

func matchLocale(locale string) language.Tag {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return language.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	_, idx, _ := localeMatcher.Match(tag)
	return supportedLocales[idx]
}

func (r *Renderer) execute(name string, data any) string {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name, data); err != nil {
		r.logger.Error("template execution failed", zap.String("template", name), zap.Error(err))
		return ""
	}
	return sb.String()
}
