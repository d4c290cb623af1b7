package markup

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
)

// Formatter turns a raw post body into trusted markup.
type Formatter interface {
	Format(raw string) string
}

// PassThrough returns bodies unchanged. Callers accept raw display.
type PassThrough struct{}

// Format implements Formatter.
func (PassThrough) Format(raw string) string { return raw }

// Markdown renders GitHub-flavoured Markdown and sanitizes the result.
type Markdown struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	logger *zap.Logger
}

// NewMarkdown builds a Markdown formatter. A nil logger is replaced by a no-op logger.
func NewMarkdown(logger *zap.Logger) *Markdown {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
			),
		),
		policy: newBodyPolicy(),
		logger: logger,
	}
}

// Format implements Formatter. A conversion error falls back to the raw body.
func (m *Markdown) Format(raw string) string {
	if raw == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(raw), &buf); err != nil {
		m.logger.Warn("markdown conversion failed", zap.Error(err))
		return raw
	}
	return m.policy.Sanitize(buf.String())
}

func newBodyPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span", "code")
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}
