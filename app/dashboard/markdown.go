package dashboard

import (
	"bytes"
	"html/template"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown turns sheet text into sanitized HTML. Raw HTML in the source is
// dropped by goldmark and whatever survives passes through the UGC policy.
type Markdown struct {
	converter goldmark.Markdown
	policy    *bluemonday.Policy
}

func NewMarkdown() *Markdown {
	policy := bluemonday.UGCPolicy()
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &Markdown{
		converter: goldmark.New(goldmark.WithExtensions(extension.Linkify)),
		policy:    policy,
	}
}

func (m *Markdown) Render(source string) template.HTML {
	var buf bytes.Buffer
	if err := m.converter.Convert([]byte(source), &buf); err != nil {
		slog.Debug("Markdown conversion failed, falling back to plain text", "error", err)
		return template.HTML(template.HTMLEscapeString(source))
	}

	return template.HTML(m.policy.SanitizeBytes(buf.Bytes()))
}
