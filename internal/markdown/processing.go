package markdown

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// TextProcessor renders seller-authored product descriptions. Descriptions
// arrive from the backend as markdown and may contain arbitrary user input,
// so the rendered HTML is always sanitized before it reaches a template.
type TextProcessor struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *TextProcessor {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough, extension.Table),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)

	return &TextProcessor{md: md, policy: policy}
}

// ProcessDescription converts a markdown description to sanitized HTML.
// On a markdown conversion failure the raw text is sanitized and returned
// as-is rather than dropping the description.
func (tp *TextProcessor) ProcessDescription(text string) template.HTML {
	rendered, err := tp.renderText(text)
	if err != nil {
		rendered = text
	}
	return template.HTML(tp.policy.Sanitize(rendered))
}

func (tp *TextProcessor) renderText(text string) (string, error) {
	var buf bytes.Buffer
	if err := tp.md.Convert([]byte(text), &buf); err != nil {
		return text, err
	}
	return strings.TrimSpace(buf.String()), nil
}
