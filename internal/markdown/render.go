package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts user-submitted markdown bodies into sanitized HTML.
// Flags and applications store both the raw source and the rendered output.
type Renderer struct {
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Linkify),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Render converts raw markdown to sanitized HTML. Script and unsafe markup
// are stripped, never escaped back to the caller.
func (r *Renderer) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown conversion failed: %w", err)
	}
	return r.sanitizer.Sanitize(buf.String()), nil
}
