package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	r := NewRenderer()

	t.Run("BasicMarkdown", func(t *testing.T) {
		out, err := r.Render("This is **spam**.")
		assert.NoError(t, err)
		assert.Contains(t, out, "<strong>spam</strong>")
	})

	t.Run("ScriptStripped", func(t *testing.T) {
		out, err := r.Render(`Hello <script>alert("xss")</script> world`)
		assert.NoError(t, err)
		assert.NotContains(t, out, "<script")
	})

	t.Run("LinksSurviveSanitization", func(t *testing.T) {
		out, err := r.Render("See https://example.com for details.")
		assert.NoError(t, err)
		assert.Contains(t, out, `href="https://example.com"`)
	})

	t.Run("EventHandlersStripped", func(t *testing.T) {
		out, err := r.Render(`<img src="x" onerror="alert(1)">`)
		assert.NoError(t, err)
		assert.NotContains(t, out, "onerror")
	})
}
