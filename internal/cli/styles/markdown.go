package styles

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// MarkdownWidth is the wrap width used for minutes and task descriptions.
const MarkdownWidth = 80

var rendererCache sync.Map // map[int]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache.Store(width, renderer)
	return renderer, nil
}

// Markdown renders text for the terminal. If rendering fails the text is
// returned unchanged.
func Markdown(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	renderer, err := getRenderer(width)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}
