package playground

import (
	_ "embed"

	"github.com/charmbracelet/glamour"
)

//go:embed help.md
var helpMarkdown string

// noMarginStyle strips glamour's default document margin so the cheat
// sheet sits flush against the playground's own status bar layout.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// helpRenderer renders the embedded keybinding cheat sheet with glamour.
// The style follows WithAutoStyle's dark/light convention via an explicit style
// name rather than an OSC background query, avoiding the startup race a
// terminal query can cause with Bubble Tea's own input loop.
type helpRenderer struct {
	renderer *glamour.TermRenderer
}

func newHelpRenderer(width int, dark bool) (*helpRenderer, error) {
	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &helpRenderer{renderer: r}, nil
}

func (h *helpRenderer) Render() (string, error) {
	return h.renderer.Render(helpMarkdown)
}
