package playground

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/vikey/internal/config"
)

// styles holds the lipgloss styles the model renders with. It is rebuilt
// whenever the theme config changes, rather than read fresh on every frame.
type styles struct {
	statusBar  lipgloss.Style
	modeNormal lipgloss.Style
	modeInsert lipgloss.Style
	modeVisual lipgloss.Style
	modeOther  lipgloss.Style
	selection  lipgloss.Style
	lineNumber lipgloss.Style
}

func newStyles(theme config.ThemeConfig) styles {
	dark := theme.Mode != "light"

	bg := lipgloss.Color("235")
	fg := lipgloss.Color("252")
	if !dark {
		bg = lipgloss.Color("253")
		fg = lipgloss.Color("235")
	}

	base := lipgloss.NewStyle().Background(bg).Foreground(fg)

	return styles{
		statusBar:  base.Padding(0, 1),
		modeNormal: base.Background(lipgloss.Color("24")).Bold(true).Padding(0, 1),
		modeInsert: base.Background(lipgloss.Color("28")).Bold(true).Padding(0, 1),
		modeVisual: base.Background(lipgloss.Color("130")).Bold(true).Padding(0, 1),
		modeOther:  base.Background(lipgloss.Color("238")).Bold(true).Padding(0, 1),
		selection:  lipgloss.NewStyle().Reverse(true),
		lineNumber: lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Width(4).Align(lipgloss.Right),
	}
}

func (s styles) modeStyle(label string) lipgloss.Style {
	switch label {
	case "Normal":
		return s.modeNormal
	case "Insert", "Replace":
		return s.modeInsert
	case "Visual", "VisualLine":
		return s.modeVisual
	default:
		return s.modeOther
	}
}
