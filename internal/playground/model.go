package playground

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/vikey/internal/config"
	"github.com/zjrosen/vikey/internal/log"
	"github.com/zjrosen/vikey/internal/registers"
	"github.com/zjrosen/vikey/internal/tracing"
	"github.com/zjrosen/vikey/vikey"
)

// Model is the Bubble Tea program that exercises a vikey.Parser against a
// real Document, the way termion.rs's main loop exercises the crate this
// module was built from against its own Editor.
type Model struct {
	parser   *vikey.Parser
	doc      *Document
	viewport viewport.Model
	styles   styles
	cfg      config.Config
	cfgPath  string
	tracer   *tracing.Provider
	watcher  *config.Watcher
	reload   <-chan struct{}

	width, height int
	quitting      bool
	showHelp      bool
}

// New builds a playground Model. bank may be nil, in which case Yank/Put
// are no-ops. tracer may be nil, in which case no spans are recorded.
// watcher and cfgPath may be nil/empty, in which case the config file is
// never watched and the playground only ever reflects the config it
// started with.
func New(cfg config.Config, cfgPath string, bank *registers.Bank, tracer *tracing.Provider, watcher *config.Watcher) Model {
	m := Model{
		parser:   vikey.NewParser(),
		doc:      NewDocument(nil, bank),
		viewport: viewport.New(0, 0),
		styles:   newStyles(cfg.Theme),
		cfg:      cfg,
		cfgPath:  cfgPath,
		tracer:   tracer,
		watcher:  watcher,
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	reload, err := m.watcher.Start()
	if err != nil {
		log.ErrorErr(log.CatWatcher, "failed to start config watcher", err)
		return nil
	}
	m.reload = reload
	return waitForReload(reload)
}

// reloadMsg signals that the config file changed on disk and should be
// re-applied to the running playground. It carries the watcher channel so
// Update can wait for the next change.
type reloadMsg struct{ ch <-chan struct{} }

func waitForReload(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if ch == nil {
			return nil
		}
		<-ch
		return reloadMsg{ch: ch}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		vpHeight := msg.Height
		if m.cfg.UI.ShowStatusBar {
			vpHeight--
		}
		if vpHeight < 0 {
			vpHeight = 0
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = vpHeight
		return m, nil
	case reloadMsg:
		m.reload = msg.ch
		m.reloadTheme()
		return m, waitForReload(m.reload)
	case tea.KeyMsg:
		if m.quitting {
			return m, nil
		}
		next := m.handleKey(msg)
		if next.quitting {
			return next, tea.Quit
		}
		return next, nil
	}
	return m, nil
}

// reloadTheme re-reads the theme section of the config file and restyles
// the running model, the live-reload path internal/config.Watcher exists to
// drive.
func (m *Model) reloadTheme() {
	if m.cfgPath == "" {
		return
	}
	theme, err := config.ReadTheme(m.cfgPath)
	if err != nil {
		log.ErrorErr(log.CatWatcher, "failed to reload theme from config", err, "path", m.cfgPath)
		return
	}
	if err := config.ValidateTheme(theme); err != nil {
		log.ErrorErr(log.CatWatcher, "ignoring invalid reloaded theme", err, "path", m.cfgPath)
		return
	}
	m.cfg.Theme = theme
	m.styles = newStyles(theme)
	log.Info(log.CatWatcher, "reloaded theme from config", "path", m.cfgPath)
}

func (m Model) handleKey(msg tea.KeyMsg) Model {
	key, isHardQuit := translateKey(msg)
	if isHardQuit {
		m.quitting = true
		return m
	}

	if m.parser.Mode.Kind == vikey.ModeNormal && msg.Type == tea.KeyRunes {
		switch string(msg.Runes) {
		case "?":
			m.showHelp = !m.showHelp
			return m
		case "Z":
			m.persistTheme()
			return m
		}
	}

	ctx := context.Background()
	modeBefore := modeName(m.parser.Mode)
	tracingOn := m.tracer != nil && m.tracer.Enabled()

	var parseSpan trace.Span
	if tracingOn {
		ctx, parseSpan = tracing.StartParseSpan(ctx, m.tracer.Tracer(), keyKindLabel(key), string(key.Rune))
	}

	var changeSpan trace.Span
	eventCount := 0

	m.parser.Parse(key, m.doc.Selection.Active, func(e vikey.Event) {
		log.Debug(log.CatParser, "event", "kind", e.String())
		eventCount++

		if tracingOn {
			switch e.Kind {
			case vikey.EventChangeStart:
				_, changeSpan = tracing.StartChangeSpan(ctx, m.tracer.Tracer())
			case vikey.EventChangeFinish:
				if changeSpan != nil {
					changeSpan.SetAttributes(attribute.Int(tracing.AttrEventCount, eventCount))
					changeSpan.End()
					changeSpan = nil
				}
			case vikey.EventYank, vikey.EventPut:
				_, regSpan := tracing.StartPutSpan(ctx, m.tracer.Tracer(), string(e.Register))
				regSpan.End()
			}
		}

		m.doc.Apply(e)
	})

	if tracingOn {
		modeAfter := modeName(m.parser.Mode)
		parseSpan.SetAttributes(
			attribute.String(tracing.AttrModeBefore, modeBefore),
			attribute.String(tracing.AttrModeAfter, modeAfter),
		)
		parseSpan.End()
	}

	m.ensureCursorVisible()
	return m
}

// ensureCursorVisible scrolls the viewport so the document's cursor line
// stays within the visible window, the way a real terminal editor keeps the
// cursor on-screen as it moves past the top or bottom edge.
func (m *Model) ensureCursorVisible() {
	if m.viewport.Height <= 0 {
		return
	}
	line := m.doc.Cursor.Line
	// YOffset is assigned directly: SetYOffset clamps against the viewport's
	// content, which is only filled in by View on its own copy.
	if line < m.viewport.YOffset {
		m.viewport.YOffset = line
	} else if line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.YOffset = line - m.viewport.Height + 1
	}
}

// persistTheme writes the running theme config back to disk via
// config.SaveTheme, the playground's one user-triggered persistence path
// (bound to "Z" in Normal mode, echoing vi's ZZ-family save bindings).
func (m *Model) persistTheme() {
	if m.cfgPath == "" {
		return
	}
	if err := config.SaveTheme(m.cfgPath, m.cfg.Theme); err != nil {
		log.ErrorErr(log.CatConfig, "failed to save theme", err, "path", m.cfgPath)
		return
	}
	log.Info(log.CatConfig, "saved theme", "path", m.cfgPath)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	for i, line := range m.doc.Lines {
		if m.cfg.UI.ShowLineNums {
			b.WriteString(m.styles.lineNumber.Render(fmt.Sprintf("%d", i+1)))
			b.WriteString(" ")
		}
		b.WriteString(m.renderLine(i, line))
		b.WriteString("\n")
	}
	m.viewport.SetContent(strings.TrimSuffix(b.String(), "\n"))

	var out strings.Builder
	out.WriteString(m.viewport.View())
	if m.cfg.UI.ShowStatusBar {
		out.WriteString("\n")
		out.WriteString(m.statusLine())
	}
	return out.String()
}

func (m Model) renderHelp() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	r, err := newHelpRenderer(width, m.cfg.Theme.Mode != "light")
	if err != nil {
		log.ErrorErr(log.CatUI, "failed to build help renderer", err)
		return helpMarkdown
	}
	out, err := r.Render()
	if err != nil {
		log.ErrorErr(log.CatUI, "failed to render help", err)
		return helpMarkdown
	}
	return out
}

func (m Model) renderLine(lineIdx int, line string) string {
	if !m.doc.Selection.Active {
		return line
	}
	start, end := m.doc.selectionBounds()
	if lineIdx < start.Line || lineIdx > end.Line {
		return line
	}

	runes := []rune(line)
	from, to := 0, len(runes)
	if !m.doc.Selection.Linewise {
		if lineIdx == start.Line {
			from = start.Col
		}
		if lineIdx == end.Line {
			to = min(end.Col+1, len(runes))
		}
	}
	if from > len(runes) {
		from = len(runes)
	}
	if to > len(runes) {
		to = len(runes)
	}
	if from >= to {
		return line
	}
	return string(runes[:from]) + m.styles.selection.Render(string(runes[from:to])) + string(runes[to:])
}

func (m Model) statusLine() string {
	modeLabel := modeName(m.parser.Mode)
	badge := m.styles.modeStyle(modeLabel).Render(modeLabel)

	pending := m.parser.Cmd.String()
	pos := fmt.Sprintf("%d:%d", m.doc.Cursor.Line+1, m.doc.Cursor.Col+1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		badge,
		m.styles.statusBar.Render(pending),
		m.styles.statusBar.Render(pos),
	)
}

// modeName maps a ViMode to the short label termion.rs's draw method shows
// on its own status line ("-- INSERT --" and friends, trimmed to a badge
// word here since the badge already carries a background color).
func modeName(mode vikey.ViMode) string {
	switch mode.Kind {
	case vikey.ModeNormal:
		return "Normal"
	case vikey.ModeVisual:
		return "Visual"
	case vikey.ModeVisualLine:
		return "VisualLine"
	case vikey.ModeExtra:
		return "Normal"
	case vikey.ModeInsert:
		return "Insert"
	case vikey.ModeReplace:
		return "Replace"
	case vikey.ModeCommand:
		return "Command"
	case vikey.ModeSearch:
		return "Search"
	default:
		return "?"
	}
}

func keyKindLabel(k vikey.Key) string {
	return k.String()
}

// translateKey maps a Bubble Tea key message onto vikey.Key, the way
// termion.rs's main loop maps termion::event::Key onto modit::Key.
// Ctrl-C is treated as a hard quit rather than handed to the parser.
func translateKey(msg tea.KeyMsg) (vikey.Key, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return vikey.Key{}, true
	case tea.KeyEsc:
		return vikey.Named(vikey.KeyEscape), false
	case tea.KeyEnter:
		return vikey.Named(vikey.KeyEnter), false
	case tea.KeyBackspace:
		return vikey.Named(vikey.KeyBackspace), false
	case tea.KeyDelete:
		return vikey.Named(vikey.KeyDelete), false
	case tea.KeyTab:
		return vikey.Named(vikey.KeyTab), false
	case tea.KeyShiftTab:
		return vikey.Named(vikey.KeyBacktab), false
	case tea.KeyUp:
		return vikey.Named(vikey.KeyUp), false
	case tea.KeyDown:
		return vikey.Named(vikey.KeyDown), false
	case tea.KeyLeft:
		return vikey.Named(vikey.KeyLeft), false
	case tea.KeyRight:
		return vikey.Named(vikey.KeyRight), false
	case tea.KeyHome:
		return vikey.Named(vikey.KeyHome), false
	case tea.KeyEnd:
		return vikey.Named(vikey.KeyEnd), false
	case tea.KeyPgUp:
		return vikey.Named(vikey.KeyPageUp), false
	case tea.KeyPgDown:
		return vikey.Named(vikey.KeyPageDown), false
	case tea.KeyRunes:
		if len(msg.Runes) > 0 {
			return vikey.Char(msg.Runes[0]), false
		}
	}
	return vikey.Key{}, false
}
