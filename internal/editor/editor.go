// Package editor is an interactive terminal editor for punch cards: two text
// fields, a live preview that redraws on every keystroke, and a print key.
package editor

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/arcanaland/punchcard/internal/card"
	"github.com/arcanaland/punchcard/internal/preview"
	"github.com/arcanaland/punchcard/internal/render"
)

// Printer runs one print job for a card and describes where it went.
type Printer interface {
	Print(c card.Card) (string, error)
}

type field int

const (
	headerField field = iota
	footerField
)

const defaultPreviewWidth = 80

// clipboardMsg carries pasted text back to the editor.
type clipboardMsg struct {
	text string
	err  error
}

// Model is the Bubble Tea model of the editor.
type Model struct {
	renderer      *render.Renderer
	printer       Printer
	styles        Styles
	readClipboard func() (string, error)

	header textinput.Model
	footer textinput.Model
	focus  field

	width     int
	preview   string
	pointSize int
	warning   string // cleared on the next keystroke
	status    string
	statusErr bool
}

// New creates an editor showing initial.
func New(r *render.Renderer, p Printer, initial card.Card) Model {
	header := textinput.New()
	header.Prompt = "Header: "
	header.Placeholder = "you@example.com"
	header.CharLimit = 0
	header.SetValue(initial.Header)
	header.Focus()

	footer := textinput.New()
	footer.Prompt = "Footer: "
	footer.Placeholder = "(optional)"
	footer.CharLimit = 0
	footer.SetValue(initial.Footer)

	m := Model{
		renderer:      r,
		printer:       p,
		styles:        DefaultStyles(),
		readClipboard: clipboard.ReadAll,
		header:        header,
		footer:        footer,
	}
	m.sanitizeHeader()
	m.refresh()
	return m
}

// Card is the card as currently typed.
func (m Model) Card() card.Card {
	return card.Card{Header: m.header.Value(), Footer: m.footer.Value()}
}

// Warning is the input warning currently shown, if any.
func (m Model) Warning() string {
	return m.warning
}

// Status is the result line of the last print.
func (m Model) Status() string {
	return m.status
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.header.Width = msg.Width - len(m.header.Prompt) - 1
		m.footer.Width = msg.Width - len(m.footer.Prompt) - 1
		m.refresh()
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Paste failed: %v", msg.err)
			m.statusErr = true
			return m, nil
		}
		return m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(msg.text), Paste: true})

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab", "up", "down":
			m.toggleFocus()
			return m, nil
		case "ctrl+p":
			m.print()
			return m, nil
		case "ctrl+v":
			return m, m.paste
		}
		return m.handleKey(msg)
	}

	before := m.Card()
	var cmd tea.Cmd
	if m.focus == headerField {
		m.header, cmd = m.header.Update(msg)
	} else {
		m.footer, cmd = m.footer.Update(msg)
	}
	if m.sanitizeHeader() || m.Card() != before {
		m.refresh()
	}
	return m, cmd
}

// paste reads the clipboard. The text goes through the same filter as typed
// runes when the resulting clipboardMsg arrives.
func (m Model) paste() tea.Msg {
	text, err := m.readClipboard()
	return clipboardMsg{text: text, err: err}
}

// handleKey filters typed runes before they reach the focused field: the
// header only takes 7-bit characters, and neither field takes control
// characters.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.warning = ""

	if msg.Type == tea.KeyRunes {
		if m.focus == headerField {
			msg.Runes, m.warning = card.FilterHeader(msg.Runes)
		} else {
			msg.Runes = card.FilterFooter(msg.Runes)
		}
		if len(msg.Runes) == 0 {
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == headerField {
		m.header, cmd = m.header.Update(msg)
	} else {
		m.footer, cmd = m.footer.Update(msg)
	}
	m.sanitizeHeader()
	m.refresh()
	return m, cmd
}

// sanitizeHeader removes anything the header field holds that it must not,
// however it got there, and reports whether the value changed.
func (m *Model) sanitizeHeader() bool {
	value := m.header.Value()
	kept, warning := card.FilterHeader([]rune(value))
	if string(kept) == value {
		return false
	}
	m.header.SetValue(string(kept))
	if warning != "" {
		m.warning = warning
	}
	return true
}

func (m *Model) toggleFocus() {
	if m.focus == headerField {
		m.focus = footerField
		m.header.Blur()
		m.footer.Focus()
	} else {
		m.focus = headerField
		m.footer.Blur()
		m.header.Focus()
	}
}

// refresh re-renders the card and its preview.
func (m *Model) refresh() {
	img, plan, err := m.renderer.Render(m.Card())
	if err != nil {
		m.status = fmt.Sprintf("Render failed: %v", err)
		m.statusErr = true
		return
	}

	cols := defaultPreviewWidth
	if m.width > 4 {
		cols = m.width - 4
	}
	m.preview = preview.ANSI(img, preview.FitWidth(img, cols))
	m.pointSize = plan.PointSize
}

// print runs a print job. Failures are reported in the status line and the
// editor stays usable.
func (m *Model) print() {
	where, err := m.printer.Print(m.Card())
	if err != nil {
		m.status = fmt.Sprintf("Print failed: %v", err)
		m.statusErr = true
		return
	}
	m.status = "Printed to " + where
	m.statusErr = false
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Punch Card Style Business Card Generator"))
	b.WriteString("\n\n")
	b.WriteString(m.header.View())
	b.WriteString("\n")
	if m.warning != "" {
		b.WriteString(m.styles.Warning.Render(m.warning))
	}
	b.WriteString("\n\n")

	b.WriteString(m.styles.Preview.Render(strings.TrimSuffix(m.preview, "\n")))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%dpt", m.pointSize)))
	b.WriteString("\n\n")

	b.WriteString(m.footer.View())
	b.WriteString("\n\n")

	if m.status != "" {
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.Error
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Muted.Render("tab switch field • ctrl+v paste • ctrl+p print • esc quit"))
	b.WriteString("\n")

	return b.String()
}

// Run starts the editor on the alternate screen and blocks until it exits.
func Run(m Model) error {
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running editor: %w", err)
	}
	return nil
}

// Styles holds the lipgloss styles of the editor.
type Styles struct {
	Title   lipgloss.Style
	Preview lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Status  lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultStyles returns the default style configuration.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")),
		Preview: lipgloss.NewStyle().
			Padding(0, 1),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")), // Amber
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("167")), // Muted red
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("71")), // Muted green
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}
