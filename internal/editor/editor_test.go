package editor

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arcanaland/punchcard/internal/card"
	"github.com/arcanaland/punchcard/internal/layout"
	"github.com/arcanaland/punchcard/internal/render"
	"github.com/arcanaland/punchcard/internal/typeface"
)

type fakePrinter struct {
	err     error
	printed []card.Card
}

func (p *fakePrinter) Print(c card.Card) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.printed = append(p.printed, c)
	return "cards.pdf", nil
}

func newModel(t *testing.T, p Printer) Model {
	t.Helper()

	tf, err := typeface.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	t.Cleanup(tf.Close)
	return New(render.New(tf, layout.DefaultGeometry()), p, card.Card{})
}

func typeRunes(t *testing.T, m Model, runes ...rune) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: runes})
	return next.(Model)
}

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

func TestHeaderRejectsWideCharacter(t *testing.T) {
	m := newModel(t, &fakePrinter{})

	m = typeRunes(t, m, 200)
	if got := m.Card().Header; got != "" {
		t.Fatalf("header = %q, want rune 200 rejected", got)
	}
	if m.Warning() != card.Warning7Bit {
		t.Fatalf("warning = %q, want %q", m.Warning(), card.Warning7Bit)
	}
	if !strings.Contains(m.View(), card.Warning7Bit) {
		t.Fatal("view does not show the warning")
	}

	m = typeRunes(t, m, 'h', 'i')
	if got := m.Card().Header; got != "hi" {
		t.Fatalf("header = %q, want %q", got, "hi")
	}
	if m.Warning() != "" {
		t.Fatalf("warning = %q, want it cleared", m.Warning())
	}
}

func TestFooterAcceptsWideCharacter(t *testing.T) {
	m := newModel(t, &fakePrinter{})

	m, _ = press(t, m, tea.KeyTab)
	m = typeRunes(t, m, 'c', 'a', 'f', 'é')
	if got := m.Card().Footer; got != "café" {
		t.Fatalf("footer = %q, want %q", got, "café")
	}
	if m.Card().Header != "" {
		t.Fatalf("header = %q, want untouched", m.Card().Header)
	}
	if m.Warning() != "" {
		t.Fatalf("unexpected warning %q", m.Warning())
	}
}

func TestPrint(t *testing.T) {
	p := &fakePrinter{}
	m := newModel(t, p)
	m = typeRunes(t, m, 'a', '@', 'b')

	m, cmd := press(t, m, tea.KeyCtrlP)
	if cmd != nil {
		t.Fatal("print returned a command")
	}
	if len(p.printed) != 1 || p.printed[0].Header != "a@b" {
		t.Fatalf("printed = %v, want one job for a@b", p.printed)
	}
	if !strings.Contains(m.Status(), "cards.pdf") {
		t.Fatalf("status = %q", m.Status())
	}
}

func TestPrintFailureIsNotFatal(t *testing.T) {
	m := newModel(t, &fakePrinter{err: errors.New("spooler on fire")})

	m, cmd := press(t, m, tea.KeyCtrlP)
	if cmd != nil {
		t.Fatal("failed print returned a command")
	}
	if !strings.Contains(m.Status(), "spooler on fire") {
		t.Fatalf("status = %q, want the print error", m.Status())
	}

	m = typeRunes(t, m, 'o', 'k')
	if got := m.Card().Header; got != "ok" {
		t.Fatalf("header = %q after failed print, want editor still usable", got)
	}
}

func TestQuit(t *testing.T) {
	m := newModel(t, &fakePrinter{})

	_, cmd := press(t, m, tea.KeyCtrlC)
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c did not quit")
	}
}

func TestPasteFiltersHeader(t *testing.T) {
	m := newModel(t, &fakePrinter{})
	m.readClipboard = func() (string, error) {
		return "x" + string(rune(200)) + "y", nil
	}
	blank := m.preview

	m, cmd := press(t, m, tea.KeyCtrlV)
	if cmd == nil {
		t.Fatal("ctrl+v returned no command")
	}
	next, _ := m.Update(cmd())
	m = next.(Model)

	if got := m.Card().Header; got != "xy" {
		t.Fatalf("header = %q, want rune 200 dropped from the paste", got)
	}
	if m.Warning() != card.Warning7Bit {
		t.Fatalf("warning = %q, want %q", m.Warning(), card.Warning7Bit)
	}
	if m.preview == blank {
		t.Fatal("preview was not refreshed after the paste")
	}
}

func TestPasteIntoFooter(t *testing.T) {
	m := newModel(t, &fakePrinter{})
	m.readClipboard = func() (string, error) { return "café", nil }

	m, _ = press(t, m, tea.KeyTab)
	m, cmd := press(t, m, tea.KeyCtrlV)
	next, _ := m.Update(cmd())
	m = next.(Model)

	if got := m.Card().Footer; got != "café" {
		t.Fatalf("footer = %q, want %q", got, "café")
	}
}

func TestPasteFailureIsNotFatal(t *testing.T) {
	m := newModel(t, &fakePrinter{})
	m.readClipboard = func() (string, error) { return "", errors.New("no clipboard") }

	m, cmd := press(t, m, tea.KeyCtrlV)
	next, _ := m.Update(cmd())
	m = next.(Model)

	if !strings.Contains(m.Status(), "no clipboard") {
		t.Fatalf("status = %q, want the paste error", m.Status())
	}
	m = typeRunes(t, m, 'o', 'k')
	if got := m.Card().Header; got != "ok" {
		t.Fatalf("header = %q after failed paste, want editor still usable", got)
	}
}

type otherMsg struct{}

func TestHeaderFilteredOnAnyUpdate(t *testing.T) {
	m := newModel(t, &fakePrinter{})
	m.header.SetValue("a" + string(rune(200)) + "b")

	next, _ := m.Update(otherMsg{})
	m = next.(Model)

	if got := m.Card().Header; got != "ab" {
		t.Fatalf("header = %q, want rune 200 removed", got)
	}
	if m.Warning() != card.Warning7Bit {
		t.Fatalf("warning = %q, want %q", m.Warning(), card.Warning7Bit)
	}
}
