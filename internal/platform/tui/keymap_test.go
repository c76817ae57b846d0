package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-crossing/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapMapKey(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"w", runeKey('w'), core.ActionUp},
		{"a", runeKey('a'), core.ActionLeft},
		{"s", runeKey('s'), core.ActionDown},
		{"d", runeKey('d'), core.ActionRight},
		{"k", runeKey('k'), core.ActionUp},
		{"h", runeKey('h'), core.ActionLeft},
		{"j", runeKey('j'), core.ActionDown},
		{"l", runeKey('l'), core.ActionRight},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"help", runeKey('?'), core.ActionHelp},
		{"unbound", runeKey('x'), core.ActionNone},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.MapKey(tc.msg); got != tc.expected {
				t.Errorf("MapKey(%q) = %s, expected %s", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) != 6 {
		t.Errorf("ShortHelp() has %d bindings, expected 6", len(km.ShortHelp()))
	}
	total := 0
	for _, col := range km.FullHelp() {
		total += len(col)
	}
	if total != 6 {
		t.Errorf("FullHelp() has %d bindings, expected 6", total)
	}
}

func TestShortHelpKeepsQuitOnNarrowTerminals(t *testing.T) {
	km := DefaultKeyMap()
	for _, width := range []int{40, 60, 80} {
		h := help.New()
		h.Width = width
		view := h.View(km)
		if !strings.Contains(view, "quit") || !strings.Contains(view, "more keys") {
			t.Errorf("width %d: short help %q hides help or quit", width, view)
		}
	}
}
