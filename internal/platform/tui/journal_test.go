package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-crossing/internal/storage"
)

func TestFormatJournal(t *testing.T) {
	entries := []storage.RoundEntry{
		{Session: "alice-1700000000000", Round: 2, Seed: 99, Layout: "AEE.EEE..", Outcome: "goal", Duration: 2500 * time.Millisecond},
		{Session: "bob", Round: 1, Seed: -4, Layout: "AEEEEE...", Outcome: "collision", Duration: 800 * time.Millisecond},
	}
	out := FormatJournal(entries, storage.Summary{Rounds: 2, Goals: 1, Collisions: 1, Sessions: 2})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected summary, header and 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if lines[0] != "2 rounds, 1 goals, 1 collisions, 2 sessions" {
		t.Errorf("summary line = %q", lines[0])
	}
	for _, want := range []string{"alice-170000000.", "AEE.EEE..", "goal", "2.5s", "99"} {
		if !strings.Contains(lines[2], want) {
			t.Errorf("row %q lacks %q", lines[2], want)
		}
	}
	if !strings.Contains(lines[3], "collision") || !strings.Contains(lines[3], "-4") {
		t.Errorf("row %q", lines[3])
	}
}

func TestFormatJournalEmpty(t *testing.T) {
	out := FormatJournal(nil, storage.Summary{})
	if out != "0 rounds, 0 goals, 0 collisions, 0 sessions\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in       string
		n        int
		expected string
	}{
		{"short", 16, "short"},
		{"exactly-sixteen!", 16, "exactly-sixteen!"},
		{"much-longer-than-sixteen", 16, "much-longer-tha."},
	}
	for _, tc := range tests {
		if got := truncate(tc.in, tc.n); got != tc.expected {
			t.Errorf("truncate(%q, %d) = %q, expected %q", tc.in, tc.n, got, tc.expected)
		}
	}
}

func TestJournalModelWithoutStore(t *testing.T) {
	m := NewJournalModel(nil, 120, 30)
	if !strings.Contains(m.View(), "No rounds recorded yet") {
		t.Errorf("expected the empty message:\n%s", m.View())
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if next.(JournalModel).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestJournalModelLoadsStore(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/journal.db")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m := NewJournalModel(store, 120, 30)
	if len(m.rounds) != 0 {
		t.Fatalf("fresh journal has %d rounds", len(m.rounds))
	}
	if !m.wide {
		t.Error("120 columns should show the seed")
	}
	if narrow := NewJournalModel(store, 80, 30); narrow.wide {
		t.Error("80 columns should hide the seed")
	}
}
