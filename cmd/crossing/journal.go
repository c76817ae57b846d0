package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-crossing/internal/platform/tui"
	"github.com/vovakirdan/tui-crossing/internal/storage"
)

var (
	flagPlain   bool
	flagLimit   int
	flagSession string
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show recently finished rounds",
	Long: `Display the round journal: how each round ended and the seed that
reproduces it.

Examples:
  crossing journal
  crossing journal --plain --limit 50
  crossing journal --plain --session local`,
	Args: cobra.NoArgs,
	RunE: runJournal,
}

func init() {
	journalCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print plain text instead of the interactive table")
	journalCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of rounds to print with --plain")
	journalCmd.Flags().StringVar(&flagSession, "session", "", "Only print rounds of this session with --plain")
}

func runJournal(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open journal: %w", err)
	}
	defer store.Close()

	if !flagPlain {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunJournal(store, width, height)
	}

	var entries []storage.RoundEntry
	if flagSession != "" {
		entries, err = store.SessionRounds(flagSession)
	} else {
		entries, err = store.RecentRounds(flagLimit)
	}
	if err != nil {
		return err
	}
	sum, err := store.Summarize()
	if err != nil {
		return err
	}

	fmt.Print(tui.FormatJournal(entries, sum))
	return nil
}
