// Package search finds journal entries by text.
package search

import (
	"sort"
	"strings"

	"github.com/julianstephens/dailybloom/internal/models"
)

// Entries returns the entries whose content or habit notes contain term,
// ignoring case, newest first. A blank term matches nothing.
func Entries(entries map[string]models.JournalEntry, term string) []models.JournalEntry {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return nil
	}

	var results []models.JournalEntry
	for _, e := range entries {
		if matches(e, needle) {
			results = append(results, e)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Date > results[j].Date
	})
	return results
}

func matches(e models.JournalEntry, needle string) bool {
	if strings.Contains(strings.ToLower(e.Content), needle) {
		return true
	}
	for _, log := range e.Habits {
		if strings.Contains(strings.ToLower(log.Note), needle) {
			return true
		}
	}
	return false
}

// Snippet returns up to width runes of content centred on the first match of term.
func Snippet(content, term string, width int) string {
	runes := []rune(strings.ReplaceAll(content, "\n", " "))
	if len(runes) <= width {
		return string(runes)
	}

	start := 0
	lower := []rune(strings.ToLower(string(runes)))
	if idx := indexRunes(lower, []rune(strings.ToLower(strings.TrimSpace(term)))); idx > width/2 {
		start = idx - width/2
	}
	if start+width > len(runes) {
		start = len(runes) - width
	}

	out := string(runes[start : start+width])
	if start > 0 {
		out = "…" + out
	}
	if start+width < len(runes) {
		out += "…"
	}
	return out
}

func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 {
		return -1
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j := range needle {
			if haystack[i+j] != needle[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}
