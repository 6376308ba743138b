// Package delimited encodes list and score fields of a game into single text
// cells and back.
//
// A list is its elements joined with ";". A score mapping is rendered as
// "name:value" entries joined with ";". Elements must not contain either
// separator or begin or end with whitespace; nothing here escapes them.
package delimited

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	// ListSeparator separates elements of a list cell and entries of a score cell
	ListSeparator = ";"
	// ScoreSeparator separates a player name from its score inside an entry
	ScoreSeparator = ":"
)

// DecodeError describes a cell entry that could not be decoded. It is
// non-fatal: the entry is skipped and the rest of the cell is kept.
type DecodeError struct {
	Field  string
	Value  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: cannot decode %q: %s", e.Field, e.Value, e.Reason)
}

// ContainsSeparator reports whether s contains a character reserved by the encoding
func ContainsSeparator(s string) bool {
	return strings.Contains(s, ListSeparator) || strings.Contains(s, ScoreSeparator)
}

// EncodeList joins items with ";"
func EncodeList(items []string) string {
	return strings.Join(items, ListSeparator)
}

// DecodeList splits a list cell and trims each element. An empty cell
// decodes to an empty list.
func DecodeList(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return []string{}
	}
	items := strings.Split(cell, ListSeparator)
	for i, item := range items {
		items[i] = strings.TrimSpace(item)
	}
	return items
}

// EncodeScores renders scores as "name:value" entries joined with ";".
// Entries follow order first; keys missing from order come after, sorted,
// so the same mapping always produces the same cell.
func EncodeScores(scores map[string]int, order []string) string {
	entries := make([]string, 0, len(scores))
	seen := make(map[string]bool, len(scores))

	for _, name := range order {
		score, ok := scores[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		entries = append(entries, name+ScoreSeparator+strconv.Itoa(score))
	}

	var rest []string
	for name := range scores {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		entries = append(entries, name+ScoreSeparator+strconv.Itoa(scores[name]))
	}

	return strings.Join(entries, ListSeparator)
}

// DecodeScores parses a score cell. Whitespace around names and values is
// ignored. Entries that are not exactly "name:integer" are skipped and
// reported as *DecodeError values; the remaining entries are still returned.
func DecodeScores(cell string) (map[string]int, []error) {
	scores := make(map[string]int)
	if cell == "" {
		return scores, nil
	}

	var errs []error
	for _, entry := range strings.Split(cell, ListSeparator) {
		parts := strings.Split(entry, ScoreSeparator)
		if len(parts) != 2 {
			errs = append(errs, &DecodeError{
				Field:  "scores",
				Value:  entry,
				Reason: fmt.Sprintf("expected exactly one %q", ScoreSeparator),
			})
			continue
		}

		name := strings.TrimSpace(parts[0])
		if name == "" {
			errs = append(errs, &DecodeError{Field: "scores", Value: entry, Reason: "missing player name"})
			continue
		}

		score, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			errs = append(errs, &DecodeError{Field: "scores", Value: entry, Reason: "score is not an integer"})
			continue
		}

		scores[name] = score
	}

	return scores, errs
}
