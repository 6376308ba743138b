package models

import (
	"fmt"
	"strings"
	"time"

	"dominionstats/internal/delimited"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a game before it is stored. Names may not contain the
// delimited encoding's separators, and every winner must have a score.
func (g *GameRecord) Validate() error {
	if _, err := time.Parse(DateLayout, g.Date); err != nil {
		return ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"}
	}

	if len(g.Players) == 0 {
		return ValidationError{Field: "players", Message: "at least one player is required"}
	}
	if err := validateNames("players", g.Players); err != nil {
		return err
	}

	if len(g.Winners) == 0 {
		return ValidationError{Field: "winners", Message: "at least one winner is required"}
	}
	if err := validateNames("winners", g.Winners); err != nil {
		return err
	}
	if dup := firstDuplicate(g.Winners); dup != "" {
		return ValidationError{Field: "winners", Message: fmt.Sprintf("%q is listed more than once", dup)}
	}

	if len(g.Scores) == 0 {
		return ValidationError{Field: "scores", Message: "at least one score is required"}
	}
	for name := range g.Scores {
		if err := ValidateName("scores", name); err != nil {
			return err
		}
	}

	if missing := g.UnscoredWinners(); len(missing) > 0 {
		return ValidationError{
			Field:   "winners",
			Message: fmt.Sprintf("winner has no score: %s", strings.Join(missing, ", ")),
		}
	}

	if len(g.KingdomCards) == 0 {
		return ValidationError{Field: "kingdom_cards", Message: "at least one kingdom card is required"}
	}
	if err := validateNames("kingdom_cards", g.KingdomCards); err != nil {
		return err
	}

	return validateNames("expansions_used", g.ExpansionsUsed)
}

// CheckNames applies the name rules of Validate to every element of the
// game without requiring any field to be present. Restored backups and
// legacy files are held to it so that every stored cell decodes again.
func (g *GameRecord) CheckNames() error {
	fields := []struct {
		name  string
		items []string
	}{
		{"players", g.Players},
		{"winners", g.Winners},
		{"kingdom_cards", g.KingdomCards},
		{"expansions_used", g.ExpansionsUsed},
	}
	for _, f := range fields {
		if err := validateNames(f.name, f.items); err != nil {
			return err
		}
	}
	for name := range g.Scores {
		if err := ValidateName("scores", name); err != nil {
			return err
		}
	}
	return nil
}

func firstDuplicate(names []string) string {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return name
		}
		seen[name] = true
	}
	return ""
}

func validateNames(field string, names []string) error {
	for _, name := range names {
		if err := ValidateName(field, name); err != nil {
			return err
		}
	}
	return nil
}

// ValidateName checks one name stored in a delimited cell or the card
// catalog. field is reported in the ValidationError.
func ValidateName(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return ValidationError{Field: field, Message: "names must not be empty"}
	}
	if name != strings.TrimSpace(name) {
		return ValidationError{Field: field, Message: fmt.Sprintf("%q must not begin or end with spaces", name)}
	}
	if delimited.ContainsSeparator(name) {
		return ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%q must not contain %q or %q", name, delimited.ListSeparator, delimited.ScoreSeparator),
		}
	}
	return nil
}
