package main

import (
	"fmt"
	"strconv"
	"strings"

	"dominionstats/internal/models"
)

// gameInput holds the raw flag values of the record command
type gameInput struct {
	Date       string
	Players    string
	Winners    string
	Scores     string
	Cards      string
	Expansions string
	Notes      string
}

// parseGameInput turns comma-separated flag values into a game. Only the
// shape of the input is checked here; the game itself is validated when it
// is recorded.
func parseGameInput(in gameInput) (*models.GameRecord, error) {
	scores := make(map[string]int)
	for _, entry := range splitList(in.Scores) {
		name, value, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("score %q must look like Name:points", entry)
		}
		score, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("score for %s is not a whole number: %q", strings.TrimSpace(name), value)
		}
		scores[strings.TrimSpace(name)] = score
	}

	return &models.GameRecord{
		Date:           strings.TrimSpace(in.Date),
		Players:        splitList(in.Players),
		Winners:        splitList(in.Winners),
		Scores:         scores,
		KingdomCards:   splitList(in.Cards),
		ExpansionsUsed: splitList(in.Expansions),
		Notes:          strings.TrimSpace(in.Notes),
	}, nil
}

// splitList splits a comma-separated value, trimming spaces and dropping
// empty items
func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
