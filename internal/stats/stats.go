// Package stats folds stored games into per-player aggregates. It does no I/O.
package stats

import (
	"fmt"
	"sort"

	"dominionstats/internal/models"
)

// Warning reports a winner that could not be credited because they have no
// score entry in the same game.
type Warning struct {
	GameID int64
	Player string
}

func (w Warning) String() string {
	return fmt.Sprintf("game %d: winner %q has no score, win not counted", w.GameID, w.Player)
}

// Result is the output of Compute
type Result struct {
	Players  map[string]models.PlayerStats
	Warnings []Warning
}

// SortedPlayers returns the player names in lexicographic order
func (r Result) SortedPlayers() []string {
	names := make([]string, 0, len(r.Players))
	for name := range r.Players {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sorted returns the player aggregates in lexicographic player order
func (r Result) Sorted() []models.PlayerStats {
	out := make([]models.PlayerStats, 0, len(r.Players))
	for _, name := range r.SortedPlayers() {
		out = append(out, r.Players[name])
	}
	return out
}

type tally struct {
	games int
	wins  int
	total int
	high  int
}

// Compute aggregates every player that has at least one score entry.
// A winner gets at most one win per game, and only for a game in which they
// also have a score; otherwise a Warning is recorded. Players who appear only as winners are
// left out of the result.
func Compute(games []models.GameRecord) Result {
	tallies := make(map[string]*tally)
	var warnings []Warning

	for _, game := range games {
		for player, score := range game.Scores {
			t, ok := tallies[player]
			if !ok {
				t = &tally{high: score}
				tallies[player] = t
			}
			t.games++
			t.total += score
			if score > t.high {
				t.high = score
			}
		}

		credited := make(map[string]bool, len(game.Winners))
		for _, winner := range game.Winners {
			if credited[winner] {
				continue
			}
			credited[winner] = true
			if !game.HasScore(winner) {
				warnings = append(warnings, Warning{GameID: game.ID, Player: winner})
				continue
			}
			tallies[winner].wins++
		}
	}

	players := make(map[string]models.PlayerStats, len(tallies))
	for name, t := range tallies {
		players[name] = summarize(name, t)
	}

	return Result{Players: players, Warnings: warnings}
}

func summarize(name string, t *tally) models.PlayerStats {
	ps := models.PlayerStats{
		Player:      name,
		GamesPlayed: t.games,
		Wins:        t.wins,
		HighScore:   t.high,
	}
	if t.games > 0 {
		ps.WinRate = float64(t.wins) / float64(t.games) * 100
		ps.AverageScore = float64(t.total) / float64(t.games)
	}
	return ps
}
