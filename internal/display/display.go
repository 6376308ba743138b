// Package display renders games and player statistics as console text
package display

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"dominionstats/internal/models"
	"dominionstats/internal/stats"
)

// PrintGames writes every game in a readable block format
func PrintGames(w io.Writer, games []models.GameRecord) {
	if len(games) == 0 {
		fmt.Fprintln(w, "No games recorded yet.")
		return
	}

	for _, game := range games {
		fmt.Fprintf(w, "Game ID: %d\n", game.ID)
		fmt.Fprintf(w, "  Date: %s\n", game.Date)
		fmt.Fprintf(w, "  Players: %s\n", strings.Join(game.Players, ", "))
		fmt.Fprintf(w, "  Winners: %s\n", strings.Join(game.Winners, ", "))
		fmt.Fprintln(w, "  Scores:")
		for _, player := range scoreOrder(game) {
			fmt.Fprintf(w, "    - %s: %d\n", player, game.Scores[player])
		}
		fmt.Fprintf(w, "  Kingdom Cards: %s\n", strings.Join(game.KingdomCards, ", "))
		fmt.Fprintf(w, "  Expansions: %s\n", joinOrNone(game.ExpansionsUsed))
		fmt.Fprintf(w, "  Notes: %s\n", game.Notes)
		fmt.Fprintln(w, strings.Repeat("-", 30))
	}
}

// PrintPlayerStats writes one table row per player in name order
func PrintPlayerStats(w io.Writer, result stats.Result) {
	if len(result.Players) == 0 {
		fmt.Fprintln(w, "No player data found.")
		return
	}

	fmt.Fprintf(w, "%-20s | %5s | %4s | %8s | %7s | %4s\n", "Player", "Games", "Wins", "Win %", "Avg", "High")
	fmt.Fprintf(w, "%-20s | %5s | %4s | %8s | %7s | %4s\n",
		strings.Repeat("-", 20), strings.Repeat("-", 5), strings.Repeat("-", 4),
		strings.Repeat("-", 8), strings.Repeat("-", 7), strings.Repeat("-", 4))

	for _, ps := range result.Sorted() {
		fmt.Fprintf(w, "%-20s | %5d | %4d | %7.2f%% | %7.2f | %4d\n",
			ps.Player, ps.GamesPlayed, ps.Wins, ps.WinRate, ps.AverageScore, ps.HighScore)
	}
}

// PrintCards writes the catalog, one name per line
func PrintCards(w io.Writer, cards []string) {
	if len(cards) == 0 {
		fmt.Fprintln(w, "No known cards.")
		return
	}
	for _, name := range cards {
		fmt.Fprintln(w, name)
	}
}

// scoreOrder lists scored players in seating order, then anyone else
func scoreOrder(game models.GameRecord) []string {
	order := make([]string, 0, len(game.Scores))
	seen := make(map[string]bool, len(game.Scores))
	for _, player := range game.Players {
		if game.HasScore(player) && !seen[player] {
			seen[player] = true
			order = append(order, player)
		}
	}
	var rest []string
	for player := range game.Scores {
		if !seen[player] {
			rest = append(rest, player)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
