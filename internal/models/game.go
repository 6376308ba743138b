package models

// DateLayout is the ISO 8601 calendar date format used for GameRecord.Date
const DateLayout = "2006-01-02"

// GameRecord represents one completed play session
type GameRecord struct {
	ID             int64
	Date           string
	Players        []string
	Winners        []string
	Scores         map[string]int
	KingdomCards   []string
	ExpansionsUsed []string
	Notes          string
}

// HasScore reports whether player has a score entry in this game
func (g *GameRecord) HasScore(player string) bool {
	_, ok := g.Scores[player]
	return ok
}

// UnscoredWinners returns the winners that have no entry in Scores
func (g *GameRecord) UnscoredWinners() []string {
	var missing []string
	for _, winner := range g.Winners {
		if !g.HasScore(winner) {
			missing = append(missing, winner)
		}
	}
	return missing
}

// KnownCard is an entry in the catalog of kingdom card names
type KnownCard struct {
	ID   int64
	Name string
}

// PlayerStats holds aggregate results for one player across all games
type PlayerStats struct {
	Player       string
	GamesPlayed  int
	Wins         int
	WinRate      float64 // percentage, 0-100
	AverageScore float64
	HighScore    int
}
