package repository

import (
	"bytes"
	"errors"
	"log"
	"reflect"
	"strings"
	"testing"

	"dominionstats/internal/database"
	"dominionstats/internal/models"
)

func sampleGame() *models.GameRecord {
	return &models.GameRecord{
		Date:           "2024-03-09",
		Players:        []string{"Alice", "Bob"},
		Winners:        []string{"Alice"},
		Scores:         map[string]int{"Alice": 30, "Bob": 25},
		KingdomCards:   []string{"Village", "Smithy", "Market", "Throne Room"},
		ExpansionsUsed: []string{},
		Notes:          "close one",
	}
}

func TestNextIDEmpty(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewGameRepository(db)

	id, err := repo.NextID()
	if err != nil {
		t.Fatalf("NextID() error = %v", err)
	}
	if id != 1 {
		t.Errorf("NextID() = %d, want 1", id)
	}
}

func TestSaveAssignsSequentialIDs(t *testing.T) {
	db, dbPath := newTestDB(t)
	repo := NewGameRepository(db)

	for want := int64(1); want <= 3; want++ {
		game := sampleGame()
		id, err := repo.Save(game)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if id != want || game.ID != want {
			t.Errorf("Save() id = %d (game.ID %d), want %d", id, game.ID, want)
		}
	}

	next, err := repo.NextID()
	if err != nil {
		t.Fatalf("NextID() error = %v", err)
	}
	if next != 4 {
		t.Errorf("NextID() after 3 saves = %d, want 4", next)
	}

	// Simulated restart
	db.Close()
	reopened, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer reopened.Close()

	next, err = NewGameRepository(reopened).NextID()
	if err != nil {
		t.Fatalf("NextID() after reopen error = %v", err)
	}
	if next != 4 {
		t.Errorf("NextID() after reopen = %d, want 4", next)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewGameRepository(db)

	first := sampleGame()
	second := &models.GameRecord{
		Date:           "2024-03-10",
		Players:        []string{"Zed", "Carol", "Bob"},
		Winners:        []string{"Carol", "Zed"},
		Scores:         map[string]int{"Zed": 41, "Carol": 41, "Bob": -3},
		KingdomCards:   []string{"Cellar", "Moat", "Witch"},
		ExpansionsUsed: []string{"Intrigue", "Seaside"},
	}

	for _, game := range []*models.GameRecord{first, second} {
		if _, err := repo.Save(game); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	games, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("LoadAll() returned %d games, want 2", len(games))
	}

	for i, want := range []*models.GameRecord{first, second} {
		if !reflect.DeepEqual(games[i], *want) {
			t.Errorf("game %d = %+v, want %+v", i, games[i], *want)
		}
	}
}

func TestSaveRejectsInvalidGame(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(g *models.GameRecord)
	}{
		{name: "winner without score", mutate: func(g *models.GameRecord) { g.Winners = []string{"Mallory"} }},
		{name: "repeated winner", mutate: func(g *models.GameRecord) { g.Winners = []string{g.Winners[0], g.Winners[0]} }},
		{name: "padded date", mutate: func(g *models.GameRecord) { g.Date = " " + g.Date }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, _ := newTestDB(t)
			repo := NewGameRepository(db)

			game := sampleGame()
			tt.mutate(game)

			_, err := repo.Save(game)
			var validationErr models.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("Save() error = %v, want ValidationError", err)
			}

			next, err := repo.NextID()
			if err != nil {
				t.Fatalf("NextID() error = %v", err)
			}
			if next != 1 {
				t.Errorf("rejected game was written: NextID() = %d", next)
			}
		})
	}
}

func TestSaveOnClosedDatabase(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewGameRepository(db)
	db.Close()

	_, err := repo.Save(sampleGame())
	var persistenceErr *PersistenceError
	if !errors.As(err, &persistenceErr) {
		t.Fatalf("Save() error = %v, want *PersistenceError", err)
	}
}

func TestInsertKeepsExplicitID(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewGameRepository(db)

	game := sampleGame()
	game.ID = 42
	if _, err := repo.Insert(game); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	exists, err := repo.Exists(42)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Error("Exists(42) = false after insert")
	}

	next, err := repo.NextID()
	if err != nil {
		t.Fatalf("NextID() error = %v", err)
	}
	if next != 43 {
		t.Errorf("NextID() = %d, want 43", next)
	}

	duplicate := sampleGame()
	duplicate.ID = 42
	if _, err := repo.Insert(duplicate); err == nil {
		t.Error("Insert() with a taken ID should fail")
	}
}

func TestLoadAllSkipsMalformedScores(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewGameRepository(db)

	_, err := db.Exec(
		"INSERT INTO games ("+gameColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		7, "2023-12-24", "A;B", "A", "A:30;B=25", "Village", "", "legacy row",
	)
	if err != nil {
		t.Fatalf("Failed to insert legacy row: %v", err)
	}

	var buf bytes.Buffer
	logger := log.Default()
	originalOutput := logger.Writer()
	logger.SetOutput(&buf)
	defer logger.SetOutput(originalOutput)

	games, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("LoadAll() returned %d games, want 1", len(games))
	}

	game := games[0]
	if !reflect.DeepEqual(game.Scores, map[string]int{"A": 30}) {
		t.Errorf("Scores = %v, want only A:30", game.Scores)
	}
	if !reflect.DeepEqual(game.Players, []string{"A", "B"}) {
		t.Errorf("Players = %v, want [A B]", game.Players)
	}
	if len(game.ExpansionsUsed) != 0 {
		t.Errorf("ExpansionsUsed = %v, want empty", game.ExpansionsUsed)
	}
	if game.Notes != "legacy row" {
		t.Errorf("Notes = %q", game.Notes)
	}

	logOutput := buf.String()
	if !strings.Contains(logOutput, "game 7") || !strings.Contains(logOutput, "B=25") {
		t.Errorf("expected decode warning in log, got %q", logOutput)
	}
}

func TestLoadAllEmpty(t *testing.T) {
	db, _ := newTestDB(t)

	games, err := NewGameRepository(db).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(games) != 0 {
		t.Errorf("LoadAll() returned %d games, want 0", len(games))
	}
}
