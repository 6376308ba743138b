package service

import (
	"path/filepath"
	"testing"

	"dominionstats/internal/database"
	"dominionstats/internal/models"
	"dominionstats/internal/repository"
)

type testEnv struct {
	db       *database.DB
	tracker  *TrackerService
	backup   *BackupService
	gameRepo *repository.GameRepository
	cardRepo *repository.CardRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "games.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gameRepo := repository.NewGameRepository(db)
	cardRepo := repository.NewCardRepository(db)
	return &testEnv{
		db:       db,
		tracker:  NewTrackerService(db, gameRepo, cardRepo),
		backup:   NewBackupService(db, gameRepo, cardRepo),
		gameRepo: gameRepo,
		cardRepo: cardRepo,
	}
}

func baseGame() *models.GameRecord {
	return &models.GameRecord{
		Date:         "2024-05-01",
		Players:      []string{"A", "B"},
		Winners:      []string{"A"},
		Scores:       map[string]int{"A": 30, "B": 25},
		KingdomCards: []string{"Village", "Smithy", "Market"},
	}
}
