package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"dominionstats/internal/database"
	"dominionstats/internal/models"
	"dominionstats/internal/repository"
	"dominionstats/internal/stats"
)

// ErrUnknownCards is returned by RecordGame when kingdom cards are missing
// from the catalog and the caller did not allow them.
var ErrUnknownCards = errors.New("unknown kingdom cards")

// RecordOptions controls the advisory catalog check in RecordGame
type RecordOptions struct {
	// AllowUnknownCards records the game even if some cards are not in the catalog
	AllowUnknownCards bool
	// AddUnknownCards also adds those cards to the catalog
	AddUnknownCards bool
}

// RecordResult describes a recorded game
type RecordResult struct {
	GameID       int64
	UnknownCards []string
}

// TrackerService records games and computes player statistics
type TrackerService struct {
	db       *database.DB
	gameRepo *repository.GameRepository
	cardRepo *repository.CardRepository
}

// NewTrackerService creates a new tracker service
func NewTrackerService(db *database.DB, gameRepo *repository.GameRepository, cardRepo *repository.CardRepository) *TrackerService {
	return &TrackerService{
		db:       db,
		gameRepo: gameRepo,
		cardRepo: cardRepo,
	}
}

// Initialize makes sure the schema exists and, when seedCatalog is set,
// fills an empty catalog with the base set. Safe to call on every start.
func (s *TrackerService) Initialize(seedCatalog bool) error {
	if err := s.db.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if !seedCatalog {
		return nil
	}

	added, err := s.cardRepo.SeedCatalogIfEmpty(BaseSetKingdomCards)
	if err != nil {
		return err
	}
	if added > 0 {
		log.Printf("Seeded card catalog with %d base set cards", added)
	}
	return nil
}

// NextGameID returns the ID the next recorded game will get
func (s *TrackerService) NextGameID() (int64, error) {
	return s.gameRepo.NextID()
}

// RecordGame validates and stores a game. Kingdom cards that are not in the
// catalog are logged; unless opts allows them the game is refused with
// ErrUnknownCards.
func (s *TrackerService) RecordGame(game *models.GameRecord, opts RecordOptions) (*RecordResult, error) {
	if err := game.Validate(); err != nil {
		return nil, err
	}

	unknown, err := s.cardRepo.UnknownCards(game.KingdomCards)
	if err != nil {
		return nil, err
	}

	if len(unknown) > 0 {
		log.Printf("Warning: cards not in catalog: %s", strings.Join(unknown, ", "))
		if !opts.AllowUnknownCards && !opts.AddUnknownCards {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCards, strings.Join(unknown, ", "))
		}
	}

	id, err := s.gameRepo.Save(game)
	if err != nil {
		return nil, err
	}

	if opts.AddUnknownCards {
		for _, name := range unknown {
			if _, err := s.cardRepo.AddKnownCard(name); err != nil {
				return nil, fmt.Errorf("game %d saved but failed to add card %q: %w", id, name, err)
			}
		}
	}

	return &RecordResult{GameID: id, UnknownCards: unknown}, nil
}

// Games returns every recorded game in the order it was recorded
func (s *TrackerService) Games() ([]models.GameRecord, error) {
	return s.gameRepo.LoadAll()
}

// PlayerStats loads all games and aggregates them per player.
// Winners that could not be credited are logged.
func (s *TrackerService) PlayerStats() (stats.Result, error) {
	games, err := s.gameRepo.LoadAll()
	if err != nil {
		return stats.Result{}, err
	}

	result := stats.Compute(games)
	for _, warning := range result.Warnings {
		log.Printf("Warning: %s", warning)
	}
	return result, nil
}

// KnownCards returns the catalog
func (s *TrackerService) KnownCards() ([]string, error) {
	return s.cardRepo.ListKnownCards()
}

// AddKnownCard adds a card to the catalog, reporting whether it was new
func (s *TrackerService) AddKnownCard(name string) (bool, error) {
	return s.cardRepo.AddKnownCard(strings.TrimSpace(name))
}
