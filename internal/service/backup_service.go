package service

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"dominionstats/internal/database"
	"dominionstats/internal/delimited"
	"dominionstats/internal/models"
	"dominionstats/internal/repository"

	"github.com/google/uuid"
)

const backupVersion = "1.0"

// LegacyCSVHeader is the column layout of the original tracker's
// dominion_stats.csv file
var LegacyCSVHeader = []string{
	"Game ID", "Date", "Players", "Winner", "Scores", "Kingdom Cards", "Expansions Used", "Notes",
}

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string       `json:"version"`
	ExportID     string       `json:"export_id"`
	ExportedAt   time.Time    `json:"exported_at"`
	DatabaseType string       `json:"database_type"`
	Games        []GameBackup `json:"games"`
	KnownCards   []string     `json:"known_cards"`
}

// GameBackup represents a game record for backup. Lists and scores are kept
// structured here rather than in their delimited column form.
type GameBackup struct {
	ID             int64          `json:"id"`
	Date           string         `json:"date"`
	Players        []string       `json:"players"`
	Winners        []string       `json:"winners"`
	Scores         map[string]int `json:"scores"`
	KingdomCards   []string       `json:"kingdom_cards"`
	ExpansionsUsed []string       `json:"expansions_used"`
	Notes          string         `json:"notes,omitempty"`
}

// ImportSummary counts what an import did
type ImportSummary struct {
	GamesImported int
	GamesSkipped  int
	CardsAdded    int
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db       *database.DB
	gameRepo *repository.GameRepository
	cardRepo *repository.CardRepository
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB, gameRepo *repository.GameRepository, cardRepo *repository.CardRepository) *BackupService {
	return &BackupService{db: db, gameRepo: gameRepo, cardRepo: cardRepo}
}

// Export writes a JSON backup of all games and known cards to outputPath
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportTo(file); err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	return file.Close()
}

// ExportTo writes a JSON backup of all games and known cards to w
func (s *BackupService) ExportTo(w io.Writer) error {
	games, err := s.gameRepo.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to export games: %w", err)
	}

	cards, err := s.cardRepo.ListKnownCards()
	if err != nil {
		return fmt.Errorf("failed to export known cards: %w", err)
	}

	backup := &BackupData{
		Version:      backupVersion,
		ExportID:     uuid.NewString(),
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.db.Dialect.DriverName(),
		Games:        make([]GameBackup, 0, len(games)),
		KnownCards:   cards,
	}
	for _, game := range games {
		backup.Games = append(backup.Games, GameBackup(game))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported: %d games, %d known cards (export %s)", len(backup.Games), len(backup.KnownCards), backup.ExportID)
	return nil
}

// Import restores a JSON backup from inputPath
func (s *BackupService) Import(inputPath string) (*ImportSummary, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a JSON backup. Cards are merged into the catalog;
// games keep their IDs and are skipped when that ID is already taken or a
// name contains a separator.
func (s *BackupService) ImportFromReader(reader io.Reader) (*ImportSummary, error) {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, export %s, exported at: %s", backup.Version, backup.ExportID, backup.ExportedAt)

	summary := &ImportSummary{}
	for _, name := range backup.KnownCards {
		added, err := s.cardRepo.AddKnownCard(name)
		var validationErr models.ValidationError
		if errors.As(err, &validationErr) {
			log.Printf("Warning: card %q skipped: %v", name, validationErr)
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("failed to import card %q: %w", name, err)
		}
		if added {
			summary.CardsAdded++
		}
	}

	for _, gb := range backup.Games {
		game := models.GameRecord(gb)
		if game.Scores == nil {
			game.Scores = map[string]int{}
		}
		if err := s.importGame(&game, summary); err != nil {
			return summary, err
		}
	}

	log.Printf("Imported %d games (%d skipped), added %d cards", summary.GamesImported, summary.GamesSkipped, summary.CardsAdded)
	return summary, nil
}

// ExportCSV writes all games in the legacy dominion_stats.csv layout
func (s *BackupService) ExportCSV(w io.Writer) error {
	games, err := s.gameRepo.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to export games: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(LegacyCSVHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, game := range games {
		record := []string{
			strconv.FormatInt(game.ID, 10),
			game.Date,
			delimited.EncodeList(game.Players),
			delimited.EncodeList(game.Winners),
			delimited.EncodeScores(game.Scores, game.Players),
			delimited.EncodeList(game.KingdomCards),
			delimited.EncodeList(game.ExpansionsUsed),
			game.Notes,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write game %d: %w", game.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	log.Printf("Exported %d games as CSV", len(games))
	return nil
}

// ImportCSV reads a legacy dominion_stats.csv file. Columns are matched by
// header name. Rows with an unreadable Game ID are skipped, and malformed
// score entries are skipped with a warning, as when loading from the database.
func (s *BackupService) ImportCSV(r io.Reader) (*ImportSummary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return &ImportSummary{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range LegacyCSVHeader {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("CSV is missing column %q", name)
		}
	}

	summary := &ImportSummary{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return summary, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		cell := func(name string) string {
			if i := columns[name]; i < len(record) {
				return record[i]
			}
			return ""
		}

		if strings.TrimSpace(strings.Join(record, "")) == "" {
			continue
		}

		id, err := strconv.ParseInt(strings.TrimSpace(cell("Game ID")), 10, 64)
		if err != nil || id <= 0 {
			log.Printf("Warning: CSV line %d: invalid Game ID %q, row skipped", line, cell("Game ID"))
			summary.GamesSkipped++
			continue
		}

		scores, decodeErrs := delimited.DecodeScores(cell("Scores"))
		for _, err := range decodeErrs {
			log.Printf("Warning: CSV line %d: %v", line, err)
		}

		game := models.GameRecord{
			ID:             id,
			Date:           strings.TrimSpace(cell("Date")),
			Players:        delimited.DecodeList(cell("Players")),
			Winners:        delimited.DecodeList(cell("Winner")),
			Scores:         scores,
			KingdomCards:   delimited.DecodeList(cell("Kingdom Cards")),
			ExpansionsUsed: delimited.DecodeList(cell("Expansions Used")),
			Notes:          cell("Notes"),
		}
		if missing := game.UnscoredWinners(); len(missing) > 0 {
			log.Printf("Warning: CSV line %d: winner without score: %s", line, strings.Join(missing, ", "))
		}

		if err := s.importGame(&game, summary); err != nil {
			return summary, err
		}
	}

	log.Printf("Imported %d games from CSV (%d skipped)", summary.GamesImported, summary.GamesSkipped)
	return summary, nil
}

// importGame stores one restored game unless its ID is taken or one of its
// names would not survive the delimited encoding.
func (s *BackupService) importGame(game *models.GameRecord, summary *ImportSummary) error {
	if err := game.CheckNames(); err != nil {
		log.Printf("Warning: game %d skipped: %v", game.ID, err)
		summary.GamesSkipped++
		return nil
	}

	if game.ID > 0 {
		exists, err := s.gameRepo.Exists(game.ID)
		if err != nil {
			return err
		}
		if exists {
			summary.GamesSkipped++
			return nil
		}
	}

	if _, err := s.gameRepo.Insert(game); err != nil {
		return fmt.Errorf("failed to import game %d: %w", game.ID, err)
	}
	summary.GamesImported++
	return nil
}
