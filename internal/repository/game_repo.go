package repository

import (
	"database/sql"
	"errors"
	"log"

	"dominionstats/internal/database"
	"dominionstats/internal/delimited"
	"dominionstats/internal/models"
)

const gameColumns = "id, date, players, winners, scores, kingdom_cards, expansions_used, notes"

// GameRepository handles database operations for recorded games.
// Games are append-only: there is no update or delete.
type GameRepository struct {
	db *database.DB
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{db: db}
}

// NextID returns one more than the highest stored game ID, or 1 when no
// games exist. It reads the table every time so it survives restarts.
func (r *GameRepository) NextID() (int64, error) {
	id, err := nextGameID(r.db)
	if err != nil {
		return 0, persistenceError("get next game ID", err)
	}
	return id, nil
}

// Save validates and appends a game, assigning it the next ID. The ID is
// also written back to game.ID.
func (r *GameRepository) Save(game *models.GameRecord) (int64, error) {
	if err := game.Validate(); err != nil {
		return 0, err
	}

	var id int64
	err := r.db.WithTx(func(tx *database.Tx) error {
		var err error
		if id, err = nextGameID(tx); err != nil {
			return err
		}
		return insertGame(tx, id, game)
	})
	if err != nil {
		return 0, persistenceError("save game", err)
	}

	game.ID = id
	return id, nil
}

// Insert appends a game without validating it, keeping game.ID when it is
// set. It is used to restore backups and legacy files, whose IDs must be
// preserved; a zero ID gets the next free one.
func (r *GameRepository) Insert(game *models.GameRecord) (int64, error) {
	id := game.ID
	err := r.db.WithTx(func(tx *database.Tx) error {
		if id == 0 {
			var err error
			if id, err = nextGameID(tx); err != nil {
				return err
			}
		}
		return insertGame(tx, id, game)
	})
	if err != nil {
		return 0, persistenceError("insert game", err)
	}

	game.ID = id
	return id, nil
}

// Exists reports whether a game with the given ID is stored
func (r *GameRepository) Exists(id int64) (bool, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM games WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, persistenceError("check game", err)
	}
	return count > 0, nil
}

// LoadAll returns every stored game in insertion order. Score entries that
// cannot be decoded are logged and skipped; the rest of the game is kept.
func (r *GameRepository) LoadAll() ([]models.GameRecord, error) {
	rows, err := r.db.Query("SELECT " + gameColumns + " FROM games ORDER BY id ASC")
	if err != nil {
		return nil, persistenceError("query games", err)
	}
	defer rows.Close()

	games := []models.GameRecord{}
	for rows.Next() {
		var row gameRow
		if err := rows.Scan(
			&row.id,
			&row.date,
			&row.players,
			&row.winners,
			&row.scores,
			&row.kingdomCards,
			&row.expansionsUsed,
			&row.notes,
		); err != nil {
			return nil, persistenceError("scan game", err)
		}

		game, decodeErrs := row.decode()
		for _, err := range decodeErrs {
			log.Printf("Warning: game %d: %v", game.ID, err)
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, persistenceError("read games", err)
	}

	return games, nil
}

// gameRow is a games table row in its stored, delimited form
type gameRow struct {
	id             int64
	date           string
	players        string
	winners        string
	scores         string
	kingdomCards   string
	expansionsUsed string
	notes          sql.NullString
}

func encodeGame(id int64, game *models.GameRecord) gameRow {
	return gameRow{
		id:             id,
		date:           game.Date,
		players:        delimited.EncodeList(game.Players),
		winners:        delimited.EncodeList(game.Winners),
		scores:         delimited.EncodeScores(game.Scores, game.Players),
		kingdomCards:   delimited.EncodeList(game.KingdomCards),
		expansionsUsed: delimited.EncodeList(game.ExpansionsUsed),
		notes:          sql.NullString{String: game.Notes, Valid: true},
	}
}

func (row gameRow) decode() (models.GameRecord, []error) {
	scores, errs := delimited.DecodeScores(row.scores)
	return models.GameRecord{
		ID:             row.id,
		Date:           row.date,
		Players:        delimited.DecodeList(row.players),
		Winners:        delimited.DecodeList(row.winners),
		Scores:         scores,
		KingdomCards:   delimited.DecodeList(row.kingdomCards),
		ExpansionsUsed: delimited.DecodeList(row.expansionsUsed),
		Notes:          row.notes.String,
	}, errs
}

func nextGameID(q database.DBTX) (int64, error) {
	var maxID int64
	if err := q.QueryRow("SELECT COALESCE(MAX(id), 0) FROM games").Scan(&maxID); err != nil {
		return 0, err
	}
	return maxID + 1, nil
}

func insertGame(q database.DBTX, id int64, game *models.GameRecord) error {
	if id <= 0 {
		return errors.New("game ID must be positive")
	}

	row := encodeGame(id, game)
	query := "INSERT INTO games (" + gameColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?)"
	_, err := q.Exec(query,
		row.id,
		row.date,
		row.players,
		row.winners,
		row.scores,
		row.kingdomCards,
		row.expansionsUsed,
		row.notes,
	)
	return err
}
