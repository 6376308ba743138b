package repository

import (
	"fmt"
	"sort"

	"dominionstats/internal/database"
	"dominionstats/internal/models"
)

// CardRepository handles the catalog of known kingdom card names.
// Names are unique and compared case-sensitively. Cards are never removed.
type CardRepository struct {
	db *database.DB
}

// NewCardRepository creates a new card repository
func NewCardRepository(db *database.DB) *CardRepository {
	return &CardRepository{db: db}
}

// ListKnownCards returns every catalog name in byte order
func (r *CardRepository) ListKnownCards() ([]string, error) {
	rows, err := r.db.Query("SELECT card_name FROM known_cards ORDER BY card_name ASC")
	if err != nil {
		return nil, persistenceError("query known cards", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, persistenceError("scan known card", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("read known cards", err)
	}

	// Collations differ between dialects; keep one order everywhere
	sort.Strings(names)
	return names, nil
}

// AddKnownCard inserts name into the catalog. It returns false, with no
// error, when the name is already present.
func (r *CardRepository) AddKnownCard(name string) (bool, error) {
	if err := validateCardName(name); err != nil {
		return false, err
	}

	var added bool
	err := r.db.WithTx(func(tx *database.Tx) error {
		exists, err := cardExists(tx, name)
		if err != nil || exists {
			return err
		}
		if _, err := tx.ExecReturningID("INSERT INTO known_cards (card_name) VALUES (?)", name); err != nil {
			return err
		}
		added = true
		return nil
	})
	if err != nil {
		return false, persistenceError("add known card", err)
	}

	return added, nil
}

// SeedCatalogIfEmpty inserts defaults when the catalog has no entries and
// returns how many names were added. Repeated and invalid names in defaults
// are skipped. A non-empty catalog is left untouched.
func (r *CardRepository) SeedCatalogIfEmpty(defaults []string) (int, error) {
	added := 0
	err := r.db.WithTx(func(tx *database.Tx) error {
		var count int
		if err := tx.QueryRow("SELECT COUNT(*) FROM known_cards").Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		stmt, err := tx.Prepare("INSERT INTO known_cards (card_name) VALUES (?)")
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		seen := make(map[string]bool, len(defaults))
		for _, name := range defaults {
			if seen[name] || validateCardName(name) != nil {
				continue
			}
			seen[name] = true

			if _, err := stmt.Exec(name); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, persistenceError("seed known cards", err)
	}

	return added, nil
}

// UnknownCards returns the names that are not in the catalog, in the order
// given and without repeats.
func (r *CardRepository) UnknownCards(names []string) ([]string, error) {
	known, err := r.ListKnownCards()
	if err != nil {
		return nil, err
	}

	catalog := make(map[string]bool, len(known))
	for _, name := range known {
		catalog[name] = true
	}

	var unknown []string
	for _, name := range names {
		if !catalog[name] {
			unknown = append(unknown, name)
			catalog[name] = true
		}
	}
	return unknown, nil
}

func cardExists(q database.DBTX, name string) (bool, error) {
	var count int
	err := q.QueryRow("SELECT COUNT(*) FROM known_cards WHERE card_name = ?", name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func validateCardName(name string) error {
	return models.ValidateName("card_name", name)
}
