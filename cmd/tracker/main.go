package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"dominionstats/internal/config"
	"dominionstats/internal/database"
	"dominionstats/internal/display"
	"dominionstats/internal/models"
	"dominionstats/internal/repository"
	"dominionstats/internal/service"
)

func main() {
	recordCmd := flag.NewFlagSet("record", flag.ExitOnError)
	recordDate := recordCmd.String("date", time.Now().Format(models.DateLayout), "Date played (YYYY-MM-DD)")
	recordPlayers := recordCmd.String("players", "", "Player names, comma-separated (required)")
	recordWinners := recordCmd.String("winners", "", "Winner names, comma-separated (required)")
	recordScores := recordCmd.String("scores", "", "Scores as Name:points, comma-separated (required)")
	recordCards := recordCmd.String("cards", "", "Kingdom cards used, comma-separated (required)")
	recordExpansions := recordCmd.String("expansions", "", "Expansions used, comma-separated")
	recordNotes := recordCmd.String("notes", "", "Free text notes")
	recordForce := recordCmd.Bool("force", false, "Record even if some cards are not in the catalog")
	recordAddCards := recordCmd.Bool("add-unknown", false, "Record and add unknown cards to the catalog")

	statsCmd := flag.NewFlagSet("stats", flag.ExitOnError)
	statsEmail := statsCmd.String("email", "", "Also mail the table to these addresses, comma-separated")

	addCardCmd := flag.NewFlagSet("add-card", flag.ExitOnError)
	addCardName := addCardCmd.String("name", "", "Card name (required)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	gameRepo := repository.NewGameRepository(db)
	cardRepo := repository.NewCardRepository(db)
	tracker := service.NewTrackerService(db, gameRepo, cardRepo)

	if err := tracker.Initialize(cfg.SeedCatalog); err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	switch os.Args[1] {
	case "record":
		recordCmd.Parse(os.Args[2:])
		game, err := parseGameInput(gameInput{
			Date:       *recordDate,
			Players:    *recordPlayers,
			Winners:    *recordWinners,
			Scores:     *recordScores,
			Cards:      *recordCards,
			Expansions: *recordExpansions,
			Notes:      *recordNotes,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			recordCmd.PrintDefaults()
			os.Exit(1)
		}
		handleRecord(tracker, game, service.RecordOptions{
			AllowUnknownCards: *recordForce,
			AddUnknownCards:   *recordAddCards,
		})

	case "next-id":
		id, err := tracker.NextGameID()
		if err != nil {
			log.Fatalf("Failed to get next game ID: %v", err)
		}
		fmt.Println(id)

	case "games":
		games, err := tracker.Games()
		if err != nil {
			log.Fatalf("Failed to load games: %v", err)
		}
		display.PrintGames(os.Stdout, games)

	case "stats":
		statsCmd.Parse(os.Args[2:])
		handleStats(cfg, tracker, splitList(*statsEmail))

	case "cards":
		cards, err := tracker.KnownCards()
		if err != nil {
			log.Fatalf("Failed to list cards: %v", err)
		}
		display.PrintCards(os.Stdout, cards)

	case "add-card":
		addCardCmd.Parse(os.Args[2:])
		if *addCardName == "" {
			fmt.Println("Error: -name flag is required")
			addCardCmd.PrintDefaults()
			os.Exit(1)
		}
		added, err := tracker.AddKnownCard(*addCardName)
		if err != nil {
			log.Fatalf("Failed to add card: %v", err)
		}
		if added {
			fmt.Printf("Added %s to the catalog\n", *addCardName)
		} else {
			fmt.Printf("%s is already in the catalog\n", *addCardName)
		}

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleRecord(tracker *service.TrackerService, game *models.GameRecord, opts service.RecordOptions) {
	result, err := tracker.RecordGame(game, opts)

	var validationErr models.ValidationError
	switch {
	case errors.Is(err, service.ErrUnknownCards):
		fmt.Printf("Error: %v\n", err)
		fmt.Println("Check the spelling, or pass -force to record anyway (-add-unknown also adds them to the catalog).")
		os.Exit(1)
	case errors.As(err, &validationErr):
		fmt.Printf("Invalid game: %v\n", validationErr)
		os.Exit(1)
	case err != nil:
		log.Fatalf("Failed to record game: %v", err)
	}

	fmt.Printf("Game %d recorded successfully\n", result.GameID)
}

func handleStats(cfg *config.Config, tracker *service.TrackerService, recipients []string) {
	result, err := tracker.PlayerStats()
	if err != nil {
		log.Fatalf("Failed to compute statistics: %v", err)
	}
	display.PrintPlayerStats(os.Stdout, result)

	if len(recipients) == 0 {
		return
	}

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := emailService.SendStatsDigest(ctx, recipients, result); err != nil {
		log.Fatalf("Failed to send statistics email: %v", err)
	}
}

func printUsage() {
	fmt.Println("Dominion Stats Tracker")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  tracker record [options]     Record a finished game")
	fmt.Println("  tracker next-id              Show the ID the next game will get")
	fmt.Println("  tracker games                List all recorded games")
	fmt.Println("  tracker stats [-email list]  Show player statistics")
	fmt.Println("  tracker cards                List known kingdom cards")
	fmt.Println("  tracker add-card -name NAME  Add a card to the catalog")
	fmt.Println()
	fmt.Println("Example:")
	fmt.Println("  tracker record -date 2024-03-09 -players Alice,Bob -winners Alice \\")
	fmt.Println("    -scores Alice:30,Bob:25 -cards Village,Smithy,Market -expansions Intrigue")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DATABASE_TYPE    sqlite, sqlite-pure, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./dominion_stats.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
	fmt.Println("  SEED_CATALOG     Seed an empty card catalog with the base set (default: true)")
	fmt.Println("  SES_FROM_EMAIL   Sender address for -email; email is disabled when unset")
}
