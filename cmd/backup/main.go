package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"dominionstats/internal/config"
	"dominionstats/internal/database"
	"dominionstats/internal/repository"
	"dominionstats/internal/service"
)

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)

	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json or .csv)")
	exportFormat := exportCmd.String("format", "json", "Backup format: json or csv")

	importInput := importCmd.String("input", "", "Input file path (required)")
	importFormat := importCmd.String("format", "", "Backup format: json or csv (default: from file extension)")

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

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	backupService := service.NewBackupService(db, repository.NewGameRepository(db), repository.NewCardRepository(db))

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(backupService, *exportOutput, *exportFormat)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(backupService, *importInput, *importFormat)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(backupService *service.BackupService, outputPath, format string) {
	if format != "json" && format != "csv" {
		log.Fatalf("Unknown format %q (use json or csv)", format)
	}

	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("backup_%s.%s", timestamp, format)
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	log.Printf("Exporting database to: %s", outputPath)

	if format == "json" {
		if err := backupService.Export(outputPath); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		return
	}

	file, err := os.Create(outputPath)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	if err := backupService.ExportCSV(file); err != nil {
		file.Close()
		log.Fatalf("Export failed: %v", err)
	}
	if err := file.Close(); err != nil {
		log.Fatalf("Export failed: %v", err)
	}
}

func handleImport(backupService *service.BackupService, inputPath, format string) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		log.Fatalf("Input file does not exist: %s", inputPath)
	}

	if format == "" {
		format = "json"
		if filepath.Ext(inputPath) == ".csv" {
			format = "csv"
		}
	}

	log.Printf("Importing database from: %s", inputPath)

	var summary *service.ImportSummary
	var err error
	switch format {
	case "json":
		summary, err = backupService.Import(inputPath)
	case "csv":
		var file *os.File
		file, err = os.Open(inputPath)
		if err != nil {
			log.Fatalf("Failed to open input file: %v", err)
		}
		defer file.Close()
		summary, err = backupService.ImportCSV(file)
	default:
		log.Fatalf("Unknown format %q (use json or csv)", format)
	}
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import complete! %d games imported, %d skipped, %d cards added",
		summary.GamesImported, summary.GamesSkipped, summary.CardsAdded)
}

func printUsage() {
	fmt.Println("Dominion Stats Backup Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  backup export [options]    Export games and known cards")
	fmt.Println("  backup import [options]    Import games and known cards")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: backup_YYYYMMDD_HHMMSS.<format>)")
	fmt.Println("  -format json|csv  json keeps the card catalog; csv uses the dominion_stats.csv layout")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println("  -format json|csv  Defaults to csv for .csv files, json otherwise")
	fmt.Println()
	fmt.Println("Games whose ID already exists are skipped, so importing twice is safe.")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  backup export")
	fmt.Println("  backup export -format csv -output dominion_stats.csv")
	fmt.Println("  backup import -input dominion_stats.csv")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DATABASE_TYPE    Database type: sqlite, sqlite-pure, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./dominion_stats.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
}
