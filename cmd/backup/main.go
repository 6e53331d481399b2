package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"vocabville/internal/config"
	"vocabville/internal/database"
	"vocabville/internal/repository"
	"vocabville/internal/service"
)

func main() {
	// Define subcommands
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)

	// Export flags
	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	exportDB := exportCmd.String("db", "", "SQLite database path (overrides config)")

	// Import flags
	importInput := importCmd.String("input", "", "Input file path (required)")
	importClear := importCmd.Bool("clear", false, "Clear existing data before import (WARNING: destructive)")
	importDB := importCmd.String("db", "", "SQLite database path (overrides config)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var dbPath string
	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		dbPath = *exportDB

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		dbPath = *importDB

	default:
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database: -db points straight at a SQLite file,
	// otherwise the configured backend is used
	var db *database.DB
	var err error
	if dbPath != "" {
		db, err = database.Initialize(dbPath)
	} else {
		db, err = database.InitializeWithConfig(cfg)
	}
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create backup service
	backupService := service.NewBackupService(
		repository.NewMasteryRepository(db),
		repository.NewInventoryRepository(db),
		repository.NewUnlockRepository(db),
		repository.NewLedgerRepository(db),
		repository.NewStreakRepository(db),
	)

	switch os.Args[1] {
	case "export":
		handleExport(backupService, *exportOutput)
	case "import":
		handleImport(backupService, *importInput, *importClear)
	}
}

func handleExport(backupService *service.BackupService, outputPath string) {
	// Generate default filename if not provided
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("backup_%s.json", timestamp)
	}

	// Ensure directory exists
	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	if err := backupService.Export(outputPath); err != nil {
		log.Fatalf("Export failed: %v", err)
	}
}

func handleImport(backupService *service.BackupService, inputPath string, clearExisting bool) {
	if clearExisting {
		fmt.Println("WARNING: this will delete all existing progression before importing.")
	}

	if err := backupService.Import(inputPath, clearExisting); err != nil {
		log.Fatalf("Import failed: %v", err)
	}
}

func printUsage() {
	fmt.Println("Usage: backup <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  export    Export progression to a JSON file")
	fmt.Println("  import    Import progression from a JSON file")
	fmt.Println()
	fmt.Println("Run 'backup <command> -h' for command flags.")
}
