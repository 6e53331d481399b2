package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vocabville/internal/audio"
	"vocabville/internal/config"
	"vocabville/internal/content"
	"vocabville/internal/database"
	"vocabville/internal/handlers"
	"vocabville/internal/repository"
	"vocabville/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	masteryRepo := repository.NewMasteryRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	unlockRepo := repository.NewUnlockRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	streakRepo := repository.NewStreakRepository(db)

	// Word content and audio
	words := content.NewLoader(cfg.WordsPath, cfg.WordsBaseURL)
	ttsService := audio.NewTTSService(cfg.AudioPath)

	// Redemption notifications
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.ParentEmail)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	var notifier service.RedemptionNotifier
	if emailService.IsEnabled() {
		notifier = emailService
	}

	// Initialize services
	clock := service.SystemClock{}
	masteryService := service.NewMasteryService(masteryRepo)
	economyService := service.NewEconomyService(ledgerRepo, streakRepo, clock, cfg.ParentPINHash, notifier)
	questService := service.NewQuestService(masteryService, economyService, words, ttsService, clock, service.QuestConfig{
		PrepSeconds:     cfg.QuestPrepSeconds,
		DurationSeconds: cfg.QuestDurationSeconds,
		QuestionCount:   cfg.QuestQuestionCount,
	})
	studyService := service.NewStudyService(masteryService, inventoryRepo, unlockRepo, words)
	backupService := service.NewBackupService(masteryRepo, inventoryRepo, unlockRepo, ledgerRepo, streakRepo)

	// Initialize handlers
	worldHandler := handlers.NewWorldHandler(unlockRepo)
	studyHandler := handlers.NewStudyHandler(studyService)
	questHandler := handlers.NewQuestHandler(questService, ttsService)
	statsHandler := handlers.NewStatsHandler(economyService, inventoryRepo)
	adminHandler := handlers.NewAdminHandler(backupService, words, ttsService)

	// Setup routes
	mux := http.NewServeMux()

	// Static files (generated word audio)
	mux.Handle("GET /static/audio/", http.StripPrefix("/static/audio/", http.FileServer(http.Dir(cfg.AudioPath))))

	// World map
	mux.HandleFunc("GET /api/worlds", worldHandler.GetWorlds)

	// Study drill
	mux.HandleFunc("GET /api/study/{dimension}/{biome}", studyHandler.GetOverview)
	mux.HandleFunc("GET /api/study/{dimension}/{biome}/nav", studyHandler.Navigate)
	mux.HandleFunc("POST /api/study/{dimension}/{biome}/submit", studyHandler.Submit)

	// Timed quests
	mux.HandleFunc("POST /api/quest/{dimension}/{biome}/start", questHandler.Start)
	mux.HandleFunc("GET /api/quest/{id}", questHandler.Get)
	mux.HandleFunc("POST /api/quest/{id}/answer", questHandler.Answer)
	mux.HandleFunc("DELETE /api/quest/{id}", questHandler.Abandon)

	// Currency and stats
	mux.HandleFunc("GET /api/stats", statsHandler.GetStats)
	mux.HandleFunc("POST /api/currency/convert", statsHandler.Convert)
	mux.HandleFunc("POST /api/currency/redeem", statsHandler.Redeem)

	// Admin
	mux.HandleFunc("GET /api/admin/export", adminHandler.Export)
	mux.HandleFunc("POST /api/admin/audio/{dimension}/{biome}", adminHandler.GenerateAudio)
	mux.HandleFunc("POST /api/admin/reset", adminHandler.Reset)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background cleanup of finished quest sessions
	go cleanupExpiredSessions(questService)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

// cleanupExpiredSessions periodically drops quest sessions that have been
// past their deadline for a while.
func cleanupExpiredSessions(quests *service.QuestService) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		if removed := quests.SweepExpired(time.Hour); removed > 0 {
			log.Printf("Cleaned up %d expired quest sessions", removed)
		}
	}
}
