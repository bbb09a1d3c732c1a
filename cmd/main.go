package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/calliope-rpg/calliope/internal/commands"
	"github.com/calliope-rpg/calliope/internal/config"
	"github.com/calliope-rpg/calliope/internal/handlers"
	"github.com/calliope-rpg/calliope/internal/version"
	"github.com/calliope-rpg/calliope/pkg/database"
	"github.com/calliope-rpg/calliope/pkg/database/migration"
	"github.com/calliope-rpg/calliope/pkg/database/repository"
	"github.com/calliope-rpg/calliope/pkg/logging"
	"github.com/calliope-rpg/calliope/pkg/tabletop"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

var startTime = time.Now()

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}
}

func run() error {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
		// Continue execution as .env file might not exist in production
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewGormDB(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying database: %w", err)
	}
	defer sqlDB.Close()

	if err := migration.RunMigration(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	initializeCentralizedLogging(db)

	confirmer := tabletop.NewConfirmer(cfg.ConfirmTimeout())
	commands.Initialize(db, confirmer)

	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}
	// Members intent is needed to read and rewrite roster nicknames.
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	dg.AddHandler(handlers.Ready)
	dg.AddHandler(handlers.InteractionCreate)

	healthServer := startHealthCheckServer(cfg.HealthAddr, confirmer)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	if err := commands.Register(dg, cfg.GuildID); err != nil {
		dg.Close()
		return err
	}

	// Pending confirmations that nobody answers are dropped on a schedule.
	sweeper := startConfirmationSweeper(confirmer)

	log.Println("Bot is running. Press CTRL-C to exit.")
	log.Printf("Health check endpoint available at http://localhost%s/health", cfg.HealthAddr)

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Println("Shutting down gracefully...")

	sweeper.Stop()
	shutdownHealthServer(healthServer)
	dg.Close()

	log.Println("Application shutdown complete")
	return nil
}

// initializeCentralizedLogging routes every logger through the database so
// command activity is queryable after the fact.
func initializeCentralizedLogging(db *gorm.DB) {
	logRepo := repository.NewCommandLogRepository(db)
	loggerFactory := logging.NewDatabaseLoggerFactory(logRepo)
	logging.SetGlobalLoggerFactory(loggerFactory)

	systemLogger := loggerFactory.CreateLogger("system")
	systemLogger.Info("Centralized logging system initialized successfully", map[string]interface{}{
		"database_connected": true,
		"logger_type":        "database",
	})
}

// startConfirmationSweeper drops expired confirmations once a minute. Expiry
// is silent: the modal interaction is long dead, so there is nobody to tell.
func startConfirmationSweeper(confirmer *tabletop.Confirmer) *cron.Cron {
	logger := logging.GetGlobalLoggerFactory().CreateLogger("confirmations")

	c := cron.New()
	c.AddFunc("@every 1m", func() {
		if dropped := confirmer.Sweep(); dropped > 0 {
			logger.Info("Dropped expired confirmations", map[string]interface{}{
				"dropped": dropped,
			})
		}
	})
	c.Start()
	return c
}

type healthStatus struct {
	Status               string `json:"status"`
	Version              string `json:"version"`
	UptimeSeconds        int64  `json:"uptime_seconds"`
	PendingConfirmations int    `json:"pending_confirmations"`
}

func startHealthCheckServer(addr string, confirmer *tabletop.Confirmer) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(healthStatus{
			Status:               "ok",
			Version:              version.Get().Version,
			UptimeSeconds:        int64(time.Since(startTime).Seconds()),
			PendingConfirmations: confirmer.Pending(),
		})
	})

	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Health check server error: %v", err)
		}
	}()
	return server
}

func shutdownHealthServer(server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Health check server shutdown error: %v", err)
	}
}
