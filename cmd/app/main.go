package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/daicaxom/tactics-server/internal/auth"
	"github.com/daicaxom/tactics-server/internal/battle"
	"github.com/daicaxom/tactics-server/internal/bootstrap"
	"github.com/daicaxom/tactics-server/internal/catalog"
	"github.com/daicaxom/tactics-server/internal/config"
	"github.com/daicaxom/tactics-server/internal/database"
	"github.com/daicaxom/tactics-server/internal/equipment"
	"github.com/daicaxom/tactics-server/internal/gacha"
	"github.com/daicaxom/tactics-server/internal/hero"
	"github.com/daicaxom/tactics-server/internal/player"
	"github.com/daicaxom/tactics-server/internal/scheduler"
	"github.com/daicaxom/tactics-server/internal/server"
	"github.com/daicaxom/tactics-server/internal/session"
	"github.com/daicaxom/tactics-server/internal/story"
	"github.com/daicaxom/tactics-server/internal/team"
	"github.com/daicaxom/tactics-server/internal/worker"
)

// @title Tactics Server API
// @version 1.0
// @description API for a turn-based tactical RPG game server - heroes, equipment, teams, story progression, gacha, and battles
// @contact.name API Support
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

//nolint:gocyclo // main function setup is naturally complex
func main() {
	// Load configuration FIRST (single source of truth)
	cfg, err := config.Load()
	if err != nil {
		// Can't use structured logger yet, use basic logging
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logging
	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logger: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	// Connect to database (a single ping, no retry)
	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		slog.Error("Database connection failed",
			"host", cfg.DBHost,
			"port", cfg.DBPort,
			"database", cfg.DBName,
			"user", cfg.DBUser)
		slog.Info("Hint: if using Docker, ensure the database is running (docker-compose up -d db)")
		os.Exit(1)
	}
	defer dbPool.Close()

	// Initialize Event System
	eventBus, _, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}

	// Initialize all repositories
	repos := bootstrap.InitializeRepositories(dbPool)

	// Load hero/skill/equipment/stage/banner definitions
	cat, err := catalog.LoadFromFile(config.ConfigPathCatalog)
	if err != nil {
		slog.Error("Failed to load catalog", "error", err)
		os.Exit(1)
	}
	slog.Info("Catalog loaded", "banners", len(cat.Banners()))

	sessions := session.NewStore()

	authService := auth.NewService(repos.Player, []byte(cfg.JWTSecretKey))
	playerService := player.NewService(repos.Player)
	heroService := hero.NewService(repos.Hero, repos.Equipment, eventBus)
	equipmentService := equipment.NewService(repos.Equipment, eventBus)
	teamService := team.NewService(repos.Team, repos.Hero, eventBus)
	storyService := story.NewService(cat, repos.Story)
	gachaService := gacha.NewService(cat, repos.Gacha, eventBus, nil)
	battleService := battle.NewService(cat, sessions, repos.Hero, repos.Team, repos.Story, eventBus)

	// Register all event handlers
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{EventBus: eventBus}); err != nil {
		slog.Error("Failed to register event handlers", "error", err)
		os.Exit(1)
	}

	srv := server.NewServer(server.Dependencies{
		Port:           cfg.Port,
		TrustedProxies: cfg.TrustedProxies,
		Version:        cfg.Version,
		DBPool:         dbPool,
		EventBus:       eventBus,
		AuthService:    authService,
		PlayerService:  playerService,
		HeroService:    heroService,
		EquipService:   equipmentService,
		TeamService:    teamService,
		StoryService:   storyService,
		GachaService:   gachaService,
		BattleService:  battleService,
	})

	// Start the background stamina regeneration job
	workerPool := worker.NewPool(2, 16)
	workerPool.Start()
	jobScheduler := scheduler.New(workerPool)
	jobScheduler.Schedule(cfg.StaminaRegenInterval, worker.NewStaminaRegenJob(playerService, cfg.StaminaRegenAmount))

	// Run server in a goroutine
	go func() {
		slog.Info("Starting server", "port", cfg.Port)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Create a deadline for shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Perform graceful shutdown
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:     srv,
		DBPool:     dbPool,
		Scheduler:  jobScheduler,
		WorkerPool: workerPool,
	})
}
