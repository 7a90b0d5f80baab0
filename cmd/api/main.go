package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fairwaydraw/draw-backend/api/routes"
	"github.com/fairwaydraw/draw-backend/internal/config"
	"github.com/fairwaydraw/draw-backend/internal/handlers"
	"github.com/fairwaydraw/draw-backend/internal/services"
	"github.com/joho/godotenv"

	"golang.org/x/exp/slog"

	mongorepo "github.com/fairwaydraw/draw-backend/internal/repositories/mongodb"
	"github.com/fairwaydraw/draw-backend/pkg/mongodb"
)

func main() {
	// A missing .env is fine in deployed environments
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	memberRepo := mongorepo.NewMemberRepository(db)
	scoreRepo := mongorepo.NewScoreEntryRepository(db)
	cycleRepo := mongorepo.NewDrawCycleRepository(db)
	entryRepo := mongorepo.NewWinningEntryRepository(db)
	tierConfigRepo := mongorepo.NewTierConfigRepository(db)
	charityRepo := mongorepo.NewCharityRepository(db)
	operatorRepo := mongorepo.NewOperatorRepository(db)

	// Services
	aggregator := services.NewScoreAggregator(scoreRepo, memberRepo)
	drawService := services.NewDrawService(cycleRepo, entryRepo, memberRepo, tierConfigRepo,
		aggregator, cfg.Draw.RangeMin, cfg.Draw.RangeMax)
	winnerService := services.NewWinnerService(entryRepo, cycleRepo, memberRepo, charityRepo)
	scoreService := services.NewScoreService(scoreRepo, memberRepo)
	tierConfigService := services.NewTierConfigService(tierConfigRepo)
	authService := services.NewAuthService(operatorRepo, cfg)

	// Handlers
	deps := routes.HandlerDependencies{
		AuthHandler:       handlers.NewAuthHandler(authService),
		DrawHandler:       handlers.NewDrawHandler(drawService),
		WinnerHandler:     handlers.NewWinnerHandler(winnerService),
		ScoreHandler:      handlers.NewScoreHandler(scoreService),
		TierConfigHandler: handlers.NewTierConfigHandler(tierConfigService),
	}

	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
