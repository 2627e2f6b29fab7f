package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"arcade/bot"
	"arcade/config"
	"arcade/database"
	"arcade/events"
	"arcade/games"
	"arcade/leaderboard"
	"arcade/repository"
	"arcade/scope"
	"arcade/service"

	"github.com/redis/go-redis/v9"
)

// leaderboardTTL bounds how stale the cached quiz standings can get
const leaderboardTTL = 6 * time.Hour

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting arcade bot...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus and unit of work factory
	eventBus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Scope registries shared by every service
	locks := scope.NewLockRegistry()
	sessions := scope.NewSessionRegistry()

	clock := games.SystemClock{}
	rng := games.NewRandomSource()

	// Redis quiz leaderboard is optional; without it the SQL path serves
	var redisClient *redis.Client
	var quizBoard *leaderboard.Board
	var quizLeaderboard service.QuizLeaderboard
	if cfg.RedisAddr != "" {
		log.Printf("Connecting to redis at %s...", cfg.RedisAddr)
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		quizBoard = leaderboard.NewBoard(redisClient, repository.NewQuizScoreRepository(db), leaderboardTTL)
		quizLeaderboard = quizBoard
		log.Println("Redis connection established successfully")
	} else {
		log.Println("REDIS_ADDR not set, quiz leaderboard cache disabled")
	}

	// Build the engine services
	services := bot.Services{
		Economy: service.NewEconomyService(uowFactory, locks, clock),
		Loans:   service.NewLoanService(uowFactory, locks, clock),
		Games:   service.NewGameService(uowFactory, locks, sessions, rng),
		Quizzes: service.NewQuizService(uowFactory, locks, sessions, clock, quizLeaderboard),
		Stats:   service.NewStatsService(uowFactory, locks, clock),
		Board:   quizBoard,
	}

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	discordBot, err := bot.New(bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.DiscordGuildID,
	}, services, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing redis client: %v", err)
		}
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}
