package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordGuildID string

	// Database configuration
	DatabaseURL string

	// Redis configuration (quiz leaderboard cache; optional)
	RedisAddr string

	// Economy configuration
	StartingBalance int64
	LevelXP         int64 // XP required per level
	DailyBaseReward int64 // daily bonus base, scaled by level
	DailyXP         int64

	// Loan configuration
	LoanCap       int64   // maximum principal per loan
	LoanDailyRate float64 // compounding interest per day

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Redis
		RedisAddr: os.Getenv("REDIS_ADDR"),

		// Economy defaults
		StartingBalance: 500,
		LevelXP:         100,
		DailyBaseReward: 50,
		DailyXP:         20,

		// Loan defaults
		LoanCap:       1000,
		LoanDailyRate: 0.07,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		if parsed, err := strconv.ParseInt(balance, 10, 64); err == nil {
			config.StartingBalance = parsed
		}
	}
	if levelXP := os.Getenv("LEVEL_XP"); levelXP != "" {
		if parsed, err := strconv.ParseInt(levelXP, 10, 64); err == nil && parsed > 0 {
			config.LevelXP = parsed
		}
	}
	if loanCap := os.Getenv("LOAN_CAP"); loanCap != "" {
		if parsed, err := strconv.ParseInt(loanCap, 10, 64); err == nil && parsed > 0 {
			config.LoanCap = parsed
		}
	}
	if rate := os.Getenv("LOAN_DAILY_RATE"); rate != "" {
		if parsed, err := strconv.ParseFloat(rate, 64); err == nil && parsed > 0 {
			config.LoanDailyRate = parsed
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
