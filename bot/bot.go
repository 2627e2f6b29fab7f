package bot

import (
	"fmt"
	"strings"

	"arcade/bot/features/economy"
	botgames "arcade/bot/features/games"
	"arcade/bot/features/profile"
	"arcade/bot/features/quiz"
	"arcade/events"
	"arcade/leaderboard"
	"arcade/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
}

// Services bundles the engine services the bot drives
type Services struct {
	Economy service.EconomyService
	Loans   service.LoanService
	Games   service.GameService
	Quizzes service.QuizService
	Stats   service.StatsService
	Board   *leaderboard.Board // may be nil when Redis is not configured
}

// Bot manages the Discord gateway session and all feature modules
type Bot struct {
	config  Config
	session *discordgo.Session

	economy *economy.Feature
	games   *botgames.Feature
	quiz    *quiz.Feature
	profile *profile.Feature
}

// New creates the bot, opens the gateway connection and registers the
// slash commands.
func New(config Config, services Services, bus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	bot := &Bot{
		config:  config,
		session: dg,
		economy: economy.New(services.Economy, services.Loans),
		games:   botgames.New(services.Games),
		quiz:    quiz.New(services.Quizzes, services.Board),
		profile: profile.New(services.Stats),
	}

	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleInteractions)
	dg.AddHandler(bot.handleMessageCreate)

	bot.subscribeEvents(bus)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

// Close gracefully shuts down the gateway connection
func (b *Bot) Close() error {
	return b.session.Close()
}

// handleCommands routes slash commands to the owning feature
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "daily", "give", "loan":
		b.economy.HandleCommand(s, i)
	case "hangman", "blackjack", "slots":
		b.games.HandleCommand(s, i)
	case "quiz":
		b.quiz.HandleCommand(s, i)
	case "profile", "top":
		b.profile.HandleCommand(s, i)
	}
}

// handleInteractions routes button presses to the owning feature
func (b *Bot) handleInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	switch {
	case strings.HasPrefix(customID, "blackjack_"):
		b.games.HandleInteraction(s, i)
	case strings.HasPrefix(customID, "quiz_"):
		b.quiz.HandleInteraction(s, i)
	}
}

// handleMessageCreate feeds chat messages to the quiz authoring wizard
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Skip our own messages and other bots to avoid loops
	if m.Author == nil || m.Author.Bot || m.Author.ID == s.State.User.ID {
		return
	}
	b.quiz.HandleAuthorMessage(s, m)
}

func (b *Bot) subscribeEvents(bus *events.Bus) {
	if bus == nil {
		return
	}
	subscribeAnnouncements(bus)
	log.Info("Event subscriptions registered")
}
