package bot

import (
	"context"

	"arcade/events"

	log "github.com/sirupsen/logrus"
)

// subscribeAnnouncements attaches structured logging to the ledger events
// flushed after each committed transaction. The log stream doubles as the
// audit trail for balance movements.
func subscribeAnnouncements(bus *events.Bus) {
	bus.Subscribe(events.EventTypeAccountCreated, func(ctx context.Context, event events.Event) {
		e := event.(events.AccountCreatedEvent)
		log.WithFields(log.Fields{
			"discordID":   e.DiscordID,
			"displayName": e.DisplayName,
			"balance":     e.StartingBalance,
		}).Info("Account created")
	})

	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		e := event.(events.BalanceChangeEvent)
		log.WithFields(log.Fields{
			"discordID": e.DiscordID,
			"from":      e.OldBalance,
			"to":        e.NewBalance,
			"reason":    e.Reason,
		}).Info("Balance changed")
	})

	bus.Subscribe(events.EventTypeLevelUp, func(ctx context.Context, event events.Event) {
		e := event.(events.LevelUpEvent)
		log.WithFields(log.Fields{
			"discordID": e.DiscordID,
			"newLevel":  e.NewLevel,
			"gained":    e.LevelsGained,
		}).Info("Level up")
	})

	bus.Subscribe(events.EventTypeGameResolved, func(ctx context.Context, event events.Event) {
		e := event.(events.GameResolvedEvent)
		log.WithFields(log.Fields{
			"discordID": e.DiscordID,
			"game":      e.Kind,
			"won":       e.Won,
			"payout":    e.Payout,
		}).Info("Game resolved")
	})

	bus.Subscribe(events.EventTypeLoanTaken, func(ctx context.Context, event events.Event) {
		e := event.(events.LoanTakenEvent)
		log.WithFields(log.Fields{
			"discordID": e.DiscordID,
			"loanID":    e.LoanID,
			"principal": e.Principal,
		}).Info("Loan taken")
	})

	bus.Subscribe(events.EventTypeLoanRepaid, func(ctx context.Context, event events.Event) {
		e := event.(events.LoanRepaidEvent)
		log.WithFields(log.Fields{
			"discordID": e.DiscordID,
			"loanID":    e.LoanID,
			"charged":   e.Charged,
		}).Info("Loan repaid")
	})

	bus.Subscribe(events.EventTypeQuizCompleted, func(ctx context.Context, event events.Event) {
		e := event.(events.QuizCompletedEvent)
		log.WithFields(log.Fields{
			"discordID": e.DiscordID,
			"quizID":    e.QuizID,
			"score":     e.Score,
			"rewarded":  e.Rewarded,
		}).Info("Quiz completed")
	})
}
