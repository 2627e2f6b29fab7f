package events

import (
	"context"
	"sync"

	"arcade/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange  EventType = "balance_change"
	EventTypeAccountCreated EventType = "account_created"
	EventTypeLevelUp        EventType = "level_up"
	EventTypeGameResolved   EventType = "game_resolved"
	EventTypeLoanTaken      EventType = "loan_taken"
	EventTypeLoanRepaid     EventType = "loan_repaid"
	EventTypeQuizCompleted  EventType = "quiz_completed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	DiscordID    int64
	OldBalance   int64
	NewBalance   int64
	Reason       string
	ChangeAmount int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// AccountCreatedEvent represents a new account creation
type AccountCreatedEvent struct {
	DiscordID       int64
	DisplayName     string
	StartingBalance int64
}

func (e AccountCreatedEvent) Type() EventType {
	return EventTypeAccountCreated
}

// LevelUpEvent represents one or more level gains from an XP award
type LevelUpEvent struct {
	DiscordID    int64
	NewLevel     int64
	LevelsGained int64
}

func (e LevelUpEvent) Type() EventType {
	return EventTypeLevelUp
}

// GameResolvedEvent represents a game reaching a terminal outcome
type GameResolvedEvent struct {
	DiscordID int64
	Kind      models.GameKind
	Won       bool
	Payout    int64
}

func (e GameResolvedEvent) Type() EventType {
	return EventTypeGameResolved
}

// LoanTakenEvent represents a new loan being issued
type LoanTakenEvent struct {
	DiscordID int64
	LoanID    int64
	Principal int64
}

func (e LoanTakenEvent) Type() EventType {
	return EventTypeLoanTaken
}

// LoanRepaidEvent represents a loan being fully repaid
type LoanRepaidEvent struct {
	DiscordID int64
	LoanID    int64
	Charged   int64
}

func (e LoanRepaidEvent) Type() EventType {
	return EventTypeLoanRepaid
}

// QuizCompletedEvent represents a finished quiz run
type QuizCompletedEvent struct {
	DiscordID int64
	QuizID    int64
	Score     int64
	Rewarded  bool
}

func (e QuizCompletedEvent) Type() EventType {
	return EventTypeQuizCompleted
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking
	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus stashes events published during a unit of work and
// flushes them to the underlying bus only after the transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

// NewTransactionalBus creates a transactional wrapper over the given bus
func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish queues an event until Flush or Discard
func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events; called after a successful commit
func (b *TransactionalBus) Flush(ctx context.Context) {
	// Events outlive the transaction, so emit with a fresh context
	eventCtx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
}

// Discard drops all pending events; called after a rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
