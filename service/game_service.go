package service

import (
	"context"
	"fmt"

	"arcade/events"
	"arcade/games"
	"arcade/models"
	"arcade/scope"
)

// HangmanView is the render state of a hangman session
type HangmanView struct {
	Mask     string
	Wrong    int
	MaxWrong int
}

// HangmanMove is the result of one hangman guess. Word and the ledger fields
// are filled only on terminal outcomes.
type HangmanMove struct {
	Outcome      games.GuessOutcome
	Mask         string
	Wrong        int
	MaxWrong     int
	Word         string
	Reward       int64
	XPReward     int64
	LevelsGained int64
	NewBalance   int64
}

// BlackjackRound is the state of a blackjack session after an action.
// Resolution fields are filled once Resolved is true.
type BlackjackRound struct {
	PlayerHand   []games.Card
	DealerHand   []games.Card
	PlayerValue  int
	DealerValue  int
	Bet          int64
	Resolved     bool
	Won          bool
	Push         bool
	Natural      bool
	Payout       int64
	XPReward     int64
	LevelsGained int64
	NewBalance   int64
}

// SpinOutcome is the result of a slots spin together with its ledger effects
type SpinOutcome struct {
	games.SpinResult
	Bet          int64
	LevelsGained int64
	NewBalance   int64
}

// GameService drives the game state machines under scope guards and
// unit-of-work transactions.
type GameService interface {
	// StartHangman opens the shared hangman session of a chat
	StartHangman(ctx context.Context, chatID, playerID int64, displayName string) (*HangmanView, error)

	// GuessLetter applies a single-letter guess to a chat's hangman session
	GuessLetter(ctx context.Context, chatID, playerID int64, displayName string, letter rune) (*HangmanMove, error)

	// GuessWord applies a full-word guess to a chat's hangman session
	GuessWord(ctx context.Context, chatID, playerID int64, displayName string, word string) (*HangmanMove, error)

	// StopHangman abandons a chat's hangman session without ledger effects
	StopHangman(ctx context.Context, chatID int64) (string, error)

	// StartBlackjack debits the bet and deals; a natural resolves immediately
	StartBlackjack(ctx context.Context, playerID int64, displayName string, bet int64) (*BlackjackRound, error)

	// Hit draws one card for the player
	Hit(ctx context.Context, playerID int64) (*BlackjackRound, error)

	// Stand plays out the dealer and resolves the round
	Stand(ctx context.Context, playerID int64) (*BlackjackRound, error)

	// Spin plays one single-shot slots round
	Spin(ctx context.Context, playerID int64, displayName string, bet int64) (*SpinOutcome, error)
}

// gameService implements the GameService interface
type gameService struct {
	uowFactory UnitOfWorkFactory
	locks      *scope.LockRegistry
	sessions   *scope.SessionRegistry
	rng        games.RandomSource
}

// NewGameService creates a new game service
func NewGameService(uowFactory UnitOfWorkFactory, locks *scope.LockRegistry, sessions *scope.SessionRegistry, rng games.RandomSource) GameService {
	return &gameService{
		uowFactory: uowFactory,
		locks:      locks,
		sessions:   sessions,
		rng:        rng,
	}
}

// StartHangman opens the shared hangman session of a chat
func (s *gameService) StartHangman(ctx context.Context, chatID, playerID int64, displayName string) (*HangmanView, error) {
	guard := s.locks.Acquire(scope.Chat(chatID))
	defer guard.Release()

	// One quick transaction to register the starter and pick a word. The
	// session slot is claimed afterwards, still under the chat guard.
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if _, err := ensureAccount(ctx, uow, playerID, displayName); err != nil {
		return nil, err
	}

	word, err := uow.WordRepository().Random(ctx, "ru")
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	session, err := s.sessions.TryCreate(guard.Key(), models.GameKindHangman, func() (any, error) {
		return games.NewHangman(word, games.DefaultMaxWrong), nil
	})
	if err != nil {
		return nil, err
	}

	game := session.(*games.Hangman)
	return &HangmanView{
		Mask:     game.Mask(),
		Wrong:    game.Wrong(),
		MaxWrong: game.MaxWrong(),
	}, nil
}

// GuessLetter applies a single-letter guess to a chat's hangman session
func (s *gameService) GuessLetter(ctx context.Context, chatID, playerID int64, displayName string, letter rune) (*HangmanMove, error) {
	return s.hangmanMove(ctx, chatID, playerID, displayName, func(game *games.Hangman) games.GuessOutcome {
		return game.GuessLetter(letter)
	}, games.HangmanLetterReward, games.HangmanLetterXP)
}

// GuessWord applies a full-word guess to a chat's hangman session
func (s *gameService) GuessWord(ctx context.Context, chatID, playerID int64, displayName string, word string) (*HangmanMove, error) {
	return s.hangmanMove(ctx, chatID, playerID, displayName, func(game *games.Hangman) games.GuessOutcome {
		return game.GuessWord(word)
	}, games.HangmanWordReward, games.HangmanWordXP)
}

func (s *gameService) hangmanMove(ctx context.Context, chatID, playerID int64, displayName string, move func(*games.Hangman) games.GuessOutcome, reward, xp int64) (*HangmanMove, error) {
	guard := s.locks.Acquire(scope.Chat(chatID))
	defer guard.Release()

	session, err := s.sessions.Get(guard.Key(), models.GameKindHangman)
	if err != nil {
		return nil, err
	}
	game := session.(*games.Hangman)

	outcome := move(game)
	result := &HangmanMove{
		Outcome:  outcome,
		Mask:     game.Mask(),
		Wrong:    game.Wrong(),
		MaxWrong: game.MaxWrong(),
	}

	switch outcome {
	case games.GuessWon:
		resolved, err := s.resolveOutcome(ctx, playerID, displayName, models.GameKindHangman, true, reward, xp)
		if err != nil {
			return nil, err
		}
		s.sessions.Remove(guard.Key(), models.GameKindHangman)
		result.Word = game.Word()
		result.Reward = reward
		result.XPReward = xp
		result.LevelsGained = resolved.LevelsGained
		result.NewBalance = resolved.NewBalance

	case games.GuessLost:
		// The guesser eats the recorded loss; the word is revealed
		if _, err := s.resolveOutcome(ctx, playerID, displayName, models.GameKindHangman, false, 0, 0); err != nil {
			return nil, err
		}
		s.sessions.Remove(guard.Key(), models.GameKindHangman)
		result.Word = game.Word()
	}

	return result, nil
}

// StopHangman abandons a chat's hangman session. The target word is returned
// for display; no outcome is recorded and nothing is charged.
func (s *gameService) StopHangman(ctx context.Context, chatID int64) (string, error) {
	guard := s.locks.Acquire(scope.Chat(chatID))
	defer guard.Release()

	session, err := s.sessions.Get(guard.Key(), models.GameKindHangman)
	if err != nil {
		return "", err
	}

	word := session.(*games.Hangman).Word()
	s.sessions.Remove(guard.Key(), models.GameKindHangman)
	return word, nil
}

// StartBlackjack debits the bet and deals; a natural resolves immediately
func (s *gameService) StartBlackjack(ctx context.Context, playerID int64, displayName string, bet int64) (*BlackjackRound, error) {
	if bet <= 0 {
		return nil, ErrInvalidAmount
	}

	guard := s.locks.Acquire(scope.Player(playerID))
	defer guard.Release()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := ensureAccount(ctx, uow, playerID, displayName)
	if err != nil {
		return nil, err
	}
	if account.Balance < bet {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, account.Balance, bet)
	}

	session, err := s.sessions.TryCreate(guard.Key(), models.GameKindBlackjack, func() (any, error) {
		return games.NewBlackjack(s.rng, bet), nil
	})
	if err != nil {
		return nil, err
	}
	game := session.(*games.Blackjack)

	// The bet is charged up front; a loss needs no further debit
	if err := debitBalance(ctx, uow, account, bet, "blackjack bet"); err != nil {
		s.sessions.Remove(guard.Key(), models.GameKindBlackjack)
		return nil, err
	}

	round := s.blackjackView(game)
	round.NewBalance = account.Balance

	if game.IsNatural() {
		payout := game.NaturalPayout()
		if err := creditBalance(ctx, uow, account, payout, "blackjack natural"); err != nil {
			s.sessions.Remove(guard.Key(), models.GameKindBlackjack)
			return nil, err
		}
		gained, err := grantXP(ctx, uow, account, games.BlackjackNaturalXP)
		if err != nil {
			s.sessions.Remove(guard.Key(), models.GameKindBlackjack)
			return nil, err
		}
		if err := uow.AccountRepository().RecordOutcome(ctx, playerID, true); err != nil {
			s.sessions.Remove(guard.Key(), models.GameKindBlackjack)
			return nil, err
		}
		uow.EventBus().Publish(events.GameResolvedEvent{
			DiscordID: playerID,
			Kind:      models.GameKindBlackjack,
			Won:       true,
			Payout:    payout,
		})

		round.Resolved = true
		round.Won = true
		round.Natural = true
		round.Payout = payout
		round.XPReward = games.BlackjackNaturalXP
		round.LevelsGained = gained
		round.NewBalance = account.Balance
		s.sessions.Remove(guard.Key(), models.GameKindBlackjack)
	}

	if err := uow.Commit(); err != nil {
		s.sessions.Remove(guard.Key(), models.GameKindBlackjack)
		return nil, err
	}

	return round, nil
}

// Hit draws one card for the player; busting resolves the round as a loss
func (s *gameService) Hit(ctx context.Context, playerID int64) (*BlackjackRound, error) {
	guard := s.locks.Acquire(scope.Player(playerID))
	defer guard.Release()

	session, err := s.sessions.Get(guard.Key(), models.GameKindBlackjack)
	if err != nil {
		return nil, err
	}
	game := session.(*games.Blackjack)

	_, _, busted := game.Hit()
	round := s.blackjackView(game)

	if busted {
		resolved, err := s.resolveOutcome(ctx, playerID, "", models.GameKindBlackjack, false, 0, 0)
		if err != nil {
			return nil, err
		}
		s.sessions.Remove(guard.Key(), models.GameKindBlackjack)
		round.Resolved = true
		round.NewBalance = resolved.NewBalance
	}

	return round, nil
}

// Stand plays out the dealer and resolves the round
func (s *gameService) Stand(ctx context.Context, playerID int64) (*BlackjackRound, error) {
	guard := s.locks.Acquire(scope.Player(playerID))
	defer guard.Release()

	session, err := s.sessions.Get(guard.Key(), models.GameKindBlackjack)
	if err != nil {
		return nil, err
	}
	game := session.(*games.Blackjack)

	stand := game.Stand()
	round := s.blackjackView(game)
	round.Resolved = true
	round.Payout = stand.Payout
	round.XPReward = stand.XP

	won := stand.Kind == games.StandDealerBust || stand.Kind == games.StandPlayerWins
	round.Won = won
	round.Push = stand.Kind == games.StandPush

	// A push refunds the bet but records no outcome either way
	if round.Push {
		resolved, err := s.resolvePush(ctx, playerID, stand.Payout)
		if err != nil {
			return nil, err
		}
		s.sessions.Remove(guard.Key(), models.GameKindBlackjack)
		round.NewBalance = resolved
		return round, nil
	}

	resolved, err := s.resolveOutcome(ctx, playerID, "", models.GameKindBlackjack, won, stand.Payout, stand.XP)
	if err != nil {
		return nil, err
	}
	s.sessions.Remove(guard.Key(), models.GameKindBlackjack)
	round.LevelsGained = resolved.LevelsGained
	round.NewBalance = resolved.NewBalance

	return round, nil
}

// Spin plays one single-shot slots round
func (s *gameService) Spin(ctx context.Context, playerID int64, displayName string, bet int64) (*SpinOutcome, error) {
	if bet <= 0 {
		return nil, ErrInvalidAmount
	}

	guard := s.locks.Acquire(scope.Player(playerID))
	defer guard.Release()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := ensureAccount(ctx, uow, playerID, displayName)
	if err != nil {
		return nil, err
	}
	if account.Balance < bet {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, account.Balance, bet)
	}

	if err := debitBalance(ctx, uow, account, bet, "slots bet"); err != nil {
		return nil, err
	}

	spin := games.SpinReels(s.rng, bet)

	var gained int64
	if spin.Won {
		if err := creditBalance(ctx, uow, account, spin.Payout, "slots payout"); err != nil {
			return nil, err
		}
		gained, err = grantXP(ctx, uow, account, spin.XP)
		if err != nil {
			return nil, err
		}
	}

	// A pair pays out without moving the record; only jackpots and
	// total misses count as an outcome.
	if spin.Triple || !spin.Won {
		if err := uow.AccountRepository().RecordOutcome(ctx, playerID, spin.Won); err != nil {
			return nil, err
		}
	}
	uow.EventBus().Publish(events.GameResolvedEvent{
		DiscordID: playerID,
		Kind:      models.GameKindSlots,
		Won:       spin.Won,
		Payout:    spin.Payout,
	})

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &SpinOutcome{
		SpinResult:   spin,
		Bet:          bet,
		LevelsGained: gained,
		NewBalance:   account.Balance,
	}, nil
}

func (s *gameService) blackjackView(game *games.Blackjack) *BlackjackRound {
	return &BlackjackRound{
		PlayerHand:  game.PlayerHand(),
		DealerHand:  game.DealerHand(),
		PlayerValue: game.PlayerValue(),
		DealerValue: game.DealerValue(),
		Bet:         game.Bet(),
	}
}

// resolveOutcome applies a terminal game result to the ledger in one
// transaction: payout, XP, win/loss counters and the resolution event.
func (s *gameService) resolveOutcome(ctx context.Context, playerID int64, displayName string, kind models.GameKind, won bool, payout, xp int64) (*models.GameOutcome, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := ensureAccount(ctx, uow, playerID, displayName)
	if err != nil {
		return nil, err
	}

	var gained int64
	if won {
		if err := creditBalance(ctx, uow, account, payout, string(kind)+" payout"); err != nil {
			return nil, err
		}
		gained, err = grantXP(ctx, uow, account, xp)
		if err != nil {
			return nil, err
		}
	}

	if err := uow.AccountRepository().RecordOutcome(ctx, playerID, won); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.GameResolvedEvent{
		DiscordID: playerID,
		Kind:      kind,
		Won:       won,
		Payout:    payout,
	})

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &models.GameOutcome{
		Kind:         kind,
		Won:          won,
		Payout:       payout,
		XP:           xp,
		LevelsGained: gained,
		NewBalance:   account.Balance,
	}, nil
}

// resolvePush refunds the bet with no outcome recorded, returning the new balance
func (s *gameService) resolvePush(ctx context.Context, playerID int64, refund int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByDiscordID(ctx, playerID)
	if err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return 0, ErrAccountNotFound
	}

	if err := creditBalance(ctx, uow, account, refund, "blackjack push refund"); err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, err
	}

	return account.Balance, nil
}
