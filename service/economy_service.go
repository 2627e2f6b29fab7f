package service

import (
	"context"
	"fmt"
	"time"

	"arcade/config"
	"arcade/games"
	"arcade/models"
	"arcade/scope"
)

const dailyCooldown = 24 * time.Hour

// economyService implements the EconomyService interface
type economyService struct {
	uowFactory UnitOfWorkFactory
	locks      *scope.LockRegistry
	clock      games.Clock
}

// NewEconomyService creates a new economy service
func NewEconomyService(uowFactory UnitOfWorkFactory, locks *scope.LockRegistry, clock games.Clock) EconomyService {
	return &economyService{
		uowFactory: uowFactory,
		locks:      locks,
		clock:      clock,
	}
}

// ClaimDaily grants the level-scaled daily bonus once per cooldown window
func (s *economyService) ClaimDaily(ctx context.Context, discordID int64, displayName string) (*models.DailyClaimResult, error) {
	guard := s.locks.Acquire(scope.Player(discordID))
	defer guard.Release()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := ensureAccount(ctx, uow, discordID, displayName)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if elapsed := now.Sub(account.LastDaily); elapsed < dailyCooldown {
		return nil, &DailyCooldownError{Remaining: dailyCooldown - elapsed}
	}

	cfg := config.Get()
	reward := cfg.DailyBaseReward + account.Level*10

	if err := creditBalance(ctx, uow, account, reward, "daily bonus"); err != nil {
		return nil, err
	}

	gained, err := grantXP(ctx, uow, account, cfg.DailyXP)
	if err != nil {
		return nil, err
	}

	if err := uow.AccountRepository().SetLastDaily(ctx, discordID, now); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &models.DailyClaimResult{
		Reward:       reward,
		XP:           cfg.DailyXP,
		LevelsGained: gained,
		NewBalance:   account.Balance,
	}, nil
}

// Transfer moves coins between two accounts. Both guards are taken in
// account-id order so two opposing transfers cannot deadlock.
func (s *economyService) Transfer(ctx context.Context, fromID, toID int64, fromName, toName string, amount int64) (*models.TransferResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if fromID == toID {
		return nil, ErrSelfTransfer
	}

	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}
	firstGuard := s.locks.Acquire(scope.Player(first))
	defer firstGuard.Release()
	secondGuard := s.locks.Acquire(scope.Player(second))
	defer secondGuard.Release()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	sender, err := ensureAccount(ctx, uow, fromID, fromName)
	if err != nil {
		return nil, err
	}
	if sender.Balance < amount {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, sender.Balance, amount)
	}

	recipient, err := ensureAccount(ctx, uow, toID, toName)
	if err != nil {
		return nil, err
	}

	if err := debitBalance(ctx, uow, sender, amount, "transfer out"); err != nil {
		return nil, err
	}
	if err := creditBalance(ctx, uow, recipient, amount, "transfer in"); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &models.TransferResult{
		Amount:        amount,
		RecipientName: recipient.DisplayName,
		NewBalance:    sender.Balance,
	}, nil
}
