package service

import (
	"context"
	"fmt"

	"arcade/models"
	"arcade/scope"
)

// ledgerService implements the LedgerService interface
type ledgerService struct {
	uowFactory UnitOfWorkFactory
	locks      *scope.LockRegistry
}

// NewLedgerService creates a new ledger service
func NewLedgerService(uowFactory UnitOfWorkFactory, locks *scope.LockRegistry) LedgerService {
	return &ledgerService{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// GetOrCreateAccount retrieves an existing account or creates one with the starting balance
func (s *ledgerService) GetOrCreateAccount(ctx context.Context, discordID int64, displayName string) (*models.Account, error) {
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

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return account, nil
}

// AddXP awards experience and normalizes it into levels, returning levels gained
func (s *ledgerService) AddXP(ctx context.Context, discordID int64, amount int64) (*models.Account, int64, error) {
	guard := s.locks.Acquire(scope.Player(discordID))
	defer guard.Release()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, 0, ErrAccountNotFound
	}

	gained, err := grantXP(ctx, uow, account, amount)
	if err != nil {
		return nil, 0, err
	}

	if err := uow.Commit(); err != nil {
		return nil, 0, err
	}

	return account, gained, nil
}

// RemoveXP deducts experience, borrowing levels down to the floor of level 1
func (s *ledgerService) RemoveXP(ctx context.Context, discordID int64, amount int64) (*models.Account, error) {
	guard := s.locks.Acquire(scope.Player(discordID))
	defer guard.Release()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	if err := deductXP(ctx, uow, account, amount); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return account, nil
}

// RecordOutcome updates win/loss counters after a game resolves
func (s *ledgerService) RecordOutcome(ctx context.Context, discordID int64, won bool) error {
	guard := s.locks.Acquire(scope.Player(discordID))
	defer guard.Release()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.AccountRepository().RecordOutcome(ctx, discordID, won); err != nil {
		return err
	}

	return uow.Commit()
}
