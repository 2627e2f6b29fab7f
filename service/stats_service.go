package service

import (
	"context"
	"fmt"

	"arcade/config"
	"arcade/games"
	"arcade/models"
	"arcade/scope"
)

// statsService implements the StatsService interface
type statsService struct {
	uowFactory UnitOfWorkFactory
	locks      *scope.LockRegistry
	clock      games.Clock
}

// NewStatsService creates a new stats service
func NewStatsService(uowFactory UnitOfWorkFactory, locks *scope.LockRegistry, clock games.Clock) StatsService {
	return &statsService{
		uowFactory: uowFactory,
		locks:      locks,
		clock:      clock,
	}
}

// GetProfile returns an account with its loans' current debts, creating the
// account on first sighting.
func (s *statsService) GetProfile(ctx context.Context, discordID int64, displayName string) (*models.Account, []models.LoanStatement, error) {
	guard := s.locks.Acquire(scope.Player(discordID))
	defer guard.Release()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := ensureAccount(ctx, uow, discordID, displayName)
	if err != nil {
		return nil, nil, err
	}

	loans, err := uow.LoanRepository().GetByOwner(ctx, discordID)
	if err != nil {
		return nil, nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, nil, err
	}

	now := s.clock.Now()
	rate := config.Get().LoanDailyRate

	statements := make([]models.LoanStatement, 0, len(loans))
	for _, loan := range loans {
		statements = append(statements, models.LoanStatement{
			Loan: *loan,
			Debt: loan.DebtAt(now, rate),
		})
	}

	return account, statements, nil
}

// GetLeaderboard returns the top accounts by level and experience
func (s *statsService) GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.AccountRepository().GetTop(ctx, limit)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return entries, nil
}
