package service

import (
	"context"
	"fmt"

	"arcade/config"
	"arcade/events"
	"arcade/games"
	"arcade/models"
	"arcade/scope"
)

// loanService implements the LoanService interface
type loanService struct {
	uowFactory UnitOfWorkFactory
	locks      *scope.LockRegistry
	clock      games.Clock
}

// NewLoanService creates a new loan service
func NewLoanService(uowFactory UnitOfWorkFactory, locks *scope.LockRegistry, clock games.Clock) LoanService {
	return &loanService{
		uowFactory: uowFactory,
		locks:      locks,
		clock:      clock,
	}
}

// TakeLoan issues a new loan and credits the principal in one transaction.
// Returns the loan and the account's new balance.
func (s *loanService) TakeLoan(ctx context.Context, discordID int64, displayName string, amount int64) (*models.Loan, int64, error) {
	cfg := config.Get()
	if amount <= 0 {
		return nil, 0, ErrInvalidAmount
	}
	if amount > cfg.LoanCap {
		return nil, 0, fmt.Errorf("%w: maximum is %d", ErrCapExceeded, cfg.LoanCap)
	}

	guard := s.locks.Acquire(scope.Player(discordID))
	defer guard.Release()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := ensureAccount(ctx, uow, discordID, displayName)
	if err != nil {
		return nil, 0, err
	}

	loan := &models.Loan{DiscordID: discordID, Principal: amount}
	if err := uow.LoanRepository().Create(ctx, loan); err != nil {
		return nil, 0, err
	}

	if err := creditBalance(ctx, uow, account, amount, "loan"); err != nil {
		return nil, 0, err
	}

	uow.EventBus().Publish(events.LoanTakenEvent{
		DiscordID: discordID,
		LoanID:    loan.ID,
		Principal: amount,
	})

	if err := uow.Commit(); err != nil {
		return nil, 0, err
	}

	return loan, account.Balance, nil
}

// ListLoans returns the caller's loans with debts computed at the current instant
func (s *loanService) ListLoans(ctx context.Context, discordID int64) ([]models.LoanStatement, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	loans, err := uow.LoanRepository().GetByOwner(ctx, discordID)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
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

	return statements, nil
}

// Repay pays a loan in full at the debt computed at the repayment instant.
// The debt is never taken from a prior listing: time elapsed since then would
// undercharge the borrower.
func (s *loanService) Repay(ctx context.Context, discordID int64, loanID int64) (*models.RepayResult, error) {
	guard := s.locks.Acquire(scope.Player(discordID))
	defer guard.Release()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	loan, err := uow.LoanRepository().GetForOwner(ctx, loanID, discordID)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, ErrLoanNotFound
	}

	account, err := uow.AccountRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	debt := loan.DebtAt(s.clock.Now(), config.Get().LoanDailyRate)
	if account.Balance < debt {
		return nil, fmt.Errorf("%w: debt is %d, balance is %d", ErrInsufficientFunds, debt, account.Balance)
	}

	if err := debitBalance(ctx, uow, account, debt, "loan repayment"); err != nil {
		return nil, err
	}

	if err := uow.LoanRepository().Delete(ctx, loanID); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.LoanRepaidEvent{
		DiscordID: discordID,
		LoanID:    loanID,
		Charged:   debt,
	})

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &models.RepayResult{
		LoanID:     loanID,
		Charged:    debt,
		NewBalance: account.Balance,
	}, nil
}
