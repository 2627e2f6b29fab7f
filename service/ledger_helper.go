package service

import (
	"context"
	"fmt"

	"arcade/config"
	"arcade/events"
	"arcade/models"
)

// Shared ledger primitives. They operate on an open unit of work so game
// resolution, loans and quiz rewards can fold ledger writes into their own
// transaction. Callers hold the player scope guard for the whole span.

// ensureAccount fetches the account, creating it with the starting balance on
// first sighting and refreshing a changed display name.
func ensureAccount(ctx context.Context, uow UnitOfWork, discordID int64, displayName string) (*models.Account, error) {
	account, err := uow.AccountRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	if account == nil {
		cfg := config.Get()
		account, err = uow.AccountRepository().Create(ctx, discordID, displayName, cfg.StartingBalance)
		if err != nil {
			return nil, fmt.Errorf("failed to create account: %w", err)
		}

		uow.EventBus().Publish(events.AccountCreatedEvent{
			DiscordID:       discordID,
			DisplayName:     displayName,
			StartingBalance: account.Balance,
		})
		return account, nil
	}

	if displayName != "" && displayName != account.DisplayName {
		if err := uow.AccountRepository().UpdateDisplayName(ctx, discordID, displayName); err != nil {
			return nil, fmt.Errorf("failed to refresh display name: %w", err)
		}
		account.DisplayName = displayName
	}

	return account, nil
}

// grantXP adds experience and renormalizes it into levels, mutating the
// passed account in place. Returns the number of levels gained.
func grantXP(ctx context.Context, uow UnitOfWork, account *models.Account, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, nil
	}

	levelXP := config.Get().LevelXP

	xp := account.XP + amount
	level := account.Level
	var gained int64
	for xp >= levelXP {
		xp -= levelXP
		level++
		gained++
	}

	if err := uow.AccountRepository().UpdateProgress(ctx, account.DiscordID, xp, level); err != nil {
		return 0, fmt.Errorf("failed to update progress: %w", err)
	}

	account.XP = xp
	account.Level = level

	if gained > 0 {
		uow.EventBus().Publish(events.LevelUpEvent{
			DiscordID:    account.DiscordID,
			NewLevel:     level,
			LevelsGained: gained,
		})
	}

	return gained, nil
}

// deductXP removes experience, borrowing levels down while possible. The
// level floor is 1 and XP is clamped to 0 once the floor is hit.
func deductXP(ctx context.Context, uow UnitOfWork, account *models.Account, amount int64) error {
	if amount <= 0 {
		return nil
	}

	levelXP := config.Get().LevelXP

	xp := account.XP - amount
	level := account.Level
	for xp < 0 && level > 1 {
		xp += levelXP
		level--
	}
	if xp < 0 {
		xp = 0
	}

	if err := uow.AccountRepository().UpdateProgress(ctx, account.DiscordID, xp, level); err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}

	account.XP = xp
	account.Level = level
	return nil
}

// creditBalance adds winnings to the account and publishes a balance event
func creditBalance(ctx context.Context, uow UnitOfWork, account *models.Account, amount int64, reason string) error {
	if amount <= 0 {
		return nil
	}

	if err := uow.AccountRepository().AddBalance(ctx, account.DiscordID, amount); err != nil {
		return fmt.Errorf("failed to credit balance: %w", err)
	}

	old := account.Balance
	account.Balance += amount

	uow.EventBus().Publish(events.BalanceChangeEvent{
		DiscordID:    account.DiscordID,
		OldBalance:   old,
		NewBalance:   account.Balance,
		Reason:       reason,
		ChangeAmount: amount,
	})
	return nil
}

// debitBalance charges the account. The caller has already verified
// sufficiency under the scope guard; the guarded UPDATE is the backstop.
func debitBalance(ctx context.Context, uow UnitOfWork, account *models.Account, amount int64, reason string) error {
	if amount <= 0 {
		return nil
	}

	if err := uow.AccountRepository().DeductBalance(ctx, account.DiscordID, amount); err != nil {
		return fmt.Errorf("failed to debit balance: %w", err)
	}

	old := account.Balance
	account.Balance -= amount

	uow.EventBus().Publish(events.BalanceChangeEvent{
		DiscordID:    account.DiscordID,
		OldBalance:   old,
		NewBalance:   account.Balance,
		Reason:       reason,
		ChangeAmount: -amount,
	})
	return nil
}
