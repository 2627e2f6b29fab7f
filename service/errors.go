package service

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors surfaced to players. All of them are recoverable: the
// handler reports them and the engine state stays untouched.
var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrCapExceeded       = errors.New("loan principal exceeds the cap")
	ErrLoanNotFound      = errors.New("loan not found")
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrQuizEmpty         = errors.New("quiz has no questions")
	ErrQuizForbidden     = errors.New("only the creator can delete a quiz")
	ErrSelfTransfer      = errors.New("cannot transfer to yourself")
	ErrAccountNotFound   = errors.New("account not found")
)

// DailyCooldownError reports how long until the next daily claim
type DailyCooldownError struct {
	Remaining time.Duration
}

func (e *DailyCooldownError) Error() string {
	return fmt.Sprintf("daily bonus already claimed, try again in %s", e.Remaining.Round(time.Second))
}
