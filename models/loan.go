package models

import (
	"math"
	"time"
)

// Loan represents an outstanding loan. The repayable amount is never stored;
// it is derived from the principal and elapsed time at the moment of reading.
type Loan struct {
	ID        int64     `db:"id"`
	DiscordID int64     `db:"discord_id"`
	Principal int64     `db:"principal"`
	CreatedAt time.Time `db:"created_at"`
}

// DebtAt computes the compounded debt at the given instant. Fractional days
// count, and the result is truncated toward zero: principal 100 at two full
// days and rate 0.07 owes int(100 * 1.07^2) = 114.
func (l *Loan) DebtAt(now time.Time, dailyRate float64) int64 {
	days := now.Sub(l.CreatedAt).Seconds() / 86400
	if days < 0 {
		days = 0
	}
	return int64(float64(l.Principal) * math.Pow(1+dailyRate, days))
}

// LoanStatement pairs a loan with its debt computed at a point in time
type LoanStatement struct {
	Loan Loan
	Debt int64
}

// RepayResult represents the outcome of a loan repayment
type RepayResult struct {
	LoanID     int64
	Charged    int64
	NewBalance int64
}
