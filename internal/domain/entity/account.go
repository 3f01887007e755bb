package entity

import (
	"time"

	errs "github.com/Alex-KostPy/roofnn/internal/domain/error"
	coreport "github.com/Alex-KostPy/roofnn/internal/domain/port/core"
)

// Ledger policy constants
const (
	// SignupFreeCredits is the number of free unlock attempts a fresh account starts with
	SignupFreeCredits = 2

	// RefillFreeCredits is the number of free attempts granted per refill window
	RefillFreeCredits = 2

	// RefillInterval is the hard threshold between free-credit refills,
	// measured as absolute elapsed time, not calendar weeks
	RefillInterval = 7 * 24 * time.Hour

	// MaxCreditAmount is the upper bound for a single balance top-up
	MaxCreditAmount = 100000
)

// Account represents a user's ledger: balance, free unlock attempts and
// display metadata. Balance is stored in whole currency units as int64,
// kept private so every mutation goes through a guarded method.
type Account struct {
	TgID         int64 // Telegram user id, the stable external identifier
	balance      int64
	freeCredits  int
	LastRefillAt *time.Time
	Username     string
	FirstName    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewAccount creates a fresh account with signup defaults
func NewAccount(tgID int64, timeProvider coreport.TimeProvider) (*Account, error) {
	if tgID == 0 {
		return nil, errs.ErrAuthenticationFailed
	}

	now := timeProvider.Now()
	return &Account{
		TgID:        tgID,
		balance:     0,
		freeCredits: SignupFreeCredits,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Balance returns the current balance in whole currency units
func (a *Account) Balance() int64 {
	return a.balance
}

// FreeCredits returns the remaining free unlock attempts
func (a *Account) FreeCredits() int {
	return a.freeCredits
}

// SetBalance updates the balance directly (for internal use, like repositories)
func (a *Account) SetBalance(balance int64) {
	a.balance = balance
}

// SetFreeCredits updates the free-credit count directly (for internal use, like repositories)
func (a *Account) SetFreeCredits(credits int) {
	a.freeCredits = credits
}

// Credit adds a positive, bounded amount to the balance.
// Returns ErrInvalidAmount for non-positive or over-limit amounts.
func (a *Account) Credit(amount int64, timeProvider coreport.TimeProvider) error {
	if amount <= 0 || amount > MaxCreditAmount {
		return errs.ErrInvalidAmount
	}
	a.balance += amount
	a.UpdatedAt = timeProvider.Now()
	return nil
}

// DebitFreeCredit consumes one free attempt if any remain
func (a *Account) DebitFreeCredit(timeProvider coreport.TimeProvider) bool {
	if a.freeCredits <= 0 {
		return false
	}
	a.freeCredits--
	a.UpdatedAt = timeProvider.Now()
	return true
}

// DebitBalance subtracts amount from the balance if it is fully covered.
// A debit that would go negative is rejected, never clamped.
func (a *Account) DebitBalance(amount int64, timeProvider coreport.TimeProvider) bool {
	if amount < 0 || a.balance < amount {
		return false
	}
	a.balance -= amount
	a.UpdatedAt = timeProvider.Now()
	return true
}

// ApplyWeeklyRefill grants the periodic free attempts when the refill window
// has elapsed. A nil LastRefillAt (first-ever contact) counts as a refill
// event. Repeated calls inside the same window are no-ops.
// Returns true if a refill was applied.
func (a *Account) ApplyWeeklyRefill(now time.Time) bool {
	if a.LastRefillAt == nil {
		a.freeCredits += RefillFreeCredits
		a.LastRefillAt = &now
		a.UpdatedAt = now
		return true
	}
	if now.Sub(*a.LastRefillAt) >= RefillInterval {
		a.freeCredits += RefillFreeCredits
		a.LastRefillAt = &now
		a.UpdatedAt = now
		return true
	}
	return false
}

// TouchIdentity refreshes display metadata from a verified identity.
// Returns true if anything changed.
func (a *Account) TouchIdentity(username, firstName string, timeProvider coreport.TimeProvider) bool {
	changed := false
	if username != "" && a.Username != username {
		a.Username = username
		changed = true
	}
	if firstName != "" && a.FirstName != firstName {
		a.FirstName = firstName
		changed = true
	}
	if changed {
		a.UpdatedAt = timeProvider.Now()
	}
	return changed
}
