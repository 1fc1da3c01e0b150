package ledger

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcutil"
)

var (
	// ErrUnauthenticated is returned when the anonymous identity calls an
	// operation that moves the caller's own funds.
	ErrUnauthenticated = errors.New("unauthenticated caller")

	// ErrInvalidAmount is returned when an operation amount is zero or
	// negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidIdentity is returned when the anonymous identity is given
	// where a real account is required, such as a deposit target or a
	// release beneficiary.
	ErrInvalidIdentity = errors.New("a non-anonymous identity is required")

	// ErrInsufficientFunds is returned when a debit would take a balance
	// below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotPayer is returned when a caller tries to release or refund an
	// escrow it did not fund.
	ErrNotPayer = errors.New("caller is not the escrow payer")

	// ErrAlreadyLocked is returned when locking a task that already has a
	// locked escrow.
	ErrAlreadyLocked = errors.New("task escrow is already locked")

	// ErrAlreadyReleased is returned when releasing or refunding an escrow
	// that has already been unlocked.
	ErrAlreadyReleased = errors.New("escrow already released or refunded")

	// ErrAlreadyProcessed is returned when processing a withdrawal that is
	// no longer pending.
	ErrAlreadyProcessed = errors.New("withdrawal already processed")
)

// ErrBelowMinimum is returned when a deposit or withdrawal amount is under
// the configured floor.
type ErrBelowMinimum struct {
	Minimum btcutil.Amount
}

func (e ErrBelowMinimum) Error() string {
	return fmt.Sprintf("amount is below the minimum of %d", int64(e.Minimum))
}

// ErrFeeTooHigh is returned when an administrator tries to set the platform
// fee above the cap.
type ErrFeeTooHigh struct {
	Max uint
}

func (e ErrFeeTooHigh) Error() string {
	return fmt.Sprintf("fee percent exceeds the maximum of %d", e.Max)
}

// IsBelowMinimumError returns whether or not the provided error is an
// ErrBelowMinimum error.
func IsBelowMinimumError(err error) bool {
	var e ErrBelowMinimum
	return errors.As(err, &e)
}

// IsFeeTooHighError returns whether or not the provided error is an
// ErrFeeTooHigh error.
func IsFeeTooHighError(err error) bool {
	var e ErrFeeTooHigh
	return errors.As(err, &e)
}
