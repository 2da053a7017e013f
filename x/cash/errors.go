package cash

import "github.com/iov-one/estate/errors"

// Cash currency reserves 130 ~ 139.
var (
	// ErrInsufficientFunds is returned when the source of a transfer does not
	// hold enough funds.
	ErrInsufficientFunds = errors.ErrInsufficientAmount.Register(130, "insufficient funds")
)
