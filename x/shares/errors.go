package shares

import "github.com/iov-one/estate/errors"

// Share registry reserves 120 ~ 129.
var (
	// ErrInsufficientShares is returned when a transfer exceeds the balance
	// of its source.
	ErrInsufficientShares = errors.ErrInsufficientAmount.Register(120, "insufficient shares")
)
