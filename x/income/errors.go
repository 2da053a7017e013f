package income

import "github.com/iov-one/estate/errors"

// Income engine reserves 100 ~ 109.
var (
	ErrNothingToClaim      = errors.ErrState.Register(100, "nothing to claim")
	ErrInsufficientReserve = errors.ErrState.Register(101, "insufficient reserve")
	ErrReentrant           = errors.ErrState.Register(102, "reentrant call")
	ErrSweepExceedsDust    = errors.ErrState.Register(103, "sweep exceeds dust")
)
