package utils

import (
	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ estate.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx estate.Context, store estate.KVStore, tx estate.Tx, next estate.Checker) (_ *estate.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx estate.Context, store estate.KVStore, tx estate.Tx, next estate.Deliverer) (_ *estate.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
