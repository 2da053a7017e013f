/*
Package sigs provides basic authentication
middleware to verify the signatures on the transaction,
and maintain nonces for replay protection.

The signers become the callers of the wrapped handlers: a claim pays the
signer, a vote is counted for the signer.
*/
package sigs

import (
	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
)

// Decorator verifies the signatures and adds them to the context. A
// transaction without at least one valid signature is rejected.
type Decorator struct{}

var _ estate.Decorator = Decorator{}

// NewDecorator returns the authentication decorator, which appends the
// chainID before checking the signature.
func NewDecorator() Decorator {
	return Decorator{}
}

// Check verifies signatures before calling down the stack.
func (d Decorator) Check(ctx estate.Context, store estate.KVStore, tx estate.Tx, next estate.Checker) (*estate.CheckResult, error) {
	ctx, err := d.withVerifiedSigners(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

// Deliver verifies signatures before calling down the stack.
func (d Decorator) Deliver(ctx estate.Context, store estate.KVStore, tx estate.Tx, next estate.Deliverer) (*estate.DeliverResult, error) {
	ctx, err := d.withVerifiedSigners(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) withVerifiedSigners(ctx estate.Context, store estate.KVStore, tx estate.Tx) (estate.Context, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return nil, errors.Wrap(errors.ErrUnauthorized, "transaction is not signed")
	}

	chainID := estate.GetChainID(ctx)
	signers, err := VerifyTxSignatures(store, stx, chainID)
	if err != nil {
		return nil, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), nil
}
