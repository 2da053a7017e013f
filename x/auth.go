package x

import (
	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
)

// Authenticator extracts the signers of the current transaction from the
// context. Handlers receive it in their constructor so that tests can plug
// in a fake one.
type Authenticator interface {
	// GetConditions returns all conditions that signed the transaction.
	GetConditions(estate.Context) []estate.Condition
	// HasAddress checks if any condition matches this address.
	HasAddress(estate.Context, estate.Address) bool
}

// MultiAuth accepts a signer known to any of the grouped authenticators.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines the conditions of all authenticators, skipping
// duplicates.
func (m MultiAuth) GetConditions(ctx estate.Context) []estate.Condition {
	var res []estate.Condition
	for _, impl := range m.impls {
		for _, c := range impl.GetConditions(ctx) {
			if !hasCondition(res, c) {
				res = append(res, c)
			}
		}
	}
	return res
}

// HasAddress returns true if any authenticator knows the address.
func (m MultiAuth) HasAddress(ctx estate.Context, addr estate.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// RequireSigner returns ErrUnauthorized unless the address signed the
// transaction. Role names the address in the error, for example "holder".
func RequireSigner(ctx estate.Context, auth Authenticator, addr estate.Address, role string) error {
	if !auth.HasAddress(ctx, addr) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s signature required", role)
	}
	return nil
}

func hasCondition(conds []estate.Condition, c estate.Condition) bool {
	for _, have := range conds {
		if have.Equals(c) {
			return true
		}
	}
	return false
}
