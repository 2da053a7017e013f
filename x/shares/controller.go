package shares

import (
	"math"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/orm"
)

// Controller is the share registry. Every method reads the current state,
// nothing is cached between calls.
type Controller struct {
	holdings HoldingBucket
	supply   SupplyBucket
}

// NewController returns a registry over the default buckets.
func NewController() Controller {
	return Controller{
		holdings: NewHoldingBucket(),
		supply:   NewSupplyBucket(),
	}
}

// BalanceOf returns the number of shares held by the address.
func (c Controller) BalanceOf(db estate.ReadOnlyKVStore, addr estate.Address) (uint64, error) {
	return c.holdings.Balance(db, addr)
}

// TotalSupply returns the number of shares issued.
func (c Controller) TotalSupply(db estate.ReadOnlyKVStore) (uint64, error) {
	return c.supply.Total(db)
}

// IterateHolders calls fn for every address holding a non zero balance, in
// address order.
func (c Controller) IterateHolders(db estate.ReadOnlyKVStore, fn func(estate.Address, uint64) error) error {
	return c.holdings.Visit(db, nil, func(obj orm.Object) error {
		return fn(estate.Address(obj.Key()), obj.Value().(*Holding).Balance)
	})
}

// Issue creates new shares for the destination, growing the total supply.
func (c Controller) Issue(db estate.KVStore, dest estate.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "cannot issue zero shares")
	}
	total, err := c.supply.Total(db)
	if err != nil {
		return err
	}
	if total > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "total supply")
	}
	balance, err := c.holdings.Balance(db, dest)
	if err != nil {
		return err
	}
	if err := c.holdings.SetBalance(db, dest, balance+amount); err != nil {
		return err
	}
	return c.supply.SetTotal(db, total+amount)
}

// Transfer moves shares between two addresses. The total supply does not
// change.
func (c Controller) Transfer(db estate.KVStore, src, dest estate.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "cannot transfer zero shares")
	}
	from, err := c.holdings.Balance(db, src)
	if err != nil {
		return err
	}
	if from < amount {
		return errors.Wrapf(ErrInsufficientShares, "balance %d, requested %d", from, amount)
	}
	if err := c.holdings.SetBalance(db, src, from-amount); err != nil {
		return err
	}
	to, err := c.holdings.Balance(db, dest)
	if err != nil {
		return err
	}
	// to + amount never exceeds the total supply, which fits.
	return c.holdings.SetBalance(db, dest, to+amount)
}
