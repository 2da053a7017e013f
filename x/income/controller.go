package income

import (
	"math"
	"math/big"
	"sync/atomic"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
)

// ShareRegistry is the source of claim weight. It is queried on every call,
// never cached.
type ShareRegistry interface {
	BalanceOf(db estate.ReadOnlyKVStore, addr estate.Address) (uint64, error)
	TotalSupply(db estate.ReadOnlyKVStore) (uint64, error)
	IterateHolders(db estate.ReadOnlyKVStore, fn func(estate.Address, uint64) error) error
}

// CashController moves the income currency.
type CashController interface {
	Balance(db estate.ReadOnlyKVStore, addr estate.Address) (uint64, error)
	MoveFunds(ctx estate.Context, db estate.KVStore, src, dest estate.Address, amount uint64) error
}

// Controller is the claim engine. Authorization is the caller's concern,
// the controller only enforces the accounting rules.
type Controller struct {
	shares ShareRegistry
	cash   CashController
	ledger LedgerBucket
	claims ClaimBucket

	// locked guards Claim against reentrant calls made while a payout is in
	// progress.
	locked int32
}

// NewController returns a claim engine using the given collaborators.
func NewController(shares ShareRegistry, cash CashController) *Controller {
	return &Controller{
		shares: shares,
		cash:   cash,
		ledger: NewLedgerBucket(),
		claims: NewClaimBucket(),
	}
}

// Deposit moves amount from the depositor into the reserve and grows the
// deposited total. It returns the new total.
func (c *Controller) Deposit(ctx estate.Context, db estate.KVStore, depositor estate.Address, amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, errors.Wrap(errors.ErrAmount, "cannot deposit zero")
	}
	ledger, err := c.ledger.Load(db)
	if err != nil {
		return 0, errors.Wrap(err, "ledger")
	}
	if ledger.TotalDeposited > math.MaxUint64-amount {
		return 0, errors.Wrap(errors.ErrOverflow, "total deposited")
	}
	if err := c.cash.MoveFunds(ctx, db, depositor, ReserveAddress(), amount); err != nil {
		return 0, errors.Wrap(err, "move to reserve")
	}
	ledger.TotalDeposited += amount
	if err := c.ledger.Store(db, ledger); err != nil {
		return 0, errors.Wrap(err, "ledger")
	}
	return ledger.TotalDeposited, nil
}

// Claimable returns what the holder can claim right now.
func (c *Controller) Claimable(db estate.ReadOnlyKVStore, holder estate.Address) (uint64, error) {
	ledger, err := c.ledger.Load(db)
	if err != nil {
		return 0, errors.Wrap(err, "ledger")
	}
	supply, err := c.shares.TotalSupply(db)
	if err != nil {
		return 0, errors.Wrap(err, "total supply")
	}
	balance, err := c.shares.BalanceOf(db, holder)
	if err != nil {
		return 0, errors.Wrap(err, "balance")
	}
	return c.claimable(db, ledger, supply, holder, balance)
}

func (c *Controller) claimable(db estate.ReadOnlyKVStore, ledger *Ledger, supply uint64, holder estate.Address, balance uint64) (uint64, error) {
	if supply == 0 || balance == 0 {
		return 0, nil
	}
	entitlement, err := Entitlement(balance, ledger.TotalDeposited, supply)
	if err != nil {
		return 0, err
	}
	claimed, err := c.claims.Claimed(db, holder)
	if err != nil {
		return 0, errors.Wrap(err, "claimed")
	}
	if entitlement <= claimed {
		return 0, nil
	}
	return entitlement - claimed, nil
}

// Entitlement returns floor(balance * deposited / supply). Supply must not be
// zero. A result that does not fit uint64 is only possible when balance is
// greater than supply and is an ErrOverflow error.
func Entitlement(balance, deposited, supply uint64) (uint64, error) {
	if supply == 0 {
		return 0, errors.Wrap(errors.ErrHuman, "zero supply")
	}
	var n big.Int
	n.SetUint64(balance)
	n.Mul(&n, new(big.Int).SetUint64(deposited))
	n.Quo(&n, new(big.Int).SetUint64(supply))
	if !n.IsUint64() {
		return 0, errors.Wrapf(errors.ErrOverflow, "entitlement of balance %d exceeds range", balance)
	}
	return n.Uint64(), nil
}

// Claim pays the holder everything claimable. The new cumulative claimed
// value is stored before the payout, so any call made by the payout sees
// nothing left to claim. Returns the paid amount and the new cumulative
// claimed value.
func (c *Controller) Claim(ctx estate.Context, db estate.KVStore, holder estate.Address) (uint64, uint64, error) {
	if !atomic.CompareAndSwapInt32(&c.locked, 0, 1) {
		return 0, 0, errors.Wrap(ErrReentrant, "claim in progress")
	}
	defer atomic.StoreInt32(&c.locked, 0)

	amount, err := c.Claimable(db, holder)
	if err != nil {
		return 0, 0, err
	}
	if amount == 0 {
		return 0, 0, errors.Wrap(ErrNothingToClaim, holder.String())
	}
	ledger, err := c.ledger.Load(db)
	if err != nil {
		return 0, 0, errors.Wrap(err, "ledger")
	}
	// Funds sent to the reserve outside of a deposit never pay claims.
	if unclaimed := ledger.Unclaimed(); amount > unclaimed {
		return 0, 0, errors.Wrapf(ErrInsufficientReserve, "unclaimed deposits %d, claimable %d", unclaimed, amount)
	}
	reserve, err := c.Reserve(db)
	if err != nil {
		return 0, 0, err
	}
	if reserve < amount {
		return 0, 0, errors.Wrapf(ErrInsufficientReserve, "reserve %d, claimable %d", reserve, amount)
	}

	claimed, err := c.claims.Claimed(db, holder)
	if err != nil {
		return 0, 0, errors.Wrap(err, "claimed")
	}
	// Claimed plus amount is the entitlement, it fits.
	claimed += amount
	if err := c.claims.SetClaimed(db, holder, claimed); err != nil {
		return 0, 0, errors.Wrap(err, "claimed")
	}
	ledger.TotalClaimed += amount
	if err := c.ledger.Store(db, ledger); err != nil {
		return 0, 0, errors.Wrap(err, "ledger")
	}

	if err := c.cash.MoveFunds(ctx, db, ReserveAddress(), holder, amount); err != nil {
		return 0, 0, errors.Wrap(err, "payout")
	}
	return amount, claimed, nil
}

// Pending returns the sum of everything currently claimable by all holders.
func (c *Controller) Pending(db estate.ReadOnlyKVStore) (uint64, error) {
	ledger, err := c.ledger.Load(db)
	if err != nil {
		return 0, errors.Wrap(err, "ledger")
	}
	supply, err := c.shares.TotalSupply(db)
	if err != nil {
		return 0, errors.Wrap(err, "total supply")
	}
	var pending uint64
	err = c.shares.IterateHolders(db, func(holder estate.Address, balance uint64) error {
		amount, err := c.claimable(db, ledger, supply, holder, balance)
		if err != nil {
			return err
		}
		if pending > math.MaxUint64-amount {
			return errors.Wrap(errors.ErrOverflow, "pending")
		}
		pending += amount
		return nil
	})
	return pending, err
}

// Sweepable returns the part of the reserve that is not owed to any holder.
func (c *Controller) Sweepable(db estate.ReadOnlyKVStore) (uint64, error) {
	reserve, err := c.Reserve(db)
	if err != nil {
		return 0, err
	}
	pending, err := c.Pending(db)
	if err != nil {
		return 0, err
	}
	if reserve <= pending {
		return 0, nil
	}
	return reserve - pending, nil
}

// SweepDust moves amount of unowed reserve funds to the destination.
func (c *Controller) SweepDust(ctx estate.Context, db estate.KVStore, dest estate.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "cannot sweep zero")
	}
	sweepable, err := c.Sweepable(db)
	if err != nil {
		return err
	}
	if amount > sweepable {
		return errors.Wrapf(ErrSweepExceedsDust, "sweepable %d, requested %d", sweepable, amount)
	}
	ledger, err := c.ledger.Load(db)
	if err != nil {
		return errors.Wrap(err, "ledger")
	}
	if ledger.TotalSwept > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "total swept")
	}
	ledger.TotalSwept += amount
	if err := c.ledger.Store(db, ledger); err != nil {
		return errors.Wrap(err, "ledger")
	}
	if err := c.cash.MoveFunds(ctx, db, ReserveAddress(), dest, amount); err != nil {
		return errors.Wrap(err, "sweep")
	}
	return nil
}

// Ledger returns the engine totals.
func (c *Controller) Ledger(db estate.ReadOnlyKVStore) (*Ledger, error) {
	return c.ledger.Load(db)
}

// Claimed returns the cumulative amount paid to the holder.
func (c *Controller) Claimed(db estate.ReadOnlyKVStore, holder estate.Address) (uint64, error) {
	return c.claims.Claimed(db, holder)
}

// Reserve returns the funds currently held by the engine.
func (c *Controller) Reserve(db estate.ReadOnlyKVStore) (uint64, error) {
	reserve, err := c.cash.Balance(db, ReserveAddress())
	if err != nil {
		return 0, errors.Wrap(err, "reserve")
	}
	return reserve, nil
}
