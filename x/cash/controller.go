package cash

import (
	"math"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/sasha-s/go-deadlock"
)

// Receiver is notified after funds arrived on an account. It runs within the
// same transaction and may call back into the application using the given
// store. Returning an error fails the whole transfer.
type Receiver func(ctx estate.Context, db estate.KVStore, from estate.Address, amount uint64) error

// Controller is the functionality needed by other extensions to move the
// income currency around.
type Controller struct {
	bucket Bucket

	mu        deadlock.RWMutex
	receivers map[string]Receiver
}

// NewController returns a controller using the default bucket.
func NewController() *Controller {
	return &Controller{
		bucket:    NewBucket(),
		receivers: make(map[string]Receiver),
	}
}

// OnReceive registers a receiver for the given address, replacing any
// previous one. A nil receiver unregisters it.
func (c *Controller) OnReceive(addr estate.Address, fn Receiver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fn == nil {
		delete(c.receivers, string(addr))
		return
	}
	c.receivers[string(addr)] = fn
}

func (c *Controller) receiver(addr estate.Address) Receiver {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.receivers[string(addr)]
}

// Balance returns the funds held by the address.
func (c *Controller) Balance(db estate.ReadOnlyKVStore, addr estate.Address) (uint64, error) {
	return c.bucket.Balance(db, addr)
}

// Mint creates new funds on the destination account. It does not notify the
// receiver, minting happens only at genesis.
func (c *Controller) Mint(db estate.KVStore, dest estate.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "cannot mint zero")
	}
	balance, err := c.bucket.Balance(db, dest)
	if err != nil {
		return err
	}
	if balance > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "account balance")
	}
	return c.bucket.SetBalance(db, dest, balance+amount)
}

// MoveFunds transfers funds from the source to the destination account.
// Both balances are stored before the receiver of the destination, if any,
// is called.
func (c *Controller) MoveFunds(ctx estate.Context, db estate.KVStore, src, dest estate.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "cannot move zero")
	}
	from, err := c.bucket.Balance(db, src)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	if from < amount {
		return errors.Wrapf(ErrInsufficientFunds, "balance %d, requested %d", from, amount)
	}
	if err := c.bucket.SetBalance(db, src, from-amount); err != nil {
		return errors.Wrap(err, "source")
	}
	to, err := c.bucket.Balance(db, dest)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if to > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "destination balance")
	}
	if err := c.bucket.SetBalance(db, dest, to+amount); err != nil {
		return errors.Wrap(err, "destination")
	}

	if fn := c.receiver(dest); fn != nil {
		if err := fn(ctx, db, src, amount); err != nil {
			return errors.Wrap(err, "receiver")
		}
	}
	return nil
}
