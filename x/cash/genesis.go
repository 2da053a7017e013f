package cash

import (
	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
)

// GenesisAccount is an initial balance declared in the genesis file.
type GenesisAccount struct {
	Address estate.Address `json:"address"`
	Balance uint64         `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct {
	Control *Controller
}

var _ estate.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (i *Initializer) FromGenesis(opts estate.Options, db estate.KVStore) error {
	var accounts []GenesisAccount
	if err := opts.ReadOptions("cash", &accounts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := i.Control
	if ctrl == nil {
		ctrl = NewController()
	}
	for j, acc := range accounts {
		if err := acc.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", j)
		}
		if err := ctrl.Mint(db, acc.Address, acc.Balance); err != nil {
			return errors.Wrapf(err, "account %d", j)
		}
	}
	return nil
}
