package shares

import (
	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/gconf"
)

// GenesisHolding is an initial share balance declared in the genesis file.
type GenesisHolding struct {
	Address estate.Address `json:"address"`
	Balance uint64         `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ estate.Initializer = (*Initializer)(nil)

// FromGenesis stores the configuration and issues the initial holdings.
func (*Initializer) FromGenesis(opts estate.Options, db estate.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, "shares", &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var holdings []GenesisHolding
	if err := opts.ReadOptions("shares", &holdings); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := NewController()
	for i, h := range holdings {
		if err := h.Address.Validate(); err != nil {
			return errors.Wrapf(err, "holding %d", i)
		}
		if err := ctrl.Issue(db, h.Address, h.Balance); err != nil {
			return errors.Wrapf(err, "holding %d", i)
		}
	}
	return nil
}
