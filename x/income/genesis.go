package income

import (
	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/gconf"
)

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ estate.Initializer = (*Initializer)(nil)

// FromGenesis stores the configuration and an empty ledger.
func (*Initializer) FromGenesis(opts estate.Options, db estate.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, confPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}
	if err := NewLedgerBucket().Store(db, &Ledger{}); err != nil {
		return errors.Wrap(err, "ledger")
	}
	return nil
}
