package gov

import (
	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ estate.Initializer = (*Initializer)(nil)

// FromGenesis validates and stores the governance rules.
func (*Initializer) FromGenesis(opts estate.Options, db estate.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, confPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}
	return nil
}
