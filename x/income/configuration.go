package income

import (
	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/gconf"
)

const confPkg = "income"

// Configuration of the income engine. It is set at genesis and never
// changes.
type Configuration struct {
	// Depositor is the only address allowed to deposit income.
	Depositor estate.Address `json:"depositor"`
	// Owner is the only address allowed to sweep dust.
	Owner estate.Address `json:"owner"`
}

func (c *Configuration) Marshal() ([]byte, error)   { return json.Marshal(c) }
func (c *Configuration) Unmarshal(raw []byte) error { return json.Unmarshal(raw, c) }

// Validate requires both roles to be set.
func (c *Configuration) Validate() error {
	if err := c.Depositor.Validate(); err != nil {
		return errors.Wrap(err, "depositor")
	}
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}

// LoadConfiguration returns the stored configuration.
func LoadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
