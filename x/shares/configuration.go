package shares

import (
	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/gconf"
)

// Configuration of the share registry.
type Configuration struct {
	// Issuer is the only address allowed to issue new shares after genesis.
	Issuer estate.Address `json:"issuer"`
}

func (c *Configuration) Marshal() ([]byte, error)   { return json.Marshal(c) }
func (c *Configuration) Unmarshal(raw []byte) error { return json.Unmarshal(raw, c) }

// Validate requires a valid issuer address.
func (c *Configuration) Validate() error {
	if err := c.Issuer.Validate(); err != nil {
		return errors.Wrap(err, "issuer")
	}
	return nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, "shares", &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
