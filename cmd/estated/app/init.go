package app

import (
	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/x/cash"
	"github.com/iov-one/estate/x/gov"
	"github.com/iov-one/estate/x/income"
	"github.com/iov-one/estate/x/shares"
)

// GenesisConfig describes the initial state of a property: who holds its
// shares, who deposits and administers income and the governance rules.
type GenesisConfig struct {
	ChainID  string
	Gov      gov.Configuration
	Income   income.Configuration
	Shares   shares.Configuration
	Holders  []shares.GenesisHolding
	Accounts []cash.GenesisAccount
}

// DefaultGovConfiguration returns rules suitable for development: one share
// to propose, a day long vote, 66% supermajority and 10% quorum.
func DefaultGovConfiguration() gov.Configuration {
	return gov.Configuration{
		MinTokensToPropose:   1,
		VotingPeriodSeconds:  24 * 60 * 60,
		SupermajorityPercent: 66,
		QuorumPercent:        10,
	}
}

// Genesis renders the configuration into the genesis document understood by
// the extension initializers.
func (c GenesisConfig) Genesis() (estate.Genesis, error) {
	if !estate.IsValidChainID(c.ChainID) {
		return estate.Genesis{}, errors.Wrapf(errors.ErrInput, "chain id: %q", c.ChainID)
	}
	if err := c.Gov.Validate(); err != nil {
		return estate.Genesis{}, errors.Wrap(err, "gov")
	}
	if err := c.Income.Validate(); err != nil {
		return estate.Genesis{}, errors.Wrap(err, "income")
	}
	if err := c.Shares.Validate(); err != nil {
		return estate.Genesis{}, errors.Wrap(err, "shares")
	}

	conf, err := json.Marshal(map[string]interface{}{
		"gov":    c.Gov,
		"income": c.Income,
		"shares": c.Shares,
	})
	if err != nil {
		return estate.Genesis{}, errors.Wrap(err, "marshal configuration")
	}
	holders, err := json.Marshal(c.Holders)
	if err != nil {
		return estate.Genesis{}, errors.Wrap(err, "marshal holders")
	}
	accounts, err := json.Marshal(c.Accounts)
	if err != nil {
		return estate.Genesis{}, errors.Wrap(err, "marshal accounts")
	}
	return estate.Genesis{
		ChainID: c.ChainID,
		AppState: estate.Options{
			"conf":   conf,
			"shares": holders,
			"cash":   accounts,
		},
	}, nil
}
