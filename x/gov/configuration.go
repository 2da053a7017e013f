package gov

import (
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/gconf"
)

const confPkg = "gov"

// Configuration holds the governance rules. It is set at genesis and never
// changes.
type Configuration struct {
	// MinTokensToPropose is the share balance required to create a proposal.
	MinTokensToPropose uint64 `json:"min_tokens_to_propose"`
	// VotingPeriodSeconds is the length of the voting window.
	VotingPeriodSeconds int64 `json:"voting_period_seconds"`
	// SupermajorityPercent is the minimal percentage of cast votes that
	// must be in favor. It must be greater than 50 and at most 100.
	SupermajorityPercent uint32 `json:"supermajority_percent"`
	// QuorumPercent is the minimal percentage of the total supply that must
	// have voted. Zero disables the quorum.
	QuorumPercent uint32 `json:"quorum_percent"`
}

func (c *Configuration) Marshal() ([]byte, error)   { return json.Marshal(c) }
func (c *Configuration) Unmarshal(raw []byte) error { return json.Unmarshal(raw, c) }

// Validate ensures the rules are consistent.
func (c *Configuration) Validate() error {
	if c.MinTokensToPropose == 0 {
		return errors.Wrap(errors.ErrInput, "min tokens to propose must not be zero")
	}
	if c.VotingPeriodSeconds <= 0 {
		return errors.Wrap(errors.ErrInput, "voting period must be positive")
	}
	if c.SupermajorityPercent <= 50 || c.SupermajorityPercent > 100 {
		return errors.Wrapf(errors.ErrInput, "supermajority %d not in (50, 100]", c.SupermajorityPercent)
	}
	if c.QuorumPercent > 100 {
		return errors.Wrapf(errors.ErrInput, "quorum %d above 100", c.QuorumPercent)
	}
	return nil
}

// LoadConfiguration returns the stored governance rules.
func LoadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
