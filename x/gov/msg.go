package gov

import (
	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
)

const (
	pathCreateProposalMsg = "gov/create_proposal"
	pathVoteMsg           = "gov/vote"
	pathMarkExecutedMsg   = "gov/mark_executed"
)

// CreateProposalMsg creates a text proposal. It must be signed by the
// proposer.
type CreateProposalMsg struct {
	Proposer    estate.Address `json:"proposer"`
	Description string         `json:"description"`
}

var _ estate.Msg = (*CreateProposalMsg)(nil)

func (CreateProposalMsg) Path() string { return pathCreateProposalMsg }

func (m *CreateProposalMsg) Marshal() ([]byte, error)   { return json.Marshal(m) }
func (m *CreateProposalMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, m) }

func (m *CreateProposalMsg) Validate() error {
	if err := m.Proposer.Validate(); err != nil {
		return errors.Wrap(err, "proposer")
	}
	return validateDescription(m.Description)
}

// VoteMsg casts a vote. It must be signed by the voter.
type VoteMsg struct {
	ProposalID uint64         `json:"proposal_id"`
	Voter      estate.Address `json:"voter"`
	InFavor    bool           `json:"in_favor"`
}

var _ estate.Msg = (*VoteMsg)(nil)

func (VoteMsg) Path() string { return pathVoteMsg }

func (m *VoteMsg) Marshal() ([]byte, error)   { return json.Marshal(m) }
func (m *VoteMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, m) }

func (m *VoteMsg) Validate() error {
	return errors.Wrap(m.Voter.Validate(), "voter")
}

// MarkExecutedMsg records the execution of a passed proposal. Anyone may
// send it.
type MarkExecutedMsg struct {
	ProposalID uint64 `json:"proposal_id"`
}

var _ estate.Msg = (*MarkExecutedMsg)(nil)

func (MarkExecutedMsg) Path() string { return pathMarkExecutedMsg }

func (m *MarkExecutedMsg) Marshal() ([]byte, error)   { return json.Marshal(m) }
func (m *MarkExecutedMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, m) }

func (m *MarkExecutedMsg) Validate() error { return nil }
