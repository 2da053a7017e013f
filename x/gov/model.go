package gov

import (
	"encoding/binary"
	"unicode/utf8"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/orm"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxDescriptionLength = 5000

// Proposal is a text proposal together with its running tally.
type Proposal struct {
	ID          uint64          `json:"id"`
	Proposer    estate.Address  `json:"proposer"`
	Description string          `json:"description"`
	VoteStart   estate.UnixTime `json:"vote_start"`
	VoteEnd     estate.UnixTime `json:"vote_end"`
	// VotesFor and VotesAgainst are the sums of the weights of cast votes.
	VotesFor     uint64 `json:"votes_for"`
	VotesAgainst uint64 `json:"votes_against"`
	Executed     bool   `json:"executed"`
}

var _ orm.CloneableData = (*Proposal)(nil)

func (p *Proposal) Marshal() ([]byte, error)   { return json.Marshal(p) }
func (p *Proposal) Unmarshal(raw []byte) error { return json.Unmarshal(raw, p) }

// Validate ensures the proposal is well formed.
func (p *Proposal) Validate() error {
	if err := p.Proposer.Validate(); err != nil {
		return errors.Wrap(err, "proposer")
	}
	if err := validateDescription(p.Description); err != nil {
		return err
	}
	if err := p.VoteStart.Validate(); err != nil {
		return errors.Wrap(err, "vote start")
	}
	if p.VoteEnd <= p.VoteStart {
		return errors.Wrap(errors.ErrModel, "vote end must be after vote start")
	}
	if p.VotesFor+p.VotesAgainst < p.VotesFor {
		return errors.Wrap(errors.ErrOverflow, "total votes")
	}
	return nil
}

// Copy returns a copy of the proposal.
func (p *Proposal) Copy() orm.CloneableData {
	cpy := *p
	cpy.Proposer = p.Proposer.Clone()
	return &cpy
}

// TotalVotes returns the sum of both tallies. It never overflows, counting
// a vote checks it.
func (p *Proposal) TotalVotes() uint64 {
	return p.VotesFor + p.VotesAgainst
}

// IsVotingOpen returns true if votes are accepted at the given time. Both
// window bounds are inclusive.
func (p *Proposal) IsVotingOpen(now estate.UnixTime) bool {
	return now >= p.VoteStart && now <= p.VoteEnd
}

// CountVote adds the weight of the vote to the matching tally.
func (p *Proposal) CountVote(v *Vote) error {
	total := p.TotalVotes()
	if total+v.Weight < total {
		return errors.Wrap(errors.ErrOverflow, "total votes")
	}
	if v.InFavor {
		p.VotesFor += v.Weight
	} else {
		p.VotesAgainst += v.Weight
	}
	return nil
}

func validateDescription(d string) error {
	if d == "" {
		return errors.Wrap(ErrDescriptionEmpty, "description")
	}
	if len(d) > maxDescriptionLength {
		return errors.Wrapf(ErrDescriptionTooLong, "max %d bytes", maxDescriptionLength)
	}
	if !utf8.ValidString(d) {
		return errors.Wrap(errors.ErrInput, "description is not valid utf8")
	}
	return nil
}

// Vote is the frozen record of a single vote.
type Vote struct {
	ProposalID uint64         `json:"proposal_id"`
	Voter      estate.Address `json:"voter"`
	InFavor    bool           `json:"in_favor"`
	// Weight is the share balance of the voter at the time of voting.
	Weight uint64 `json:"weight"`
}

var _ orm.CloneableData = (*Vote)(nil)

func (v *Vote) Marshal() ([]byte, error)   { return json.Marshal(v) }
func (v *Vote) Unmarshal(raw []byte) error { return json.Unmarshal(raw, v) }

// Validate ensures the vote carries weight.
func (v *Vote) Validate() error {
	if err := v.Voter.Validate(); err != nil {
		return errors.Wrap(err, "voter")
	}
	if v.Weight == 0 {
		return errors.Wrap(errors.ErrModel, "vote without weight")
	}
	return nil
}

// Copy returns a copy of the vote.
func (v *Vote) Copy() orm.CloneableData {
	cpy := *v
	cpy.Voter = v.Voter.Clone()
	return &cpy
}

// Outcome is the result of evaluating a proposal.
type Outcome struct {
	Passed         bool   `json:"passed"`
	TotalVotesCast uint64 `json:"total_votes_cast"`
	RequiredQuorum uint64 `json:"required_quorum"`
}

// Status is the derived state of a proposal.
type Status string

const (
	StatusVoting   Status = "voting"
	StatusPassed   Status = "passed"
	StatusFailed   Status = "failed"
	StatusExecuted Status = "executed"
)

// ProposalKey returns the primary key of the proposal with the given id.
func ProposalKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// ProposalBucket is the persistent bucket for proposals.
type ProposalBucket struct {
	orm.Bucket
	seq orm.Sequence
}

// NewProposalBucket returns a bucket for managing proposals.
func NewProposalBucket() ProposalBucket {
	b := orm.NewBucket("proposal", orm.NewSimpleObj(nil, &Proposal{}))
	return ProposalBucket{
		Bucket: b,
		seq:    b.Sequence("id"),
	}
}

// NextID reserves the id of a new proposal. Ids start at zero.
func (b ProposalBucket) NextID(db estate.KVStore) (uint64, error) {
	val, err := b.seq.NextInt(db)
	if err != nil {
		return 0, err
	}
	return uint64(val - 1), nil
}

// Count returns the number of proposals ever created.
func (b ProposalBucket) Count(db estate.ReadOnlyKVStore) (uint64, error) {
	val, err := b.seq.Latest(db)
	if err != nil {
		return 0, err
	}
	return uint64(val), nil
}

// GetProposal loads the proposal for the given id. If it does not exist then
// ErrNotFound is returned.
func (b ProposalBucket) GetProposal(db estate.ReadOnlyKVStore, id uint64) (*Proposal, error) {
	obj, err := b.Get(db, ProposalKey(id))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load proposal")
	}
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "proposal %d", id)
	}
	p, ok := obj.Value().(*Proposal)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return p, nil
}

// Update stores the proposal under its id.
func (b ProposalBucket) Update(db estate.KVStore, p *Proposal) error {
	return b.Save(db, orm.NewSimpleObj(ProposalKey(p.ID), p))
}

// VoteBucket stores one vote per proposal and voter.
type VoteBucket struct {
	orm.Bucket
}

// NewVoteBucket returns a bucket for managing votes.
func NewVoteBucket() VoteBucket {
	return VoteBucket{
		Bucket: orm.NewBucket("vote", orm.NewSimpleObj(nil, &Vote{})),
	}
}

// VoteKey is the composite key of a vote. Votes of one proposal share the
// proposal key prefix.
func VoteKey(proposalID uint64, voter estate.Address) []byte {
	return append(ProposalKey(proposalID), voter...)
}

// GetVote returns the vote or nil if the voter did not vote.
func (b VoteBucket) GetVote(db estate.ReadOnlyKVStore, proposalID uint64, voter estate.Address) (*Vote, error) {
	obj, err := b.Get(db, VoteKey(proposalID, voter))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load vote")
	}
	if obj == nil {
		return nil, nil
	}
	v, ok := obj.Value().(*Vote)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return v, nil
}

// HasVoted returns true if the voter already voted on the proposal.
func (b VoteBucket) HasVoted(db estate.ReadOnlyKVStore, proposalID uint64, voter estate.Address) (bool, error) {
	return b.Has(db, VoteKey(proposalID, voter))
}

// Record stores the vote.
func (b VoteBucket) Record(db estate.KVStore, v *Vote) error {
	return b.Save(db, orm.NewSimpleObj(VoteKey(v.ProposalID, v.Voter), v))
}

// VisitVotes calls fn for every vote cast on the proposal.
func (b VoteBucket) VisitVotes(db estate.ReadOnlyKVStore, proposalID uint64, fn func(*Vote) error) error {
	return b.Visit(db, ProposalKey(proposalID), func(obj orm.Object) error {
		v, ok := obj.Value().(*Vote)
		if !ok {
			return errors.WithType(errors.ErrModel, obj.Value())
		}
		return fn(v)
	})
}
