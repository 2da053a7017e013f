package gov

import (
	"math/big"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
)

// ShareRegistry is the source of voting weight. It is queried on every call,
// never cached.
type ShareRegistry interface {
	BalanceOf(db estate.ReadOnlyKVStore, addr estate.Address) (uint64, error)
	TotalSupply(db estate.ReadOnlyKVStore) (uint64, error)
}

// Controller implements proposal creation, voting and outcome evaluation.
// Authorization of the acting address is the caller's concern.
type Controller struct {
	shares    ShareRegistry
	proposals ProposalBucket
	votes     VoteBucket
}

// NewController returns a governance controller reading weights from the
// given registry.
func NewController(shares ShareRegistry) Controller {
	return Controller{
		shares:    shares,
		proposals: NewProposalBucket(),
		votes:     NewVoteBucket(),
	}
}

// Create appends a new proposal whose voting window starts at the current
// block time.
func (c Controller) Create(ctx estate.Context, db estate.KVStore, proposer estate.Address, description string) (*Proposal, error) {
	now, end, err := c.checkCreate(ctx, db, proposer, description)
	if err != nil {
		return nil, err
	}
	id, err := c.proposals.NextID(db)
	if err != nil {
		return nil, errors.Wrap(err, "next id")
	}
	p := &Proposal{
		ID:          id,
		Proposer:    proposer,
		Description: description,
		VoteStart:   now,
		VoteEnd:     end,
	}
	if err := c.proposals.Update(db, p); err != nil {
		return nil, errors.Wrap(err, "save proposal")
	}
	return p, nil
}

// checkCreate returns the voting window of a proposal the proposer may
// create now.
func (c Controller) checkCreate(ctx estate.Context, db estate.ReadOnlyKVStore, proposer estate.Address, description string) (estate.UnixTime, estate.UnixTime, error) {
	if err := validateDescription(description); err != nil {
		return 0, 0, err
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return 0, 0, err
	}
	balance, err := c.shares.BalanceOf(db, proposer)
	if err != nil {
		return 0, 0, errors.Wrap(err, "balance")
	}
	if balance < conf.MinTokensToPropose {
		return 0, 0, errors.Wrapf(ErrInsufficientBalance, "balance %d, required %d", balance, conf.MinTokensToPropose)
	}
	now, err := blockTime(ctx)
	if err != nil {
		return 0, 0, err
	}
	end, err := now.AddSeconds(conf.VotingPeriodSeconds)
	if err != nil {
		return 0, 0, errors.Wrap(err, "vote end")
	}
	return now, end, nil
}

// Vote records a vote weighted by the current balance of the voter.
func (c Controller) Vote(ctx estate.Context, db estate.KVStore, id uint64, voter estate.Address, inFavor bool) (*Vote, error) {
	p, weight, err := c.checkVote(ctx, db, id, voter)
	if err != nil {
		return nil, err
	}
	v := &Vote{ProposalID: id, Voter: voter, InFavor: inFavor, Weight: weight}
	if err := p.CountVote(v); err != nil {
		return nil, err
	}
	if err := c.votes.Record(db, v); err != nil {
		return nil, errors.Wrap(err, "save vote")
	}
	if err := c.proposals.Update(db, p); err != nil {
		return nil, errors.Wrap(err, "save proposal")
	}
	return v, nil
}

// checkVote returns the proposal and the weight the voter can cast on it now.
func (c Controller) checkVote(ctx estate.Context, db estate.ReadOnlyKVStore, id uint64, voter estate.Address) (*Proposal, uint64, error) {
	p, err := c.proposals.GetProposal(db, id)
	if err != nil {
		return nil, 0, err
	}
	now, err := blockTime(ctx)
	if err != nil {
		return nil, 0, err
	}
	if !p.IsVotingOpen(now) {
		return nil, 0, errors.Wrapf(ErrVotingNotOpen, "window %s to %s", p.VoteStart, p.VoteEnd)
	}
	switch voted, err := c.votes.HasVoted(db, id, voter); {
	case err != nil:
		return nil, 0, err
	case voted:
		return nil, 0, errors.Wrapf(ErrAlreadyVoted, "proposal %d", id)
	}
	weight, err := c.shares.BalanceOf(db, voter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "balance")
	}
	if weight == 0 {
		return nil, 0, errors.Wrap(ErrNoVotingPower, voter.String())
	}
	return p, weight, nil
}

// Outcome evaluates the proposal at the current block time. While voting is
// open the outcome is never passed and the required quorum is reported as
// zero.
func (c Controller) Outcome(ctx estate.Context, db estate.ReadOnlyKVStore, id uint64) (*Outcome, error) {
	p, err := c.proposals.GetProposal(db, id)
	if err != nil {
		return nil, err
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	now, err := blockTime(ctx)
	if err != nil {
		return nil, err
	}
	if now <= p.VoteEnd {
		return &Outcome{TotalVotesCast: p.TotalVotes()}, nil
	}
	supply, err := c.shares.TotalSupply(db)
	if err != nil {
		return nil, errors.Wrap(err, "total supply")
	}
	return Evaluate(p.VotesFor, p.VotesAgainst, supply, conf), nil
}

// Evaluate applies the quorum and supermajority rules to a closed tally.
func Evaluate(votesFor, votesAgainst, supply uint64, conf *Configuration) *Outcome {
	total := votesFor + votesAgainst
	out := &Outcome{TotalVotesCast: total}

	if conf.QuorumPercent > 0 {
		if supply == 0 {
			return out
		}
		// supply * quorum / 100 never exceeds supply.
		quorum := new(big.Int).SetUint64(supply)
		quorum.Mul(quorum, big.NewInt(int64(conf.QuorumPercent)))
		quorum.Quo(quorum, big.NewInt(100))
		out.RequiredQuorum = quorum.Uint64()
		if total < out.RequiredQuorum {
			return out
		}
	}
	if total == 0 || votesFor == 0 {
		return out
	}

	// votesFor * 100 >= supermajority * total
	lhs := new(big.Int).SetUint64(votesFor)
	lhs.Mul(lhs, big.NewInt(100))
	rhs := new(big.Int).SetUint64(total)
	rhs.Mul(rhs, big.NewInt(int64(conf.SupermajorityPercent)))
	out.Passed = lhs.Cmp(rhs) >= 0
	return out
}

// MarkExecuted records that a passed proposal was executed. This can happen
// only once.
func (c Controller) MarkExecuted(ctx estate.Context, db estate.KVStore, id uint64) error {
	p, err := c.checkMarkExecuted(ctx, db, id)
	if err != nil {
		return err
	}
	p.Executed = true
	if err := c.proposals.Update(db, p); err != nil {
		return errors.Wrap(err, "save proposal")
	}
	return nil
}

// checkMarkExecuted returns the proposal if it passed and was not marked yet.
func (c Controller) checkMarkExecuted(ctx estate.Context, db estate.ReadOnlyKVStore, id uint64) (*Proposal, error) {
	p, err := c.proposals.GetProposal(db, id)
	if err != nil {
		return nil, err
	}
	if p.Executed {
		return nil, errors.Wrapf(ErrAlreadyExecuted, "proposal %d", id)
	}
	out, err := c.Outcome(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if !out.Passed {
		return nil, errors.Wrapf(ErrNotPassed, "proposal %d", id)
	}
	return p, nil
}

// Get returns the proposal with the given id.
func (c Controller) Get(db estate.ReadOnlyKVStore, id uint64) (*Proposal, error) {
	return c.proposals.GetProposal(db, id)
}

// Count returns the number of proposals ever created.
func (c Controller) Count(db estate.ReadOnlyKVStore) (uint64, error) {
	return c.proposals.Count(db)
}

// GetVote returns the vote cast by the voter. ErrNotFound is returned if the
// proposal does not exist or the voter did not vote.
func (c Controller) GetVote(db estate.ReadOnlyKVStore, id uint64, voter estate.Address) (*Vote, error) {
	if _, err := c.proposals.GetProposal(db, id); err != nil {
		return nil, err
	}
	v, err := c.votes.GetVote(db, id, voter)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no vote of %s on proposal %d", voter, id)
	}
	return v, nil
}

// Votes returns all votes cast on the proposal, ordered by voter address.
func (c Controller) Votes(db estate.ReadOnlyKVStore, id uint64) ([]*Vote, error) {
	if _, err := c.proposals.GetProposal(db, id); err != nil {
		return nil, err
	}
	var votes []*Vote
	err := c.votes.VisitVotes(db, id, func(v *Vote) error {
		votes = append(votes, v)
		return nil
	})
	return votes, err
}

// Status returns the state of the proposal at the current block time.
func (c Controller) Status(ctx estate.Context, db estate.ReadOnlyKVStore, id uint64) (Status, error) {
	p, err := c.proposals.GetProposal(db, id)
	if err != nil {
		return "", err
	}
	if p.Executed {
		return StatusExecuted, nil
	}
	out, err := c.Outcome(ctx, db, id)
	if err != nil {
		return "", err
	}
	now, err := blockTime(ctx)
	if err != nil {
		return "", err
	}
	switch {
	case now <= p.VoteEnd:
		return StatusVoting, nil
	case out.Passed:
		return StatusPassed, nil
	default:
		return StatusFailed, nil
	}
}

func blockTime(ctx estate.Context) (estate.UnixTime, error) {
	now, err := estate.BlockTime(ctx)
	if err != nil {
		return 0, err
	}
	return estate.AsUnixTime(now), nil
}
