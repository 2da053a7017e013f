package gov

import (
	"strconv"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/x"
)

// RegisterQuery registers governance buckets for querying.
func RegisterQuery(qr estate.QueryRouter) {
	NewProposalBucket().Register("proposals", qr)
	NewVoteBucket().Register("votes", qr)
}

// RegisterRoutes registers handlers for governance message processing.
func RegisterRoutes(r estate.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathCreateProposalMsg, &CreateProposalHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathVoteMsg, &VoteHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathMarkExecutedMsg, &MarkExecutedHandler{ctrl: ctrl})
}

type CreateProposalHandler struct {
	auth x.Authenticator
	ctrl Controller
}

func (h CreateProposalHandler) Check(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, _, err := h.ctrl.checkCreate(ctx, db, msg.Proposer, msg.Description); err != nil {
		return nil, err
	}
	return &estate.CheckResult{}, nil
}

func (h CreateProposalHandler) Deliver(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	p, err := h.ctrl.Create(ctx, db, msg.Proposer, msg.Description)
	if err != nil {
		return nil, err
	}
	ev := estate.NewEvent("proposal_created",
		"proposal_id", strconv.FormatUint(p.ID, 10),
		"proposer", p.Proposer.String(),
		"description", p.Description,
		"vote_start", strconv.FormatInt(int64(p.VoteStart), 10),
		"vote_end", strconv.FormatInt(int64(p.VoteEnd), 10),
	)
	return &estate.DeliverResult{
		Data:   ProposalKey(p.ID),
		Events: []estate.Event{ev},
	}, nil
}

func (h CreateProposalHandler) validate(ctx estate.Context, tx estate.Tx) (*CreateProposalMsg, error) {
	var msg CreateProposalMsg
	if err := estate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Proposer, "proposer"); err != nil {
		return nil, err
	}
	return &msg, nil
}

type VoteHandler struct {
	auth x.Authenticator
	ctrl Controller
}

func (h VoteHandler) Check(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, _, err := h.ctrl.checkVote(ctx, db, msg.ProposalID, msg.Voter); err != nil {
		return nil, err
	}
	return &estate.CheckResult{}, nil
}

func (h VoteHandler) Deliver(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	v, err := h.ctrl.Vote(ctx, db, msg.ProposalID, msg.Voter, msg.InFavor)
	if err != nil {
		return nil, err
	}
	ev := estate.NewEvent("voted",
		"proposal_id", strconv.FormatUint(v.ProposalID, 10),
		"voter", v.Voter.String(),
		"in_favor", strconv.FormatBool(v.InFavor),
		"weight", strconv.FormatUint(v.Weight, 10),
	)
	return &estate.DeliverResult{Events: []estate.Event{ev}}, nil
}

func (h VoteHandler) validate(ctx estate.Context, tx estate.Tx) (*VoteMsg, error) {
	var msg VoteMsg
	if err := estate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Voter, "voter"); err != nil {
		return nil, err
	}
	return &msg, nil
}

type MarkExecutedHandler struct {
	ctrl Controller
}

func (h MarkExecutedHandler) Check(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.CheckResult, error) {
	var msg MarkExecutedMsg
	if err := estate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.checkMarkExecuted(ctx, db, msg.ProposalID); err != nil {
		return nil, err
	}
	return &estate.CheckResult{}, nil
}

func (h MarkExecutedHandler) Deliver(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.DeliverResult, error) {
	var msg MarkExecutedMsg
	if err := estate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.MarkExecuted(ctx, db, msg.ProposalID); err != nil {
		return nil, err
	}
	ev := estate.NewEvent("proposal_marked_executed",
		"proposal_id", strconv.FormatUint(msg.ProposalID, 10),
	)
	return &estate.DeliverResult{Events: []estate.Event{ev}}, nil
}
