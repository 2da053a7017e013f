package app

import (
	"encoding/binary"
	"strconv"
	"time"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/app"
	"github.com/iov-one/estate/crypto"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/x/cash"
	"github.com/iov-one/estate/x/gov"
	"github.com/iov-one/estate/x/income"
	"github.com/iov-one/estate/x/shares"
	"github.com/iov-one/estate/x/sigs"
)

// Engine is the typed entry point for in-process callers. Every state
// changing call builds a transaction signed by the caller, delivers it and
// commits the result, so each operation is applied completely or not at all.
type Engine struct {
	app  *app.Application
	ctrl Controllers
	now  func() time.Time
}

// NewEngine returns an engine executing against the given application. When
// clock is nil the wall clock is used.
func NewEngine(a *app.Application, ctrl Controllers, clock func() time.Time) *Engine {
	if clock == nil {
		clock = time.Now
	}
	return &Engine{app: a, ctrl: ctrl, now: clock}
}

// Application returns the wrapped application.
func (e *Engine) Application() *app.Application {
	return e.app
}

// Execute signs the message with the signer, delivers it and commits.
func (e *Engine) Execute(signer crypto.Signer, msg estate.Msg) (*estate.DeliverResult, error) {
	now := e.now()
	var seq int64
	err := e.app.View(now, func(ctx estate.Context, db estate.ReadOnlyKVStore) error {
		var err error
		seq, err = sigs.NextSequence(db, signer.PublicKey())
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "sequence")
	}

	tx, err := NewTx(msg)
	if err != nil {
		return nil, err
	}
	if err := tx.Sign(signer, e.app.ChainID(), seq); err != nil {
		return nil, err
	}
	res, err := e.app.DeliverTx(now, tx)
	if err != nil {
		return nil, err
	}
	if _, err := e.app.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	return res, nil
}

// DepositIncome moves amount from the depositor into the income reserve and
// returns the new all-time deposited total.
func (e *Engine) DepositIncome(depositor crypto.Signer, amount uint64) (uint64, error) {
	res, err := e.Execute(depositor, &income.DepositMsg{Amount: amount})
	if err != nil {
		return 0, err
	}
	return eventUint(res, "income_deposited", "new_total")
}

// GetClaimable returns how much the holder could claim right now.
func (e *Engine) GetClaimable(holder estate.Address) (uint64, error) {
	var amount uint64
	err := e.view(func(ctx estate.Context, db estate.ReadOnlyKVStore) error {
		var err error
		amount, err = e.ctrl.Income.Claimable(db, holder)
		return err
	})
	return amount, err
}

// Claim pays the caller everything it is entitled to and returns the paid
// amount.
func (e *Engine) Claim(holder crypto.Signer) (uint64, error) {
	msg := &income.ClaimMsg{Holder: holder.PublicKey().Address()}
	res, err := e.Execute(holder, msg)
	if err != nil {
		return 0, err
	}
	amount, err := strconv.ParseUint(string(res.Data), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrHuman, "claim result %q", res.Data)
	}
	return amount, nil
}

// SweepDust moves unclaimable rounding remainder out of the reserve. Only the
// owner may call it.
func (e *Engine) SweepDust(owner crypto.Signer, dest estate.Address, amount uint64) error {
	_, err := e.Execute(owner, &income.SweepMsg{Amount: amount, Destination: dest})
	return err
}

// Ledger returns the income totals.
func (e *Engine) Ledger() (*income.Ledger, error) {
	var l *income.Ledger
	err := e.view(func(ctx estate.Context, db estate.ReadOnlyKVStore) error {
		var err error
		l, err = e.ctrl.Income.Ledger(db)
		return err
	})
	return l, err
}

// CreateProposal opens a proposal authored by the caller and returns its id.
func (e *Engine) CreateProposal(proposer crypto.Signer, description string) (uint64, error) {
	msg := &gov.CreateProposalMsg{
		Proposer:    proposer.PublicKey().Address(),
		Description: description,
	}
	res, err := e.Execute(proposer, msg)
	if err != nil {
		return 0, err
	}
	if len(res.Data) != 8 {
		return 0, errors.Wrapf(errors.ErrHuman, "proposal key %X", res.Data)
	}
	return binary.BigEndian.Uint64(res.Data), nil
}

// Vote casts the caller's vote, weighted by its current share balance.
func (e *Engine) Vote(voter crypto.Signer, id uint64, inFavor bool) error {
	msg := &gov.VoteMsg{
		ProposalID: id,
		Voter:      voter.PublicKey().Address(),
		InFavor:    inFavor,
	}
	_, err := e.Execute(voter, msg)
	return err
}

// GetProposal returns the proposal with the given id.
func (e *Engine) GetProposal(id uint64) (*gov.Proposal, error) {
	var p *gov.Proposal
	err := e.view(func(ctx estate.Context, db estate.ReadOnlyKVStore) error {
		var err error
		p, err = e.ctrl.Gov.Get(db, id)
		return err
	})
	return p, err
}

// GetOutcome evaluates the proposal at the current time.
func (e *Engine) GetOutcome(id uint64) (*gov.Outcome, error) {
	var o *gov.Outcome
	err := e.view(func(ctx estate.Context, db estate.ReadOnlyKVStore) error {
		var err error
		o, err = e.ctrl.Gov.Outcome(ctx, db, id)
		return err
	})
	return o, err
}

// GetStatus returns the life cycle state of the proposal.
func (e *Engine) GetStatus(id uint64) (gov.Status, error) {
	var s gov.Status
	err := e.view(func(ctx estate.Context, db estate.ReadOnlyKVStore) error {
		var err error
		s, err = e.ctrl.Gov.Status(ctx, db, id)
		return err
	})
	return s, err
}

// MarkExecuted records that a passed proposal was executed. Any signer may
// send it.
func (e *Engine) MarkExecuted(caller crypto.Signer, id uint64) error {
	_, err := e.Execute(caller, &gov.MarkExecutedMsg{ProposalID: id})
	return err
}

// GetProposalCount returns how many proposals were created.
func (e *Engine) GetProposalCount() (uint64, error) {
	var n uint64
	err := e.view(func(ctx estate.Context, db estate.ReadOnlyKVStore) error {
		var err error
		n, err = e.ctrl.Gov.Count(db)
		return err
	})
	return n, err
}

// GetVote returns the vote of the voter on the proposal.
func (e *Engine) GetVote(id uint64, voter estate.Address) (*gov.Vote, error) {
	var v *gov.Vote
	err := e.view(func(ctx estate.Context, db estate.ReadOnlyKVStore) error {
		var err error
		v, err = e.ctrl.Gov.GetVote(db, id, voter)
		return err
	})
	return v, err
}

// TransferShares moves shares owned by the caller.
func (e *Engine) TransferShares(owner crypto.Signer, dest estate.Address, amount uint64) error {
	msg := &shares.TransferMsg{
		Source:      owner.PublicKey().Address(),
		Destination: dest,
		Amount:      amount,
	}
	_, err := e.Execute(owner, msg)
	return err
}

// BalanceOf returns the share balance of the address.
func (e *Engine) BalanceOf(addr estate.Address) (uint64, error) {
	var n uint64
	err := e.view(func(ctx estate.Context, db estate.ReadOnlyKVStore) error {
		var err error
		n, err = e.ctrl.Shares.BalanceOf(db, addr)
		return err
	})
	return n, err
}

// TotalSupply returns the number of shares in existence.
func (e *Engine) TotalSupply() (uint64, error) {
	var n uint64
	err := e.view(func(ctx estate.Context, db estate.ReadOnlyKVStore) error {
		var err error
		n, err = e.ctrl.Shares.TotalSupply(db)
		return err
	})
	return n, err
}

// SendCash moves income currency owned by the caller.
func (e *Engine) SendCash(owner crypto.Signer, dest estate.Address, amount uint64, memo string) error {
	msg := &cash.SendMsg{
		Source:      owner.PublicKey().Address(),
		Destination: dest,
		Amount:      amount,
		Memo:        memo,
	}
	_, err := e.Execute(owner, msg)
	return err
}

// CashBalance returns the income currency held by the address.
func (e *Engine) CashBalance(addr estate.Address) (uint64, error) {
	var n uint64
	err := e.view(func(ctx estate.Context, db estate.ReadOnlyKVStore) error {
		var err error
		n, err = e.ctrl.Cash.Balance(db, addr)
		return err
	})
	return n, err
}

func (e *Engine) view(fn func(estate.Context, estate.ReadOnlyKVStore) error) error {
	return e.app.View(e.now(), fn)
}

func eventUint(res *estate.DeliverResult, typ, key string) (uint64, error) {
	for _, ev := range res.Events {
		if ev.Type != typ {
			continue
		}
		if v, ok := ev.Attr(key); ok {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return 0, errors.Wrapf(errors.ErrHuman, "%s.%s: %q", typ, key, v)
			}
			return n, nil
		}
	}
	return 0, errors.Wrapf(errors.ErrNotFound, "event %s.%s", typ, key)
}
