package income

import (
	"strconv"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/x"
)

// RegisterQuery registers income buckets for querying.
func RegisterQuery(qr estate.QueryRouter) {
	NewLedgerBucket().Register("income/ledger", qr)
	NewClaimBucket().Register("income/claims", qr)
}

// RegisterRoutes registers handlers for income message processing.
func RegisterRoutes(r estate.Registry, auth x.Authenticator, ctrl *Controller) {
	r.Handle(pathDepositMsg, &depositHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathClaimMsg, &claimHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathSweepMsg, &sweepHandler{auth: auth, ctrl: ctrl})
}

type depositHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

func (h *depositHandler) Check(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &estate.CheckResult{}, nil
}

func (h *depositHandler) Deliver(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	total, err := h.ctrl.Deposit(ctx, db, conf.Depositor, msg.Amount)
	if err != nil {
		return nil, err
	}
	ev := estate.NewEvent("income_deposited",
		"depositor", conf.Depositor.String(),
		"amount", strconv.FormatUint(msg.Amount, 10),
		"new_total", strconv.FormatUint(total, 10),
	)
	return &estate.DeliverResult{Events: []estate.Event{ev}}, nil
}

func (h *depositHandler) validate(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*DepositMsg, *Configuration, error) {
	var msg DepositMsg
	if err := estate.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, nil, err
	}
	if err := x.RequireSigner(ctx, h.auth, conf.Depositor, "depositor"); err != nil {
		return nil, nil, err
	}
	return &msg, conf, nil
}

type claimHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

func (h *claimHandler) Check(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	amount, err := h.ctrl.Claimable(db, msg.Holder)
	if err != nil {
		return nil, err
	}
	if amount == 0 {
		return nil, errors.Wrap(ErrNothingToClaim, msg.Holder.String())
	}
	return &estate.CheckResult{}, nil
}

func (h *claimHandler) Deliver(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	amount, claimed, err := h.ctrl.Claim(ctx, db, msg.Holder)
	if err != nil {
		return nil, err
	}
	ev := estate.NewEvent("income_claimed",
		"holder", msg.Holder.String(),
		"amount", strconv.FormatUint(amount, 10),
		"cumulative_claimed", strconv.FormatUint(claimed, 10),
	)
	return &estate.DeliverResult{
		Data:   []byte(strconv.FormatUint(amount, 10)),
		Events: []estate.Event{ev},
	}, nil
}

func (h *claimHandler) validate(ctx estate.Context, tx estate.Tx) (*ClaimMsg, error) {
	var msg ClaimMsg
	if err := estate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Holder, "holder"); err != nil {
		return nil, err
	}
	return &msg, nil
}

type sweepHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

func (h *sweepHandler) Check(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &estate.CheckResult{}, nil
}

func (h *sweepHandler) Deliver(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.SweepDust(ctx, db, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	ev := estate.NewEvent("income_swept",
		"owner", conf.Owner.String(),
		"destination", msg.Destination.String(),
		"amount", strconv.FormatUint(msg.Amount, 10),
	)
	return &estate.DeliverResult{Events: []estate.Event{ev}}, nil
}

func (h *sweepHandler) validate(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*SweepMsg, *Configuration, error) {
	var msg SweepMsg
	if err := estate.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, nil, err
	}
	if err := x.RequireSigner(ctx, h.auth, conf.Owner, "owner"); err != nil {
		return nil, nil, err
	}
	return &msg, conf, nil
}
