package shares

import (
	"strconv"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/x"
)

// RegisterQuery registers share buckets for querying.
func RegisterQuery(qr estate.QueryRouter) {
	NewHoldingBucket().Register("shares", qr)
	NewSupplyBucket().Register("supply", qr)
}

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r estate.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathTransferMsg, NewTransferHandler(auth, ctrl))
	r.Handle(pathIssueMsg, NewIssueHandler(auth, ctrl))
}

// TransferHandler moves shares between holders.
type TransferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ estate.Handler = TransferHandler{}

// NewTransferHandler creates a handler for TransferMsg
func NewTransferHandler(auth x.Authenticator, ctrl Controller) TransferHandler {
	return TransferHandler{auth: auth, ctrl: ctrl}
}

// Check verifies the message is well formed and authorized.
func (h TransferHandler) Check(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &estate.CheckResult{}, nil
}

// Deliver moves the shares if all preconditions are met.
func (h TransferHandler) Deliver(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	ev := estate.NewEvent("shares_transferred",
		"source", msg.Source.String(),
		"destination", msg.Destination.String(),
		"amount", strconv.FormatUint(msg.Amount, 10),
	)
	return &estate.DeliverResult{Events: []estate.Event{ev}}, nil
}

func (h TransferHandler) validate(ctx estate.Context, tx estate.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := estate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Source, "source"); err != nil {
		return nil, err
	}
	return &msg, nil
}

// IssueHandler creates new shares.
type IssueHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ estate.Handler = IssueHandler{}

// NewIssueHandler creates a handler for IssueMsg
func NewIssueHandler(auth x.Authenticator, ctrl Controller) IssueHandler {
	return IssueHandler{auth: auth, ctrl: ctrl}
}

// Check verifies the message is well formed and signed by the issuer.
func (h IssueHandler) Check(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &estate.CheckResult{}, nil
}

// Deliver issues the shares.
func (h IssueHandler) Deliver(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Issue(db, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	ev := estate.NewEvent("shares_issued",
		"destination", msg.Destination.String(),
		"amount", strconv.FormatUint(msg.Amount, 10),
	)
	return &estate.DeliverResult{Events: []estate.Event{ev}}, nil
}

func (h IssueHandler) validate(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*IssueMsg, error) {
	var msg IssueMsg
	if err := estate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if err := x.RequireSigner(ctx, h.auth, conf.Issuer, "issuer"); err != nil {
		return nil, err
	}
	return &msg, nil
}
