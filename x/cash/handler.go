package cash

import (
	"strconv"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/x"
)

// RegisterQuery will register this bucket as "/cash"
func RegisterQuery(qr estate.QueryRouter) {
	NewBucket().Register("", qr)
}

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r estate.Registry, auth x.Authenticator, control *Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, control))
}

// SendHandler will handle sending funds
type SendHandler struct {
	auth    x.Authenticator
	control *Controller
}

var _ estate.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control *Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h SendHandler) Check(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &estate.CheckResult{}, nil
}

// Deliver moves the funds if all preconditions are met
func (h SendHandler) Deliver(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveFunds(ctx, db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	ev := estate.NewEvent("cash_sent",
		"source", msg.Source.String(),
		"destination", msg.Destination.String(),
		"amount", strconv.FormatUint(msg.Amount, 10),
	)
	return &estate.DeliverResult{Events: []estate.Event{ev}}, nil
}

func (h SendHandler) validate(ctx estate.Context, tx estate.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := estate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Source, "source"); err != nil {
		return nil, err
	}
	return &msg, nil
}
