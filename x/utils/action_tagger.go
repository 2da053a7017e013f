package utils

import (
	estate "github.com/iov-one/estate"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionTagger will inspect the message being executed and add an attribute
// `action = msg.Path()` to every event emitted by its handler. Subscribers
// get a standard way to filter, eg. by proposal creation.
type ActionTagger struct{}

var _ estate.Decorator = ActionTagger{}

// ActionKey is used by ActionTagger as the key of the attribute it appends
const ActionKey = "action"

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check just passes the request along
func (ActionTagger) Check(ctx estate.Context, db estate.KVStore, tx estate.Tx, next estate.Checker) (*estate.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver tags all events of a successful result.
func (ActionTagger) Deliver(ctx estate.Context, db estate.KVStore, tx estate.Tx, next estate.Deliverer) (*estate.DeliverResult, error) {
	// if we error in reporting, let's do so early before dispatching
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}

	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	tag := common.KVPair{
		Key:   []byte(ActionKey),
		Value: []byte(msg.Path()),
	}
	for i, ev := range res.Events {
		if _, ok := ev.Attr(ActionKey); ok {
			continue
		}
		res.Events[i].Attributes = append(ev.Attributes, tag)
	}
	return res, nil
}
