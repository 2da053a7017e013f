package estate

import (
	"reflect"

	"github.com/iov-one/estate/errors"
	"github.com/tendermint/tendermint/libs/common"
)

// Event is a notification emitted by a successful state transition. The
// type names the occurrence, attributes carry its data.
type Event struct {
	Type       string          `json:"type"`
	Attributes []common.KVPair `json:"attributes,omitempty"`
}

// NewEvent builds an event from alternating attribute keys and values.
func NewEvent(typ string, kv ...string) Event {
	if len(kv)%2 != 0 {
		panic("event attributes must be key value pairs")
	}
	ev := Event{Type: typ}
	for i := 0; i < len(kv); i += 2 {
		ev.Attributes = append(ev.Attributes, common.KVPair{
			Key:   []byte(kv[i]),
			Value: []byte(kv[i+1]),
		})
	}
	return ev
}

// Attr returns the value of the first attribute with given key.
func (e Event) Attr(key string) (string, bool) {
	for _, kv := range e.Attributes {
		if string(kv.Key) == key {
			return string(kv.Value), true
		}
	}
	return "", false
}

// CheckResult captures any non-error check results.
type CheckResult struct {
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
	// Log is human-readable informational string
	Log string
}

// DeliverResult captures any non-error results of a state transition.
type DeliverResult struct {
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
	// Log is human-readable informational string
	Log string
	// Events emitted by the transition, in order.
	Events []Event
}

// assign copies the value of src into dst. Both must be pointers to the same
// type.
func assign(dst, src interface{}) error {
	if dst == nil {
		return errors.Wrap(errors.ErrHuman, "destination cannot be nil")
	}
	if src == nil {
		return errors.Wrap(errors.ErrHuman, "source cannot be nil")
	}
	dv := reflect.ValueOf(dst)
	sv := reflect.ValueOf(src)
	if dv.Kind() != reflect.Ptr || sv.Kind() != reflect.Ptr {
		return errors.Wrap(errors.ErrHuman, "destination and source must be pointers")
	}
	if dv.Type() != sv.Type() {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", dst, src)
	}
	dv.Elem().Set(sv.Elem())
	return nil
}
