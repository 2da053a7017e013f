package app

import estate "github.com/iov-one/estate"

// EventSink receives the events of every successfully delivered transaction,
// in delivery order.
type EventSink interface {
	Publish(height int64, path string, events []estate.Event)
}

// EventSinkFunc is an adapter to allow the use of ordinary functions as
// event sinks.
type EventSinkFunc func(height int64, path string, events []estate.Event)

// Publish calls fn(height, path, events).
func (fn EventSinkFunc) Publish(height int64, path string, events []estate.Event) {
	fn(height, path, events)
}

// EventLog is an EventSink that keeps all published events in memory.
type EventLog struct {
	Entries []EventEntry
}

// EventEntry is a single event together with its origin.
type EventEntry struct {
	Height int64
	Path   string
	Event  estate.Event
}

var _ EventSink = (*EventLog)(nil)

// Publish appends the events to the log.
func (l *EventLog) Publish(height int64, path string, events []estate.Event) {
	for _, e := range events {
		l.Entries = append(l.Entries, EventEntry{Height: height, Path: path, Event: e})
	}
}

// ByType returns all logged events of the given type.
func (l *EventLog) ByType(typ string) []estate.Event {
	var res []estate.Event
	for _, e := range l.Entries {
		if e.Event.Type == typ {
			res = append(res, e.Event)
		}
	}
	return res
}
