package estatetest

import estate "github.com/iov-one/estate"

// Tx represents a transaction.
// Transaction represents a single message that is to be processed within this
// transaction.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg estate.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ estate.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (estate.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents a message, a request processed within a single transaction.
type Msg struct {
	// Path returned by the path method, consumed by the router.
	RoutePath string
	// Serialized represents the serialized form of this message.
	Serialized []byte
	// Err if set is returned by any method call.
	Err error
}

var _ estate.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}
