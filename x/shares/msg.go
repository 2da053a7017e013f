package shares

import (
	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
)

const (
	pathTransferMsg = "shares/transfer"
	pathIssueMsg    = "shares/issue"
)

// TransferMsg moves shares from the source to the destination. It must be
// signed by the source.
type TransferMsg struct {
	Source      estate.Address `json:"source"`
	Destination estate.Address `json:"destination"`
	Amount      uint64         `json:"amount"`
}

var _ estate.Msg = (*TransferMsg)(nil)

// Path returns the routing path for this message.
func (TransferMsg) Path() string { return pathTransferMsg }

func (m *TransferMsg) Marshal() ([]byte, error)   { return json.Marshal(m) }
func (m *TransferMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, m) }

// Validate makes sure that this is sensible.
func (m *TransferMsg) Validate() error {
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}

// IssueMsg creates new shares. Only the configured issuer may send it.
type IssueMsg struct {
	Destination estate.Address `json:"destination"`
	Amount      uint64         `json:"amount"`
}

var _ estate.Msg = (*IssueMsg)(nil)

// Path returns the routing path for this message.
func (IssueMsg) Path() string { return pathIssueMsg }

func (m *IssueMsg) Marshal() ([]byte, error)   { return json.Marshal(m) }
func (m *IssueMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, m) }

// Validate makes sure that this is sensible.
func (m *IssueMsg) Validate() error {
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}
