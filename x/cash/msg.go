package cash

import (
	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
)

const (
	pathSendMsg = "cash/send"

	maxMemoSize = 128
)

// SendMsg moves funds from the source to the destination account.
type SendMsg struct {
	Source      estate.Address `json:"source"`
	Destination estate.Address `json:"destination"`
	Amount      uint64         `json:"amount"`
	Memo        string         `json:"memo,omitempty"`
}

var _ estate.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

func (s *SendMsg) Marshal() ([]byte, error)   { return json.Marshal(s) }
func (s *SendMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, s) }

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	if s.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	if len(s.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInput, "memo too long")
	}
	if err := s.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := s.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	return nil
}
