package income

import (
	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
)

const (
	pathDepositMsg = "income/deposit"
	pathClaimMsg   = "income/claim"
	pathSweepMsg   = "income/sweep"
)

// DepositMsg deposits income on behalf of the configured depositor.
type DepositMsg struct {
	Amount uint64 `json:"amount"`
}

var _ estate.Msg = (*DepositMsg)(nil)

func (DepositMsg) Path() string { return pathDepositMsg }

func (m *DepositMsg) Marshal() ([]byte, error)   { return json.Marshal(m) }
func (m *DepositMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, m) }

func (m *DepositMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}

// ClaimMsg claims everything the holder is owed. It must be signed by the
// holder.
type ClaimMsg struct {
	Holder estate.Address `json:"holder"`
}

var _ estate.Msg = (*ClaimMsg)(nil)

func (ClaimMsg) Path() string { return pathClaimMsg }

func (m *ClaimMsg) Marshal() ([]byte, error)   { return json.Marshal(m) }
func (m *ClaimMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, m) }

func (m *ClaimMsg) Validate() error {
	return errors.Wrap(m.Holder.Validate(), "holder")
}

// SweepMsg moves unowed dust out of the reserve. Only the owner may send it.
type SweepMsg struct {
	Amount      uint64         `json:"amount"`
	Destination estate.Address `json:"destination"`
}

var _ estate.Msg = (*SweepMsg)(nil)

func (SweepMsg) Path() string { return pathSweepMsg }

func (m *SweepMsg) Marshal() ([]byte, error)   { return json.Marshal(m) }
func (m *SweepMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, m) }

func (m *SweepMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Destination.Equals(ReserveAddress()) {
		return errors.Wrap(errors.ErrInput, "destination cannot be the reserve")
	}
	return nil
}
