package app

import (
	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/crypto"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/x/cash"
	"github.com/iov-one/estate/x/gov"
	"github.com/iov-one/estate/x/income"
	"github.com/iov-one/estate/x/shares"
	"github.com/iov-one/estate/x/sigs"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// messages maps every supported message path to a constructor of an empty
// message of that kind.
var messages = map[string]func() estate.Msg{
	(&cash.SendMsg{}).Path():          func() estate.Msg { return &cash.SendMsg{} },
	(&shares.TransferMsg{}).Path():    func() estate.Msg { return &shares.TransferMsg{} },
	(&shares.IssueMsg{}).Path():       func() estate.Msg { return &shares.IssueMsg{} },
	(&income.DepositMsg{}).Path():     func() estate.Msg { return &income.DepositMsg{} },
	(&income.ClaimMsg{}).Path():       func() estate.Msg { return &income.ClaimMsg{} },
	(&income.SweepMsg{}).Path():       func() estate.Msg { return &income.SweepMsg{} },
	(&gov.CreateProposalMsg{}).Path(): func() estate.Msg { return &gov.CreateProposalMsg{} },
	(&gov.VoteMsg{}).Path():           func() estate.Msg { return &gov.VoteMsg{} },
	(&gov.MarkExecutedMsg{}).Path():   func() estate.Msg { return &gov.MarkExecutedMsg{} },
}

// Tx is the transaction envelope of the estate application. The message is
// kept in its serialized form together with its path so the sign bytes do
// not depend on the decoding.
type Tx struct {
	MsgPath    string               `json:"path"`
	Msg        estate.RawMessage    `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures,omitempty"`
}

// make sure tx fulfills all interfaces
var _ estate.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx wraps the message into an unsigned transaction.
func NewTx(msg estate.Msg) (*Tx, error) {
	raw, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal message")
	}
	return &Tx{MsgPath: msg.Path(), Msg: raw}, nil
}

// GetMsg decodes the message according to its path.
func (tx *Tx) GetMsg() (estate.Msg, error) {
	return DecodeMsg(tx.MsgPath, tx.Msg)
}

// DecodeMsg builds the message registered under path from its serialized
// form.
func DecodeMsg(path string, raw []byte) (estate.Msg, error) {
	build, ok := messages[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrMsg, "unknown message path %q", path)
	}
	msg := build()
	if err := msg.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "cannot decode %s: %s", path, err)
	}
	return msg, nil
}

// GetSignatures returns the signatures attached to the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	signatures := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = signatures
	return bz, err
}

// Sign appends a signature made by the signer for the given sequence.
func (tx *Tx) Sign(signer crypto.Signer, chainID string, seq int64) error {
	sig, err := sigs.SignTx(signer, tx, chainID, seq)
	if err != nil {
		return errors.Wrap(err, "sign")
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	return json.Marshal(tx)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, tx)
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (estate.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return tx, nil
}
