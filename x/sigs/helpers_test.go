package sigs

import (
	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/estatetest"
)

// StdTx is a signed transaction used by the tests of this package.
type StdTx struct {
	estatetest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ estate.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &estatetest.Msg{RoutePath: "test/mock", Serialized: payload}
	return &StdTx{Tx: estatetest.Tx{Msg: msg}}
}

func (tx StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []estate.Condition
}

var _ estate.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx estate.Context, store estate.KVStore, tx estate.Tx) (*estate.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &estate.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx estate.Context, store estate.KVStore, tx estate.Tx) (*estate.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &estate.DeliverResult{}, nil
}
