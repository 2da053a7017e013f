package app

import (
	"testing"

	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/estatetest"
	"github.com/iov-one/estate/x/income"
	"github.com/iov-one/estate/x/sigs"
	"github.com/stretchr/testify/require"
)

func TestTxRoundTrip(t *testing.T) {
	signer := estatetest.NewKey()
	tx, err := NewTx(&income.DepositMsg{Amount: 42})
	require.NoError(t, err)
	require.NoError(t, tx.Sign(signer, "estate-test", 3))

	raw, err := tx.Marshal()
	require.NoError(t, err)

	decoded, err := TxDecoder(raw)
	require.NoError(t, err)
	msg, err := decoded.GetMsg()
	require.NoError(t, err)
	require.Equal(t, &income.DepositMsg{Amount: 42}, msg)

	stx := decoded.(sigs.SignedTx)
	require.Len(t, stx.GetSignatures(), 1)
	require.Equal(t, int64(3), stx.GetSignatures()[0].Sequence)

	// Signatures do not take part in the signed bytes.
	before, err := tx.GetSignBytes()
	require.NoError(t, err)
	after, err := stx.GetSignBytes()
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestTxRejectsUnknownMessages(t *testing.T) {
	tx := &Tx{MsgPath: "income/unknown", Msg: []byte(`{}`)}
	_, err := tx.GetMsg()
	require.True(t, errors.ErrMsg.Is(err), "%+v", err)

	tx = &Tx{MsgPath: "income/deposit", Msg: []byte(`{"amount": "many"}`)}
	_, err = tx.GetMsg()
	require.True(t, errors.ErrMsg.Is(err), "%+v", err)

	_, err = TxDecoder([]byte("not json"))
	require.True(t, errors.ErrInput.Is(err), "%+v", err)
}
