package sigs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/crypto"
	"github.com/iov-one/estate/estatetest"
	"github.com/iov-one/estate/store"
)

func TestDecorator(t *testing.T) {
	kv := store.MemStore()
	checkKv := kv.CacheWrap()
	signers := new(SigCheckHandler)
	d := NewDecorator()
	chainID := "deco-rate"
	ctx := estate.WithChainID(context.Background(), chainID)

	priv := crypto.GenPrivKeyEd25519()
	perms := []estate.Condition{priv.PublicKey().Condition()}

	bz := []byte("art")
	tx := NewStdTx(bz)
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)

	deliver := func(dec estate.Decorator, my estate.Tx) error {
		_, err := dec.Deliver(ctx, kv, my, signers)
		return err
	}
	check := func(dec estate.Decorator, my estate.Tx) error {
		_, err := dec.Check(ctx, checkKv, my, signers)
		return err
	}

	for i, fn := range []func(estate.Decorator, estate.Tx) error{check, deliver} {
		// test with no sigs
		tx.Signatures = nil
		err := fn(d, tx)
		assert.Error(t, err, "%d", i)

		// test with one
		tx.Signatures = []*StdSignature{sig}
		err = fn(d, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, perms, signers.Signers)

		// test with replay
		err = fn(d, tx)
		assert.True(t, ErrInvalidSequence.Is(err), "%d: %v", i, err)

		// next sequence is accepted
		tx.Signatures = []*StdSignature{sig1}
		err = fn(d, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, perms, signers.Signers)
	}
}

func TestDecoratorRejectsUnsignedTx(t *testing.T) {
	ctx := estate.WithChainID(context.Background(), "deco-rate")
	tx := &estatetest.Tx{Msg: &estatetest.Msg{RoutePath: "test/mock"}}
	_, err := NewDecorator().Deliver(ctx, store.MemStore(), tx, new(SigCheckHandler))
	assert.Error(t, err)
}

func TestForgedSignature(t *testing.T) {
	kv := store.MemStore()
	chainID := "forge-chain"
	priv := crypto.GenPrivKeyEd25519()
	other := crypto.GenPrivKeyEd25519()

	tx := NewStdTx([]byte("claim"))
	sig, err := SignTx(other, tx, chainID, 0)
	require.NoError(t, err)
	// Claim the key of somebody else.
	sig.Pubkey = priv.PublicKey()

	tx.Signatures = []*StdSignature{sig}
	_, err = VerifyTxSignatures(kv, tx, chainID)
	assert.True(t, ErrInvalidSignature.Is(err))

	// Signature made for another chain is not valid either.
	sig, err = SignTx(priv, tx, "other-chain", 0)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{sig}
	_, err = VerifyTxSignatures(kv, tx, chainID)
	assert.True(t, ErrInvalidSignature.Is(err))

	seq, err := NextSequence(kv, priv.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, int64(0), seq)
}

func TestNextSequence(t *testing.T) {
	kv := store.MemStore()
	chainID := "seq-chain"
	priv := estatetest.SequenceKey(7)
	tx := NewStdTx([]byte("vote"))

	for want := int64(0); want < 3; want++ {
		seq, err := NextSequence(kv, priv.PublicKey())
		require.NoError(t, err)
		require.Equal(t, want, seq)

		sig, err := SignTx(priv, tx, chainID, seq)
		require.NoError(t, err)
		tx.Signatures = []*StdSignature{sig}
		_, err = VerifyTxSignatures(kv, tx, chainID)
		require.NoError(t, err)
	}
}

func TestBuildSignBytes(t *testing.T) {
	a, err := BuildSignBytes([]byte("payload"), "chain-one", 1)
	require.NoError(t, err)
	b, err := BuildSignBytes([]byte("payload"), "chain-one", 2)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 64)

	_, err = BuildSignBytes([]byte("payload"), "chain-one", -1)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = BuildSignBytes([]byte("payload"), "x", 1)
	assert.Error(t, err)
}
