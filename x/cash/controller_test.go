package cash

import (
	"context"
	"math"
	"testing"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/estatetest"
	"github.com/iov-one/estate/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMint(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	addr := estatetest.NewCondition().Address()

	balance, err := ctrl.Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)

	require.NoError(t, ctrl.Mint(db, addr, 500))
	require.NoError(t, ctrl.Mint(db, addr, 250))
	balance, err = ctrl.Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(750), balance)

	err = ctrl.Mint(db, addr, math.MaxUint64)
	assert.True(t, errors.ErrOverflow.Is(err), "%+v", err)
	err = ctrl.Mint(db, addr, 0)
	assert.True(t, errors.ErrAmount.Is(err), "%+v", err)
}

func TestMoveFunds(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	src := estatetest.NewCondition().Address()
	dst := estatetest.NewCondition().Address()
	require.NoError(t, ctrl.Mint(db, src, 100))

	ctx := context.Background()
	require.NoError(t, ctrl.MoveFunds(ctx, db, src, dst, 60))
	assertFunds(t, db, ctrl, src, 40)
	assertFunds(t, db, ctrl, dst, 60)

	err := ctrl.MoveFunds(ctx, db, src, dst, 41)
	assert.True(t, ErrInsufficientFunds.Is(err), "%+v", err)
	assert.True(t, errors.ErrState.Is(err), "%+v", err)
	assertFunds(t, db, ctrl, src, 40)

	// Emptying an account removes it.
	require.NoError(t, ctrl.MoveFunds(ctx, db, src, dst, 40))
	obj, err := NewBucket().Get(db, src)
	require.NoError(t, err)
	assert.Nil(t, obj)
}

func TestReceiver(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	src := estatetest.NewCondition().Address()
	dst := estatetest.NewCondition().Address()
	require.NoError(t, ctrl.Mint(db, src, 100))

	var calls int
	ctrl.OnReceive(dst, func(ctx estate.Context, db estate.KVStore, from estate.Address, amount uint64) error {
		calls++
		assert.Equal(t, src, from)
		assert.Equal(t, uint64(30), amount)
		// Funds are already credited when the receiver runs.
		assertFunds(t, db, ctrl, dst, 30)
		return nil
	})
	require.NoError(t, ctrl.MoveFunds(context.Background(), db, src, dst, 30))
	assert.Equal(t, 1, calls)

	refuse := errors.ErrUnauthorized.New("refused")
	ctrl.OnReceive(dst, func(estate.Context, estate.KVStore, estate.Address, uint64) error {
		return refuse
	})
	err := ctrl.MoveFunds(context.Background(), db, src, dst, 30)
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)

	ctrl.OnReceive(dst, nil)
	require.NoError(t, ctrl.MoveFunds(context.Background(), db, src, dst, 1))
	assert.Equal(t, 1, calls)
}

func assertFunds(t testing.TB, db estate.ReadOnlyKVStore, ctrl *Controller, addr estate.Address, want uint64) {
	t.Helper()
	got, err := ctrl.Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
