package income

import (
	"context"
	"math"
	"math/rand"
	"testing"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/estatetest"
	"github.com/iov-one/estate/estatetest/assert"
	"github.com/iov-one/estate/store"
	"github.com/iov-one/estate/x/cash"
	"github.com/iov-one/estate/x/shares"
)

type fixture struct {
	db        estate.KVStore
	shares    shares.Controller
	cash      *cash.Controller
	ctrl      *Controller
	depositor estate.Address
}

func newFixture(t testing.TB, holdings map[string]uint64) *fixture {
	t.Helper()
	f := &fixture{
		db:        store.MemStore(),
		shares:    shares.NewController(),
		cash:      cash.NewController(),
		depositor: estatetest.NewCondition().Address(),
	}
	f.ctrl = NewController(f.shares, f.cash)
	for addr, amount := range holdings {
		assert.Nil(t, f.shares.Issue(f.db, estate.Address(addr), amount))
	}
	assert.Nil(t, f.cash.Mint(f.db, f.depositor, math.MaxUint64/2))
	return f
}

func (f *fixture) deposit(t testing.TB, amount uint64) {
	t.Helper()
	if _, err := f.ctrl.Deposit(context.Background(), f.db, f.depositor, amount); err != nil {
		t.Fatalf("deposit %d: %+v", amount, err)
	}
}

func (f *fixture) claimable(t testing.TB, holder estate.Address) uint64 {
	t.Helper()
	amount, err := f.ctrl.Claimable(f.db, holder)
	if err != nil {
		t.Fatalf("claimable: %+v", err)
	}
	return amount
}

func (f *fixture) funds(t testing.TB, addr estate.Address) uint64 {
	t.Helper()
	amount, err := f.cash.Balance(f.db, addr)
	if err != nil {
		t.Fatalf("funds: %+v", err)
	}
	return amount
}

func TestClaimScenario(t *testing.T) {
	holder := estatetest.NewCondition().Address()
	other := estatetest.NewCondition().Address()
	f := newFixture(t, map[string]uint64{
		string(holder): 300,
		string(other):  700,
	})

	assert.Equal(t, uint64(0), f.claimable(t, holder))

	f.deposit(t, 100)
	assert.Equal(t, uint64(30), f.claimable(t, holder))

	amount, claimed, err := f.ctrl.Claim(context.Background(), f.db, holder)
	assert.Nil(t, err)
	assert.Equal(t, uint64(30), amount)
	assert.Equal(t, uint64(30), claimed)
	assert.Equal(t, uint64(30), f.funds(t, holder))

	f.deposit(t, 50)
	assert.Equal(t, uint64(15), f.claimable(t, holder))

	amount, claimed, err = f.ctrl.Claim(context.Background(), f.db, holder)
	assert.Nil(t, err)
	assert.Equal(t, uint64(15), amount)
	assert.Equal(t, uint64(45), claimed)

	ledger, err := f.ctrl.Ledger(f.db)
	assert.Nil(t, err)
	assert.Equal(t, &Ledger{TotalDeposited: 150, TotalClaimed: 45}, ledger)

	reserve, err := f.ctrl.Reserve(f.db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(105), reserve)
}

func TestNoDoubleClaim(t *testing.T) {
	holder := estatetest.NewCondition().Address()
	f := newFixture(t, map[string]uint64{string(holder): 10})
	f.deposit(t, 7)

	amount, _, err := f.ctrl.Claim(context.Background(), f.db, holder)
	assert.Nil(t, err)
	assert.Equal(t, uint64(7), amount)

	_, _, err = f.ctrl.Claim(context.Background(), f.db, holder)
	assert.IsErr(t, ErrNothingToClaim, err)
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, uint64(7), f.funds(t, holder))
}

func TestClaimWithoutShares(t *testing.T) {
	holder := estatetest.NewCondition().Address()
	f := newFixture(t, nil)
	f.deposit(t, 100)

	// Zero supply is a defined zero result.
	assert.Equal(t, uint64(0), f.claimable(t, holder))
	_, _, err := f.ctrl.Claim(context.Background(), f.db, holder)
	assert.IsErr(t, ErrNothingToClaim, err)
}

func TestEntitlementTracksLiveBalance(t *testing.T) {
	a := estatetest.NewCondition().Address()
	b := estatetest.NewCondition().Address()
	rest := estatetest.NewCondition().Address()
	f := newFixture(t, map[string]uint64{
		string(a):    300,
		string(rest): 700,
	})
	f.deposit(t, 100)
	assert.Equal(t, uint64(0), f.claimable(t, b))

	assert.Nil(t, f.shares.Transfer(f.db, a, b, 100))
	assert.Equal(t, uint64(20), f.claimable(t, a))
	assert.Equal(t, uint64(10), f.claimable(t, b))
}

func TestReentrantClaim(t *testing.T) {
	holder := estatetest.NewCondition().Address()
	other := estatetest.NewCondition().Address()
	f := newFixture(t, map[string]uint64{
		string(holder): 500,
		string(other):  500,
	})
	f.deposit(t, 100)

	var (
		calls        int
		nestedErr    error
		nestedAmount uint64
	)
	f.cash.OnReceive(holder, func(ctx estate.Context, db estate.KVStore, from estate.Address, amount uint64) error {
		calls++
		_, _, nestedErr = f.ctrl.Claim(ctx, db, holder)
		nestedAmount, _ = f.ctrl.Claimable(db, holder)
		// Swallow the failure so the outer claim completes.
		return nil
	})

	amount, _, err := f.ctrl.Claim(context.Background(), f.db, holder)
	assert.Nil(t, err)
	assert.Equal(t, uint64(50), amount)
	assert.Equal(t, 1, calls)
	assert.IsErr(t, ErrReentrant, nestedErr)
	assert.Equal(t, uint64(0), nestedAmount)
	assert.Equal(t, uint64(50), f.funds(t, holder))

	// The lock is released once the claim returns.
	f.cash.OnReceive(holder, nil)
	f.deposit(t, 100)
	amount, _, err = f.ctrl.Claim(context.Background(), f.db, holder)
	assert.Nil(t, err)
	assert.Equal(t, uint64(50), amount)
}

func TestClaimLockReleasedOnFailure(t *testing.T) {
	holder := estatetest.NewCondition().Address()
	f := newFixture(t, map[string]uint64{string(holder): 1})

	_, _, err := f.ctrl.Claim(context.Background(), f.db, holder)
	assert.IsErr(t, ErrNothingToClaim, err)

	f.deposit(t, 5)
	amount, _, err := f.ctrl.Claim(context.Background(), f.db, holder)
	assert.Nil(t, err)
	assert.Equal(t, uint64(5), amount)
}

func TestInsufficientReserve(t *testing.T) {
	a := estatetest.NewCondition().Address()
	b := estatetest.NewCondition().Address()
	f := newFixture(t, map[string]uint64{
		string(a): 50,
		string(b): 50,
	})
	f.deposit(t, 100)

	_, _, err := f.ctrl.Claim(context.Background(), f.db, a)
	assert.Nil(t, err)
	assert.Nil(t, f.shares.Transfer(f.db, a, b, 50))

	// b is now entitled to the whole deposit while half of it was paid.
	assert.Equal(t, uint64(100), f.claimable(t, b))
	_, _, err = f.ctrl.Claim(context.Background(), f.db, b)
	assert.IsErr(t, ErrInsufficientReserve, err)
}

func TestDonationDoesNotFundClaims(t *testing.T) {
	a := estatetest.NewCondition().Address()
	b := estatetest.NewCondition().Address()
	f := newFixture(t, map[string]uint64{
		string(a): 50,
		string(b): 50,
	})
	f.deposit(t, 100)

	_, _, err := f.ctrl.Claim(context.Background(), f.db, a)
	assert.Nil(t, err)
	assert.Nil(t, f.shares.Transfer(f.db, a, b, 50))

	// Topping up the reserve directly covers the balance check only.
	assert.Nil(t, f.cash.MoveFunds(context.Background(), f.db, f.depositor, ReserveAddress(), 50))
	reserve, err := f.ctrl.Reserve(f.db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(100), reserve)
	assert.Equal(t, uint64(100), f.claimable(t, b))

	_, _, err = f.ctrl.Claim(context.Background(), f.db, b)
	assert.IsErr(t, ErrInsufficientReserve, err)

	ledger, err := f.ctrl.Ledger(f.db)
	assert.Nil(t, err)
	assert.Equal(t, &Ledger{TotalDeposited: 100, TotalClaimed: 50}, ledger)
	claimed, err := f.ctrl.Claimed(f.db, b)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), claimed)
}

func TestSweepDust(t *testing.T) {
	a := estatetest.NewCondition().Address()
	b := estatetest.NewCondition().Address()
	c := estatetest.NewCondition().Address()
	owner := estatetest.NewCondition().Address()
	f := newFixture(t, map[string]uint64{
		string(a): 1,
		string(b): 1,
		string(c): 1,
	})
	f.deposit(t, 100)

	pending, err := f.ctrl.Pending(f.db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(99), pending)

	sweepable, err := f.ctrl.Sweepable(f.db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), sweepable)

	err = f.ctrl.SweepDust(context.Background(), f.db, owner, 2)
	assert.IsErr(t, ErrSweepExceedsDust, err)
	err = f.ctrl.SweepDust(context.Background(), f.db, owner, 0)
	assert.IsErr(t, errors.ErrAmount, err)

	assert.Nil(t, f.ctrl.SweepDust(context.Background(), f.db, owner, 1))
	assert.Equal(t, uint64(1), f.funds(t, owner))

	// Every pending entitlement can still be paid.
	for _, h := range []estate.Address{a, b, c} {
		amount, _, err := f.ctrl.Claim(context.Background(), f.db, h)
		assert.Nil(t, err)
		assert.Equal(t, uint64(33), amount)
	}
	reserve, err := f.ctrl.Reserve(f.db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), reserve)

	ledger, err := f.ctrl.Ledger(f.db)
	assert.Nil(t, err)
	assert.Equal(t, &Ledger{TotalDeposited: 100, TotalClaimed: 99, TotalSwept: 1}, ledger)
}

func TestDeposit(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.ctrl.Deposit(context.Background(), f.db, f.depositor, 0)
	assert.IsErr(t, errors.ErrAmount, err)

	poor := estatetest.NewCondition().Address()
	_, err = f.ctrl.Deposit(context.Background(), f.db, poor, 1)
	assert.IsErr(t, cash.ErrInsufficientFunds, err)

	total, err := f.ctrl.Deposit(context.Background(), f.db, f.depositor, 40)
	assert.Nil(t, err)
	assert.Equal(t, uint64(40), total)
	assert.Equal(t, uint64(40), f.funds(t, ReserveAddress()))

	// The deposited total may not overflow.
	assert.Nil(t, NewLedgerBucket().Store(f.db, &Ledger{TotalDeposited: math.MaxUint64 - 1}))
	_, err = f.ctrl.Deposit(context.Background(), f.db, f.depositor, 2)
	assert.IsErr(t, errors.ErrOverflow, err)
}

func TestEntitlement(t *testing.T) {
	cases := map[string]struct {
		balance, deposited, supply uint64
		want                       uint64
		wantErr                    *errors.Error
	}{
		"floor":             {balance: 1, deposited: 100, supply: 3, want: 33},
		"whole supply":      {balance: 3, deposited: 100, supply: 3, want: 100},
		"no overflow":       {balance: math.MaxUint64, deposited: math.MaxUint64, supply: math.MaxUint64, want: math.MaxUint64},
		"balance > supply":  {balance: math.MaxUint64, deposited: math.MaxUint64, supply: 1, wantErr: errors.ErrOverflow},
		"zero supply guard": {balance: 1, deposited: 1, supply: 0, wantErr: errors.ErrHuman},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := Entitlement(tc.balance, tc.deposited, tc.supply)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestConservation(t *testing.T) {
	holders := make([]estate.Address, 5)
	holdings := make(map[string]uint64)
	for i := range holders {
		holders[i] = estatetest.NewCondition().Address()
		holdings[string(holders[i])] = uint64(i*37 + 11)
	}
	f := newFixture(t, holdings)

	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		switch rnd.Intn(3) {
		case 0:
			f.deposit(t, uint64(rnd.Intn(1000)+1))
		case 1:
			h := holders[rnd.Intn(len(holders))]
			_, _, err := f.ctrl.Claim(context.Background(), f.db, h)
			if err != nil && !ErrNothingToClaim.Is(err) && !ErrInsufficientReserve.Is(err) {
				t.Fatalf("claim: %+v", err)
			}
		case 2:
			// Balance shifts after claims may leave a holder over
			// entitled, which must never break the sum invariant.
			src := holders[rnd.Intn(len(holders))]
			dst := holders[rnd.Intn(len(holders))]
			if err := f.shares.Transfer(f.db, src, dst, 1); err != nil && !shares.ErrInsufficientShares.Is(err) {
				t.Fatalf("transfer: %+v", err)
			}
		}

		ledger, err := f.ctrl.Ledger(f.db)
		assert.Nil(t, err)
		var sum uint64
		for _, h := range holders {
			claimed, err := f.ctrl.Claimed(f.db, h)
			assert.Nil(t, err)
			sum += claimed
		}
		if sum != ledger.TotalClaimed {
			t.Fatalf("step %d: claimed sum %d, ledger %d", i, sum, ledger.TotalClaimed)
		}
		if sum > ledger.TotalDeposited {
			t.Fatalf("step %d: claimed %d exceeds deposited %d", i, sum, ledger.TotalDeposited)
		}
		reserve, err := f.ctrl.Reserve(f.db)
		assert.Nil(t, err)
		if reserve != ledger.TotalDeposited-ledger.TotalClaimed {
			t.Fatalf("step %d: reserve %d out of sync", i, reserve)
		}
	}
}
