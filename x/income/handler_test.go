package income

import (
	"context"
	"testing"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/estatetest"
	"github.com/iov-one/estate/gconf"
	. "github.com/smartystreets/goconvey/convey"
)

type router map[string]estate.Handler

func (r router) Handle(path string, h estate.Handler) { r[path] = h }

func TestHandlers(t *testing.T) {
	Convey("Given a configured income engine", t, func() {
		holder := estatetest.NewCondition()
		outsider := estatetest.NewCondition()
		owner := estatetest.NewCondition()

		f := newFixture(t, map[string]uint64{string(holder.Address()): 1000})
		depositor := estatetest.NewCondition()
		So(f.cash.Mint(f.db, depositor.Address(), 500), ShouldBeNil)
		conf := &Configuration{Depositor: depositor.Address(), Owner: owner.Address()}
		So(gconf.Save(f.db, confPkg, conf), ShouldBeNil)

		auth := &estatetest.CtxAuth{Key: "signers"}
		r := make(router)
		RegisterRoutes(r, auth, f.ctrl)

		deliver := func(signer estate.Condition, msg estate.Msg) (*estate.DeliverResult, error) {
			ctx := auth.SetConditions(context.Background(), signer)
			return r[msg.Path()].Deliver(ctx, f.db, &estatetest.Tx{Msg: msg})
		}
		check := func(signer estate.Condition, msg estate.Msg) error {
			ctx := auth.SetConditions(context.Background(), signer)
			_, err := r[msg.Path()].Check(ctx, f.db, &estatetest.Tx{Msg: msg})
			return err
		}

		Convey("Only the depositor can deposit", func() {
			_, err := deliver(outsider, &DepositMsg{Amount: 100})
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)

			res, err := deliver(depositor, &DepositMsg{Amount: 100})
			So(err, ShouldBeNil)
			So(res.Events, ShouldHaveLength, 1)
			So(res.Events[0].Type, ShouldEqual, "income_deposited")
			total, _ := res.Events[0].Attr("new_total")
			So(total, ShouldEqual, "100")

			Convey("The holder claims its share once", func() {
				So(check(holder, &ClaimMsg{Holder: holder.Address()}), ShouldBeNil)

				_, err := deliver(outsider, &ClaimMsg{Holder: holder.Address()})
				So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)

				res, err := deliver(holder, &ClaimMsg{Holder: holder.Address()})
				So(err, ShouldBeNil)
				So(res.Events[0].Type, ShouldEqual, "income_claimed")
				cumulative, _ := res.Events[0].Attr("cumulative_claimed")
				So(cumulative, ShouldEqual, "100")

				err = check(holder, &ClaimMsg{Holder: holder.Address()})
				So(ErrNothingToClaim.Is(err), ShouldBeTrue)
				_, err = deliver(holder, &ClaimMsg{Holder: holder.Address()})
				So(ErrNothingToClaim.Is(err), ShouldBeTrue)
			})
		})

		Convey("Only the owner can sweep", func() {
			So(f.cash.MoveFunds(context.Background(), f.db, depositor.Address(), ReserveAddress(), 7), ShouldBeNil)

			_, err := deliver(holder, &SweepMsg{Amount: 7, Destination: owner.Address()})
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)

			_, err = deliver(owner, &SweepMsg{Amount: 8, Destination: owner.Address()})
			So(ErrSweepExceedsDust.Is(err), ShouldBeTrue)

			_, err = deliver(owner, &SweepMsg{Amount: 7, Destination: ReserveAddress()})
			So(errors.ErrInput.Is(err), ShouldBeTrue)
			ledger, err := f.ctrl.Ledger(f.db)
			So(err, ShouldBeNil)
			So(ledger.TotalSwept, ShouldEqual, uint64(0))

			res, err := deliver(owner, &SweepMsg{Amount: 7, Destination: owner.Address()})
			So(err, ShouldBeNil)
			So(res.Events[0].Type, ShouldEqual, "income_swept")
			So(f.funds(t, owner.Address()), ShouldEqual, uint64(7))
		})

		Convey("Invalid messages are rejected", func() {
			err := check(depositor, &DepositMsg{})
			So(errors.ErrAmount.Is(err), ShouldBeTrue)
			err = check(holder, &ClaimMsg{})
			So(errors.ErrEmpty.Is(err), ShouldBeTrue)
			err = check(owner, &SweepMsg{Amount: 1})
			So(errors.ErrInput.Is(err), ShouldBeTrue)
			err = check(owner, &SweepMsg{Amount: 1, Destination: ReserveAddress()})
			So(errors.ErrInput.Is(err), ShouldBeTrue)
		})
	})
}

func TestGenesis(t *testing.T) {
	Convey("Genesis requires the income configuration", t, func() {
		var ini Initializer
		f := newFixture(t, nil)

		err := ini.FromGenesis(estate.Options{}, f.db)
		So(errors.ErrNotFound.Is(err), ShouldBeTrue)

		depositor := estatetest.NewCondition().Address()
		owner := estatetest.NewCondition().Address()
		raw := `{"conf": {"income": {"depositor": "` + depositor.String() + `", "owner": "` + owner.String() + `"}}}`
		var opts estate.Options
		So(json.Unmarshal([]byte(raw), &opts), ShouldBeNil)
		So(ini.FromGenesis(opts, f.db), ShouldBeNil)

		conf, err := LoadConfiguration(f.db)
		So(err, ShouldBeNil)
		So(conf.Depositor, ShouldResemble, depositor)
		So(conf.Owner, ShouldResemble, owner)

		ledger, err := f.ctrl.Ledger(f.db)
		So(err, ShouldBeNil)
		So(ledger, ShouldResemble, &Ledger{})
	})
}
