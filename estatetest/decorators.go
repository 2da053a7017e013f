package estatetest

import estate "github.com/iov-one/estate"

// Decorator is a mock implementation of the estate.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding method.
// If error attributes are not set then wrapped handler method is called and
// its result returned.
// Each method call is counted. Regardless of the method call result the
// counter is incremented.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ estate.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx estate.Context, db estate.KVStore, tx estate.Tx, next estate.Checker) (*estate.CheckResult, error) {
	d.checkCall++

	if d.CheckErr != nil {
		return &estate.CheckResult{}, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx estate.Context, db estate.KVStore, tx estate.Tx, next estate.Deliverer) (*estate.DeliverResult, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return &estate.DeliverResult{}, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate returns a handler that calls h through d.
func Decorate(h estate.Handler, d estate.Decorator) estate.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn estate.Handler
	dc estate.Decorator
}

var _ estate.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
