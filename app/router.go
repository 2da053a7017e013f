package app

import (
	"fmt"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
)

// Router allows us to register many handlers with different
// paths and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]estate.Handler
}

var _ estate.Registry = (*Router)(nil)
var _ estate.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]estate.Handler, 10),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered or the path is malformed.
func (r *Router) Handle(path string, h estate.Handler) {
	if !estate.IsValidPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %q", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path. If no path is found,
// returns a notFound Handler. Always returns a non-nil Handler.
func (r *Router) handler(tx estate.Tx) estate.Handler {
	msg, err := tx.GetMsg()
	if err != nil {
		return failing{err: errors.Wrap(err, "cannot get message")}
	}
	if msg == nil {
		return failing{err: errors.Wrap(errors.ErrMsg, "missing message")}
	}
	path := msg.Path()
	if h, ok := r.routes[path]; ok {
		return h
	}
	return failing{err: errors.Wrapf(errors.ErrNotFound, "no handler for path %q", path)}
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx estate.Context, store estate.KVStore, tx estate.Tx) (*estate.CheckResult, error) {
	return r.handler(tx).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx estate.Context, store estate.KVStore, tx estate.Tx) (*estate.DeliverResult, error) {
	return r.handler(tx).Deliver(ctx, store, tx)
}

// failing is a handler that always returns the same error.
type failing struct {
	err error
}

func (f failing) Check(estate.Context, estate.KVStore, estate.Tx) (*estate.CheckResult, error) {
	return nil, f.err
}

func (f failing) Deliver(estate.Context, estate.KVStore, estate.Tx) (*estate.DeliverResult, error) {
	return nil, f.err
}
