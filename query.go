package estate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iov-one/estate/errors"
)

const (
	// KeyQueryMod returns the single model stored under the key.
	KeyQueryMod = ""
	// PrefixQueryMod returns all models stored under keys with the prefix.
	PrefixQueryMod = "prefix"
)

// Pair constructs a model from a key-value pair
func Pair(key, value []byte) Model {
	return Model{
		Key:   key,
		Value: value,
	}
}

// QueryHandler is anything that can process queries
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister is a function that adds some handlers
// to this router
type QueryRegister func(QueryRouter)

// QueryRouter allows us to register many query handlers
// to different paths and then direct each query
// to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type QueryRouter struct {
	routes map[string]QueryHandler
}

// NewQueryRouter initializes a QueryRouter with no routes
func NewQueryRouter() QueryRouter {
	return QueryRouter{
		routes: make(map[string]QueryHandler, 10),
	}
}

// RegisterAll registers a number of QueryRegister at once
func (r QueryRouter) RegisterAll(qr ...QueryRegister) {
	for _, q := range qr {
		q(r)
	}
}

// Register adds a new Handler for the given path.
// panics if another Handler was already registered
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("Re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path.
// If no path is found, returns a noSuchPath Handler
// Always returns a non-nil Handler
func (r QueryRouter) Handler(path string) QueryHandler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return noSuchPath{path: path, known: r.Paths()}
}

// Paths returns all registered paths in sorted order.
func (r QueryRouter) Paths() []string {
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

type noSuchPath struct {
	path  string
	known []string
}

func (n noSuchPath) Query(ReadOnlyKVStore, string, []byte) ([]Model, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "path %q, known paths: %s", n.path, strings.Join(n.known, ", "))
}
