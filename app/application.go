package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/sasha-s/go-deadlock"
	"github.com/tendermint/tendermint/libs/log"
)

// Application executes transactions against a committed store. All calls are
// serialized: a transaction runs to completion before the next one starts and
// its effects are visible either entirely or not at all.
type Application struct {
	mu deadlock.Mutex

	name   string
	logger log.Logger

	// Database state (committed, check, deliver....)
	store *CommitStore

	handler estate.Handler
	decoder estate.TxDecoder

	// Code to initialize from a genesis file
	initializer estate.Initializer

	// How to handle queries
	queryRouter estate.QueryRouter

	// chainID is loaded from db in initialization
	// saved once in InitChain
	chainID string

	// baseContext contains context info that is valid for
	// lifetime of this app (eg. chainID)
	baseContext estate.Context

	// height of the last commit, every delivery happens at height + 1
	height int64

	sinks []EventSink
}

// NewApplication initializes the application from the latest version of
// the given store.
func NewApplication(
	name string,
	store estate.CommitKVStore,
	handler estate.Handler,
	queryRouter estate.QueryRouter,
	decoder estate.TxDecoder,
) (*Application, error) {
	cs, err := NewCommitStore(store)
	if err != nil {
		return nil, err
	}
	a := &Application{
		name:        name,
		store:       cs,
		handler:     handler,
		decoder:     decoder,
		queryRouter: queryRouter,
		baseContext: estate.WithLogger(context.Background(), estate.DefaultLogger),
		logger:      estate.DefaultLogger,
	}

	a.chainID, err = loadChainID(cs.DeliverStore())
	if err != nil {
		return nil, err
	}
	if a.chainID != "" {
		a.baseContext = estate.WithChainID(a.baseContext, a.chainID)
	}

	info, err := cs.CommitInfo()
	if err != nil {
		return nil, errors.Wrap(err, "commit info")
	}
	a.height = info.Version
	return a, nil
}

// WithInit is used to set the init function we call
func (a *Application) WithInit(init estate.Initializer) *Application {
	a.initializer = init
	return a
}

// WithLogger sets the logger on the Application and returns it,
// to make it easy to chain in initialization
//
// also sets baseContext logger
func (a *Application) WithLogger(logger log.Logger) *Application {
	a.baseContext = estate.WithLogger(a.baseContext, logger)
	a.logger = logger
	return a
}

// Subscribe registers a sink for the events of delivered transactions.
func (a *Application) Subscribe(sink EventSink) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sinks = append(a.sinks, sink)
}

// Logger returns the application base logger
func (a *Application) Logger() log.Logger {
	return a.logger
}

// ChainID returns the current chainID
func (a *Application) ChainID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.chainID
}

// Height returns the height of the last commit.
func (a *Application) Height() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.height
}

// InitChain stores the chain id and initializes all extensions from the
// genesis application state. It can be called only once per store.
func (a *Application) InitChain(gen estate.Genesis) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.chainID != "" {
		return errors.Wrapf(errors.ErrState, "app state previously loaded for chain: %s", a.chainID)
	}
	if a.initializer == nil {
		return errors.Wrap(errors.ErrHuman, "initializer not set")
	}

	cache := a.store.DeliverStore().CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return err
	}
	if err := a.initializer.FromGenesis(gen.AppState, cache); err != nil {
		cache.Discard()
		return errors.Wrap(err, "genesis")
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write genesis")
	}

	a.chainID = gen.ChainID
	a.baseContext = estate.WithChainID(a.baseContext, a.chainID)
	a.logger.Info("Chain initialized", "chain_id", a.chainID)
	return nil
}

// CheckTx runs the check phase of the transaction. Nothing is written to the
// delivery state.
func (a *Application) CheckTx(blockTime time.Time, tx estate.Tx) (*estate.CheckResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx := a.blockContext(blockTime, "check_tx", tx)
	cache := a.store.CheckStore().CacheWrap()
	res, err := a.handler.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write check cache")
	}
	return res, nil
}

// DeliverTx executes the transaction at the given block time. On failure no
// state change survives. On success the changes are visible to following
// transactions and become persistent with the next Commit.
func (a *Application) DeliverTx(blockTime time.Time, tx estate.Tx) (*estate.DeliverResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.deliver(blockTime, tx)
}

// DeliverRaw decodes the transaction bytes before delivering them.
func (a *Application) DeliverRaw(blockTime time.Time, raw []byte) (*estate.DeliverResult, error) {
	tx, err := a.loadTx(raw)
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.deliver(blockTime, tx)
}

func (a *Application) deliver(blockTime time.Time, tx estate.Tx) (*estate.DeliverResult, error) {
	if a.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	ctx := a.blockContext(blockTime, "deliver_tx", tx)
	cache := a.store.DeliverStore().CacheWrap()
	res, err := a.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write deliver cache")
	}
	if len(res.Events) > 0 {
		path := estate.GetPath(tx)
		for _, s := range a.sinks {
			s.Publish(a.height+1, path, res.Events)
		}
	}
	return res, nil
}

// loadTx calls the decoder, and capture any panics
func (a *Application) loadTx(txBytes []byte) (tx estate.Tx, err error) {
	defer errors.Recover(&err)
	if a.decoder == nil {
		return nil, errors.Wrap(errors.ErrHuman, "decoder not set")
	}
	tx, err = a.decoder(txBytes)
	return
}

// View runs fn with a read only view of the latest state, including changes
// delivered but not yet committed.
func (a *Application) View(blockTime time.Time, fn func(estate.Context, estate.ReadOnlyKVStore) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx := estate.WithBlockTime(estate.WithHeight(a.baseContext, a.height+1), blockTime)
	cache := a.store.DeliverStore().CacheWrap()
	defer cache.Discard()
	return fn(ctx, cache)
}

/*
Query gets data from the committed store.

Path may be "/<bucket>" and may be followed by "?prefix" to make a prefix
query. Data is the key or the key prefix within the bucket.
*/
func (a *Application) Query(path string, data []byte) ([]estate.Model, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	path, mod := splitPath(path)
	qh := a.queryRouter.Handler(path)
	db := a.store.committed.CacheWrap()
	defer db.Discard()
	return qh.Query(db, mod, data)
}

// splitPath splits out the real path along with the query
// modifier (everything after the ?)
func splitPath(path string) (string, string) {
	var mod string
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 2 {
		path = chunks[0]
		mod = chunks[1]
	}
	return path, mod
}

// Commit persists all delivered changes and moves to the next height.
func (a *Application) Commit() (estate.CommitID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	commitID, err := a.store.Commit()
	if err != nil {
		return commitID, errors.Wrap(err, "commit")
	}
	a.height = commitID.Version
	a.logger.Debug("Commit synced",
		"height", commitID.Version,
		"hash", fmt.Sprintf("%X", commitID.Hash),
	)
	return commitID, nil
}

// Info returns the height and hash of the last commit.
func (a *Application) Info() (estate.CommitID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.CommitInfo()
}

func (a *Application) blockContext(blockTime time.Time, call string, tx estate.Tx) estate.Context {
	ctx := estate.WithHeight(a.baseContext, a.height+1)
	ctx = estate.WithBlockTime(ctx, blockTime)
	return estate.WithLogInfo(ctx,
		"call", call,
		"path", estate.GetPath(tx))
}
