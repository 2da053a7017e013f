/*
Package app links together all the various components
to construct the estated application.
*/
package app

import (
	"path/filepath"
	"strings"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/app"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/store/iavl"
	"github.com/iov-one/estate/x"
	"github.com/iov-one/estate/x/cash"
	"github.com/iov-one/estate/x/gov"
	"github.com/iov-one/estate/x/income"
	"github.com/iov-one/estate/x/shares"
	"github.com/iov-one/estate/x/sigs"
	"github.com/iov-one/estate/x/utils"
	"github.com/prometheus/client_golang/prometheus"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics and recovery
func Chain(registry prometheus.Registerer) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewMetrics(registry),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
	)
}

// Controllers groups the controllers shared by the handlers and the
// in-process readers.
type Controllers struct {
	Cash   *cash.Controller
	Shares shares.Controller
	Income *income.Controller
	Gov    gov.Controller
}

// NewControllers wires the income and governance controllers to the share
// registry and the cash ledger.
func NewControllers() Controllers {
	cashCtrl := cash.NewController()
	sharesCtrl := shares.NewController()
	return Controllers{
		Cash:   cashCtrl,
		Shares: sharesCtrl,
		Income: income.NewController(sharesCtrl, cashCtrl),
		Gov:    gov.NewController(sharesCtrl),
	}
}

// Router returns a router dispatching every estate message.
func Router(authFn x.Authenticator, ctrl Controllers) *app.Router {
	r := app.NewRouter()
	cash.RegisterRoutes(r, authFn, ctrl.Cash)
	shares.RegisterRoutes(r, authFn, ctrl.Shares)
	income.RegisterRoutes(r, authFn, ctrl.Income)
	gov.RegisterRoutes(r, authFn, ctrl.Gov)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/auth", "/cash", "/shares", "/supply",
// "/income/ledger", "/income/claims", "/proposals" and "/votes"
func QueryRouter() estate.QueryRouter {
	r := estate.NewQueryRouter()
	r.RegisterAll(
		sigs.RegisterQuery,
		cash.RegisterQuery,
		shares.RegisterQuery,
		income.RegisterQuery,
		gov.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis loaders of all extensions.
func Initializers(ctrl Controllers) estate.Initializer {
	return estate.ChainInitializers(
		&cash.Initializer{Control: ctrl.Cash},
		&shares.Initializer{},
		&income.Initializer{},
		&gov.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into Application.
func Stack(registry prometheus.Registerer, ctrl Controllers) estate.Handler {
	authFn := Authenticator()
	return Chain(registry).WithHandler(Router(authFn, ctrl))
}

// Application constructs the estate application on top of the given store.
// If you are not sure which store to use, call CommitKVStore.
func Application(name string, registry prometheus.Registerer, ctrl Controllers, kv estate.CommitKVStore) (*app.Application, error) {
	a, err := app.NewApplication(name, kv, Stack(registry, ctrl), QueryRouter(), TxDecoder)
	if err != nil {
		return nil, err
	}
	return a.WithInit(Initializers(ctrl)), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (estate.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	kv, err := iavl.NewCommitStore(dir, name)
	if err != nil {
		return nil, err
	}
	return kv, nil
}
