package main

import (
	"time"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/app"
	estated "github.com/iov-one/estate/cmd/estated/app"
	"github.com/iov-one/estate/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// openApplication opens the persistent store. The returned function must be
// called to release the database.
func (c *cli) openApplication(registry prometheus.Registerer) (*app.Application, func(), error) {
	a, _, closeStore, err := c.open(registry)
	return a, closeStore, err
}

// openEngine opens the persistent store of an initialized chain.
func (c *cli) openEngine(registry prometheus.Registerer, clock func() time.Time) (*estated.Engine, func(), error) {
	a, ctrl, closeStore, err := c.open(registry)
	if err != nil {
		return nil, nil, err
	}
	if a.ChainID() == "" {
		closeStore()
		return nil, nil, errors.Wrap(errors.ErrState, "store not initialized, run init first")
	}
	if want := c.conf.GetString(cfgChainID); want != "" && want != a.ChainID() {
		closeStore()
		return nil, nil, errors.Wrapf(errors.ErrState, "store belongs to %q, configured %q", a.ChainID(), want)
	}
	return estated.NewEngine(a, ctrl, clock), closeStore, nil
}

func (c *cli) open(registry prometheus.Registerer) (*app.Application, estated.Controllers, func(), error) {
	ctrl := estated.NewControllers()
	kv, err := estated.CommitKVStore(c.databasePath())
	if err != nil {
		return nil, ctrl, nil, err
	}
	closeStore := func() {
		if cl, ok := kv.(interface{ Close() }); ok {
			cl.Close()
		}
	}
	a, err := estated.Application("estated", registry, ctrl, kv)
	if err != nil {
		closeStore()
		return nil, ctrl, nil, err
	}
	a.WithLogger(c.logger)
	a.Subscribe(app.EventSinkFunc(func(height int64, path string, events []estate.Event) {
		for _, ev := range events {
			c.logger.Debug("Event", "height", height, "path", path, "type", ev.Type)
		}
	}))
	return a, ctrl, closeStore, nil
}
