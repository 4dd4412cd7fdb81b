package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/api"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/colors"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/config"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/core"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/datetime"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/logging"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/session"
)

// provider hands commands their dependencies. Nothing is built until a
// command runs, after configuration has been loaded.
type provider interface {
	Sessions() (session.Store, error)
	NewCore(opts ...core.Option) (*core.Core, error)
}

// deps builds the real stack: a SQLite session store and an HTTP client.
type deps struct {
	mu    sync.Mutex
	store *session.SQLiteStore
}

func (d *deps) Sessions() (session.Store, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.store != nil {
		return d.store, nil
	}
	store, err := session.NewSQLiteStore(session.DefaultPath())
	if err != nil {
		return nil, err
	}
	d.store = store
	return store, nil
}

func (d *deps) NewCore(opts ...core.Option) (*core.Core, error) {
	store, err := d.Sessions()
	if err != nil {
		return nil, err
	}
	codec, err := datetime.NewForZone(config.Get("timezone", ""))
	if err != nil {
		return nil, err
	}
	logger := logging.GetGlobal()

	client, err := api.New(config.Get("api_base_url", ""), store,
		api.WithTimeout(config.GetDuration("request_timeout_seconds", time.Second, api.DefaultTimeout)),
		api.WithFanout(config.GetInt("units_fanout_limit", api.DefaultFanout)),
		api.WithCodec(codec),
		api.WithLogger(logger.With("component", "api")))
	if err != nil {
		return nil, err
	}

	base, err := core.ConfigOptions()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	base = append(base, core.WithLogger(logger))
	return core.New(client, store, append(base, opts...)...)
}

// Close releases the session database.
func (d *deps) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.store == nil {
		return nil
	}
	err := d.store.Close()
	d.store = nil
	return err
}

var appDeps = &deps{}

// withCore builds and starts a Core, runs fn and releases the Core. Without
// a session fn still runs; every listing comes back empty.
func withCore(ctx context.Context, p provider, fn func(c *core.Core) error, opts ...core.Option) error {
	c, err := p.NewCore(opts...)
	if err != nil {
		return err
	}
	defer c.Close()
	if _, err := c.Start(ctx); err != nil {
		if !errors.Is(err, domain.ErrSessionMissing) {
			return err
		}
		colors.Info("Not signed in. Run 'asa login' to see shop data.")
	}
	return fn(c)
}
