/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package currency implements the rate cache: a process-wide, mutex-guarded,
// disk-backed currency rate table with TTL + backoff on failed refresh, plus
// a separate read-write table for plugin-contributed currencies routed
// through the built-in rates.
package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const (
	// TTL is how long a fetched rate table stays fresh.
	TTL = 24 * time.Hour
	// Backoff is how long a failed fetch defers the next attempt.
	Backoff = 5 * time.Minute
	// FetchTimeout bounds the network round trip for a rate refresh.
	FetchTimeout = 10 * time.Second

	baseCurrency = "EUR"
)

var ErrUnavailable = errors.New("rate cache: no rates available")

// Fetcher performs the network round trip that refreshes the rate table.
// Production code wires in an HTTP-backed Fetcher; tests substitute a fake.
type Fetcher interface {
	Fetch(ctx context.Context) (rates map[string]float64, err error)
}

// FetcherFunc adapts a plain function to Fetcher.
type FetcherFunc func(context.Context) (map[string]float64, error)

func (f FetcherFunc) Fetch(ctx context.Context) (map[string]float64, error) { return f(ctx) }

// diskRecord is the on-disk and provider wire shape: a JSON object with at
// least "base" and "rates".
type diskRecord struct {
	FetchedAt time.Time          `json:"fetched_at"`
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
}

// PluginCurrency is one plugin-contributed currency: a code whose rate is
// expressed relative to some other base currency rather than directly to
// EUR.
type PluginCurrency struct {
	Code     string
	Symbol   string
	Name     string
	Decimals int
	// RateFn returns (rate, baseCurrency): "1 unit of Code = rate units
	// of baseCurrency".
	RateFn func() (rate float64, base string, err error)
}

// Cache is the process-wide rate cache. The critical section protected by
// the mutex covers read, refresh decision, the fetch itself, and the
// write-back: fetches happen inside the lock so concurrent callers never
// issue duplicate network calls, trading a slightly longer critical section
// for a simpler consistency story.
type Cache struct {
	mu   sync.Mutex
	path string

	rates       map[string]float64
	lastAttempt time.Time
	lastSuccess time.Time

	fetcher Fetcher
	clock   func() time.Time

	pluginMu  sync.RWMutex
	plugins   map[string]PluginCurrency
}

// New constructs a Cache backed by path on disk, using fetcher for network
// refreshes. If path is non-empty and a cache file already exists there, it
// is loaded immediately.
func New(path string, fetcher Fetcher) *Cache {
	c := &Cache{
		path:    path,
		rates:   map[string]float64{baseCurrency: 1.0},
		fetcher: fetcher,
		clock:   time.Now,
		plugins: make(map[string]PluginCurrency),
	}
	c.loadFromDisk()
	return c
}

func (c *Cache) loadFromDisk() {
	if c.path == "" {
		return
	}
	b, err := os.ReadFile(c.path)
	if err != nil {
		return
	}
	var rec diskRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return
	}
	if rec.Rates == nil {
		return
	}
	rec.Rates[baseCurrency] = 1.0
	c.rates = rec.Rates
	c.lastSuccess = rec.FetchedAt
}

func (c *Cache) writeToDisk() error {
	if c.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	fl := flock.New(c.path + ".lock")
	if err := fl.Lock(); err != nil {
		return err
	}
	defer fl.Unlock()

	rec := diskRecord{FetchedAt: c.lastSuccess, Base: baseCurrency, Rates: c.rates}
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}

// Refresh attempts a fetch if the cache is stale and the backoff window has
// elapsed. It always returns the best available rate table: fresh if the
// fetch succeeded, otherwise the existing (possibly stale, possibly empty)
// cache. A failed fetch is never surfaced as an error to the caller -- the
// core's error taxonomy treats "rate unavailable" as a quiet empty result,
// not a propagated failure.
func (c *Cache) Refresh(ctx context.Context) map[string]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	stale := now.Sub(c.lastSuccess) > TTL
	backedOff := now.Sub(c.lastAttempt) < Backoff

	if stale && !backedOff && c.fetcher != nil {
		c.lastAttempt = now
		if rates, err := c.fetcher.Fetch(ctx); err == nil && len(rates) > 0 {
			rates[baseCurrency] = 1.0
			c.rates = rates
			c.lastSuccess = now
			c.writeToDisk()
		}
	}

	out := make(map[string]float64, len(c.rates))
	for k, v := range c.rates {
		out[k] = v
	}
	return out
}

// Rate returns the currently cached ECB rate for code ("1 EUR = rate units
// of code") without attempting a refresh.
func (c *Cache) Rate(code string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.rates[code]
	return r, ok
}

// RegisterPlugin adds a plugin-contributed currency to the read-write
// plugin table. Writes happen only at plugin load or test teardown; reads
// happen on every currency conversion touching a plugin code.
func (c *Cache) RegisterPlugin(pc PluginCurrency) {
	c.pluginMu.Lock()
	defer c.pluginMu.Unlock()
	c.plugins[pc.Code] = pc
}

// ClearPlugins empties the plugin currency table; used by plugin reload and
// test teardown.
func (c *Cache) ClearPlugins() {
	c.pluginMu.Lock()
	defer c.pluginMu.Unlock()
	c.plugins = make(map[string]PluginCurrency)
}

func (c *Cache) pluginRate(code string) (PluginCurrency, bool) {
	c.pluginMu.RLock()
	defer c.pluginMu.RUnlock()
	pc, ok := c.plugins[code]
	return pc, ok
}

// Convert converts amount from currency x to currency y. Built-in ECB
// currencies are keyed directly to EUR; plugin currencies bridge through
// EUR via their own declared base currency. A bridge failure (unknown
// code, plugin rate function error) yields ErrUnavailable rather than a
// propagated error, matching the rate-unavailable policy for currency
// conversion.
func (c *Cache) Convert(ctx context.Context, amount float64, x, y string) (float64, error) {
	rates := c.Refresh(ctx)

	amountEUR, err := c.toEUR(rates, amount, x)
	if err != nil {
		return 0, err
	}
	return c.fromEUR(rates, amountEUR, y)
}

func (c *Cache) toEUR(rates map[string]float64, amount float64, code string) (float64, error) {
	if r, ok := rates[code]; ok {
		return amount / r, nil
	}
	if pc, ok := c.pluginRate(code); ok {
		rate, base, err := pc.RateFn()
		if err != nil {
			return 0, fmt.Errorf("%w: plugin currency %s: %v", ErrUnavailable, code, err)
		}
		baseRate, ok := rates[base]
		if !ok {
			return 0, fmt.Errorf("%w: plugin currency %s has unknown base %s", ErrUnavailable, code, base)
		}
		amountInBase := amount * rate
		return amountInBase / baseRate, nil
	}
	return 0, fmt.Errorf("%w: unknown currency %s", ErrUnavailable, code)
}

func (c *Cache) fromEUR(rates map[string]float64, amountEUR float64, code string) (float64, error) {
	if r, ok := rates[code]; ok {
		return amountEUR * r, nil
	}
	if pc, ok := c.pluginRate(code); ok {
		rate, base, err := pc.RateFn()
		if err != nil {
			return 0, fmt.Errorf("%w: plugin currency %s: %v", ErrUnavailable, code, err)
		}
		baseRate, ok := rates[base]
		if !ok {
			return 0, fmt.Errorf("%w: plugin currency %s has unknown base %s", ErrUnavailable, code, base)
		}
		amountInBase := amountEUR * baseRate
		return amountInBase / rate, nil
	}
	return 0, fmt.Errorf("%w: unknown currency %s", ErrUnavailable, code)
}

// DefaultPath returns the per-user cache file location:
// <user_cache>/<app_name>/exchange_rates.json.
func DefaultPath(appName string) (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "exchange_rates.json"), nil
}
