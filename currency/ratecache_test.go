/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package currency

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlwaysHasEUR(t *testing.T) {
	c := New("", nil)
	r, ok := c.Rate(baseCurrency)
	require.True(t, ok)
	require.Equal(t, 1.0, r)
}

func TestConvertBuiltin(t *testing.T) {
	fetcher := FetcherFunc(func(ctx context.Context) (map[string]float64, error) {
		return map[string]float64{"USD": 1.1, "GBP": 0.9, "SEK": 11.0}, nil
	})
	c := New("", fetcher)

	amt, err := c.Convert(context.Background(), 11.0, "USD", "SEK")
	require.NoError(t, err)
	require.InDelta(t, 110.0, amt, 1e-9)
}

func TestConvertPluginBridge(t *testing.T) {
	fetcher := FetcherFunc(func(ctx context.Context) (map[string]float64, error) {
		return map[string]float64{"USD": 1.1, "SEK": 11.0}, nil
	})
	c := New("", fetcher)
	c.RegisterPlugin(PluginCurrency{
		Code: "XUS", Symbol: "X$", Name: "plugin-usd", Decimals: 2,
		RateFn: func() (float64, string, error) { return 1.0, "USD", nil },
	})
	c.RegisterPlugin(PluginCurrency{
		Code: "XSE", Symbol: "Xk", Name: "plugin-sek", Decimals: 2,
		RateFn: func() (float64, string, error) { return 1.0, "SEK", nil },
	})

	amt, err := c.Convert(context.Background(), 1.0, "XUS", "XSE")
	require.NoError(t, err)
	require.InDelta(t, 10.0, amt, 1e-6)
}

func TestUnknownCurrency(t *testing.T) {
	c := New("", nil)
	_, err := c.Convert(context.Background(), 1.0, "ZZZ", "EUR")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestDiskPersistence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exchange_rates.json")

	fetcher := FetcherFunc(func(ctx context.Context) (map[string]float64, error) {
		return map[string]float64{"USD": 1.2}, nil
	})
	c := New(path, fetcher)
	c.Refresh(context.Background())

	c2 := New(path, nil)
	r, ok := c2.Rate("USD")
	require.True(t, ok)
	require.InDelta(t, 1.2, r, 1e-9)
}

func TestBackoffAfterFailedFetch(t *testing.T) {
	calls := 0
	fetcher := FetcherFunc(func(ctx context.Context) (map[string]float64, error) {
		calls++
		return nil, context.DeadlineExceeded
	})
	c := New("", fetcher)
	c.Refresh(context.Background())
	c.Refresh(context.Background())
	require.Equal(t, 1, calls, "second refresh should be suppressed by backoff")
}
