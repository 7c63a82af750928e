/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/stretchr/testify/require"
)

func TestConvertAllHexByteSequence(t *testing.T) {
	e := New()
	results := e.ConvertAll("691E01B8")

	var hex *ConversionResult
	for i := range results {
		if results[i].Interpretation.SourceFormat == "hex" {
			hex = &results[i]
			break
		}
	}
	require.NotNil(t, hex, "expected a hex interpretation")
	require.GreaterOrEqual(t, hex.Interpretation.Confidence, float32(0.6))
	require.Equal(t, []byte{0x69, 0x1E, 0x01, 0xB8}, hex.Interpretation.Value.Bytes)

	var sawDecimal, sawHexTarget bool
	for _, c := range hex.Conversions {
		if c.TargetFormat == "decimal" {
			sawDecimal = true
			require.Equal(t, strconv.FormatInt(0x691E01B8, 10), c.Display)
		}
		require.NotEqual(t, "hex", c.TargetFormat, "a format must never convert into its own id")
		if c.TargetFormat == "hex" {
			sawHexTarget = true
		}
	}
	require.True(t, sawDecimal, "expected a decimal conversion from the decoded bytes")
	require.False(t, sawHexTarget)

	var sawEpoch bool
	for _, c := range hex.Conversions {
		if c.TargetFormat == "epoch-seconds" {
			sawEpoch = true
			require.Equal(t, format.PrioritySemantic, c.Priority)
			require.Equal(t, "2025-11-19T17:43:20Z", c.Display,
				"the 32-bit big-endian reading of the bytes is an epoch near 2025-11-19")
		}
	}
	require.True(t, sawEpoch, "expected a datetime reading of the decoded integer")
}

func TestExpressionEndToEnd(t *testing.T) {
	e := New()
	its := e.Interpret("0xFF + 1")

	var found *format.Interpretation
	for i := range its {
		if its[i].SourceFormat == "expr" {
			found = &its[i]
			break
		}
	}
	require.NotNil(t, found, "expected an expression interpretation")
	i64, ok := found.Value.Int.Int64()
	require.True(t, ok)
	require.Equal(t, int64(256), i64)
	require.Contains(t, found.Description, "= 256")

	// a bare hex literal must stay with the hex leaf, not the evaluator
	for _, it := range e.Interpret("0xFF") {
		require.NotEqual(t, "expr", it.SourceFormat)
	}
}

func TestConvertAllUUID(t *testing.T) {
	e := New()
	results := e.ConvertAll("550e8400-e29b-41d4-a716-446655440000")
	require.NotEmpty(t, results)

	top := results[0]
	require.Equal(t, "uuid", top.Interpretation.SourceFormat)
	require.Greater(t, top.Interpretation.Confidence, float32(0.9))
	require.Equal(t, 16, len(top.Interpretation.Value.Bytes))

	var sawHex bool
	for _, c := range top.Conversions {
		if c.TargetFormat == "hex" {
			sawHex = true
		}
	}
	require.True(t, sawHex, "expected a hex conversion from the decoded UUID bytes")
}

func TestEpochSecondsNearNow(t *testing.T) {
	fixed := time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)
	e := WithConfig(Config{Now: func() time.Time { return fixed }})

	secs := strconv.FormatInt(fixed.Unix(), 10)
	its := e.Interpret(secs)
	require.NotEmpty(t, its)
	require.Equal(t, "epoch-seconds", its[0].SourceFormat, "epoch-seconds should outrank plain decimal for a near-now literal")
	require.InDelta(t, 0.95, its[0].Confidence, 1e-6)

	millis := strconv.FormatInt(fixed.UnixMilli(), 10)
	itsMillis := e.Interpret(millis)
	require.NotEmpty(t, itsMillis)
	require.Equal(t, "epoch-millis", itsMillis[0].SourceFormat)
	require.InDelta(t, 0.90, itsMillis[0].Confidence, 1e-6)
}

func TestEpochSecondsBoundary(t *testing.T) {
	e := New()

	its := e.InterpretOnly("946684800", []string{"epoch-seconds"})
	require.Len(t, its, 1, "the minimum epoch boundary must be accepted")

	its = e.InterpretOnly("946684799", []string{"epoch-seconds"})
	require.Empty(t, its, "one second below the minimum epoch boundary must be rejected")
}

func TestCronNextRun(t *testing.T) {
	fixed := time.Date(2026, 8, 2, 12, 3, 0, 0, time.UTC)
	e := WithConfig(Config{Now: func() time.Time { return fixed }})

	results := e.ConvertAll("*/5 * * * *")
	var cron *ConversionResult
	for i := range results {
		if results[i].Interpretation.SourceFormat == "cron" {
			cron = &results[i]
			break
		}
	}
	require.NotNil(t, cron)
	require.GreaterOrEqual(t, cron.Interpretation.Confidence, float32(0.8))
	require.Contains(t, cron.Interpretation.Description, "Every 5 minutes")

	var next *format.Conversion
	for i := range cron.Conversions {
		if cron.Conversions[i].TargetFormat == "cron-next" {
			next = &cron.Conversions[i]
			break
		}
	}
	require.NotNil(t, next, "expected a cron-next conversion")
	require.True(t, next.Value.DateTime.After(fixed))
}

func TestCurrencySIPrefix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exchange_rates.json")
	writeFixedRates(t, path)

	e := WithConfig(Config{RateCachePath: path})
	results := e.ConvertAll("5kUSD")

	var cur *ConversionResult
	for i := range results {
		if results[i].Interpretation.SourceFormat == "currency" {
			cur = &results[i]
			break
		}
	}
	require.NotNil(t, cur)
	require.GreaterOrEqual(t, cur.Interpretation.Confidence, float32(0.85))
	require.Equal(t, 5000.0, cur.Interpretation.Value.Currency.Amount)
	require.Equal(t, "USD", cur.Interpretation.Value.Currency.Code)

	targets := map[string]bool{}
	for _, c := range cur.Conversions {
		targets[c.TargetFormat] = true
	}
	require.True(t, targets["currency-eur"])
	require.True(t, targets["currency-gbp"])
	require.True(t, targets["currency-sek"])
}

func TestConvertBytesFilteredByCategory(t *testing.T) {
	e := New()
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

	results := e.ConvertBytesFiltered(png, []string{"image"})
	require.NotEmpty(t, results, "a sniffed PNG must be selectable by its category bucket")
	for _, r := range results {
		require.Equal(t, "image", r.Interpretation.SourceFormat)
	}

	require.Empty(t, e.ConvertBytesFiltered(png, []string{"pdf"}),
		"a PNG is not selectable under another category")

	raw := e.ConvertBytesFiltered([]byte{0x00, 0x01, 0x02}, []string{"bytes"})
	require.NotEmpty(t, raw)
	require.Equal(t, "bytes", raw[0].Interpretation.SourceFormat)
}

func TestBlockedFormatExcludesInterpretationAndConversion(t *testing.T) {
	e := WithConfig(Config{BlockedFormats: []string{"hex"}})
	results := e.ConvertAll("691E01B8")

	for _, r := range results {
		require.NotEqual(t, "hex", r.Interpretation.SourceFormat)
		for _, c := range r.Conversions {
			require.NotEqual(t, "hex", c.TargetFormat)
		}
	}
	require.NotEmpty(t, results, "a blocked format must not suppress other interpretations of the same input")
}

// writeFixedRates seeds a rate-cache disk file that is already fresh (inside
// the cache's TTL), so Convert never attempts the real network fetcher.
func writeFixedRates(t *testing.T, path string) {
	t.Helper()
	rec := struct {
		FetchedAt time.Time          `json:"fetched_at"`
		Base      string             `json:"base"`
		Rates     map[string]float64 `json:"rates"`
	}{
		FetchedAt: time.Now(),
		Base:      "EUR",
		Rates: map[string]float64{
			"USD": 1.10,
			"GBP": 0.90,
			"SEK": 11.0,
			"JPY": 160.0,
		},
	}
	b, err := json.Marshal(rec)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o644))
}
