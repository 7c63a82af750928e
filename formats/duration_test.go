/*************************************************************************
 * Copyright 2020 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package formats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

func durationSecs(t *testing.T, input string) int64 {
	t.Helper()
	its := Duration{}.Parse(input)
	require.Len(t, its, 1, "expected %q to parse as a duration", input)
	require.Equal(t, value.KindInt, its[0].Value.Kind)
	i, ok := its[0].Value.Int.Int64()
	require.True(t, ok)
	return i
}

func TestDurationParseNotations(t *testing.T) {
	require.Equal(t, int64(5400), durationSecs(t, "1h30m"))
	require.Equal(t, int64(5400), durationSecs(t, "1.5h"))
	require.Equal(t, int64(9000), durationSecs(t, "PT2H30M"))
	require.Equal(t, int64(5400), durationSecs(t, "1:30:00"))
	require.Equal(t, int64(432000), durationSecs(t, "5 days"))
	require.Equal(t, int64(9000), durationSecs(t, "2 hours 30 minutes"))
	require.Equal(t, int64(90), durationSecs(t, "90s"))
}

func TestDurationRejects(t *testing.T) {
	d := Duration{}
	for _, s := range []string{"", "hello", "300", "12:30", "0s", "500ms"} {
		require.Empty(t, d.Parse(s), "expected %q to be rejected", s)
	}
}

func TestDurationConfidence(t *testing.T) {
	its := Duration{}.Parse("1h30m")
	require.Len(t, its, 1)
	require.InDelta(t, 0.90, its[0].Confidence, 1e-6)
}

func TestDurationConversions(t *testing.T) {
	fixed := time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)
	d := Duration{Now: func() time.Time { return fixed }}

	convs := d.Conversions(value.Int(5400))
	var dur *format.Conversion
	for i := range convs {
		if convs[i].TargetFormat == "duration" {
			dur = &convs[i]
		}
	}
	require.NotNil(t, dur)
	require.True(t, dur.DisplayOnly)
	require.Contains(t, dur.Display, "1h 30m")
	require.Contains(t, dur.Display, "2026-08-02T13:30:00Z")

	// sub-minute integers carry no duration annotation
	require.Empty(t, d.Conversions(value.Int(42)))
}

func TestDurationFormat(t *testing.T) {
	d := Duration{}
	require.True(t, d.CanFormat(value.Int(5400)))
	s, ok := d.Format(value.Int(5400))
	require.True(t, ok)
	require.Equal(t, "1h 30m", s)
}
