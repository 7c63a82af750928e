/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package formats

import (
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gravwell/formatorbit/v3/calibrate"
	"github.com/gravwell/formatorbit/v3/value"
)

func testCalibrator() calibrate.Calibrator {
	return calibrate.New().WithClock(calibrate.Fixed(time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)))
}

func TestHexRoundTrip(t *testing.T) {
	for _, b := range [][]byte{
		{0x00},
		{0x69, 0x1E, 0x01, 0xB8},
		{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0xFF},
	} {
		its := Hex{}.Parse(hex.EncodeToString(b))
		require.NotEmpty(t, its)
		require.Equal(t, b, its[0].Value.Bytes)

		encoded, ok := Hex{}.Format(value.Bytes(b))
		require.True(t, ok)
		back := Hex{}.Parse(encoded)
		require.NotEmpty(t, back)
		require.Equal(t, b, back[0].Value.Bytes)
	}
}

func TestHexPrefixConfidence(t *testing.T) {
	its := Hex{}.Parse("0xDEADBEEF")
	require.Len(t, its, 1)
	require.GreaterOrEqual(t, its[0].Confidence, float32(0.90), "0x prefix is a distinctive structural marker")

	its = Hex{}.Parse("12345678")
	require.Len(t, its, 1)
	require.Less(t, its[0].Confidence, float32(0.70), "pure digits are ambiguous with decimal")
}

func TestBinaryRoundTrip(t *testing.T) {
	its := Binary{}.Parse("0b110010")
	require.Len(t, its, 1)
	i, _ := its[0].Value.Int.Int64()
	require.Equal(t, int64(50), i)

	encoded, ok := Binary{}.Format(its[0].Value)
	require.True(t, ok)
	require.Equal(t, "0b110010", encoded)
}

func TestBase64RoundTrip(t *testing.T) {
	for _, b := range [][]byte{
		[]byte("hello"),
		{0x00, 0x01, 0x02, 0xFF},
	} {
		encoded, ok := Base64{}.Format(value.Bytes(b))
		require.True(t, ok)
		its := Base64{}.Parse(encoded)
		require.NotEmpty(t, its)
		require.Equal(t, b, its[0].Value.Bytes)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	src := `{"name":"x","vals":[1,2.5,null,true],"nested":{"k":"v"}}`
	its := JSON{}.Parse(src)
	require.Len(t, its, 1)

	out, ok := JSON{}.Format(its[0].Value)
	require.True(t, ok)
	again := JSON{}.Parse(out)
	require.Len(t, again, 1)
	require.True(t, its[0].Value.JSON.Equal(again[0].Value.JSON), "re-encoded JSON must re-parse to an equal tree")
}

func TestCanFormatAgreesWithFormat(t *testing.T) {
	values := []value.Value{
		value.Bytes([]byte{1, 2, 3}),
		value.String("hello"),
		value.Int(1234),
		value.Float(2.5),
		value.Bool(true),
		value.Empty(),
	}
	formats := Builtins(testCalibrator(), nil, nil)
	for _, f := range formats {
		for _, v := range values {
			_, ok := f.Format(v)
			require.Equal(t, f.CanFormat(v), ok,
				"format %q: CanFormat and Format disagree on %v", f.ID(), v.Kind)
		}
	}
}

func TestUUIDRejectsCorruptedDigit(t *testing.T) {
	require.NotEmpty(t, UUID{}.Parse("550e8400-e29b-41d4-a716-446655440000"))
	require.Empty(t, UUID{}.Parse("550e8400-e29b-41d4-a716-44665544000Z"))
}

func TestISBN10TerminalX(t *testing.T) {
	// 097522980X carries a valid terminal X check digit
	its := ISBN{}.Parse("0-9752298-0-X")
	require.Len(t, its, 1)
	require.GreaterOrEqual(t, its[0].Confidence, float32(0.95))

	// corrupt the check digit
	require.Empty(t, ISBN{}.Parse("0-9752298-1-X"))
}

func TestTemperatureBelowAbsoluteZeroRejected(t *testing.T) {
	require.NotEmpty(t, Temperature{}.Parse("37C"))
	require.NotEmpty(t, Temperature{}.Parse("0K"))
	require.Empty(t, Temperature{}.Parse("-300C"), "below absolute zero must be rejected")
	require.Empty(t, Temperature{}.Parse("-1K"))
}

func TestUTF8LargePayload(t *testing.T) {
	s := strings.Repeat("lorem ipsum ", 100)
	its := UTF8{}.Parse(s)
	require.NotEmpty(t, its)
	require.Equal(t, value.KindString, its[0].Value.Kind)
}
