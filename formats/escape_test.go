/*************************************************************************
 * Copyright 2020 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package formats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gravwell/formatorbit/v3/value"
)

func TestEscapeParseHex(t *testing.T) {
	its := Escape{}.Parse(`\x48\x65\x6c\x6c\x6f`)
	require.Len(t, its, 1)
	require.Equal(t, value.KindString, its[0].Value.Kind)
	require.Equal(t, "Hello", its[0].Value.Str)
	require.InDelta(t, 0.90, its[0].Confidence, 1e-6)
}

func TestEscapeParseUnicodeAndOctal(t *testing.T) {
	its := Escape{}.Parse(`\u0048\u0065\u006C\u006C\u006F`)
	require.Len(t, its, 1)
	require.Equal(t, "Hello", its[0].Value.Str)

	its = Escape{}.Parse(`\110\145\154\154\157`)
	require.Len(t, its, 1)
	require.Equal(t, "Hello", its[0].Value.Str)
}

func TestEscapeParseCommon(t *testing.T) {
	its := Escape{}.Parse(`Hello\nWorld`)
	require.Len(t, its, 1)
	require.Equal(t, "Hello\nWorld", its[0].Value.Str)
}

func TestEscapeNonUTF8DecodesToBytes(t *testing.T) {
	its := Escape{}.Parse(`\xFF\xFE\xFD`)
	require.Len(t, its, 1)
	require.Equal(t, value.KindBytes, its[0].Value.Kind)
	require.Equal(t, []byte{0xFF, 0xFE, 0xFD}, its[0].Value.Bytes)
}

func TestEscapeDensityGate(t *testing.T) {
	// one escape buried in long prose is not escape-encoded data
	long := strings.Repeat("word ", 20) + `\n`
	require.Empty(t, Escape{}.Parse(long))

	// no escapes at all
	require.Empty(t, Escape{}.Parse("plain text"))
}

func TestEscapeConversions(t *testing.T) {
	e := Escape{}

	convs := e.Conversions(value.Bytes([]byte{0x48, 0x69}))
	require.Len(t, convs, 1)
	require.Equal(t, "escape-hex", convs[0].TargetFormat)
	require.Equal(t, `\x48\x69`, convs[0].Display)
	require.True(t, convs[0].DisplayOnly)

	convs = e.Conversions(value.String("Hi"))
	require.Len(t, convs, 1)
	require.Equal(t, "escape-unicode", convs[0].TargetFormat)
	require.Equal(t, `\u0048\u0069`, convs[0].Display)
	require.True(t, convs[0].DisplayOnly)

	// oversized payloads carry no escape rendition
	require.Empty(t, e.Conversions(value.Bytes(make([]byte, 65))))
	require.Empty(t, e.Conversions(value.String(strings.Repeat("x", 65))))
}
