/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInt128RoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, math.MaxInt64, math.MinInt64, 42, -9999} {
		i := Int64(v)
		got, ok := i.Int64()
		require.True(t, ok)
		require.Equal(t, v, got)
		require.Equal(t, v < 0, i.Negative())
	}
}

func TestInt128Big(t *testing.T) {
	i := Int64(-5)
	require.Equal(t, "-5", i.Big().String())
	require.Equal(t, "9223372036854775807", Int64(math.MaxInt64).Big().String())
}

func TestFloatRejectsNaNAndInf(t *testing.T) {
	require.True(t, Float(math.NaN()).IsEmpty())
	require.True(t, Float(math.Inf(1)).IsEmpty())
	require.True(t, Float(math.Inf(-1)).IsEmpty())
	require.False(t, Float(1.5).IsEmpty())
}

func TestTemperatureRejectsBelowAbsoluteZero(t *testing.T) {
	_, ok := Temperature(-0.01)
	require.False(t, ok)
	v, ok := Temperature(0)
	require.True(t, ok)
	require.Equal(t, KindTemperature, v.Kind)
}

func TestJSONEqualIgnoresObjectFieldOrder(t *testing.T) {
	a := JSON{Kind: JSONObject, Obj: []JSONField{
		{Key: "x", Value: JSON{Kind: JSONNumber, Num: 1}},
		{Key: "y", Value: JSON{Kind: JSONString, Str: "s"}},
	}}
	b := JSON{Kind: JSONObject, Obj: []JSONField{
		{Key: "y", Value: JSON{Kind: JSONString, Str: "s"}},
		{Key: "x", Value: JSON{Kind: JSONNumber, Num: 1}},
	}}
	require.True(t, a.Equal(b))

	c := JSON{Kind: JSONObject, Obj: []JSONField{
		{Key: "x", Value: JSON{Kind: JSONNumber, Num: 2}},
		{Key: "y", Value: JSON{Kind: JSONString, Str: "s"}},
	}}
	require.False(t, a.Equal(c))
}

func TestJSONEqualArrayOrderMatters(t *testing.T) {
	a := JSON{Kind: JSONArray, Arr: []JSON{{Kind: JSONNumber, Num: 1}, {Kind: JSONNumber, Num: 2}}}
	b := JSON{Kind: JSONArray, Arr: []JSON{{Kind: JSONNumber, Num: 2}, {Kind: JSONNumber, Num: 1}}}
	require.False(t, a.Equal(b))
}

func TestValueEqual(t *testing.T) {
	require.True(t, Bytes([]byte{1, 2}).Equal(Bytes([]byte{1, 2})))
	require.False(t, Bytes([]byte{1, 2}).Equal(Bytes([]byte{2, 1})))
	require.True(t, Int(5).Equal(Int(5)))
	require.False(t, Int(5).Equal(Float(5)))
	require.True(t, CurrencyValue(5, "USD").Equal(CurrencyValue(5, "USD")))
	require.False(t, CurrencyValue(5, "USD").Equal(CurrencyValue(5, "EUR")))
}
