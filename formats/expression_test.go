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

	"github.com/stretchr/testify/require"

	"github.com/gravwell/formatorbit/v3/expr"
	"github.com/gravwell/formatorbit/v3/value"
)

func TestExpressionParse(t *testing.T) {
	x := Expression{}

	its := x.Parse("2 + 2")
	require.Len(t, its, 1)
	require.Equal(t, value.KindInt, its[0].Value.Kind)
	i, _ := its[0].Value.Int.Int64()
	require.Equal(t, int64(4), i)
	require.InDelta(t, 0.60, its[0].Confidence, 1e-6)
	require.Contains(t, its[0].Description, "= 4")

	its = x.Parse("0xFF + 1")
	require.Len(t, its, 1)
	i, _ = its[0].Value.Int.Int64()
	require.Equal(t, int64(256), i)

	its = x.Parse("0b1010 | 0b0101")
	require.Len(t, its, 1)
	i, _ = its[0].Value.Int.Int64()
	require.Equal(t, int64(15), i)

	its = x.Parse("2 ^ 16")
	require.Len(t, its, 1)
	require.Equal(t, value.KindFloat, its[0].Value.Kind)
	require.InDelta(t, 65536.0, its[0].Value.Float, 1e-9)
}

func TestExpressionRejectsNonExpressions(t *testing.T) {
	x := Expression{}
	for _, s := range []string{
		"0xFF", // plain hex, no operator: the hex leaf owns it
		"550e8400-e29b-41d4-a716-446655440000", // UUID shape
		"https://example.com/a+b",              // URL
		"2026/08/02",                           // slash date
		"hello",
	} {
		require.Empty(t, x.Parse(s), "expected %q to be rejected", s)
	}
}

func TestExpressionUsesInjectedEnv(t *testing.T) {
	env := expr.NewContext()
	env.SetVariable("blocksize", func() (float64, error) { return 512, nil })

	x := Expression{Env: env}
	its := x.Parse("blocksize * 8")
	require.Len(t, its, 1)
	i, _ := its[0].Value.Int.Int64()
	require.Equal(t, int64(4096), i)
}

func TestExpressionNeverFormats(t *testing.T) {
	x := Expression{}
	require.False(t, x.CanFormat(value.Int(4)))
	_, ok := x.Format(value.Int(4))
	require.False(t, ok)
	require.Empty(t, x.Conversions(value.Int(4)))
}
