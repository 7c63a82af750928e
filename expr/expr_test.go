/*************************************************************************
 * Copyright 2020 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package expr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func evalInt(t *testing.T, input string) int64 {
	t.Helper()
	r, err := Eval(input, nil)
	require.NoError(t, err)
	require.True(t, r.IsInt, "expected integer result for %q", input)
	return r.Int
}

func evalFloat(t *testing.T, input string) float64 {
	t.Helper()
	r, err := Eval(input, nil)
	require.NoError(t, err)
	require.False(t, r.IsInt, "expected float result for %q", input)
	return r.Float
}

func TestEvalArithmetic(t *testing.T) {
	require.Equal(t, int64(4), evalInt(t, "2 + 2"))
	require.Equal(t, int64(30), evalInt(t, "(10 + 5) * 2"))
	require.Equal(t, int64(2), evalInt(t, "17 % 5"))
	require.Equal(t, int64(-3), evalInt(t, "-3"))
	require.Equal(t, int64(7), evalInt(t, "1 + 2 * 3"))
}

func TestEvalRadixLiterals(t *testing.T) {
	require.Equal(t, int64(256), evalInt(t, "0xFF + 1"))
	require.Equal(t, int64(9), evalInt(t, "0b1000 + 0b0001"))
	require.Equal(t, int64(8), evalInt(t, "0o10"))
}

func TestEvalBitwise(t *testing.T) {
	require.Equal(t, int64(15), evalInt(t, "0b1010 | 0b0101"))
	require.Equal(t, int64(15), evalInt(t, "0xFF & 0x0F"))
	require.Equal(t, int64(256), evalInt(t, "1 << 8"))
	require.Equal(t, int64(16), evalInt(t, "256 >> 4"))
	require.Equal(t, int64(15), evalInt(t, "bitor(10, 5)"))
	require.Equal(t, int64(6), evalInt(t, "bitxor(5, 3)"))
}

func TestEvalPowerPromotesToFloat(t *testing.T) {
	require.InDelta(t, 65536.0, evalFloat(t, "2 ^ 16"), 1e-9)
	require.InDelta(t, 2.0, evalFloat(t, "4 ^ 0.5"), 1e-9)
}

func TestEvalDivision(t *testing.T) {
	require.Equal(t, int64(5), evalInt(t, "10 / 2"))
	require.InDelta(t, 2.5, evalFloat(t, "5 / 2"), 1e-9)

	_, err := Eval("1 / 0", nil)
	require.Error(t, err)
	_, err = Eval("5 % 0", nil)
	require.Error(t, err)
}

func TestEvalBuiltinFunctions(t *testing.T) {
	require.Equal(t, int64(3), evalInt(t, "sqrt(9)"))
	require.Equal(t, int64(5), evalInt(t, "abs(-5)"))
	require.Equal(t, int64(2), evalInt(t, "floor(2.9)"))
}

func TestEvalContextVariablesAndFunctions(t *testing.T) {
	ctx := NewContext()
	ctx.SetVariable("answer", func() (float64, error) { return 42, nil })
	ctx.SetFunction("double", func(args []float64) (float64, error) {
		if len(args) != 1 {
			return 0, errors.New("expected 1 argument")
		}
		return args[0] * 2, nil
	})

	r, err := Eval("double(answer) + 1", ctx)
	require.NoError(t, err)
	require.True(t, r.IsInt)
	require.Equal(t, int64(85), r.Int)
}

func TestEvalErrors(t *testing.T) {
	for _, bad := range []string{
		"", "2 +", "nope", "missing(1", "(1 + 2", "1 || 2", "1 && 2",
		"1.5 | 2", "1 << 99",
	} {
		_, err := Eval(bad, nil)
		require.Error(t, err, "expected %q to fail", bad)
	}
}

func TestEvalVariableErrorPropagates(t *testing.T) {
	ctx := NewContext()
	ctx.SetVariable("broken", func() (float64, error) { return 0, errors.New("boom") })
	_, err := Eval("broken + 1", ctx)
	require.Error(t, err)
}
