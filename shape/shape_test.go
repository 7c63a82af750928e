/*************************************************************************
 * Copyright 2018 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package shape

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gravwell/formatorbit/v3/format"
)

func TestConversionsDropsHiddenAndSelf(t *testing.T) {
	raw := []format.Conversion{
		{TargetFormat: "hex", Display: "0x1", Hidden: true},
		{TargetFormat: "hex", Display: "0x1", Priority: format.PriorityEncoding},
		{TargetFormat: "src", Display: "should not appear"},
	}
	out := Conversions("src", raw)
	require.Len(t, out, 1)
	require.Equal(t, "hex", out[0].TargetFormat)
}

func TestConversionsSortsByPriorityPreservingTies(t *testing.T) {
	raw := []format.Conversion{
		{TargetFormat: "b", Display: "b", Priority: format.PriorityRaw},
		{TargetFormat: "a", Display: "a", Priority: format.PriorityPrimary},
		{TargetFormat: "c", Display: "c", Priority: format.PriorityPrimary},
	}
	out := Conversions("src", raw)
	require.Equal(t, []string{"a", "c", "b"}, []string{out[0].TargetFormat, out[1].TargetFormat, out[2].TargetFormat})
}

func TestConversionsTraitsTrail(t *testing.T) {
	raw := []format.Conversion{
		{TargetFormat: "is-prime", Display: "prime", Kind: format.KindTrait, Priority: format.PriorityPrimary},
		{TargetFormat: "hex", Display: "0x1", Priority: format.PriorityRaw},
	}
	out := Conversions("src", raw)
	require.Equal(t, "hex", out[0].TargetFormat)
	require.Equal(t, "is-prime", out[1].TargetFormat)
}
