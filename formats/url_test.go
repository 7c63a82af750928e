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

	"github.com/gravwell/formatorbit/v3/value"
)

func TestURLParseWithScheme(t *testing.T) {
	its := URL{}.Parse("https://example.com/path?q=1#top")
	require.Len(t, its, 1)
	require.GreaterOrEqual(t, its[0].Confidence, float32(0.95))
	require.Contains(t, its[0].Description, "example.com")
	require.Contains(t, its[0].Description, "has fragment")
	require.Equal(t, value.KindString, its[0].Value.Kind)
}

func TestURLParseWithoutScheme(t *testing.T) {
	its := URL{}.Parse("example.com/page")
	require.Len(t, its, 1)
	require.GreaterOrEqual(t, its[0].Confidence, float32(0.70))
	require.Equal(t, "https://example.com/page", its[0].Value.Str)
}

func TestURLRejects(t *testing.T) {
	u := URL{}
	for _, s := range []string{
		"", "hello world", "user@example.com", "2 + 2", "not a url",
		"file:///etc/passwd", // unsupported scheme
	} {
		require.Empty(t, u.Parse(s), "expected %q to be rejected", s)
	}
}

func TestURLTrackingCleanup(t *testing.T) {
	raw := "https://example.com/article?id=7&utm_source=mail&fbclid=abc"

	its := URL{}.Parse(raw)
	require.Len(t, its, 1)

	convs := URL{}.Conversions(value.String(raw))
	require.Len(t, convs, 1)
	require.Equal(t, "url-cleaned", convs[0].TargetFormat)
	require.True(t, convs[0].DisplayOnly)
	require.Contains(t, convs[0].Display, "id=7")
	require.NotContains(t, convs[0].Display, "utm_source")
	require.NotContains(t, convs[0].Display, "fbclid")
}

func TestURLNoCleanupWithoutTrackingParams(t *testing.T) {
	require.Empty(t, URL{}.Conversions(value.String("https://example.com/?id=7")))
	require.Empty(t, URL{}.Conversions(value.String("plain text")))
	require.Empty(t, URL{}.Conversions(value.Int(1)))
}
