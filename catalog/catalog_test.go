/*************************************************************************
 * Copyright 2018 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

type fakeFormat struct {
	id      string
	aliases []string
}

func (f fakeFormat) ID() string                                  { return f.id }
func (f fakeFormat) Name() string                                { return f.id }
func (f fakeFormat) Aliases() []string                           { return f.aliases }
func (f fakeFormat) Info() format.Info                           { return format.Info{} }
func (f fakeFormat) Parse(string) []format.Interpretation        { return nil }
func (f fakeFormat) CanFormat(value.Value) bool                  { return false }
func (f fakeFormat) Format(value.Value) (string, bool)           { return "", false }
func (f fakeFormat) Conversions(value.Value) []format.Conversion { return nil }

func TestCatalogBlocking(t *testing.T) {
	c := New([]format.Format{
		fakeFormat{id: "hex"},
		fakeFormat{id: "decimal"},
		fakeFormat{id: "base64"},
	}, []string{"HEX "})

	unblocked := c.Formats()
	require.Len(t, unblocked, 2)
	for _, f := range unblocked {
		require.NotEqual(t, "hex", f.ID())
	}

	require.Len(t, c.All(), 3, "All ignores blocking")
	require.True(t, c.Blocked("hex"))
	require.False(t, c.Blocked("decimal"))
}

func TestCatalogOrderPreserved(t *testing.T) {
	c := New([]format.Format{
		fakeFormat{id: "a"}, fakeFormat{id: "b"}, fakeFormat{id: "c"},
	}, nil)
	got := c.Formats()
	require.Equal(t, "a", got[0].ID())
	require.Equal(t, "b", got[1].ID())
	require.Equal(t, "c", got[2].ID())
}

func TestCatalogLookup(t *testing.T) {
	c := New([]format.Format{fakeFormat{id: "hex"}}, []string{"hex"})
	f, ok := c.Lookup("hex")
	require.True(t, ok, "Lookup ignores blocking")
	require.Equal(t, "hex", f.ID())

	_, ok = c.Lookup("nope")
	require.False(t, ok)
}

func TestMatchesByIDAndAlias(t *testing.T) {
	f := fakeFormat{id: "hex", aliases: []string{"hexadecimal"}}
	require.True(t, Matches(f, []string{"HEX"}))
	require.True(t, Matches(f, []string{"Hexadecimal"}))
	require.False(t, Matches(f, []string{"decimal"}))
	require.False(t, Matches(f, nil))
}

func TestWithFormatDoesNotMutateOriginal(t *testing.T) {
	c := New([]format.Format{fakeFormat{id: "a"}}, nil)
	c2 := c.WithFormat(fakeFormat{id: "b"})
	require.Len(t, c.Formats(), 1)
	require.Len(t, c2.Formats(), 2)
}
