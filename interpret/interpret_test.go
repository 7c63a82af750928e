/*************************************************************************
 * Copyright 2018 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package interpret

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gravwell/formatorbit/v3/catalog"
	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

type confFormat struct {
	id      string
	aliases []string
	conf    float32
}

func (f confFormat) ID() string        { return f.id }
func (f confFormat) Name() string      { return f.id }
func (f confFormat) Aliases() []string { return f.aliases }
func (f confFormat) Info() format.Info { return format.Info{} }
func (f confFormat) Parse(input string) []format.Interpretation {
	return []format.Interpretation{{
		Value:      value.String(input),
		Confidence: f.conf,
	}}
}
func (f confFormat) CanFormat(value.Value) bool                  { return false }
func (f confFormat) Format(value.Value) (string, bool)           { return "", false }
func (f confFormat) Conversions(value.Value) []format.Conversion { return nil }

func TestAllSortsByConfidenceDescending(t *testing.T) {
	cat := catalog.New([]format.Format{
		confFormat{id: "weak", conf: 0.5},
		confFormat{id: "strong", conf: 0.95},
		confFormat{id: "mid", conf: 0.7},
	}, nil)

	its := All(cat, "x")
	require.Len(t, its, 3)
	require.Equal(t, "strong", its[0].SourceFormat)
	require.Equal(t, "mid", its[1].SourceFormat)
	require.Equal(t, "weak", its[2].SourceFormat)
}

func TestAllTiesPreserveCatalogOrder(t *testing.T) {
	cat := catalog.New([]format.Format{
		confFormat{id: "first", conf: 0.8},
		confFormat{id: "second", conf: 0.8},
	}, nil)

	its := All(cat, "x")
	require.Len(t, its, 2)
	require.Equal(t, "first", its[0].SourceFormat)
	require.Equal(t, "second", its[1].SourceFormat)
}

func TestAllDropsBelowMinConfidence(t *testing.T) {
	cat := catalog.New([]format.Format{
		confFormat{id: "noise", conf: 0.2},
		confFormat{id: "ok", conf: 0.4},
	}, nil)

	its := All(cat, "x")
	require.Len(t, its, 1)
	require.Equal(t, "ok", its[0].SourceFormat)
}

func TestAllStampsSourceFormat(t *testing.T) {
	cat := catalog.New([]format.Format{confFormat{id: "stamp", conf: 0.9}}, nil)
	its := All(cat, "x")
	require.Len(t, its, 1)
	require.Equal(t, "stamp", its[0].SourceFormat, "the engine, not the leaf, owns SourceFormat")
}

func TestFilteredMatchesIDAndAliasCaseInsensitive(t *testing.T) {
	cat := catalog.New([]format.Format{
		confFormat{id: "hex", aliases: []string{"hexadecimal"}, conf: 0.9},
		confFormat{id: "decimal", conf: 0.9},
	}, nil)

	its := Filtered(cat, "x", []string{"HEXADECIMAL"})
	require.Len(t, its, 1)
	require.Equal(t, "hex", its[0].SourceFormat)

	its = Filtered(cat, "x", nil)
	require.Len(t, its, 2, "an empty only list means no filter")
}

func TestFilteredHonorsBlocking(t *testing.T) {
	cat := catalog.New([]format.Format{
		confFormat{id: "hex", conf: 0.9},
		confFormat{id: "decimal", conf: 0.9},
	}, []string{"hex"})

	its := Filtered(cat, "x", []string{"hex", "decimal"})
	require.Len(t, its, 1)
	require.Equal(t, "decimal", its[0].SourceFormat)
}
