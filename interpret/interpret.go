/*************************************************************************
 * Copyright 2018 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package interpret implements the interpretation engine: running every
// unblocked format's Parse against an input and ranking the results.
package interpret

import (
	"math"
	"sort"

	"github.com/gravwell/formatorbit/v3/catalog"
	"github.com/gravwell/formatorbit/v3/format"
)

// MinConfidence is the floor below which a format should return no
// interpretation at all rather than emit a weak one.
const MinConfidence = 0.40

// All runs every unblocked format in cat against input and returns the
// accumulated interpretations sorted by confidence descending. The sort is
// stable, so ties preserve catalog order.
func All(cat *catalog.Catalog, input string) []format.Interpretation {
	return Filtered(cat, input, nil)
}

// Filtered behaves like All, but restricts participation to formats whose
// id or alias matches an entry in only (case-insensitive). An empty only
// behaves like All.
func Filtered(cat *catalog.Catalog, input string, only []string) []format.Interpretation {
	var out []format.Interpretation
	for _, f := range cat.Formats() {
		if len(only) > 0 && !catalog.Matches(f, only) {
			continue
		}
		for _, it := range f.Parse(input) {
			if it.Confidence < MinConfidence {
				continue // parse() should not have emitted this, but never trust a plugin
			}
			it.SourceFormat = f.ID()
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i].Confidence) > rank(out[j].Confidence)
	})
	return out
}

// rank treats NaN as least, per the total ordering the core specifies for
// the confidence sort.
func rank(c float32) float32 {
	if math.IsNaN(float64(c)) {
		return float32(math.Inf(-1))
	}
	return c
}
