/*************************************************************************
 * Copyright 2018 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package shape implements result shaping: the pass that turns the graph
// engine's raw, unordered Conversion list into what a caller actually sees.
package shape

import (
	"sort"

	"github.com/gravwell/formatorbit/v3/format"
)

// Conversions applies the full result-shaping pipeline described by the
// core: strip hidden edges, collapse (target, display) duplicates keeping
// the first (shortest-path, by BFS order) occurrence, sort by priority
// ascending while preserving source order within a bucket, and push trait
// edges to the very end.
func Conversions(sourceFormat string, raw []format.Conversion) []format.Conversion {
	seen := make(map[string]bool, len(raw))
	visible := make([]format.Conversion, 0, len(raw))

	for _, c := range raw {
		if c.Hidden {
			continue
		}
		if c.TargetFormat == sourceFormat {
			continue // an interpretation's own source format is never a conversion target
		}
		key := c.TargetFormat + "\x00" + c.Display
		if seen[key] {
			continue
		}
		seen[key] = true
		visible = append(visible, c)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		ti, tj := visible[i].Kind == format.KindTrait, visible[j].Kind == format.KindTrait
		if ti != tj {
			return !ti // non-trait sorts before trait
		}
		if ti && tj {
			return false // traits keep their relative (already stable) order
		}
		return visible[i].Priority < visible[j].Priority
	})

	return visible
}
