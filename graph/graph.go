/*************************************************************************
 * Copyright 2018 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package graph implements the conversion graph engine: given a starting
// (value, source format), it discovers every reachable Conversion via BFS
// over the graph whose edges are defined by each format's Conversions
// method. This is the heart of the system -- it is what multiplies one
// Interpretation into every reachable representation.
package graph

import (
	"fmt"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// DefaultMaxDepth bounds the BFS. The reference catalog never needs more
// than a handful of hops; six is generous headroom against accidental
// cycles in a misbehaving plugin-contributed format.
const DefaultMaxDepth = 6

// node is one entry in the BFS frontier: a value reached by following path
// from the interpretation's source format, currently sitting in format
// currentFormat, at the given depth.
type node struct {
	value         value.Value
	currentFormat string
	path          []string
	depth         int
}

// visitKey identifies a (format, value) pair for the EXPANDED set.
// De-duplication keys off rendered display text rather than value equality
// (see Walk's dedup key), so the visited set here only needs to prevent
// re-expanding the same format from the same canonical display -- display
// is cheap to render and stable per value.
type visitKey struct {
	format  string
	display string
}

// Formats is the subset of the catalog the BFS needs: an ordered, already
// unblocked list of participants. The graph engine never consults the
// registry or blocking policy itself -- that is applied by the caller when
// it builds this slice, keeping Conversions a pure function of the value.
type Formats []format.Format

// Trait is a plugin-provided observation over a value. It is evaluated
// against every distinct node the BFS visits whose Kind matches Applies; a
// truthy Check becomes a terminal, display-only, Kind-Trait edge.
type Trait struct {
	ID      string
	Name    string
	Applies func(k value.Kind) bool
	Check   func(v value.Value) (hit bool, display string)
}

// Options configures a Walk beyond its required starting point.
type Options struct {
	MaxDepth int
	Traits   []Trait

	// Blocked rejects edges into the named target formats. Removing a
	// format from the participant list only stops its outgoing edges;
	// this is how blocking also removes the edges into it.
	Blocked map[string]bool
}

// Walk runs the BFS starting from (start, sourceFormat) and returns every
// discovered Conversion, in discovery order, including hidden edges (the
// caller's result-shaping pass is responsible for dropping those).
func Walk(formats Formats, start value.Value, sourceFormat string, opts Options) []format.Conversion {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var out []format.Conversion
	var traitEdges []format.Conversion

	expanded := make(map[visitKey]bool)
	seenEdge := make(map[string]bool) // (targetFormat, display) dedup key
	traitVisited := make(map[string]bool)

	queue := []node{{value: start, currentFormat: sourceFormat, path: []string{sourceFormat}, depth: 0}}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		if n.depth >= maxDepth {
			continue
		}

		evaluateTraits(opts.Traits, n, sourceFormat, traitVisited, &traitEdges)

		for _, f := range formats {
			vk := visitKey{format: f.ID(), display: canonicalDisplay(f, n.value)}
			if expanded[vk] {
				continue
			}
			expanded[vk] = true

			edges := f.Conversions(n.value)
			if sc, ok := f.(format.SourceConverter); ok {
				edges = append(edges, sc.SourceConversions(n.value, n.currentFormat)...)
			}

			for _, e := range edges {
				// A format may emit edges under its own id (an annotation
				// like "this 6-byte value reads as a MAC address"); only
				// edges looping back to the current node's format or to the
				// interpretation's source format are rejected.
				if e.TargetFormat == n.currentFormat {
					continue // self-loop
				}
				if e.TargetFormat == sourceFormat {
					continue // cycle back to the interpretation's own source format
				}
				if opts.Blocked[e.TargetFormat] {
					continue
				}

				e.Path = append(append([]string{}, n.path...), e.TargetFormat)

				dedupKey := e.TargetFormat + "\x00" + e.Display
				if seenEdge[dedupKey] {
					continue
				}
				seenEdge[dedupKey] = true

				if e.Kind == format.KindTrait {
					e.DisplayOnly = true
					traitEdges = append(traitEdges, e)
					continue
				}

				out = append(out, e)

				if !e.DisplayOnly {
					queue = append(queue, node{
						value:         e.Value,
						currentFormat: e.TargetFormat,
						path:          e.Path,
						depth:         n.depth + 1,
					})
				}
			}
		}
	}

	// Trait edges always trail, regardless of discovery order.
	out = append(out, traitEdges...)
	return out
}

// evaluateTraits applies every plugin trait to n's value once, the first
// time that (format, value) pair is reached by the BFS.
func evaluateTraits(traits []Trait, n node, sourceFormat string, visited map[string]bool, out *[]format.Conversion) {
	if len(traits) == 0 {
		return
	}
	key := n.currentFormat + "\x00" + fmt.Sprintf("%v", n.value)
	for _, t := range traits {
		if t.Applies != nil && !t.Applies(n.value.Kind) {
			continue
		}
		vk := key + "\x00" + t.ID
		if visited[vk] {
			continue
		}
		visited[vk] = true
		hit, display := t.Check(n.value)
		if !hit {
			continue
		}
		*out = append(*out, format.Conversion{
			Value:        n.value,
			TargetFormat: t.ID,
			Display:      display,
			Path:         append(append([]string{}, n.path...), t.ID),
			Kind:         format.KindTrait,
			DisplayOnly:  true,
			Priority:     format.PriorityRaw,
		})
	}
}

func canonicalDisplay(f format.Format, v value.Value) string {
	if s, ok := f.Format(v); ok {
		return s
	}
	return ""
}
