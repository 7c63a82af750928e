/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package format

import "github.com/gravwell/formatorbit/v3/value"

// Priority orders conversions for presentation. It is a sort key, not a
// measure of correctness: Primary sorts first, Raw sorts last.
type Priority int

const (
	PriorityPrimary Priority = iota
	PriorityStructured
	PrioritySemantic
	PriorityEncoding
	PriorityRaw
)

func (p Priority) String() string {
	switch p {
	case PriorityPrimary:
		return "primary"
	case PriorityStructured:
		return "structured"
	case PrioritySemantic:
		return "semantic"
	case PriorityEncoding:
		return "encoding"
	case PriorityRaw:
		return "raw"
	}
	return "unknown"
}

// Kind classifies a Conversion edge semantically.
type Kind int

const (
	KindConversion Kind = iota
	KindRepresentation
	KindTrait
)

// Conversion records one reachable representation of a value discovered by
// the conversion graph engine's BFS.
type Conversion struct {
	Value        value.Value
	TargetFormat string
	Display      string
	Path         []string
	Steps        []Step
	IsLossy      bool
	Priority     Priority
	Kind         Kind

	// DisplayOnly marks the edge's target as terminal: the BFS records
	// the edge but never enqueues its value for further expansion.
	DisplayOnly bool

	// Hidden edges exist for graph connectivity but are suppressed from
	// the conversions ultimately returned to the caller.
	Hidden bool

	RichDisplay []RichDisplay
}

// Step is one hop of a Conversion's richer per-step trace. When present,
// Steps[0] corresponds to Path[1].
type Step struct {
	Format  string
	Display string
}
