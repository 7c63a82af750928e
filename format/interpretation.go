/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package format

import "github.com/gravwell/formatorbit/v3/value"

// RichDisplayKind selects how a RichDisplay hint should be rendered by a
// presentation layer (CLI, TUI, or UI). The engine never interprets these
// itself; it only carries them through to the caller.
type RichDisplayKind int

const (
	DisplayKeyValue RichDisplayKind = iota
	DisplayMap
	DisplayColor
	DisplayTree
	DisplayCode
	DisplayProgressBar
	DisplayLiveClock
	DisplayDateTime
	DisplaySize
)

// RichDisplay is a structured display hint attached to an Interpretation or
// Conversion. Fields beyond Kind are interpreted according to Kind; unused
// fields are left zero.
type RichDisplay struct {
	Kind    RichDisplayKind
	Title   string
	Table   []KeyValue
	Color   string
	Tree    *TreeNode
	Code    string
	Lang    string
	Percent float64
}

type KeyValue struct {
	Key   string
	Value string
}

type TreeNode struct {
	Label    string
	Children []TreeNode
}

// Interpretation records one plausible reading of an input string produced
// by a single Format's Parse call. It is immutable after construction.
type Interpretation struct {
	Value         value.Value
	SourceFormat  string
	Confidence    float32
	Description   string
	RichDisplay   []RichDisplay
}
