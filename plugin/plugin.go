/*************************************************************************
 * Copyright 2020 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package plugin implements the plugin extension model: discovery,
// validation, and registration of externally supplied decoders, traits,
// visualizers, currencies, and expression contributions, fused with the
// built-in catalog without compromising its invariants.
//
// A plugin error -- missing metadata, a script that fails to parse, a
// runtime panic during load -- is reported per-file in a LoadReport and
// never prevents the rest of the plugin set from loading. At call time, a
// plugin raising an error during Parse/Check/Visualize/Rate is logged and
// yields an empty result, never a crash.
package plugin

import (
	"errors"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// ReservedSuffix marks plugin files that are sample/template content and
// must be skipped by discovery.
const ReservedSuffix = ".sample"

// Metadata is the record every plugin file must export at a well-known
// symbol. Missing metadata is a load error for that file alone.
type Metadata struct {
	Name        string
	Version     string
	Author      string
	Description string
}

func (m Metadata) validate() error {
	if m.Name == "" {
		return ErrMissingName
	}
	if m.Version == "" {
		return ErrMissingVersion
	}
	return nil
}

var (
	ErrMissingName    = errors.New("plugin metadata missing name")
	ErrMissingVersion = errors.New("plugin metadata missing version")
)

// DecoderSpec is a plugin-contributed Format registration. id, name and
// parser are required; aliases is optional.
type DecoderSpec struct {
	ID      string
	Name    string
	Aliases []string
	Parser  func(input string) []format.Interpretation
}

// TraitSpec is a plugin-contributed value observation, evaluated against
// each node the conversion graph visits whose Kind matches ValueKinds.
// A truthy Check becomes a terminal, display-only edge of Kind Trait.
type TraitSpec struct {
	ID         string
	Name       string
	ValueKinds []value.Kind
	Check      func(v value.Value) (bool, string)
}

// VisualizerSpec is a plugin-contributed rich-display renderer.
type VisualizerSpec struct {
	ID         string
	Name       string
	ValueKinds []value.Kind
	Render     func(v value.Value) (format.RichDisplay, bool)
}

// CurrencySpec is a plugin-contributed currency.
type CurrencySpec struct {
	Code     string
	Symbol   string
	Name     string
	Decimals int
	RateFn   func() (rate float64, base string, err error)
}

// ExprVariableSpec is a parameterless numeric producer exposed to the
// expression evaluator context.
type ExprVariableSpec struct {
	Name        string
	Description string
	Fn          func() (float64, error)
}

// ExprFunctionSpec is a callable exposed to the expression evaluator
// context, accepting numeric arguments and returning a numeric result.
type ExprFunctionSpec struct {
	Name        string
	Description string
	Fn          func(args []float64) (float64, error)
}

// Contributions is everything a single plugin file registered during load.
type Contributions struct {
	Metadata    Metadata
	Decoders    []DecoderSpec
	Traits      []TraitSpec
	Visualizers []VisualizerSpec
	Currencies  []CurrencySpec
	Variables   []ExprVariableSpec
	Functions   []ExprFunctionSpec
}

// FileError records a single file's load failure without aborting the rest
// of the discovery pass.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string { return e.Path + ": " + e.Err.Error() }

// LoadReport enumerates what loaded and what didn't across every file found
// during discovery.
type LoadReport struct {
	Loaded []Contributions
	Errors []FileError
}
