/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package format defines the contract every parser/encoder/convertor in the
// catalog obeys. A Format is a first-class value, not a type: both built-in
// formats and plugin-contributed decoders satisfy the same interface and are
// indistinguishable to the interpretation and conversion graph engines.
package format

import "github.com/gravwell/formatorbit/v3/value"

// Info is the metadata record returned by a Format's Info method.
type Info struct {
	Category      string
	Description   string
	Examples      []string
	HasValidation bool
}

// Format is the contract every catalog participant obeys. Implementations
// must be pure and total: Parse never panics and an empty return means
// "does not recognize this input," never an error.
type Format interface {
	ID() string
	Name() string
	Aliases() []string
	Info() Info

	Parse(input string) []Interpretation

	CanFormat(v value.Value) bool
	Format(v value.Value) (string, bool)

	Conversions(v value.Value) []Conversion
}

// SourceConverter is implemented by formats that emit conversions keyed off
// the source format identifier rather than the value's type alone -- for
// example a "next cron execution" edge that only makes sense when the
// caller knows the value came from the cron format.
type SourceConverter interface {
	SourceConversions(v value.Value, sourceFormat string) []Conversion
}

// Validator is implemented by formats that can explain a parse failure when
// the caller forces a single format via --only and nothing matched.
type Validator interface {
	Validate(input string) (string, bool)
}
