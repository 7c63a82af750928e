/*************************************************************************
 * Copyright 2018 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package catalog implements the process-wide ordered registry of formats.
// The registry is a slice, not a map: order only matters as a tie-break
// when two formats produce interpretations at equal confidence, and the
// catalog's own arrangement (leaf-specific formats first, general encodings
// after, conversion-only leaves last) is documentation, not semantics.
package catalog

import (
	"strings"

	"github.com/gravwell/formatorbit/v3/format"
)

// Catalog is an immutable-after-construction ordered list of formats. It is
// safe for concurrent read access once built; nothing mutates it after New.
type Catalog struct {
	formats []format.Format
	blocked map[string]bool
}

// New builds a Catalog from an ordered list of formats and an optional set
// of blocked ids. Blocking a format id is equivalent to its absence: it is
// skipped by both Parse and Conversions passes and cannot affect the output
// of any other format.
func New(formats []format.Format, blocked []string) *Catalog {
	b := make(map[string]bool, len(blocked))
	for _, id := range blocked {
		b[strings.ToLower(strings.TrimSpace(id))] = true
	}
	return &Catalog{formats: formats, blocked: b}
}

// Formats returns the unblocked formats in catalog order.
func (c *Catalog) Formats() []format.Format {
	if len(c.blocked) == 0 {
		out := make([]format.Format, len(c.formats))
		copy(out, c.formats)
		return out
	}
	out := make([]format.Format, 0, len(c.formats))
	for _, f := range c.formats {
		if !c.blocked[f.ID()] {
			out = append(out, f)
		}
	}
	return out
}

// All returns every registered format regardless of blocking, for use by
// FormatInfos and similar introspection calls.
func (c *Catalog) All() []format.Format {
	out := make([]format.Format, len(c.formats))
	copy(out, c.formats)
	return out
}

// Blocked reports whether id is blocked.
func (c *Catalog) Blocked(id string) bool {
	return c.blocked[strings.ToLower(strings.TrimSpace(id))]
}

// Lookup returns the format with the given id, ignoring blocking.
func (c *Catalog) Lookup(id string) (format.Format, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, f := range c.formats {
		if f.ID() == id {
			return f, true
		}
	}
	return nil, false
}

// Matches reports whether a format's id or any of its aliases matches one
// of the names in only, case-insensitively. An empty only matches nothing;
// callers treat an empty --only list as "no filter" before calling this.
func Matches(f format.Format, only []string) bool {
	for _, name := range only {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == f.ID() {
			return true
		}
		for _, alias := range f.Aliases() {
			if strings.ToLower(alias) == name {
				return true
			}
		}
	}
	return false
}

// WithFormat returns a copy of the Catalog with an additional format
// appended -- used by the plugin loader to fuse plugin-contributed decoders
// with the built-in catalog without mutating the original instance.
func (c *Catalog) WithFormat(f format.Format) *Catalog {
	formats := make([]format.Format, len(c.formats), len(c.formats)+1)
	copy(formats, c.formats)
	formats = append(formats, f)
	blocked := make(map[string]bool, len(c.blocked))
	for k, v := range c.blocked {
		blocked[k] = v
	}
	return &Catalog{formats: formats, blocked: blocked}
}
