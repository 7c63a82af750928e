/*************************************************************************
 * Copyright 2020 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package plugin

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// Discover walks dirs in order, loading every *.go file that doesn't carry
// ReservedSuffix before its extension (e.g. "sample.go.sample" is skipped,
// "currency_ecb_fallback.go" is loaded). Later directories' files with a
// colliding metadata Name shadow earlier ones; the report still includes
// both, since shadowing is a registration-time decision the caller (the
// table) makes, not a discovery-time one.
//
// A missing directory is not an error: bundled-plugin and user-plugin
// directories are both optional per the documented file layout.
func Discover(dirs []string) LoadReport {
	var report LoadReport
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			names = append(names, e.Name())
		}
		sort.Strings(names)
		for _, name := range names {
			if !strings.HasSuffix(name, ".go") {
				continue
			}
			if strings.HasSuffix(name, ReservedSuffix) || strings.Contains(name, ReservedSuffix+".") {
				continue
			}
			path := filepath.Join(dir, name)
			src, err := os.ReadFile(path)
			if err != nil {
				report.Errors = append(report.Errors, FileError{Path: path, Err: err})
				continue
			}
			contrib, err := runPluginSource(path, src)
			if err != nil {
				report.Errors = append(report.Errors, FileError{Path: path, Err: err})
				continue
			}
			report.Loaded = append(report.Loaded, contrib)
		}
	}
	return report
}

// Table is the read-write-locked, live view of everything every loaded
// plugin contributed, fused from a LoadReport. Decoders/Traits are read
// far more often (once per conversion-graph walk) than written (once per
// reload), hence the RWMutex.
type Table struct {
	mu          sync.RWMutex
	decoders    []pluginFormat
	traits      []TraitSpec
	visualizers []VisualizerSpec
	currencies  []CurrencySpec
	variables   []ExprVariableSpec
	functions   []ExprFunctionSpec
}

// NewTable fuses every successfully loaded plugin's contributions from
// report into one Table.
func NewTable(report LoadReport) *Table {
	t := &Table{}
	for _, c := range report.Loaded {
		for _, d := range c.Decoders {
			t.decoders = append(t.decoders, pluginFormat{spec: d})
		}
		t.traits = append(t.traits, c.Traits...)
		t.visualizers = append(t.visualizers, c.Visualizers...)
		t.currencies = append(t.currencies, c.Currencies...)
		t.variables = append(t.variables, c.Variables...)
		t.functions = append(t.functions, c.Functions...)
	}
	return t
}

// Reload atomically replaces the table's contents with a fresh report,
// without ever exposing a partially-updated view to a concurrent reader.
func (t *Table) Reload(report LoadReport) {
	fresh := NewTable(report)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.decoders = fresh.decoders
	t.traits = fresh.traits
	t.visualizers = fresh.visualizers
	t.currencies = fresh.currencies
	t.variables = fresh.variables
	t.functions = fresh.functions
}

// Decoders returns every plugin-contributed format.Format, in load order.
func (t *Table) Decoders() []format.Format {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]format.Format, len(t.decoders))
	for i, d := range t.decoders {
		out[i] = d
	}
	return out
}

func (t *Table) Traits() []TraitSpec {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]TraitSpec, len(t.traits))
	copy(out, t.traits)
	return out
}

func (t *Table) Visualizers() []VisualizerSpec {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]VisualizerSpec, len(t.visualizers))
	copy(out, t.visualizers)
	return out
}

func (t *Table) Currencies() []CurrencySpec {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]CurrencySpec, len(t.currencies))
	copy(out, t.currencies)
	return out
}

func (t *Table) Variables() []ExprVariableSpec {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]ExprVariableSpec, len(t.variables))
	copy(out, t.variables)
	return out
}

func (t *Table) Functions() []ExprFunctionSpec {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]ExprFunctionSpec, len(t.functions))
	copy(out, t.functions)
	return out
}

// pluginFormat adapts a plugin-contributed DecoderSpec to format.Format so
// the catalog and conversion graph can treat it identically to a built-in
// leaf. A plugin decoder only contributes Parse; it has no Format or
// Conversions of its own, matching the documented plugin surface (plugins
// extend recognition, not the conversion graph's edges directly -- traits
// cover that).
type pluginFormat struct {
	spec DecoderSpec
}

func (p pluginFormat) ID() string        { return p.spec.ID }
func (p pluginFormat) Name() string      { return p.spec.Name }
func (p pluginFormat) Aliases() []string { return p.spec.Aliases }
func (p pluginFormat) Info() format.Info {
	return format.Info{Category: "plugin", Description: "Plugin-contributed: " + p.spec.Name}
}

func (p pluginFormat) Parse(input string) []format.Interpretation {
	if p.spec.Parser == nil {
		return nil
	}
	return safeParse(p.spec.Parser, input)
}

// safeParse isolates a single plugin call: a panicking plugin decoder must
// not be able to bring down an interpretation pass touching every other
// format.
func safeParse(fn func(string) []format.Interpretation, input string) (out []format.Interpretation) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()
	return fn(input)
}

// SafeRender invokes a visualizer's Render under the same isolation rules as
// safeParse: a panic or a "no display" return both yield ok == false.
func (s VisualizerSpec) SafeRender(v value.Value) (rd format.RichDisplay, ok bool) {
	if s.Render == nil {
		return format.RichDisplay{}, false
	}
	defer func() {
		if recover() != nil {
			rd, ok = format.RichDisplay{}, false
		}
	}()
	return s.Render(v)
}

// AppliesTo reports whether the visualizer declared k as one of the value
// kinds it renders.
func (s VisualizerSpec) AppliesTo(k value.Kind) bool {
	for _, want := range s.ValueKinds {
		if want == k {
			return true
		}
	}
	return false
}

func (p pluginFormat) CanFormat(v value.Value) bool            { return false }
func (p pluginFormat) Format(v value.Value) (string, bool)     { return "", false }
func (p pluginFormat) Conversions(v value.Value) []format.Conversion { return nil }
