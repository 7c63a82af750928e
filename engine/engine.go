/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package engine wires the core algebra, format catalog, interpretation
// engine, conversion graph, result shaping, confidence calibrator, rate
// cache and plugin table into the single entry point a caller (CLI,
// library embedder) actually uses.
package engine

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gravwell/formatorbit/v3/calibrate"
	"github.com/gravwell/formatorbit/v3/catalog"
	"github.com/gravwell/formatorbit/v3/currency"
	"github.com/gravwell/formatorbit/v3/expr"
	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/formats"
	"github.com/gravwell/formatorbit/v3/graph"
	"github.com/gravwell/formatorbit/v3/interpret"
	"github.com/gravwell/formatorbit/v3/plugin"
	"github.com/gravwell/formatorbit/v3/shape"
	"github.com/gravwell/formatorbit/v3/value"
)

const exchangeRateURL = "https://api.exchangerate.host/latest?base=EUR"

// Engine is the top-level API: construct one with New or WithConfig, then
// call Interpret and ConvertAll (or ConvertBytes for binary input) per
// request. An Engine is safe for concurrent use once constructed.
type Engine struct {
	cat      *catalog.Catalog
	cal      calibrate.Calibrator
	rates    *currency.Cache
	plugins  *plugin.Table
	exprEnv  *expr.Context
	maxDepth int
	blocked  []string
}

// New constructs an Engine with every built-in format and no plugins
// loaded, using the real wall clock and an in-memory-only rate cache.
func New() *Engine {
	return WithConfig(Config{})
}

// WithConfig constructs an Engine from cfg: it loads plugins from
// cfg.PluginDirs, builds the rate cache against cfg.RateCachePath (or
// AppName's default path if RateCachePath is empty and AppName is set),
// and fuses the built-in catalog with every plugin-contributed decoder.
func WithConfig(cfg Config) *Engine {
	e, _ := build(cfg, plugin.Discover(cfg.PluginDirs))
	return e
}

// WithPlugins is WithConfig plus an explicit load report: callers that want
// to surface per-file plugin errors (rather than silently dropping them)
// use this instead of WithConfig. The bundled starter plugins are unpacked
// into the last configured plugin directory on first run, before discovery.
// err is non-nil only when the embedded scripting runtime itself could not
// be brought up; on error the caller may fall back to New, which loads no
// plugins.
func WithPlugins(cfg Config) (*Engine, plugin.LoadReport, error) {
	if n := len(cfg.PluginDirs); n > 0 {
		// best effort; an unwritable directory just means no starter set
		plugin.UnpackBundled(cfg.PluginDirs[n-1])
	}
	report := plugin.Discover(cfg.PluginDirs)
	e, report := build(cfg, report)
	return e, report, nil
}

func build(cfg Config, report plugin.LoadReport) (*Engine, plugin.LoadReport) {
	cal := calibrate.New()
	if cfg.Now != nil {
		cal = cal.WithClock(calibrate.Fixed(cfg.Now()))
	}

	ratePath := cfg.RateCachePath
	if ratePath == "" && cfg.AppName != "" {
		if p, err := currency.DefaultPath(cfg.AppName); err == nil {
			ratePath = p
		}
	}
	fetcher := currency.HTTPFetcher{URL: exchangeRateURL, Client: &http.Client{Timeout: currency.FetchTimeout}}
	rates := currency.New(ratePath, fetcher)

	table := plugin.NewTable(report)
	for _, cs := range table.Currencies() {
		rates.RegisterPlugin(currency.PluginCurrency{
			Code: cs.Code, Symbol: cs.Symbol, Name: cs.Name, Decimals: cs.Decimals, RateFn: cs.RateFn,
		})
	}

	env := expr.NewContext()
	registerExprContributions(env, table)

	all := formats.Builtins(cal, rates, env)
	all = append(all, table.Decoders()...)

	return &Engine{
		cat:      catalog.New(all, cfg.BlockedFormats),
		cal:      cal,
		rates:    rates,
		plugins:  table,
		exprEnv:  env,
		maxDepth: cfg.MaxConversionDepth,
		blocked:  cfg.BlockedFormats,
	}, report
}

// registerExprContributions merges every plugin-contributed variable and
// function into env alongside the built-ins. Plugin callables are wrapped
// so a panic inside one surfaces as an evaluation error for that expression
// alone, never a crash.
func registerExprContributions(env *expr.Context, table *plugin.Table) {
	for _, v := range table.Variables() {
		fn := v.Fn
		env.SetVariable(v.Name, func() (f float64, err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("plugin variable panicked: %v", r)
				}
			}()
			return fn()
		})
	}
	for _, f := range table.Functions() {
		fn := f.Fn
		env.SetFunction(f.Name, func(args []float64) (res float64, err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("plugin function panicked: %v", r)
				}
			}()
			return fn(args)
		})
	}
}

// Interpret runs every unblocked format's Parse against input, ranked by
// confidence. An empty result means nothing in the catalog recognized the
// input, not an error.
func (e *Engine) Interpret(input string) []format.Interpretation {
	return interpret.All(e.cat, input)
}

// InterpretOnly restricts Interpret to the named formats (id or alias).
func (e *Engine) InterpretOnly(input string, only []string) []format.Interpretation {
	return interpret.Filtered(e.cat, input, only)
}

// ConversionResult bundles one interpretation of an input with every
// reachable conversion discovered by walking the conversion graph from its
// value. It is the unit convert_all returns: one per Interpretation the
// interpretation phase produced.
type ConversionResult struct {
	Input          string
	Interpretation format.Interpretation
	Conversions    []format.Conversion
}

// ConvertAll is the primary entry point: it interprets input under every
// unblocked format, then for each interpretation walks the conversion
// graph and bundles the two into a ConversionResult, preserving the
// interpretations' confidence-descending order.
func (e *Engine) ConvertAll(input string) []ConversionResult {
	return e.ConvertAllFiltered(input, nil)
}

// ConvertAllFiltered behaves like ConvertAll but restricts the
// interpretation phase (not the conversion graph's participants -- the
// graph always consults every unblocked format, per the core's contract
// that Conversions never depends on the caller's --only filter) to formats
// whose id or alias matches only.
func (e *Engine) ConvertAllFiltered(input string, only []string) []ConversionResult {
	its := interpret.Filtered(e.cat, input, only)
	out := make([]ConversionResult, 0, len(its))
	for _, it := range its {
		out = append(out, ConversionResult{
			Input:          input,
			Interpretation: it,
			Conversions:    e.convertFrom(it),
		})
	}
	return out
}

// convertFrom walks the conversion graph from a single interpretation's
// value and shapes the result: hidden and self-target edges removed,
// (target, display) deduplicated, sorted by priority with plugin trait
// edges trailing.
func (e *Engine) convertFrom(it format.Interpretation) []format.Conversion {
	participants := graph.Formats(e.cat.Formats())
	raw := graph.Walk(participants, it.Value, it.SourceFormat, graph.Options{
		MaxDepth: e.maxDepth,
		Traits:   e.graphTraits(),
		Blocked:  e.blockedSet(),
	})
	out := shape.Conversions(it.SourceFormat, raw)
	e.visualize(out)
	return out
}

func (e *Engine) blockedSet() map[string]bool {
	if len(e.blocked) == 0 {
		return nil
	}
	out := make(map[string]bool, len(e.blocked))
	for _, id := range e.blocked {
		out[strings.ToLower(strings.TrimSpace(id))] = true
	}
	return out
}

// visualize runs every plugin visualizer over the shaped conversions,
// appending whatever displays they contribute. A visualizer returning no
// display is not an error, and a panicking one is isolated to its own call.
func (e *Engine) visualize(convs []format.Conversion) {
	specs := e.plugins.Visualizers()
	if len(specs) == 0 {
		return
	}
	for i := range convs {
		for _, s := range specs {
			if !s.AppliesTo(convs[i].Value.Kind) {
				continue
			}
			if rd, ok := s.SafeRender(convs[i].Value); ok {
				convs[i].RichDisplay = append(convs[i].RichDisplay, rd)
			}
		}
	}
}

func (e *Engine) graphTraits() []graph.Trait {
	specs := e.plugins.Traits()
	out := make([]graph.Trait, 0, len(specs))
	for _, s := range specs {
		s := s
		out = append(out, graph.Trait{
			ID:   s.ID,
			Name: s.Name,
			Applies: func(k value.Kind) bool {
				for _, want := range s.ValueKinds {
					if want == k {
						return true
					}
				}
				return false
			},
			Check: s.Check,
		})
	}
	return out
}

// ConvertBytes is the binary entry point: it classifies raw bytes (magic
// number sniffing, schema-less protobuf decode, and always a plain bytes
// interpretation), then runs the same conversion-graph walk as ConvertAll against
// each candidate interpretation.
func (e *Engine) ConvertBytes(b []byte) []ConversionResult {
	return e.ConvertBytesFiltered(b, nil)
}

// ConvertBytesFiltered behaves like ConvertBytes but restricts the
// candidate interpretations to the named source-format tags
// (case-insensitive). The bytes entry point's candidates (magic-sniffed
// container kind, schema-less protobuf, raw bytes) are classifier tags, not
// catalog formats, so only is matched against SourceFormat directly rather
// than through catalog aliasing.
func (e *Engine) ConvertBytesFiltered(b []byte, only []string) []ConversionResult {
	its := formats.SniffBytes(b)
	out := make([]ConversionResult, 0, len(its))
	for _, it := range its {
		if len(only) > 0 && !matchesAny(it.SourceFormat, only) {
			continue
		}
		out = append(out, ConversionResult{
			Interpretation: it,
			Conversions:    e.convertFrom(it),
		})
	}
	return out
}

func matchesAny(sourceFormat string, only []string) bool {
	sourceFormat = strings.ToLower(sourceFormat)
	for _, name := range only {
		if strings.ToLower(strings.TrimSpace(name)) == sourceFormat {
			return true
		}
	}
	return false
}

// Validate asks formatID to explain why input fails to parse, for formats
// that implement format.Validator. ok is false if the format doesn't
// support validation or input is in fact valid.
func (e *Engine) Validate(formatID, input string) (reason string, ok bool) {
	f, found := e.cat.Lookup(formatID)
	if !found {
		return "unknown format: " + formatID, false
	}
	v, isValidator := f.(format.Validator)
	if !isValidator {
		return "", false
	}
	reason, valid := v.Validate(input)
	return reason, !valid
}

// FormatInfos returns metadata for every registered format, blocked or not,
// for catalog introspection.
func (e *Engine) FormatInfos() []FormatInfo {
	all := e.cat.All()
	out := make([]FormatInfo, 0, len(all))
	for _, f := range all {
		out = append(out, FormatInfo{
			ID:      f.ID(),
			Name:    f.Name(),
			Aliases: f.Aliases(),
			Info:    f.Info(),
			Blocked: e.cat.Blocked(f.ID()),
		})
	}
	return out
}

// FormatInfo is the introspection record returned by FormatInfos.
type FormatInfo struct {
	ID      string
	Name    string
	Aliases []string
	Info    format.Info
	Blocked bool
}

// ReloadPlugins re-discovers dirs and atomically replaces the
// engine's plugin table and currency bridges. Built-in formats and the
// underlying rate cache are untouched.
func (e *Engine) ReloadPlugins(dirs []string) plugin.LoadReport {
	report := plugin.Discover(dirs)
	e.plugins.Reload(report)
	e.rates.ClearPlugins()
	for _, cs := range e.plugins.Currencies() {
		e.rates.RegisterPlugin(currency.PluginCurrency{
			Code: cs.Code, Symbol: cs.Symbol, Name: cs.Name, Decimals: cs.Decimals, RateFn: cs.RateFn,
		})
	}
	registerExprContributions(e.exprEnv, e.plugins)
	return report
}
