/*************************************************************************
 * Copyright 2020 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package plugin

import (
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/open2b/scriggo"
	"github.com/open2b/scriggo/native"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// scriptFS adapts a single in-memory plugin source file to the fs.FS scriggo
// build expects, keeping the loader from needing a real directory per
// plugin.
type scriptFS struct {
	name string
	src  []byte
}

func (s scriptFS) Open(name string) (fs.File, error) {
	if name != s.name {
		return nil, fs.ErrNotExist
	}
	return &memFile{data: s.src}, nil
}

type memFile struct {
	data []byte
	pos  int
}

func (f *memFile) Stat() (fs.FileInfo, error) { return memFileInfo{len(f.data)}, nil }
func (f *memFile) Read(p []byte) (int, error) {
	if f.pos >= len(f.data) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.pos:])
	f.pos += n
	return n, nil
}
func (f *memFile) Close() error { return nil }

type memFileInfo struct{ size int }

func (m memFileInfo) Name() string      { return "main.go" }
func (m memFileInfo) Size() int64       { return int64(m.size) }
func (m memFileInfo) Mode() fs.FileMode { return 0o444 }
func (m memFileInfo) ModTime() time.Time { return time.Time{} }
func (m memFileInfo) IsDir() bool       { return false }
func (m memFileInfo) Sys() interface{}  { return nil }

// runtime is the scriggo-backed host bridge a single plugin source file
// runs against. Every Register* function captures into collected, which the
// loader reads back once program.Run returns.
type runtime struct {
	collected Contributions
	runErr    error
}

func (rt *runtime) declarations() native.Declarations {
	return native.Declarations{
		"SetMetadata": func(name, version, author, description string) {
			rt.collected.Metadata = Metadata{Name: name, Version: version, Author: author, Description: description}
		},
		"RegisterDecoder": func(id, name string, aliases []string, parse func(string) []format.Interpretation) {
			rt.collected.Decoders = append(rt.collected.Decoders, DecoderSpec{
				ID: id, Name: name, Aliases: aliases, Parser: parse,
			})
		},
		"RegisterTrait": func(id, name string, kinds []value.Kind, check func(value.Value) (bool, string)) {
			rt.collected.Traits = append(rt.collected.Traits, TraitSpec{
				ID: id, Name: name, ValueKinds: kinds, Check: check,
			})
		},
		"RegisterVisualizer": func(id, name string, kinds []value.Kind, render func(value.Value) (format.RichDisplay, bool)) {
			rt.collected.Visualizers = append(rt.collected.Visualizers, VisualizerSpec{
				ID: id, Name: name, ValueKinds: kinds, Render: render,
			})
		},
		"RegisterCurrency": func(code, symbol, name string, decimals int, rate func() (float64, string, error)) {
			rt.collected.Currencies = append(rt.collected.Currencies, CurrencySpec{
				Code: code, Symbol: symbol, Name: name, Decimals: decimals, RateFn: rate,
			})
		},
		"RegisterVariable": func(name, description string, fn func() (float64, error)) {
			rt.collected.Variables = append(rt.collected.Variables, ExprVariableSpec{
				Name: name, Description: description, Fn: fn,
			})
		},
		"RegisterFunction": func(name, description string, fn func([]float64) (float64, error)) {
			rt.collected.Functions = append(rt.collected.Functions, ExprFunctionSpec{
				Name: name, Description: description, Fn: fn,
			})
		},
	}
}

// runPluginSource builds and runs one plugin file's Go-subset source through
// scriggo, returning whatever it registered via the host-exposed Register*
// calls. A build or run failure is returned as err and never panics: per-file
// isolation is the caller's (loader's) responsibility, but the runtime
// itself must never bring down the process on malformed plugin code, which
// is exactly the guarantee an embedded scripting engine (rather than a
// native Go plugin loaded via plugin.Open) buys here.
func runPluginSource(path string, src []byte) (c Contributions, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("plugin %s panicked during load: %v", path, r)
		}
	}()

	rt := &runtime{}
	fsys := scriptFS{name: "main.go", src: src}
	opts := &scriggo.BuildOptions{Globals: rt.declarations()}
	program, buildErr := scriggo.Build(fsys, opts)
	if buildErr != nil {
		return Contributions{}, fmt.Errorf("plugin %s: build: %w", path, buildErr)
	}
	if runErr := program.Run(nil); runErr != nil {
		return Contributions{}, fmt.Errorf("plugin %s: run: %w", path, runErr)
	}
	if err := rt.collected.Metadata.validate(); err != nil {
		return Contributions{}, fmt.Errorf("plugin %s: %w", path, err)
	}
	return rt.collected, nil
}
