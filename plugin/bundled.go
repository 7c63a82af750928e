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
)

// bundled is the plugin set shipped with the engine, unpacked into the
// user's plugin directory on first run. Files already present are never
// overwritten, so a user editing an unpacked plugin keeps their changes
// across upgrades.
var bundled = map[string]string{
	"hello.go": `package main

// A minimal working plugin: declares itself and nothing else. Edit or
// copy this file to add decoders, traits, currencies, visualizers, or
// expression variables and functions.
func main() {
	SetMetadata("hello", "1.0.0", "", "bundled starter plugin")
}
`,

	"template.go.sample": `package main

// Template for a full plugin. Files ending in .sample are skipped by the
// loader; copy this next to it without the suffix and fill in the hooks.
//
// Available registration calls:
//   SetMetadata(name, version, author, description)  -- required
//   RegisterDecoder(id, name, aliases, parseFn)
//   RegisterTrait(id, name, valueKinds, checkFn)
//   RegisterVisualizer(id, name, valueKinds, renderFn)
//   RegisterCurrency(code, symbol, name, decimals, rateFn)
//   RegisterVariable(name, description, fn)
//   RegisterFunction(name, description, fn)
func main() {
	SetMetadata("my-plugin", "0.1.0", "you", "describe what it adds")
}
`,
}

// UnpackBundled writes the bundled plugin set into dir, creating it if
// necessary and skipping any file that already exists. It is invoked on
// the plugins-enabled construction path before discovery, so a fresh
// install sees the starter set on its first load.
func UnpackBundled(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for name, src := range bundled {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			return err
		}
	}
	return nil
}
