/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package engine

import "time"

// Config controls an Engine's behavior beyond its fixed wiring: which
// formats are blocked, how deep the conversion graph walks, and where its
// supporting state (rate cache, plugin directories) lives on disk.
type Config struct {
	// BlockedFormats disables the named formats (by id) across both
	// interpretation and conversion. Blocking is total: a blocked format
	// contributes no Interpretation and no Conversion edge, and the
	// conversion graph treats it as absent entirely.
	BlockedFormats []string

	// MaxConversionDepth overrides graph.DefaultMaxDepth; zero keeps the
	// default.
	MaxConversionDepth int

	// RateCachePath is the on-disk location of the currency rate cache. Empty
	// disables disk persistence (in-memory only for the process lifetime).
	RateCachePath string

	// PluginDirs is walked in order by the plugin loader; later directories
	// shadow earlier ones on a Name collision.
	PluginDirs []string

	// AppName names the application for DefaultPath-style directory
	// resolution (rate cache, plugin directories) when the caller wants the
	// engine to compute its own paths rather than supplying them directly.
	AppName string

	// Now overrides the calibrator's clock; nil uses the real wall clock.
	Now func() time.Time
}
