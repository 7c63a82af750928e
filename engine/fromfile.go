/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package engine

import (
	"github.com/gravwell/formatorbit/v3/config"
	"github.com/gravwell/formatorbit/v3/log"
	"github.com/gravwell/formatorbit/v3/plugin"
)

// FromFile loads path (gcfg ini syntax, empty path means defaults-only) via
// config.Load, resolves it into an engine.Config, and constructs the
// resulting Engine along with a Logger set to the file's configured level
// and the plugin LoadReport from construction. This is the bridge a CLI or
// service embedder uses to go from a config file on disk to a running
// Engine; library callers that already have a Config in hand should use
// WithConfig or WithPlugins directly instead.
func FromFile(path string) (*Engine, *log.Logger, plugin.LoadReport, error) {
	fc, err := config.Load(path)
	if err != nil {
		return nil, nil, plugin.LoadReport{}, err
	}

	lvl, err := log.LevelFromString(fc.Global.Log_Level)
	if err != nil {
		return nil, nil, plugin.LoadReport{}, err
	}

	var lg *log.Logger
	if fc.Global.Log_File != `` {
		lg, err = log.NewFile(fc.Global.Log_File)
	} else {
		lg, err = log.NewStderrLogger(``, nil)
	}
	if err != nil {
		return nil, nil, plugin.LoadReport{}, err
	}
	lg.SetLevel(lvl)
	if fc.Global.App_Name != `` {
		lg.SetAppname(fc.Global.App_Name)
	}

	pluginDirs := fc.Plugin_Dir
	if len(pluginDirs) == 0 && fc.Global.App_Name != `` {
		if dirs, err := config.DefaultPluginDirs(fc.Global.App_Name); err == nil {
			pluginDirs = dirs
		}
	}

	cfg := Config{
		BlockedFormats:     fc.Blocked_Format,
		MaxConversionDepth: fc.Global.Max_Conversion_Depth,
		RateCachePath:      fc.Global.Rate_Cache_Path,
		PluginDirs:         pluginDirs,
		AppName:            fc.Global.App_Name,
	}

	e, report, err := WithPlugins(cfg)
	if err != nil {
		return nil, nil, plugin.LoadReport{}, err
	}
	for _, ferr := range report.Errors {
		lg.Warn("plugin load failed: %s", ferr.Error())
	}
	return e, lg, report, nil
}
