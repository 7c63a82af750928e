/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package config loads the engine's gcfg-style ini configuration file and
// resolves the per-user plugin and rate-cache directories, following the
// same env-var-with-_FILE-fallback and gcfg-backed loading idiom the rest
// of this codebase uses for daemon configuration.
package config

import (
	"errors"
	"os"
	"path/filepath"
)

const (
	defaultLogLevel          = `INFO`
	defaultMaxConversionDepth = 6

	envBlockedFormats = `FORMATORBIT_BLOCKED_FORMATS`
	envLogLevel       = `FORMATORBIT_LOG_LEVEL`
)

var ErrNoAppName = errors.New("config: app name is required to resolve default directories")

// GlobalConfig is the [Global] section of the ini file.
type GlobalConfig struct {
	Log_Level            string
	Log_File             string
	Max_Conversion_Depth int
	Rate_Cache_Path      string
	App_Name             string
}

// FileConfig is the full shape of the on-disk configuration file, loaded via
// LoadConfigFile/LoadConfigBytes (gcfg.ReadStringInto under the hood).
type FileConfig struct {
	Global        GlobalConfig
	Plugin_Dir    []string
	Blocked_Format []string
}

// Load reads and parses path, then fills the log level and blocked formats
// from environment variables wherever the file leaves them unset, following
// the _FILE-suffix fallback convention used throughout this package. A log
// level set by neither the file nor the environment defaults to INFO.
func Load(path string) (*FileConfig, error) {
	fc := &FileConfig{}
	if path != `` {
		if err := LoadConfigFile(fc, path); err != nil {
			return nil, err
		}
	}
	if fc.Global.Max_Conversion_Depth == 0 {
		fc.Global.Max_Conversion_Depth = defaultMaxConversionDepth
	}
	if err := LoadEnvVar(&fc.Global.Log_Level, envLogLevel, defaultLogLevel); err != nil {
		return nil, err
	}
	if err := LoadEnvVar(&fc.Blocked_Format, envBlockedFormats, nil); err != nil {
		return nil, err
	}
	return fc, nil
}

// DefaultPluginDirs returns the documented plugin search path for appName:
// the per-user config directory first (user overrides), then the per-user
// data directory (bundled/installed plugins), in the order the plugin
// loader should apply shadowing.
func DefaultPluginDirs(appName string) ([]string, error) {
	if appName == `` {
		return nil, ErrNoAppName
	}
	var dirs []string
	if cfgDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(cfgDir, appName, "plugins"))
	}
	if dataDir, err := userDataDir(); err == nil {
		dirs = append(dirs, filepath.Join(dataDir, appName, "plugins"))
	}
	return dirs, nil
}

// userDataDir resolves XDG_DATA_HOME, falling back to ~/.local/share the way
// the XDG base directory specification describes, since the standard
// library only exposes UserConfigDir and UserCacheDir directly.
func userDataDir() (string, error) {
	if d := os.Getenv("XDG_DATA_HOME"); d != `` {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}
