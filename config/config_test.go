/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	fc, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if fc.Global.Log_Level != defaultLogLevel {
		t.Fatalf("expected default log level %q, got %q", defaultLogLevel, fc.Global.Log_Level)
	}
	if fc.Global.Max_Conversion_Depth != defaultMaxConversionDepth {
		t.Fatalf("expected default max conversion depth %d, got %d", defaultMaxConversionDepth, fc.Global.Max_Conversion_Depth)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "formatorbit.conf")
	contents := []byte(`
	[global]
	log-level = "DEBUG"
	max-conversion-depth = 3
	`)
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatal(err)
	}
	fc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if fc.Global.Log_Level != "DEBUG" {
		t.Fatalf("expected log level DEBUG, got %q", fc.Global.Log_Level)
	}
	if fc.Global.Max_Conversion_Depth != 3 {
		t.Fatalf("expected max conversion depth 3, got %d", fc.Global.Max_Conversion_Depth)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(envLogLevel, "WARN")
	t.Setenv(envBlockedFormats, "jwt,ulid")
	fc, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if fc.Global.Log_Level != "WARN" {
		t.Fatalf("expected env override log level WARN, got %q", fc.Global.Log_Level)
	}
	if len(fc.Blocked_Format) != 2 || fc.Blocked_Format[0] != "jwt" || fc.Blocked_Format[1] != "ulid" {
		t.Fatalf("expected blocked formats [jwt ulid], got %v", fc.Blocked_Format)
	}
}

func TestDefaultPluginDirsRequiresAppName(t *testing.T) {
	if _, err := DefaultPluginDirs(""); err != ErrNoAppName {
		t.Fatalf("expected ErrNoAppName, got %v", err)
	}
}

func TestDefaultPluginDirs(t *testing.T) {
	dirs, err := DefaultPluginDirs("formatorbit")
	if err != nil {
		t.Fatal(err)
	}
	if len(dirs) == 0 {
		t.Fatal("expected at least one plugin directory")
	}
	for _, d := range dirs {
		if filepath.Base(d) != "plugins" {
			t.Fatalf("expected plugin dir to end in plugins, got %q", d)
		}
	}
}

func TestParseBool(t *testing.T) {
	tsts := []struct {
		in  string
		out bool
	}{
		{`true`, true},
		{` TRUE `, true},
		{`1`, true},
		{`false`, false},
		{`0`, false},
	}
	for _, v := range tsts {
		b, err := ParseBool(v.in)
		if err != nil {
			t.Fatal(err)
		} else if b != v.out {
			t.Fatalf("ParseBool(%q) = %v, want %v", v.in, b, v.out)
		}
	}
	if _, err := ParseBool("not-a-bool"); err == nil {
		t.Fatal("expected error parsing invalid bool")
	}
}
