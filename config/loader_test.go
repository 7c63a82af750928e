/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package config

import (
	"testing"
)

type testStruct struct {
	Global struct {
		Foo         string
		Bar         int
		Baz         float64
		Foo_Bar_Baz string
	}
}

func TestLoadConfigBytes(t *testing.T) {
	b := []byte(`
	[global]
	foo = "bar"
	bar = 1337
	baz = 1.337
	foo-bar-baz="foo bar baz"
	`)
	var v testStruct
	if err := LoadConfigBytes(&v, b); err != nil {
		t.Fatal(err)
	}
	if v.Global.Foo != "bar" || v.Global.Bar != 1337 || v.Global.Baz != 1.337 {
		t.Fatalf("bad global section values:\n%+v", v.Global)
	} else if v.Global.Foo_Bar_Baz != `foo bar baz` {
		t.Fatal("name mapper failed", v.Global.Foo_Bar_Baz)
	}
}

func TestLoadConfigBytesTooLarge(t *testing.T) {
	b := make([]byte, maxConfigSize+1)
	var v testStruct
	if err := LoadConfigBytes(&v, b); err != ErrConfigFileTooLarge {
		t.Fatalf("expected ErrConfigFileTooLarge, got %v", err)
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	var v testStruct
	if err := LoadConfigFile(&v, "/nonexistent/path/formatorbit.conf"); err == nil {
		t.Fatal("expected error opening missing file")
	}
}
