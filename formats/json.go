/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package formats

import (
	"strings"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// JSON recognizes structurally valid JSON documents, objects and arrays
// only: a bare JSON scalar is indistinguishable from decimal/string and is
// left to those leaves.
type JSON struct{}

func (JSON) ID() string        { return "json" }
func (JSON) Name() string      { return "JSON" }
func (JSON) Aliases() []string { return nil }
func (JSON) Info() format.Info {
	return format.Info{
		Category:    "structured",
		Description: "JavaScript Object Notation document",
		Examples:    []string{`{"ok":true}`, `[1,2,3]`},
	}
}

func (JSON) Parse(input string) []format.Interpretation {
	s := strings.TrimSpace(input)
	if len(s) < 2 {
		return nil
	}
	if s[0] != '{' && s[0] != '[' {
		return nil
	}
	tree, ok := decodeJSON([]byte(s))
	if !ok {
		return nil
	}
	return []format.Interpretation{{
		Value:       value.JSONValue(tree),
		Confidence:  0.88,
		Description: "JSON " + jsonShape(tree),
	}}
}

func jsonShape(j value.JSON) string {
	if j.Kind == value.JSONArray {
		return "array (" + itoa(len(j.Arr)) + " elements)"
	}
	return "object (" + itoa(len(j.Obj)) + " fields)"
}

func (JSON) CanFormat(v value.Value) bool { return v.Kind == value.KindJSON }

func (JSON) Format(v value.Value) (string, bool) {
	if v.Kind != value.KindJSON {
		return "", false
	}
	b, err := encodeJSON(v.JSON)
	if err != nil {
		return "", false
	}
	return string(b), true
}

func (JSON) Conversions(v value.Value) []format.Conversion {
	return nil
}
