/*************************************************************************
 * Copyright 2020 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package formats

import (
	"strconv"
	"strings"

	"github.com/gravwell/formatorbit/v3/expr"
	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// Expression evaluates arithmetic expressions: "2 + 2", "0xFF + 1",
// "1 << 8", "0b1010 | 0b0101". Env supplies the evaluation context; when
// the engine loaded plugins, it carries their expression variables and
// functions alongside the built-ins. A nil Env falls back to built-ins
// only.
//
// Confidence is fixed below the direct-recognition leaves so a bare "0xFF"
// is hex first, never an expression.
type Expression struct {
	Env *expr.Context
}

func (Expression) ID() string        { return "expr" }
func (Expression) Name() string      { return "Expression" }
func (Expression) Aliases() []string { return []string{"expression", "math", "calc"} }
func (Expression) Info() format.Info {
	return format.Info{
		Category:    "math",
		Description: "Mathematical expressions with hex/binary/octal literals",
		Examples:    []string{"2 + 2", "0xFF + 1", "1 << 8", "0b1010 | 0b0101"},
	}
}

func (x Expression) Parse(input string) []format.Interpretation {
	s := strings.TrimSpace(input)
	if !looksLikeExpression(s) {
		return nil
	}
	r, err := expr.Eval(s, x.Env)
	if err != nil {
		return nil
	}

	var v value.Value
	var rendered string
	if r.IsInt {
		v = value.Int(r.Int)
		rendered = strconv.FormatInt(r.Int, 10)
	} else {
		v = value.Float(r.Float)
		if v.IsEmpty() {
			return nil
		}
		rendered = strconv.FormatFloat(r.Float, 'g', -1, 64)
	}

	return []format.Interpretation{{
		Value:       v,
		Confidence:  0.60,
		Description: s + " = " + rendered,
	}}
}

// looksLikeExpression gates evaluation: the input must carry at least one
// operator and one alphanumeric, and must not be shaped like a UUID, a URL
// or a slash-separated date, all of which carry operator characters without
// being arithmetic.
func looksLikeExpression(s string) bool {
	hasOperator := strings.ContainsAny(s, "+-*/%^|&<>")
	hasAlnum := strings.ContainsFunc(s, func(r rune) bool {
		return r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
	})
	looksLikeUUID := len(s) == 36 && strings.Count(s, "-") == 4
	looksLikeURL := strings.Contains(s, "://") || strings.HasPrefix(s, "http")
	looksLikeDate := strings.Count(s, "/") >= 2
	return hasOperator && hasAlnum && !looksLikeUUID && !looksLikeURL && !looksLikeDate
}

// Expressions parse values, they never render them.
func (Expression) CanFormat(v value.Value) bool        { return false }
func (Expression) Format(v value.Value) (string, bool) { return "", false }

func (Expression) Conversions(v value.Value) []format.Conversion { return nil }
