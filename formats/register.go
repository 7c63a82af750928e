/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package formats

import (
	"github.com/gravwell/formatorbit/v3/calibrate"
	"github.com/gravwell/formatorbit/v3/currency"
	"github.com/gravwell/formatorbit/v3/expr"
	"github.com/gravwell/formatorbit/v3/format"
)

// Builtins returns the built-in catalog in the order the catalog package
// documents: leaf-specific, high-signal formats first (JWT, ULID, UUID, IP,
// coordinates, color, cron), then general encodings, then the
// conversion-only or lowest-confidence fallback leaves last.
//
// cal is shared by every time-sensitive leaf so their confidence bands stay
// mutually consistent; rates may be nil, in which case the Currency leaf
// still recognizes literals but contributes no cross-currency conversions.
// env is the expression evaluation context; nil gives the Expression leaf
// built-in variables and functions only.
func Builtins(cal calibrate.Calibrator, rates *currency.Cache, env *expr.Context) []format.Format {
	return []format.Format{
		JWT{},
		ULID{},
		UUID{},
		MacAddress{},
		IP{},
		URL{},
		Coordinates{},
		Color{},
		Cron{Now: cal.Now},
		Duration{Now: cal.Now},
		Escape{},
		ISBN{},
		Temperature{},
		Angle{},
		Length(),
		Weight(),
		Volume(),
		Speed(),
		Pressure(),
		Energy(),
		Area(),
		DataSize{},
		Currency{Cache: rates},
		DateTime{Calibrator: cal},
		NewEpochNanos(cal),
		NewEpochMicros(cal),
		NewEpochMillis(cal),
		NewEpochSeconds(cal),
		JSON{},
		Protobuf{},
		Expression{Env: env},
		Binary{},
		Hex{},
		Base64{},
		Decimal{},
		UTF8{},
	}
}
