/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package value implements the core value algebra: the typed intermediate
// values every format in the catalog produces from parse and consumes in
// format and conversions. A Value is a tagged union; callers switch on Kind
// rather than type-asserting the underlying Go type.
package value

import (
	"math"
	"math/big"
	"time"
)

// Kind tags the variant carried by a Value.
type Kind int

const (
	KindEmpty Kind = iota
	KindBytes
	KindString
	KindInt
	KindFloat
	KindBool
	KindDateTime
	KindJSON
	KindProtobuf
	KindCurrency
	KindCoordinates
	KindLength
	KindWeight
	KindVolume
	KindSpeed
	KindPressure
	KindEnergy
	KindAngle
	KindArea
	KindTemperature
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDateTime:
		return "datetime"
	case KindJSON:
		return "json"
	case KindProtobuf:
		return "protobuf"
	case KindCurrency:
		return "currency"
	case KindCoordinates:
		return "coordinates"
	case KindLength:
		return "length"
	case KindWeight:
		return "weight"
	case KindVolume:
		return "volume"
	case KindSpeed:
		return "speed"
	case KindPressure:
		return "pressure"
	case KindEnergy:
		return "energy"
	case KindAngle:
		return "angle"
	case KindArea:
		return "area"
	case KindTemperature:
		return "temperature"
	}
	return "unknown"
}

// Currency carries a decimal amount tagged with an ISO-ish currency code.
// Amount is plain float64; the rate cache and currency format are
// responsible for precision policy at presentation time.
type Currency struct {
	Amount float64
	Code   string
}

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// JSON is the shared recursive tree shape for json, msgpack and plist.
// Exactly one of the fields is meaningful for any given node; Kind says which.
type JSON struct {
	Kind  JSONKind
	Bool  bool
	Num   float64
	Str   string
	Arr   []JSON
	Obj   []JSONField
}

type JSONKind int

const (
	JSONNull JSONKind = iota
	JSONBool
	JSONNumber
	JSONString
	JSONArray
	JSONObject
)

type JSONField struct {
	Key   string
	Value JSON
}

// Equal reports deep equality of two JSON trees. Object fields are matched
// by key, not position: decoders are free to order fields however they
// like, and two objects carrying the same key/value set are the same tree.
func (j JSON) Equal(o JSON) bool {
	if j.Kind != o.Kind {
		return false
	}
	switch j.Kind {
	case JSONNull:
		return true
	case JSONBool:
		return j.Bool == o.Bool
	case JSONNumber:
		return j.Num == o.Num
	case JSONString:
		return j.Str == o.Str
	case JSONArray:
		if len(j.Arr) != len(o.Arr) {
			return false
		}
		for i := range j.Arr {
			if !j.Arr[i].Equal(o.Arr[i]) {
				return false
			}
		}
		return true
	case JSONObject:
		if len(j.Obj) != len(o.Obj) {
			return false
		}
		byKey := make(map[string]JSON, len(o.Obj))
		for _, f := range o.Obj {
			byKey[f.Key] = f.Value
		}
		for _, f := range j.Obj {
			other, ok := byKey[f.Key]
			if !ok || !f.Value.Equal(other) {
				return false
			}
		}
		return true
	}
	return false
}

// WireType mirrors protobuf's wire encoding tags; it is retained alongside
// the decoded value because field number + wire type is the only schema a
// schema-less protobuf decoder has.
type WireType int

const (
	WireVarint WireType = iota
	WireFixed64
	WireFixed32
	WireBytes
	WireMessage
)

// ProtoField is one decoded field of a schema-less protobuf message.
type ProtoField struct {
	FieldNumber int
	Wire        WireType
	Varint      uint64
	Fixed64     uint64
	Fixed32     uint32
	Bytes       []byte
	Str         string
	Nested      []ProtoField
}

// Value is the tagged union at the center of the core algebra. Only the
// field(s) matching Kind are meaningful; zero values elsewhere are ignored.
type Value struct {
	Kind Kind

	Bytes []byte
	Str   string

	// Int carries a 128-bit signed integer as (Hi, Lo) two's complement
	// halves, plus the original byte layout when the value was decoded
	// from a byte sequence so endian variants can be reconstructed
	// without re-parsing.
	Int       Int128
	IntBytes  []byte
	HasBytes  bool

	Float float64
	Bool  bool

	// DateTime is always normalized to UTC on parse; any timezone the
	// input carried is a presentation concern handled by the format.
	DateTime time.Time

	JSON  JSON
	Proto []ProtoField

	Currency    Currency
	Coordinates Coordinates

	// Domain-tagged numerics. Each one stores its magnitude in a fixed
	// canonical base unit for its domain; unit conversions stay within
	// the domain and are forbidden from crossing into another tag.
	Length      float64 // meters
	Weight      float64 // grams
	Volume      float64 // milliliters
	Speed       float64 // meters/second
	Pressure    float64 // pascals
	Energy      float64 // joules
	Angle       float64 // degrees
	Area        float64 // square meters
	Temperature float64 // kelvin
}

// Int128 is a minimal 128-bit signed integer, enough to hold anything a
// format needs to round-trip without pulling in a big-int dependency for
// the hot path. Large magnitudes fall back to math/big only when asked.
type Int128 struct {
	Hi int64
	Lo uint64
}

func Int64(v int64) Int128 {
	if v < 0 {
		return Int128{Hi: -1, Lo: uint64(v)}
	}
	return Int128{Hi: 0, Lo: uint64(v)}
}

func (i Int128) Int64() (v int64, ok bool) {
	if i.Hi == 0 && i.Lo <= math.MaxInt64 {
		return int64(i.Lo), true
	}
	if i.Hi == -1 && int64(i.Lo) < 0 {
		return int64(i.Lo), true
	}
	return 0, false
}

func (i Int128) Uint64() (v uint64, ok bool) {
	if i.Hi == 0 {
		return i.Lo, true
	}
	return 0, false
}

func (i Int128) Big() *big.Int {
	b := new(big.Int).SetUint64(i.Lo)
	hi := new(big.Int).SetInt64(i.Hi)
	hi.Lsh(hi, 64)
	b.Add(b, hi)
	return b
}

func (i Int128) Negative() bool {
	return i.Hi < 0
}

// Empty is the absence value; it is never serialized by any format.
func Empty() Value { return Value{Kind: KindEmpty} }

func Bytes(b []byte) Value { return Value{Kind: KindBytes, Bytes: b} }

func String(s string) Value { return Value{Kind: KindString, Str: s} }

func Int(i int64) Value { return Value{Kind: KindInt, Int: Int64(i)} }

// IntWithBytes records the original byte layout alongside the integer so
// downstream formats can reconstruct endian variants without re-parsing.
func IntWithBytes(i int64, raw []byte) Value {
	return Value{Kind: KindInt, Int: Int64(i), IntBytes: raw, HasBytes: true}
}

func Int128Value(i Int128) Value { return Value{Kind: KindInt, Int: i} }

// Float returns a KindFloat value, or Empty if f is NaN or infinite: those
// are never valid conversion results per the core algebra's invariants.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Empty()
	}
	return Value{Kind: KindFloat, Float: f}
}

func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// DateTime normalizes t to UTC; all timezone-bearing input must be
// normalized at parse time per the core algebra's invariants.
func DateTime(t time.Time) Value {
	return Value{Kind: KindDateTime, DateTime: t.UTC()}
}

func JSONValue(j JSON) Value { return Value{Kind: KindJSON, JSON: j} }

func Protobuf(fields []ProtoField) Value { return Value{Kind: KindProtobuf, Proto: fields} }

func CurrencyValue(amount float64, code string) Value {
	return Value{Kind: KindCurrency, Currency: Currency{Amount: amount, Code: code}}
}

func CoordinatesValue(lat, lon float64) Value {
	return Value{Kind: KindCoordinates, Coordinates: Coordinates{Lat: lat, Lon: lon}}
}

func Length(meters float64) Value      { return Value{Kind: KindLength, Length: meters} }
func Weight(grams float64) Value       { return Value{Kind: KindWeight, Weight: grams} }
func Volume(ml float64) Value          { return Value{Kind: KindVolume, Volume: ml} }
func Speed(mps float64) Value          { return Value{Kind: KindSpeed, Speed: mps} }
func Pressure(pa float64) Value        { return Value{Kind: KindPressure, Pressure: pa} }
func Energy(joules float64) Value      { return Value{Kind: KindEnergy, Energy: joules} }
func Angle(degrees float64) Value      { return Value{Kind: KindAngle, Angle: degrees} }
func Area(sqMeters float64) Value      { return Value{Kind: KindArea, Area: sqMeters} }

// Temperature stores kelvin and is rejected below absolute zero; callers
// constructing from Celsius/Fahrenheit must convert before calling this.
func Temperature(kelvin float64) (Value, bool) {
	if kelvin < 0 {
		return Value{}, false
	}
	return Value{Kind: KindTemperature, Temperature: kelvin}, true
}

// IsEmpty reports whether v carries no data.
func (v Value) IsEmpty() bool { return v.Kind == KindEmpty }

// Equal is a shallow equality check used by conversion de-duplication when a
// caller wants value identity rather than display-string identity.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindEmpty:
		return true
	case KindBytes:
		return string(v.Bytes) == string(o.Bytes)
	case KindString:
		return v.Str == o.Str
	case KindInt:
		return v.Int == o.Int
	case KindFloat:
		return v.Float == o.Float
	case KindBool:
		return v.Bool == o.Bool
	case KindDateTime:
		return v.DateTime.Equal(o.DateTime)
	case KindJSON:
		return v.JSON.Equal(o.JSON)
	case KindCurrency:
		return v.Currency == o.Currency
	case KindCoordinates:
		return v.Coordinates == o.Coordinates
	case KindLength:
		return v.Length == o.Length
	case KindWeight:
		return v.Weight == o.Weight
	case KindVolume:
		return v.Volume == o.Volume
	case KindSpeed:
		return v.Speed == o.Speed
	case KindPressure:
		return v.Pressure == o.Pressure
	case KindEnergy:
		return v.Energy == o.Energy
	case KindAngle:
		return v.Angle == o.Angle
	case KindArea:
		return v.Area == o.Area
	case KindTemperature:
		return v.Temperature == o.Temperature
	}
	return false
}
