/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package formats

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// Protobuf decodes schema-less protocol buffer wire bytes: field
// number and wire type come from the varint tag, so a message can be
// decoded into its raw fields without a .proto descriptor, at the cost of
// not knowing field names or the true type of length-delimited fields.
//
// Protobuf literals never appear as plain input text, so Parse always
// declines; DecodeProtobufBytes is the real entry point, invoked from the
// binary ConvertBytes path.
type Protobuf struct{}

func (Protobuf) ID() string                          { return "protobuf" }
func (Protobuf) Name() string                         { return "Protocol Buffers" }
func (Protobuf) Aliases() []string                    { return []string{"proto"} }
func (Protobuf) Parse(input string) []format.Interpretation { return nil }

func (Protobuf) Info() format.Info {
	return format.Info{
		Category:    "structured",
		Description: "Schema-less protocol buffer wire message",
	}
}

// DecodeProtobufBytes attempts a schema-less decode of b. It returns ok=false
// if b does not look like a well-formed sequence of protobuf tag/value
// pairs.
func DecodeProtobufBytes(b []byte) (value.Value, bool) {
	fields, rest, ok := decodeProtoFields(b, 0)
	if !ok || len(rest) != 0 || len(fields) == 0 {
		return value.Value{}, false
	}
	return value.Protobuf(fields), true
}

func decodeProtoFields(b []byte, depth int) ([]value.ProtoField, []byte, bool) {
	if depth > 16 {
		return nil, b, false
	}
	var fields []value.ProtoField
	for len(b) > 0 {
		tag, n := binary.Uvarint(b)
		if n <= 0 {
			return nil, b, false
		}
		b = b[n:]
		fieldNum := int(tag >> 3)
		wire := int(tag & 0x7)
		if fieldNum == 0 {
			return nil, b, false
		}
		var f value.ProtoField
		f.FieldNumber = fieldNum
		switch wire {
		case 0:
			v, n := binary.Uvarint(b)
			if n <= 0 {
				return nil, b, false
			}
			f.Wire = value.WireVarint
			f.Varint = v
			b = b[n:]
		case 1:
			if len(b) < 8 {
				return nil, b, false
			}
			f.Wire = value.WireFixed64
			f.Fixed64 = binary.LittleEndian.Uint64(b[:8])
			b = b[8:]
		case 2:
			l, n := binary.Uvarint(b)
			if n <= 0 || uint64(len(b)-n) < l {
				return nil, b, false
			}
			b = b[n:]
			payload := b[:l]
			b = b[l:]
			f.Wire = value.WireBytes
			f.Bytes = payload
			if nested, rest, ok := decodeProtoFields(payload, depth+1); ok && len(rest) == 0 && len(nested) > 0 {
				f.Nested = nested
			} else if isPrintableASCII(payload) {
				f.Str = string(payload)
			}
		case 5:
			if len(b) < 4 {
				return nil, b, false
			}
			f.Wire = value.WireFixed32
			f.Fixed32 = binary.LittleEndian.Uint32(b[:4])
			b = b[4:]
		default:
			return nil, b, false
		}
		fields = append(fields, f)
	}
	return fields, b, true
}

func isPrintableASCII(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}

func (Protobuf) CanFormat(v value.Value) bool { return v.Kind == value.KindProtobuf }

func (Protobuf) Format(v value.Value) (string, bool) {
	if v.Kind != value.KindProtobuf {
		return "", false
	}
	var sb strings.Builder
	formatProtoFields(&sb, v.Proto, 0)
	return sb.String(), true
}

func formatProtoFields(sb *strings.Builder, fields []value.ProtoField, indent int) {
	pad := strings.Repeat("  ", indent)
	for _, f := range fields {
		switch f.Wire {
		case value.WireVarint:
			fmt.Fprintf(sb, "%s%d: %d\n", pad, f.FieldNumber, f.Varint)
		case value.WireFixed64:
			fmt.Fprintf(sb, "%s%d: %d (fixed64)\n", pad, f.FieldNumber, f.Fixed64)
		case value.WireFixed32:
			fmt.Fprintf(sb, "%s%d: %d (fixed32)\n", pad, f.FieldNumber, f.Fixed32)
		case value.WireBytes:
			if f.Nested != nil {
				fmt.Fprintf(sb, "%s%d: {\n", pad, f.FieldNumber)
				formatProtoFields(sb, f.Nested, indent+1)
				fmt.Fprintf(sb, "%s}\n", pad)
			} else if f.Str != "" {
				fmt.Fprintf(sb, "%s%d: %q\n", pad, f.FieldNumber, f.Str)
			} else {
				fmt.Fprintf(sb, "%s%d: <%d bytes>\n", pad, f.FieldNumber, len(f.Bytes))
			}
		}
	}
}

func (Protobuf) Conversions(v value.Value) []format.Conversion { return nil }
