/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package formats

import (
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// SniffBytes is the ConvertBytes entry point: it classifies a raw byte
// slice using h2non/filetype's magic-number matchers before handing the
// bytes to the catalog as a Bytes value. It also tries a schema-less
// protobuf decode, whether or not a container matched, and always appends a
// generic "bytes" interpretation last.
//
// A sniffed container is tagged with one of the seven binary category
// buckets (image, archive, video, audio, font, pdf, office) so callers can
// filter by category; container kinds outside those buckets (executables,
// raw databases) carry no category and fall through to the generic paths.
func SniffBytes(b []byte) []format.Interpretation {
	var out []format.Interpretation

	if kind, err := filetype.Match(b); err == nil && kind != filetype.Unknown {
		if category, ok := bytesCategory(kind); ok {
			out = append(out, format.Interpretation{
				Value:        value.Bytes(b),
				SourceFormat: category,
				Confidence:   0.97,
				Description:  kind.MIME.Value + " (" + kind.Extension + ")",
			})
		}
	}

	if v, ok := DecodeProtobufBytes(b); ok {
		out = append(out, format.Interpretation{
			Value:        v,
			SourceFormat: "protobuf",
			Confidence:   0.45,
			Description:  "schema-less protobuf decode",
		})
	}

	out = append(out, format.Interpretation{
		Value:        value.Bytes(b),
		SourceFormat: "bytes",
		Confidence:   0.20,
		Description:  "raw bytes (" + itoa(len(b)) + ")",
	})
	return out
}

// officeExtensions and archiveExtensions pick out the buckets the MIME
// top-level type can't: office documents and archives both sniff as
// generic "application" types.
var officeExtensions = map[string]bool{
	"doc": true, "docx": true, "xls": true, "xlsx": true, "ppt": true, "pptx": true,
}

var archiveExtensions = map[string]bool{
	"zip": true, "tar": true, "rar": true, "gz": true, "bz2": true,
	"7z": true, "xz": true, "zst": true, "lz": true, "Z": true,
	"epub": true, "iso": true, "deb": true, "rpm": true, "ar": true, "cab": true,
}

var fontExtensions = map[string]bool{
	"woff": true, "woff2": true, "ttf": true, "otf": true, "eot": true,
}

// bytesCategory buckets a sniffed container kind into one of the seven
// binary categories, or reports that it belongs to none of them.
func bytesCategory(kind types.Type) (string, bool) {
	switch kind.MIME.Type {
	case "image":
		return "image", true
	case "video":
		return "video", true
	case "audio":
		return "audio", true
	case "font":
		return "font", true
	}
	switch {
	case kind.Extension == "pdf":
		return "pdf", true
	case fontExtensions[kind.Extension]:
		return "font", true
	case officeExtensions[kind.Extension]:
		return "office", true
	case archiveExtensions[kind.Extension]:
		return "archive", true
	}
	return "", false
}
