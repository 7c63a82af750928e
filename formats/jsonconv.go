/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package formats

import (
	gojson "github.com/goccy/go-json"

	"github.com/gravwell/formatorbit/v3/value"
)

// decodeJSON parses raw JSON text into the shared value.JSON tree shape
// using goccy/go-json for its allocation-lean decoder.
func decodeJSON(raw []byte) (value.JSON, bool) {
	var generic interface{}
	if err := gojson.Unmarshal(raw, &generic); err != nil {
		return value.JSON{}, false
	}
	return anyToJSON(generic), true
}

func anyToJSON(v interface{}) value.JSON {
	switch t := v.(type) {
	case nil:
		return value.JSON{Kind: value.JSONNull}
	case bool:
		return value.JSON{Kind: value.JSONBool, Bool: t}
	case float64:
		return value.JSON{Kind: value.JSONNumber, Num: t}
	case string:
		return value.JSON{Kind: value.JSONString, Str: t}
	case []interface{}:
		arr := make([]value.JSON, 0, len(t))
		for _, e := range t {
			arr = append(arr, anyToJSON(e))
		}
		return value.JSON{Kind: value.JSONArray, Arr: arr}
	case map[string]interface{}:
		obj := make([]value.JSONField, 0, len(t))
		for k, e := range t {
			obj = append(obj, value.JSONField{Key: k, Value: anyToJSON(e)})
		}
		return value.JSON{Kind: value.JSONObject, Obj: obj}
	}
	return value.JSON{Kind: value.JSONNull}
}

// encodeJSON renders a value.JSON tree back to compact JSON text.
func encodeJSON(j value.JSON) ([]byte, error) {
	return gojson.Marshal(jsonToAny(j))
}

func jsonToAny(j value.JSON) interface{} {
	switch j.Kind {
	case value.JSONBool:
		return j.Bool
	case value.JSONNumber:
		return j.Num
	case value.JSONString:
		return j.Str
	case value.JSONArray:
		out := make([]interface{}, 0, len(j.Arr))
		for _, e := range j.Arr {
			out = append(out, jsonToAny(e))
		}
		return out
	case value.JSONObject:
		out := make(map[string]interface{}, len(j.Obj))
		for _, f := range j.Obj {
			out[f.Key] = jsonToAny(f.Value)
		}
		return out
	}
	return nil
}
