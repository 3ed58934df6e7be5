// Copyright 2025 CarePlanGen
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package docjson provides a tagged-variant representation of JSON documents.
//
// The merge and projection algorithms in the careplan package match on the
// structure of model output (object vs array vs scalar) at every level, so
// the document tree is modeled as a small sum type instead of raw
// map[string]interface{} soup. Typed accessor views over care-plan documents
// live in careplan.go.
package docjson

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Value is a JSON value: one of Object, Array, String, Number, Bool, or Null.
type Value interface {
	// Clone returns a deep copy sharing no mutable state with the receiver.
	Clone() Value

	// Equal reports structural equality with another value.
	Equal(other Value) bool

	// toAny converts to the encoding/json generic representation.
	toAny() any
}

// Object is a JSON object node.
type Object map[string]Value

// Array is a JSON array node.
type Array []Value

// String is a JSON string node.
type String string

// Number is a JSON number node.
type Number float64

// Bool is a JSON boolean node.
type Bool bool

// Null is the JSON null node.
type Null struct{}

// Clone returns a deep copy of the object.
func (o Object) Clone() Value {
	if o == nil {
		return Object(nil)
	}
	out := make(Object, len(o))
	for k, v := range o {
		out[k] = v.Clone()
	}
	return out
}

// Clone returns a deep copy of the array.
func (a Array) Clone() Value {
	if a == nil {
		return Array(nil)
	}
	out := make(Array, len(a))
	for i, v := range a {
		out[i] = v.Clone()
	}
	return out
}

// Clone returns the string itself; strings are immutable.
func (s String) Clone() Value { return s }

// Clone returns the number itself.
func (n Number) Clone() Value { return n }

// Clone returns the bool itself.
func (b Bool) Clone() Value { return b }

// Clone returns null.
func (Null) Clone() Value { return Null{} }

// Equal reports whether other is an Object with the same keys and
// structurally equal values.
func (o Object) Equal(other Value) bool {
	oo, ok := other.(Object)
	if !ok || len(o) != len(oo) {
		return false
	}
	for k, v := range o {
		ov, present := oo[k]
		if !present || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Equal reports whether other is an Array of equal length with structurally
// equal elements in the same order.
func (a Array) Equal(other Value) bool {
	oa, ok := other.(Array)
	if !ok || len(a) != len(oa) {
		return false
	}
	for i, v := range a {
		if !v.Equal(oa[i]) {
			return false
		}
	}
	return true
}

func (s String) Equal(other Value) bool {
	os, ok := other.(String)
	return ok && s == os
}

func (n Number) Equal(other Value) bool {
	on, ok := other.(Number)
	return ok && n == on
}

func (b Bool) Equal(other Value) bool {
	ob, ok := other.(Bool)
	return ok && b == ob
}

func (Null) Equal(other Value) bool {
	_, ok := other.(Null)
	return ok
}

func (o Object) toAny() any {
	out := make(map[string]any, len(o))
	for k, v := range o {
		out[k] = v.toAny()
	}
	return out
}

func (a Array) toAny() any {
	out := make([]any, len(a))
	for i, v := range a {
		out[i] = v.toAny()
	}
	return out
}

func (s String) toAny() any { return string(s) }
func (n Number) toAny() any { return float64(n) }
func (b Bool) toAny() any   { return bool(b) }
func (Null) toAny() any     { return nil }

// Decode parses JSON bytes into a Value tree.
func Decode(data []byte) (Value, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("docjson: decode: %w", err)
	}
	return FromAny(raw), nil
}

// DecodeObject parses JSON bytes and requires the top-level value to be an
// object.
func DecodeObject(data []byte) (Object, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(Object)
	if !ok {
		return nil, fmt.Errorf("docjson: top-level value is %T, not an object", v)
	}
	return obj, nil
}

// MustDecodeObject is DecodeObject for static, trusted inputs such as the
// compiled-in document schema. It panics on malformed input.
func MustDecodeObject(data []byte) Object {
	obj, err := DecodeObject(data)
	if err != nil {
		panic(err)
	}
	return obj
}

// Encode serializes a Value tree to JSON bytes.
func Encode(v Value) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	data, err := json.Marshal(v.toAny())
	if err != nil {
		return nil, fmt.Errorf("docjson: encode: %w", err)
	}
	return data, nil
}

// FromAny converts the generic encoding/json representation
// (map[string]any, []any, string, float64, bool, nil) into a Value tree.
// Unrecognized Go types are stringified.
func FromAny(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return Null{}
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case int:
		return Number(t)
	case string:
		return String(t)
	case []any:
		arr := make(Array, len(t))
		for i, elem := range t {
			arr[i] = FromAny(elem)
		}
		return arr
	case map[string]any:
		obj := make(Object, len(t))
		for k, elem := range t {
			obj[k] = FromAny(elem)
		}
		return obj
	case Value:
		return t
	default:
		return String(fmt.Sprintf("%v", t))
	}
}

// ToAny converts a Value tree back to the generic encoding/json
// representation. A nil Value yields nil.
func ToAny(v Value) any {
	if v == nil {
		return nil
	}
	return v.toAny()
}

// MarshalJSON implements json.Marshaler for Object so event payloads can
// embed Value trees directly.
func (o Object) MarshalJSON() ([]byte, error) { return json.Marshal(o.toAny()) }

// MarshalJSON implements json.Marshaler for Array.
func (a Array) MarshalJSON() ([]byte, error) { return json.Marshal(a.toAny()) }

// MarshalJSON implements json.Marshaler for Null.
func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// GetObject returns the child object under key, or nil if the key is absent
// or holds a non-object value.
func (o Object) GetObject(key string) Object {
	child, _ := o[key].(Object)
	return child
}

// GetArray returns the child array under key, or nil if the key is absent or
// holds a non-array value.
func (o Object) GetArray(key string) Array {
	child, _ := o[key].(Array)
	return child
}

// GetString returns the string under key, or "" if absent or not a string.
func (o Object) GetString(key string) string {
	child, _ := o[key].(String)
	return string(child)
}

// Keys returns the object's keys in sorted order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Strings returns the array's string elements, skipping non-string values.
func (a Array) Strings() []string {
	out := make([]string, 0, len(a))
	for _, v := range a {
		if s, ok := v.(String); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// String renders the value as compact JSON for logging and debugging.
func Render(v Value) string {
	data, err := Encode(v)
	if err != nil {
		return fmt.Sprintf("<unencodable: %v>", err)
	}
	return strings.TrimSpace(string(data))
}
