// Copyright (C) 2025 Mac Configurator Authors
//
// This program is free software; you can redistribute it and/or
// modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.

// Package types defines the core data structures for Mac Configurator:
// setting definitions, configured values, profiles, and apply outcomes.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ValueKind identifies the variant held by a Value.
type ValueKind int

const (
	KindBool ValueKind = iota
	KindInt
	KindString
	KindStringList
	KindStringMap
)

// String returns a human-readable name for the kind.
func (k ValueKind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindString:
		return "string"
	case KindStringList:
		return "list"
	case KindStringMap:
		return "map"
	}
	return "unknown"
}

// Value is a tagged union holding one configured setting value.
// Equality is structural and variant-typed: IntValue(5) never equals
// StringValue("5"). The zero Value is KindBool false; use the constructors.
type Value struct {
	kind    ValueKind
	boolVal bool
	intVal  int
	strVal  string
	listVal []string
	mapVal  map[string]bool
}

// BoolValue creates a boolean Value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, boolVal: b}
}

// IntValue creates an integer Value.
func IntValue(i int) Value {
	return Value{kind: KindInt, intVal: i}
}

// StringValue creates a string Value.
func StringValue(s string) Value {
	return Value{kind: KindString, strVal: s}
}

// StringListValue creates a list-of-strings Value. The slice is copied.
func StringListValue(items []string) Value {
	list := make([]string, len(items))
	copy(list, items)
	return Value{kind: KindStringList, listVal: list}
}

// StringMapValue creates a string-to-bool map Value. The map is copied.
func StringMapValue(entries map[string]bool) Value {
	m := make(map[string]bool, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return Value{kind: KindStringMap, mapVal: m}
}

// Kind returns the variant tag.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Bool returns the boolean payload; ok is false for other variants.
func (v Value) Bool() (value, ok bool) {
	return v.boolVal, v.kind == KindBool
}

// Int returns the integer payload; ok is false for other variants.
func (v Value) Int() (int, bool) {
	return v.intVal, v.kind == KindInt
}

// Str returns the string payload; ok is false for other variants.
func (v Value) Str() (string, bool) {
	return v.strVal, v.kind == KindString
}

// StringList returns a copy of the list payload; ok is false for other variants.
func (v Value) StringList() ([]string, bool) {
	if v.kind != KindStringList {
		return nil, false
	}
	list := make([]string, len(v.listVal))
	copy(list, v.listVal)
	return list, true
}

// StringMap returns a copy of the map payload; ok is false for other variants.
func (v Value) StringMap() (map[string]bool, bool) {
	if v.kind != KindStringMap {
		return nil, false
	}
	m := make(map[string]bool, len(v.mapVal))
	for k, val := range v.mapVal {
		m[k] = val
	}
	return m, true
}

// Equal reports structural equality. Values of different kinds are never equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.boolVal == other.boolVal
	case KindInt:
		return v.intVal == other.intVal
	case KindString:
		return v.strVal == other.strVal
	case KindStringList:
		if len(v.listVal) != len(other.listVal) {
			return false
		}
		for i := range v.listVal {
			if v.listVal[i] != other.listVal[i] {
				return false
			}
		}
		return true
	case KindStringMap:
		if len(v.mapVal) != len(other.mapVal) {
			return false
		}
		for k, val := range v.mapVal {
			otherVal, exists := other.mapVal[k]
			if !exists || otherVal != val {
				return false
			}
		}
		return true
	}
	return false
}

// String formats the value for display.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("%t", v.boolVal)
	case KindInt:
		return fmt.Sprintf("%d", v.intVal)
	case KindString:
		return v.strVal
	case KindStringList:
		return "[" + strings.Join(v.listVal, ", ") + "]"
	case KindStringMap:
		keys := make([]string, 0, len(v.mapVal))
		for k := range v.mapVal {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%t", k, v.mapVal[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return ""
}

// MarshalJSON encodes the underlying payload without a variant wrapper,
// matching the profile file format where values appear as plain JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.boolVal)
	case KindInt:
		return json.Marshal(v.intVal)
	case KindString:
		return json.Marshal(v.strVal)
	case KindStringList:
		return json.Marshal(v.listVal)
	case KindStringMap:
		return json.Marshal(v.mapVal)
	}
	return nil, fmt.Errorf("cannot marshal value of unknown kind %d", v.kind)
}

// UnmarshalJSON infers the variant from the JSON shape: booleans, integers,
// strings, arrays of strings, and objects with boolean members.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	parsed, err := ValueFromJSON(raw)
	if err != nil {
		return err
	}

	*v = parsed
	return nil
}

// ValueFromJSON converts a decoded JSON value into a typed Value.
// Numbers must be integral; floats have no variant in the model.
func ValueFromJSON(raw interface{}) (Value, error) {
	switch val := raw.(type) {
	case bool:
		return BoolValue(val), nil
	case json.Number:
		i, err := val.Int64()
		if err != nil {
			return Value{}, fmt.Errorf("unsupported numeric value %s (only integers are allowed)", val.String())
		}
		return IntValue(int(i)), nil
	case float64:
		// Decoded without UseNumber; accept only integral floats.
		if val != float64(int(val)) {
			return Value{}, fmt.Errorf("unsupported numeric value %v (only integers are allowed)", val)
		}
		return IntValue(int(val)), nil
	case string:
		return StringValue(val), nil
	case []interface{}:
		items := make([]string, 0, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return Value{}, fmt.Errorf("array element %d is not a string", i)
			}
			items = append(items, s)
		}
		return StringListValue(items), nil
	case map[string]interface{}:
		entries := make(map[string]bool, len(val))
		for k, item := range val {
			b, ok := item.(bool)
			if !ok {
				return Value{}, fmt.Errorf("object member %q is not a boolean", k)
			}
			entries[k] = b
		}
		return StringMapValue(entries), nil
	case nil:
		return Value{}, fmt.Errorf("null is not a valid setting value")
	}
	return Value{}, fmt.Errorf("unsupported value type %T", raw)
}
