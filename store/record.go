package store

import (
	"encoding/json"
	"fmt"
)

// Record is the raw fixed-width tuple of one row, in schema column order.
// Values are int64, string, bool or float64.
type Record []any

// Int returns field i as an int64
func (r Record) Int(i int) int64 {
	v, ok := r[i].(int64)
	if !ok {
		panic(fmt.Sprintf("store: field %d is %T, want int64", i, r[i]))
	}
	return v
}

// String returns field i as a string
func (r Record) String(i int) string {
	v, ok := r[i].(string)
	if !ok {
		panic(fmt.Sprintf("store: field %d is %T, want string", i, r[i]))
	}
	return v
}

// Bool returns field i as a bool
func (r Record) Bool(i int) bool {
	v, ok := r[i].(bool)
	if !ok {
		panic(fmt.Sprintf("store: field %d is %T, want bool", i, r[i]))
	}
	return v
}

// Float returns field i as a float64
func (r Record) Float(i int) float64 {
	v, ok := r[i].(float64)
	if !ok {
		panic(fmt.Sprintf("store: field %d is %T, want float64", i, r[i]))
	}
	return v
}

// OptionalID encodes an optional integer id, nil becoming the 0 sentinel
func OptionalID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

// DecodeOptionalID treats the 0 sentinel as unset
func DecodeOptionalID(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}

// EncodeList serializes a list as a JSON array; nil and empty lists become "[]"
func EncodeList[T any](items []T) string {
	if len(items) == 0 {
		return "[]"
	}
	data, err := json.Marshal(items)
	if err != nil {
		panic(fmt.Sprintf("store: encode list: %v", err))
	}
	return string(data)
}

// DecodeList parses a JSON array column. An empty array decodes to an empty, non-nil slice.
func DecodeList[T any](s string) []T {
	items := []T{}
	if s == "" {
		return items
	}
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		panic(fmt.Sprintf("store: decode list %q: %v", s, err))
	}
	return items
}

// EncodeMap serializes a map as a JSON object; nil and empty maps become "{}"
func EncodeMap[V any](m map[string]V) string {
	if len(m) == 0 {
		return "{}"
	}
	data, err := json.Marshal(m)
	if err != nil {
		panic(fmt.Sprintf("store: encode map: %v", err))
	}
	return string(data)
}

// DecodeMap parses a JSON object column into a non-nil map
func DecodeMap[V any](s string) map[string]V {
	m := map[string]V{}
	if s == "" {
		return m
	}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		panic(fmt.Sprintf("store: decode map %q: %v", s, err))
	}
	return m
}
