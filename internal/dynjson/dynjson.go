// Package dynjson navigates untrusted JSON documents without assuming a schema.
//
// Provider responses are weakly typed: keys appear and disappear between
// timetable versions, and values change shape. Value wraps the decoded
// encoding/json tree and exposes chained accessors that short-circuit on the
// first mismatch, carrying the failing path so error messages name the exact
// key that was missing or mis-shaped.
package dynjson

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Value is one node of a decoded JSON document. The zero Value is invalid.
type Value struct {
	raw  any
	path string
	err  error
}

// Decode reads a full JSON document from r and returns its root Value.
func Decode(r io.Reader) (Value, error) {
	var raw any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("decode json: %w", err)
	}
	return Value{raw: raw, path: "$"}, nil
}

// Wrap adopts an already-decoded JSON tree, e.g. a single row taken out of a
// larger document.
func Wrap(raw any) Value {
	return Value{raw: raw, path: "$"}
}

// Err reports the first access failure in the chain, or nil.
func (v Value) Err() error { return v.err }

func (v Value) fail(format string, args ...any) Value {
	return Value{path: v.path, err: fmt.Errorf(format, args...)}
}

// Field descends into key of a JSON object.
func (v Value) Field(key string) Value {
	if v.err != nil {
		return v
	}
	obj, ok := v.raw.(map[string]any)
	if !ok {
		return v.fail("%s: expected object, got %T", v.path, v.raw)
	}
	child, ok := obj[key]
	if !ok {
		return v.fail("%s.%s: key missing", v.path, key)
	}
	return Value{raw: child, path: v.path + "." + key}
}

// Index descends into element i of a JSON array.
func (v Value) Index(i int) Value {
	if v.err != nil {
		return v
	}
	arr, ok := v.raw.([]any)
	if !ok {
		return v.fail("%s: expected array, got %T", v.path, v.raw)
	}
	if i < 0 || i >= len(arr) {
		return v.fail("%s[%d]: index out of range (len %d)", v.path, i, len(arr))
	}
	return Value{raw: arr[i], path: v.path + "[" + strconv.Itoa(i) + "]"}
}

// Str returns the node as a string.
func (v Value) Str() (string, error) {
	if v.err != nil {
		return "", v.err
	}
	s, ok := v.raw.(string)
	if !ok {
		return "", fmt.Errorf("%s: expected string, got %T", v.path, v.raw)
	}
	return s, nil
}

// Array returns the node's elements, each as a Value keeping its own path.
func (v Value) Array() ([]Value, error) {
	if v.err != nil {
		return nil, v.err
	}
	arr, ok := v.raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected array, got %T", v.path, v.raw)
	}
	out := make([]Value, len(arr))
	for i, el := range arr {
		out[i] = Value{raw: el, path: v.path + "[" + strconv.Itoa(i) + "]"}
	}
	return out, nil
}

// IsString reports whether the node is a JSON string without failing the chain.
func (v Value) IsString() bool {
	if v.err != nil {
		return false
	}
	_, ok := v.raw.(string)
	return ok
}
