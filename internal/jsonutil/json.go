// Package jsonutil decodes JSON objects into generic values with stable
// number types.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrTrailingData is returned when input holds more than one JSON value.
var ErrTrailingData = errors.New("unexpected data after JSON value")

// DecodeObject decodes a JSON object into a map. Integral numbers that fit
// in an int64 become int64, every other number becomes float64; nested
// objects and arrays become map[string]any and []any.
func DecodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	for k, v := range m {
		m[k] = convertNumbers(v)
	}
	return m, nil
}

// Normalize round-trips m through JSON so its values have exactly the types
// DecodeObject produces. Values JSON cannot represent are an error.
func Normalize(m map[string]any) (map[string]any, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	out, err := DecodeObject(data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return out, nil
}

func convertNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, e := range t {
			t[k] = convertNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = convertNumbers(e)
		}
		return t
	default:
		return v
	}
}
