package jsonutil

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestDecodeObject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    map[string]any
		wantErr bool
	}{
		{
			name:  "integers become int64",
			input: `{"n": 3, "neg": -2}`,
			want:  map[string]any{"n": int64(3), "neg": int64(-2)},
		},
		{
			name:  "fractions become float64",
			input: `{"x": 1.5, "e": 1e-3}`,
			want:  map[string]any{"x": 1.5, "e": 0.001},
		},
		{
			name:  "beyond int64 becomes float64",
			input: `{"big": 18446744073709551615}`,
			want:  map[string]any{"big": float64(math.MaxUint64)},
		},
		{
			name:  "nested values converted",
			input: `{"meta": {"n": 2, "list": [1, "a", {"f": 0.5}]}}`,
			want: map[string]any{"meta": map[string]any{
				"n":    int64(2),
				"list": []any{int64(1), "a", map[string]any{"f": 0.5}},
			}},
		},
		{
			name:  "other types kept",
			input: `{"s": "x", "b": true, "z": null}`,
			want:  map[string]any{"s": "x", "b": true, "z": nil},
		},
		{
			name:    "not an object",
			input:   `[1, 2]`,
			wantErr: true,
		},
		{
			name:    "trailing data",
			input:   `{"a": 1} {"b": 2}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeObject([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("DecodeObject() = %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeObject() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeObject() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	in := map[string]any{
		"count": uint64(3),
		"ratio": float64(2),
		"tags":  []any{"a", uint64(1)},
		"meta":  map[string]any{"n": int(2)},
	}
	want := map[string]any{
		"count": int64(3),
		"ratio": int64(2),
		"tags":  []any{"a", int64(1)},
		"meta":  map[string]any{"n": int64(2)},
	}

	got, err := Normalize(in)
	if err != nil {
		t.Fatalf("Normalize() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %#v, want %#v", got, want)
	}

	again, err := Normalize(got)
	if err != nil {
		t.Fatalf("Normalize() second pass error: %v", err)
	}
	if !reflect.DeepEqual(again, got) {
		t.Errorf("Normalize() not idempotent: %#v then %#v", got, again)
	}
}

func TestNormalize_Errors(t *testing.T) {
	t.Parallel()

	if got, err := Normalize(nil); got != nil || err != nil {
		t.Errorf("Normalize(nil) = %v, %v; want nil, nil", got, err)
	}
	if _, err := Normalize(map[string]any{"ch": make(chan int)}); err == nil {
		t.Error("Normalize() accepted a channel value")
	}
}

func TestDecodeObject_TrailingDataSentinel(t *testing.T) {
	t.Parallel()

	if _, err := DecodeObject([]byte(`{} 1`)); !errors.Is(err, ErrTrailingData) {
		t.Errorf("error = %v, want ErrTrailingData", err)
	}
}
