package hubdown

import (
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func sha512Hex(s string) string {
	sum := sha512.Sum512([]byte(s))
	return hex.EncodeToString(sum[:])
}

func mustKey(t *testing.T, md string, opts Options) string {
	t.Helper()
	key, err := CacheKey(md, opts)
	if err != nil {
		t.Fatalf("CacheKey() unexpected error: %v", err)
	}
	return key
}

// ---------------------------------------------------------------------------
// TestCacheKey - Derivation
// ---------------------------------------------------------------------------

func TestCacheKey_DocumentOnly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts Options
	}{
		{"zero options", Options{}},
		{"empty slices", Options{RunBefore: []Stage{}, Ignore: []StageName{}}},
		{"cache only", Options{Cache: NewMemoryStore()}},
		{"cache in extra", Options{Extra: map[string]any{"cache": "ignored"}}},
		{"frontmatter false", Options{Frontmatter: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got, want := mustKey(t, "# Doc", tt.opts), sha512Hex("# Doc"); got != want {
				t.Errorf("CacheKey() = %s, want digest of document alone %s", got, want)
			}
		})
	}
}

func TestCacheKey_ExactSerialization(t *testing.T) {
	t.Parallel()

	opts := Options{
		Frontmatter: true,
		Ignore:      []StageName{StageSlug},
		Extra:       map[string]any{"b": 1, "a": map[string]any{"z": true, "y": "s"}},
	}
	want := sha512Hex(`doc{"a":{"y":"s","z":true},"b":1,"frontmatter":true,"ignore":["slug"]}`)
	if got := mustKey(t, "doc", opts); got != want {
		t.Errorf("CacheKey() = %s, want %s", got, want)
	}
}

func TestCacheKey_RunBeforeDescriptor(t *testing.T) {
	t.Parallel()

	opts := Options{RunBefore: []Stage{{Name: "toc", Config: map[string]any{"depth": 2}}, {Name: "plain"}}}
	want := sha512Hex(`doc{"runBefore":[{"config":{"depth":2},"name":"toc"},{"name":"plain"}]}`)
	if got := mustKey(t, "doc", opts); got != want {
		t.Errorf("CacheKey() = %s, want %s", got, want)
	}
}

func TestCacheKey_OrderIndependent(t *testing.T) {
	t.Parallel()

	a := map[string]any{}
	a["first"] = 1
	a["second"] = map[string]any{"x": 1, "y": 2}
	b := map[string]any{}
	b["second"] = map[string]any{"y": 2, "x": 1}
	b["first"] = 1

	type pair struct {
		Zeta  int `json:"zeta"`
		Alpha int `json:"alpha"`
	}
	c := map[string]any{"first": 1, "second": pair{Zeta: 2, Alpha: 1}}
	d := map[string]any{"first": 1, "second": map[string]any{"alpha": 1, "zeta": 2}}

	if mustKey(t, "x", Options{Extra: a}) != mustKey(t, "x", Options{Extra: b}) {
		t.Error("map insertion order changed the key")
	}
	if mustKey(t, "x", Options{Extra: c}) != mustKey(t, "x", Options{Extra: d}) {
		t.Error("struct field order changed the key")
	}
}

func TestCacheKey_Distinguishes(t *testing.T) {
	t.Parallel()

	base := mustKey(t, "doc", Options{})
	variants := map[string]string{
		"document":    mustKey(t, "doc2", Options{}),
		"frontmatter": mustKey(t, "doc", Options{Frontmatter: true}),
		"ignore":      mustKey(t, "doc", Options{Ignore: []StageName{StageEmoji}}),
		"runBefore":   mustKey(t, "doc", Options{RunBefore: []Stage{{Name: "x"}}}),
		"extra":       mustKey(t, "doc", Options{Extra: map[string]any{"theme": "dark"}}),
	}
	seen := map[string]string{base: "base"}
	for name, key := range variants {
		if other, dup := seen[key]; dup {
			t.Errorf("%s shares a key with %s", name, other)
		}
		seen[key] = name
	}
}

func TestCacheKey_DoesNotMutate(t *testing.T) {
	t.Parallel()

	extra := map[string]any{"cache": "kept", "n": 1}
	opts := Options{Extra: extra, Frontmatter: true}
	mustKey(t, "doc", opts)

	want := map[string]any{"cache": "kept", "n": 1}
	if !reflect.DeepEqual(extra, want) {
		t.Errorf("Extra mutated: %v", extra)
	}
}

func TestCacheKey_Unhashable(t *testing.T) {
	t.Parallel()

	_, err := CacheKey("doc", Options{Extra: map[string]any{"ch": make(chan int)}})
	if !errors.Is(err, ErrCacheKey) {
		t.Errorf("error = %v, want %v", err, ErrCacheKey)
	}
	var typeErr *json.UnsupportedTypeError
	if !errors.As(err, &typeErr) {
		t.Errorf("error = %v, want to unwrap to %T", err, typeErr)
	}
}
