package hubdown

import (
	"bytes"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Option names used in the hashed options view.
const (
	keyRunBefore   = "runBefore"
	keyFrontmatter = "frontmatter"
	keyIgnore      = "ignore"
	keyCache       = "cache"
)

// stageDescriptor is the hashed identity of a caller stage.
type stageDescriptor struct {
	Name   StageName      `json:"name"`
	Config map[string]any `json:"config,omitempty"`
}

// CacheKey derives the cache key for converting markdown with opts.
// Options left at their defaults and the cache itself do not affect the key;
// with nothing else set, the key depends on the document alone.
// Map key order never matters.
func CacheKey(markdown string, opts Options) (string, error) {
	view := hashableOptions(opts)

	h := sha512.New()
	h.Write([]byte(markdown))
	if len(view) > 0 {
		canonical, err := canonicalJSON(view)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrCacheKey, err)
		}
		h.Write(canonical)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// hashableOptions builds a fresh view of the options that identify a
// result. Neither opts nor opts.Extra is modified.
func hashableOptions(opts Options) map[string]any {
	view := make(map[string]any, len(opts.Extra)+3)
	for k, v := range opts.Extra {
		if k == keyCache {
			continue
		}
		view[k] = v
	}

	if len(opts.RunBefore) > 0 {
		stages := make([]stageDescriptor, len(opts.RunBefore))
		for i, s := range opts.RunBefore {
			stages[i] = stageDescriptor{Name: s.Name, Config: s.Config}
		}
		view[keyRunBefore] = stages
	}
	if opts.Frontmatter {
		view[keyFrontmatter] = true
	}
	if len(opts.Ignore) > 0 {
		view[keyIgnore] = opts.Ignore
	}
	return view
}

// canonicalJSON encodes v with object keys sorted at every depth.
// Struct values are first decoded into generic maps so their fields sort
// like any other keys.
func canonicalJSON(v any) ([]byte, error) {
	first, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(first))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}
