// Package frontmatter splits a YAML metadata block from the head of a
// markdown document.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/alnah/go-hubdown/internal/jsonutil"
	"github.com/alnah/go-hubdown/internal/yamlutil"
)

var errDestination = errors.New("frontmatter: destination must be *map[string]any")

// yamlFormat recognizes "---" delimited blocks and decodes them with
// goccy/go-yaml through yamlutil.
var yamlFormat = frontmatter.NewFormat("---", "---", unmarshalMapping)

func unmarshalMapping(data []byte, v any) error {
	dst, ok := v.(*map[string]any)
	if !ok {
		return errDestination
	}
	m, err := yamlutil.UnmarshalMapping(data)
	if err != nil {
		return err
	}
	*dst = m
	return nil
}

// hasBlock reports whether source opens with a "---" delimiter on its first
// byte. A longer dash run such as "----" is not a delimiter.
func hasBlock(source string) bool {
	return strings.HasPrefix(source, "---") && !strings.HasPrefix(source, "----")
}

// Parse extracts the metadata block and returns it with the remaining body.
// Only a block starting at the very first byte counts; anything else yields
// empty metadata and the full source. Values come back JSON-typed (int64,
// float64, string, bool, nil, []any, map[string]any). The returned map is
// never nil.
func Parse(source string) (map[string]any, string, error) {
	if !hasBlock(source) {
		return map[string]any{}, source, nil
	}

	var meta map[string]any
	body, err := frontmatter.Parse(strings.NewReader(source), &meta, yamlFormat)
	if err != nil {
		return nil, "", fmt.Errorf("parse frontmatter: %w", err)
	}
	meta, err = jsonutil.Normalize(meta)
	if err != nil {
		return nil, "", fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return meta, string(body), nil
}
