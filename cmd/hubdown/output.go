package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	hubdown "github.com/alnah/go-hubdown"
	"github.com/alnah/go-hubdown/internal/config"
	"github.com/alnah/go-hubdown/internal/yamlutil"
)

// encodeResult renders a conversion result in the output format.
// HTML output holds the content only; JSON and YAML hold the whole result
// including frontmatter fields.
func encodeResult(result hubdown.Result, format string) ([]byte, error) {
	switch format {
	case config.FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return buf.Bytes(), nil
	case config.FormatYAML:
		data, err := yamlutil.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return data, nil
	default:
		return []byte(result.Content()), nil
	}
}
