package pipeline

import "regexp"

// Line ending normalization
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content []byte) []byte {
	return crlfOrCR.ReplaceAll(content, []byte("\n"))
}
