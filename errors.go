package hubdown

import (
	"errors"

	"github.com/alnah/go-hubdown/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrFrontmatter = errors.New("frontmatter parsing failed")
	ErrCacheKey    = errors.New("cache key derivation failed")
	ErrCacheStore  = errors.New("cache store failed")
	ErrPipeline    = errors.New("pipeline failed")

	// Pipeline assembly and execution errors.
	ErrDuplicateStage = pipeline.ErrDuplicateStage
	ErrUnnamedStage   = pipeline.ErrUnnamedStage
	ErrMissingTree    = pipeline.ErrMissingTree
	ErrNoOutput       = pipeline.ErrNoOutput
	ErrHTMLConversion = pipeline.ErrHTMLConversion
)
