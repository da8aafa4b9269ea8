package pipeline

import (
	"context"
	"errors"

	"github.com/yuin/goldmark/ast"
	"golang.org/x/net/html"
)

// Sentinel errors for pipeline assembly and execution.
var (
	ErrDuplicateStage = errors.New("duplicate stage name")
	ErrUnnamedStage   = errors.New("stage name cannot be empty")
	ErrMissingTree    = errors.New("stage input tree missing")
	ErrNoOutput       = errors.New("pipeline produced no output")
	ErrHTMLConversion = errors.New("HTML conversion failed")
)

// StageName identifies a stage within a pipeline.
type StageName string

// Built-in stage names, in execution order.
const (
	StageMarkdown         StageName = "markdown"
	StageBefore           StageName = "before"
	StageEmoji            StageName = "emoji"
	StageRemark2Rehype    StageName = "remark2rehype"
	StageSlug             StageName = "slug"
	StageAutolinkHeadings StageName = "autolinkHeadings"
	StageHighlight        StageName = "highlight"
	StageRaw              StageName = "raw"
	StageHTML             StageName = "html"
)

// builtinStages lists built-in names in their fixed order.
var builtinStages = []StageName{
	StageMarkdown,
	StageBefore,
	StageEmoji,
	StageRemark2Rehype,
	StageSlug,
	StageAutolinkHeadings,
	StageHighlight,
	StageRaw,
	StageHTML,
}

// BuiltinStages returns the built-in stage names in execution order.
func BuiltinStages() []StageName {
	return append([]StageName(nil), builtinStages...)
}

// IsBuiltin reports whether name is one of the built-in stages.
func IsBuiltin(name StageName) bool {
	for _, n := range builtinStages {
		if n == name {
			return true
		}
	}
	return false
}

// Document is the intermediate representation handed from stage to stage.
// Stages read what earlier stages produced and fill in the next field.
type Document struct {
	Source   []byte     // Markdown text; Markdown tree segments point into it
	Markdown ast.Node   // Markdown tree, set by the markdown stage
	Tree     *html.Node // Output tree root (DocumentNode), set by remark2rehype
	Output   []byte     // Serialized output, set by the html stage
}

// Transformer transforms a document in place.
type Transformer interface {
	Transform(ctx context.Context, doc *Document) error
}

// TransformerFunc adapts a function to the Transformer interface.
type TransformerFunc func(ctx context.Context, doc *Document) error

// Transform calls f(ctx, doc).
func (f TransformerFunc) Transform(ctx context.Context, doc *Document) error {
	return f(ctx, doc)
}

// Stage is one named element of a pipeline.
// A stage without a Transformer is a placeholder and is skipped when run.
type Stage struct {
	Name        StageName
	Transformer Transformer
	Config      map[string]any // Descriptor configuration, part of the stage identity
}
