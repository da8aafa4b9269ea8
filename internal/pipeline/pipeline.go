package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// Pipeline runs an ordered chain of stages over a document.
// A Pipeline is immutable once built and safe for concurrent use.
type Pipeline struct {
	stages []Stage
}

// StageObserver receives the duration and outcome of every executed stage.
type StageObserver func(name StageName, d time.Duration, err error)

// BaseStages returns a fresh copy of the built-in stage list, in order.
// Building it constructs every parser and renderer the stages need, so
// callers should reuse pipelines rather than rebuild them per document.
func BaseStages() []Stage {
	return []Stage{
		{Name: StageMarkdown, Transformer: newMarkdownParser()},
		{Name: StageBefore},
		{Name: StageEmoji, Transformer: newEmojiConverter()},
		{
			Name:        StageRemark2Rehype,
			Transformer: newTreeConverter(true),
			Config:      map[string]any{"allowDangerousHTML": true},
		},
		{Name: StageSlug, Transformer: headingSlugger{}},
		{
			Name:        StageAutolinkHeadings,
			Transformer: headingLinker{},
			Config:      map[string]any{"behavior": LinkWrap},
		},
		{Name: StageHighlight, Transformer: newCodeHighlighter()},
		{Name: StageRaw, Transformer: rawReparser{}},
		{Name: StageHTML, Transformer: htmlSerializer{}},
	}
}

// Build assembles a pipeline from the base stages. Stages named in ignore
// are left out without reordering the rest, and extra stages take the
// place of the "before" injection point. Ignoring "before" drops the extra
// stages with it. ignore only applies to built-in stage names.
func Build(extra []Stage, ignore []StageName) (*Pipeline, error) {
	if err := validateExtra(extra); err != nil {
		return nil, err
	}

	skip := make(map[StageName]struct{}, len(ignore))
	for _, name := range ignore {
		skip[name] = struct{}{}
	}

	base := BaseStages()
	stages := make([]Stage, 0, len(base)+len(extra))
	for _, s := range base {
		if _, ok := skip[s.Name]; ok {
			continue
		}
		if s.Name == StageBefore && len(extra) > 0 {
			stages = append(stages, extra...)
			continue
		}
		stages = append(stages, s)
	}
	return &Pipeline{stages: stages}, nil
}

// validateExtra rejects unnamed stages and names that collide with each
// other or with a built-in stage.
func validateExtra(extra []Stage) error {
	seen := make(map[StageName]struct{}, len(extra))
	for _, s := range extra {
		if s.Name == "" {
			return ErrUnnamedStage
		}
		if _, ok := seen[s.Name]; ok || IsBuiltin(s.Name) {
			return fmt.Errorf("%w: %q", ErrDuplicateStage, s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return nil
}

// defaultPipeline holds the shared uncustomized pipeline once built.
var defaultPipeline atomic.Pointer[Pipeline]

// Default returns the shared pipeline built from the base stages.
// It is built on first use. Concurrent first calls may each build one;
// the instances are equivalent and the last one stored is kept.
func Default() *Pipeline {
	if p := defaultPipeline.Load(); p != nil {
		return p
	}
	p := &Pipeline{stages: BaseStages()}
	defaultPipeline.Store(p)
	return p
}

// For returns the shared default pipeline when no customization is asked
// for, and a freshly built one otherwise.
func For(extra []Stage, ignore []StageName) (*Pipeline, error) {
	if len(extra) == 0 && len(ignore) == 0 {
		return Default(), nil
	}
	return Build(extra, ignore)
}

// Stages returns the names of the pipeline's stages in execution order,
// placeholders included.
func (p *Pipeline) Stages() []StageName {
	names := make([]StageName, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name
	}
	return names
}

// Process feeds source through every stage in order and returns the
// serialized output.
func (p *Pipeline) Process(ctx context.Context, source string) (string, error) {
	return p.ProcessObserved(ctx, source, nil)
}

// ProcessObserved is Process with a per-stage observer (nil allowed).
// The first failing stage aborts the run; no partial output is returned.
func (p *Pipeline) ProcessObserved(ctx context.Context, source string, observe StageObserver) (string, error) {
	doc := &Document{Source: []byte(source)}

	for _, s := range p.stages {
		if s.Transformer == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		start := time.Now()
		err := s.Transformer.Transform(ctx, doc)
		if observe != nil {
			observe(s.Name, time.Since(start), err)
		}
		if err != nil {
			return "", fmt.Errorf("stage %s: %w", s.Name, err)
		}
	}

	if doc.Output == nil {
		return "", ErrNoOutput
	}
	return string(doc.Output), nil
}
