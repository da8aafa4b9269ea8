// Package hubdown converts Markdown documents to HTML the way GitHub renders
// them, with optional result caching.
//
// # Quick Start
//
//	result, err := hubdown.Convert(ctx, "# Hello\n\nHi :wave:", hubdown.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Content())
//	// <h1 id="hello"><a href="#hello">Hello</a></h1>
//	// <p>Hi 👋</p>
//
// # Conversion Pipeline
//
// Documents pass through an ordered chain of named stages:
//
//  1. markdown: parse with goldmark (GitHub Flavored Markdown)
//  2. before: injection point for Options.RunBefore stages
//  3. emoji: replace :shortcode: emoji with unicode
//  4. remark2rehype: convert to an HTML tree, keeping raw HTML
//  5. slug: give headings unique ids
//  6. autolinkHeadings: wrap heading text in a link to itself
//  7. highlight: syntax-highlight fenced code via chroma
//  8. raw: parse raw HTML into the tree
//  9. html: serialize
//
// Options.Ignore leaves built-in stages out. Without RunBefore or Ignore
// every conversion shares one prebuilt pipeline.
//
// # Frontmatter
//
// With Options.Frontmatter a leading YAML block is removed from the document
// and its fields are copied into the result next to "content":
//
//	result, _ := hubdown.Convert(ctx, "---\ntitle: Hi\n---\n# Body",
//	    hubdown.Options{Frontmatter: true})
//	result["title"]     // "Hi"
//	result.Content()    // rendered "# Body" only
//
// # Caching
//
// Options.Cache takes any Store. Results are keyed by the SHA-512 of the
// document and the options that affect the output (see CacheKey), so equal
// requests are served from the store without running the pipeline:
//
//	store := hubdown.NewMemoryStore()
//	result, err := hubdown.Convert(ctx, md, hubdown.Options{Cache: store})
//
// NewSQLiteStore persists results across processes. Read failures of a
// store degrade to cache misses; write failures are returned.
//
// # Observability
//
// NewConverter accepts WithLogger for cache diagnostics and WithRecorder for
// metrics; NewPrometheusRecorder provides a Prometheus-backed Recorder.
package hubdown
