// Package pipeline implements the Markdown-to-HTML stage pipeline.
//
// A pipeline is an ordered list of named stages sharing one Document:
//   - markdown: parse the source into a goldmark tree
//   - before: injection point for caller stages (a placeholder by default)
//   - emoji: convert GitHub emoji shortcodes
//   - remark2rehype: convert the markdown tree into an HTML node tree,
//     carrying raw HTML as raw nodes
//   - slug: assign heading ids
//   - autolinkHeadings: link headings to their own id
//   - highlight: syntax-highlight code blocks via chroma
//   - raw: parse raw HTML into real nodes
//   - html: serialize the tree
//
// Build assembles a pipeline with stages left out or inserted; Default
// returns the shared uncustomized pipeline.
package pipeline
