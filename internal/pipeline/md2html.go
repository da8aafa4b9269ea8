package pipeline

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"
)

// rawMarkerPrefix tags the HTML comments that carry raw markup from the
// markdown tree into the output tree. The payload is base64 so it can never
// terminate the comment early.
const rawMarkerPrefix = "hubdown-raw:"

// markdownParser turns the document source into a goldmark tree.
// The parser is stateless so one instance serves concurrent documents.
type markdownParser struct {
	md goldmark.Markdown
}

func newMarkdownParser() *markdownParser {
	return &markdownParser{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM, // Tables, strikethrough, autolinks, task lists
			),
		),
	}
}

// Transform parses doc.Source into doc.Markdown.
// Line endings are normalized first; later stages see the normalized source.
func (p *markdownParser) Transform(_ context.Context, doc *Document) error {
	doc.Source = normalizeLineEndings(doc.Source)
	doc.Markdown = p.md.Parser().Parse(text.NewReader(doc.Source))
	return nil
}

// treeConverter converts the markdown tree into the output tree.
type treeConverter struct {
	md goldmark.Markdown
}

// newTreeConverter builds the goldmark renderer used for tree conversion.
// When allowDangerousHTML is false, raw HTML found in the markdown is dropped.
func newTreeConverter(allowDangerousHTML bool) *treeConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(
				util.Prioritized(&rawHTMLRenderer{keep: allowDangerousHTML}, 100),
			),
		),
	)
	return &treeConverter{md: md}
}

// Transform renders doc.Markdown and parses the result into doc.Tree.
func (c *treeConverter) Transform(_ context.Context, doc *Document) error {
	if doc.Markdown == nil {
		return fmt.Errorf("%w: no markdown tree to convert", ErrMissingTree)
	}

	var buf bytes.Buffer
	if err := c.md.Renderer().Render(&buf, doc.Source, doc.Markdown); err != nil {
		return fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	root, err := parseFragment(buf.String())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	if err := restoreRawNodes(root); err != nil {
		return err
	}

	doc.Tree = root
	return nil
}

// restoreRawNodes replaces raw markers with html.RawNode nodes.
func restoreRawNodes(root *html.Node) error {
	markers := collect(root, func(n *html.Node) bool {
		return n.Type == html.CommentNode && strings.HasPrefix(n.Data, rawMarkerPrefix)
	})
	for _, m := range markers {
		raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(m.Data, rawMarkerPrefix))
		if err != nil {
			return fmt.Errorf("%w: corrupt raw marker: %v", ErrHTMLConversion, err)
		}
		replaceNode(m, []*html.Node{{Type: html.RawNode, Data: string(raw)}})
	}
	return nil
}

// rawHTMLRenderer emits raw HTML nodes as comment markers instead of
// writing them straight into the rendered markup.
type rawHTMLRenderer struct {
	keep bool
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *rawHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindRawHTML, r.renderRawHTML)
	reg.Register(ast.KindHTMLBlock, r.renderHTMLBlock)
}

func (r *rawHTMLRenderer) renderRawHTML(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*ast.RawHTML)
	var raw bytes.Buffer
	for i := 0; i < n.Segments.Len(); i++ {
		seg := n.Segments.At(i)
		raw.Write(seg.Value(source))
	}
	r.writeMarker(w, raw.Bytes())
	return ast.WalkSkipChildren, nil
}

func (r *rawHTMLRenderer) renderHTMLBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.HTMLBlock)
	var raw bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		raw.Write(line.Value(source))
	}
	if n.HasClosure() {
		raw.Write(n.ClosureLine.Value(source))
	}
	r.writeMarker(w, raw.Bytes())
	return ast.WalkContinue, nil
}

func (r *rawHTMLRenderer) writeMarker(w util.BufWriter, raw []byte) {
	if !r.keep || len(raw) == 0 {
		return
	}
	_, _ = w.WriteString("<!--" + rawMarkerPrefix)
	_, _ = w.WriteString(base64.StdEncoding.EncodeToString(raw))
	_, _ = w.WriteString("-->")
}
