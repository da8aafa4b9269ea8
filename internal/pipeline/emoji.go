package pipeline

import (
	"context"
	"regexp"

	"github.com/yuin/goldmark-emoji/definition"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// shortcodePattern matches :name: with the characters GitHub shortcodes use.
var shortcodePattern = regexp.MustCompile(`:[a-zA-Z0-9_+\-]+:`)

// emojiConverter replaces GitHub emoji shortcodes in markdown text with
// their unicode characters. Code spans, code blocks and raw HTML are left
// alone; unknown shortcodes stay as written.
type emojiConverter struct {
	emojis definition.Emojis
}

func newEmojiConverter() *emojiConverter {
	return &emojiConverter{emojis: definition.Github()}
}

// Transform rewrites the text nodes of doc.Markdown.
func (c *emojiConverter) Transform(_ context.Context, doc *Document) error {
	if doc.Markdown == nil {
		return nil
	}
	return ast.Walk(doc.Markdown, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindCodeSpan, ast.KindCodeBlock, ast.KindFencedCodeBlock,
			ast.KindHTMLBlock, ast.KindRawHTML, ast.KindAutoLink:
			return ast.WalkSkipChildren, nil
		}
		c.replaceIn(n, doc.Source)
		return ast.WalkContinue, nil
	})
}

// replaceIn rewrites the direct text children of parent. Adjacent text
// nodes over contiguous source are considered together because the inline
// parser splits text at delimiter characters such as '_'.
func (c *emojiConverter) replaceIn(parent ast.Node, source []byte) {
	for child := parent.FirstChild(); child != nil; {
		first, ok := child.(*ast.Text)
		if !ok {
			child = child.NextSibling()
			continue
		}

		last := first
		for {
			next, ok := last.NextSibling().(*ast.Text)
			if !ok || !joinable(last, next) {
				break
			}
			last = next
		}
		after := last.NextSibling()

		seg := text.NewSegment(first.Segment.Start, last.Segment.Stop)
		if nodes := c.split(seg, source, first, last); nodes != nil {
			for _, n := range nodes {
				parent.InsertBefore(parent, first, n)
			}
			for n := ast.Node(first); n != after; {
				next := n.NextSibling()
				parent.RemoveChild(parent, n)
				n = next
			}
		}
		child = after
	}
}

// split returns the replacement nodes for seg, or nil when seg holds no
// known shortcode.
func (c *emojiConverter) split(seg text.Segment, source []byte, first, last *ast.Text) []ast.Node {
	value := seg.Value(source)
	matches := shortcodePattern.FindAllIndex(value, -1)
	if len(matches) == 0 {
		return nil
	}

	var nodes []ast.Node
	pos := 0
	for _, m := range matches {
		name := string(value[m[0]+1 : m[1]-1])
		e, ok := c.emojis.Get(name)
		if !ok || !e.IsUnicode() {
			continue
		}
		if m[0] > pos {
			nodes = append(nodes, textPiece(seg.Start+pos, seg.Start+m[0], first.IsRaw()))
		}
		nodes = append(nodes, ast.NewString([]byte(string(e.Unicode))))
		pos = m[1]
	}
	if nodes == nil {
		return nil
	}

	// The trailing piece carries the line break of the original run, so it
	// is kept even when empty.
	tail := textPiece(seg.Start+pos, seg.Stop, first.IsRaw())
	tail.SetSoftLineBreak(last.SoftLineBreak())
	tail.SetHardLineBreak(last.HardLineBreak())
	if pos < len(value) || last.SoftLineBreak() || last.HardLineBreak() {
		nodes = append(nodes, tail)
	}
	return nodes
}

func textPiece(start, stop int, raw bool) *ast.Text {
	t := ast.NewTextSegment(text.NewSegment(start, stop))
	t.SetRaw(raw)
	return t
}

// joinable reports whether b continues a in the source without a break.
func joinable(a, b *ast.Text) bool {
	return !a.SoftLineBreak() && !a.HardLineBreak() &&
		a.IsRaw() == b.IsRaw() &&
		a.Segment.Stop == b.Segment.Start
}
