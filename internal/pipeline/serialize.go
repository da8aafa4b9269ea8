package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/net/html"
)

// rawReparser turns raw HTML carried in the output tree into real nodes by
// serializing the tree, raw markup verbatim, and parsing it again.
type rawReparser struct{}

// Transform reparses doc.Tree when it holds raw nodes.
func (rawReparser) Transform(_ context.Context, doc *Document) error {
	if doc.Tree == nil || !hasRawNodes(doc.Tree) {
		return nil
	}
	content, err := renderFragment(doc.Tree)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	root, err := parseFragment(content)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	doc.Tree = root
	return nil
}

func hasRawNodes(root *html.Node) bool {
	found := false
	walk(root, func(n *html.Node) bool {
		if n.Type == html.RawNode {
			found = true
		}
		return !found
	})
	return found
}

// htmlSerializer writes doc.Tree as HTML text into doc.Output.
// Raw nodes still present are written as escaped text.
type htmlSerializer struct{}

// Transform serializes doc.Tree.
func (htmlSerializer) Transform(_ context.Context, doc *Document) error {
	if doc.Tree == nil {
		return fmt.Errorf("%w: no output tree to serialize", ErrMissingTree)
	}
	walk(doc.Tree, func(n *html.Node) bool {
		if n.Type == html.RawNode {
			n.Type = html.TextNode
		}
		return true
	})

	content, err := renderFragment(doc.Tree)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	doc.Output = make([]byte, len(content))
	copy(doc.Output, content)
	return nil
}
