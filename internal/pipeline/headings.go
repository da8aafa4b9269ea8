package pipeline

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LinkWrap is the heading link behavior: the heading's content is wrapped
// in a link to the heading itself.
const LinkWrap = "wrap"

// headingSlugger assigns ids to headings that have none.
// Ids are unique per document; repeats get a numeric suffix.
type headingSlugger struct{}

// Transform sets an id attribute on every h1-h6 of doc.Tree lacking one.
func (headingSlugger) Transform(_ context.Context, doc *Document) error {
	if doc.Tree == nil {
		return nil
	}
	seen := make(map[string]int)
	headings := collect(doc.Tree, isHeading)
	for _, h := range headings {
		if id, ok := getAttr(h, "id"); ok {
			seen[id] = 0
		}
	}
	for _, h := range headings {
		if _, ok := getAttr(h, "id"); ok {
			continue
		}
		setAttr(h, "id", uniqueSlug(seen, slugify(textContent(h))))
	}
	return nil
}

// slugify lowercases text, keeps letters, digits, marks, '-' and '_' in
// any script, turns spaces into '-' and drops everything else.
func slugify(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case r == ' ':
			b.WriteByte('-')
		case r == '-' || r == '_',
			unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsMark(r):
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "heading"
	}
	return b.String()
}

// uniqueSlug returns base, or base-N for the first N not yet in seen,
// and records the result.
func uniqueSlug(seen map[string]int, base string) string {
	slug := base
	for {
		if _, taken := seen[slug]; !taken {
			break
		}
		seen[base]++
		slug = base + "-" + strconv.Itoa(seen[base])
	}
	seen[slug] = 0
	return slug
}

// headingLinker wraps the content of every heading with an id in a link
// to the heading.
type headingLinker struct{}

// Transform adds self-links to the headings of doc.Tree.
func (headingLinker) Transform(_ context.Context, doc *Document) error {
	if doc.Tree == nil {
		return nil
	}
	for _, h := range collect(doc.Tree, isHeading) {
		id, ok := getAttr(h, "id")
		if !ok || id == "" {
			continue
		}
		link := &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.A,
			Data:     "a",
			Attr:     []html.Attribute{{Key: "href", Val: "#" + id}},
		}
		for c := h.FirstChild; c != nil; {
			next := c.NextSibling
			h.RemoveChild(c)
			link.AppendChild(c)
			c = next
		}
		h.AppendChild(link)
	}
	return nil
}
