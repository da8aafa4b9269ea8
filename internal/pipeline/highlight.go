package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// codeHighlighter syntax-highlights code blocks of the output tree.
// Each <pre><code class="language-X"> block is rendered again as a fenced
// block through goldmark-highlighting and the result replaces the original.
type codeHighlighter struct {
	md goldmark.Markdown
}

func newCodeHighlighter() *codeHighlighter {
	return &codeHighlighter{
		md: goldmark.New(
			goldmark.WithExtensions(
				highlighting.NewHighlighting(
					highlighting.WithFormatOptions(
						chromahtml.WithClasses(true), // CSS classes for smaller HTML and external stylesheet control
					),
				),
			),
		),
	}
}

// Transform highlights every code block with a known language.
// Blocks without a language class, or with one chroma has no lexer for,
// are left unchanged.
func (h *codeHighlighter) Transform(ctx context.Context, doc *Document) error {
	if doc.Tree == nil {
		return nil
	}

	for _, pre := range collect(doc.Tree, isCodeBlock) {
		if err := ctx.Err(); err != nil {
			return err
		}

		code := firstElementChild(pre)
		lang := codeLanguage(code)
		if lang == "" || lexers.Get(lang) == nil {
			continue
		}

		var buf bytes.Buffer
		if err := h.md.Convert(fencedSource(lang, textContent(code)), &buf); err != nil {
			return fmt.Errorf("%w: highlighting %s block: %v", ErrHTMLConversion, lang, err)
		}
		nodes, err := html.ParseFragment(&buf, &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Body,
			Data:     "body",
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrHTMLConversion, err)
		}
		replaceNode(pre, nodes)
	}
	return nil
}

// isCodeBlock matches <pre> elements whose first element child is <code>.
func isCodeBlock(n *html.Node) bool {
	if !isElement(n, atom.Pre) {
		return false
	}
	code := firstElementChild(n)
	return code != nil && isElement(code, atom.Code)
}

func firstElementChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// codeLanguage extracts the language from a language-X or lang-X class.
// "no-highlight" and "nohighlight" opt a block out.
func codeLanguage(code *html.Node) string {
	class, ok := getAttr(code, "class")
	if !ok {
		return ""
	}
	for _, token := range strings.Fields(class) {
		switch {
		case token == "no-highlight" || token == "nohighlight":
			return ""
		case strings.HasPrefix(token, "language-"):
			return validLanguage(strings.TrimPrefix(token, "language-"))
		case strings.HasPrefix(token, "lang-"):
			return validLanguage(strings.TrimPrefix(token, "lang-"))
		}
	}
	return ""
}

// validLanguage rejects names that cannot appear in a backtick info string.
func validLanguage(lang string) string {
	if strings.ContainsAny(lang, "`{}") {
		return ""
	}
	return lang
}

// fencedSource wraps code in a backtick fence longer than any run of
// backticks inside it.
func fencedSource(lang, code string) []byte {
	width := 3
	run := 0
	for _, r := range code {
		if r != '`' {
			run = 0
			continue
		}
		run++
		if run >= width {
			width = run + 1
		}
	}
	if !strings.HasSuffix(code, "\n") {
		code += "\n"
	}
	fence := strings.Repeat("`", width)
	return []byte(fence + lang + "\n" + code + fence + "\n")
}
