package dom

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// DefaultAtomicSelector selects non-editable islands.
	DefaultAtomicSelector = `[contenteditable="false"]`

	// DefaultInlineBoundarySelector selects inline elements whose edges
	// are distinct caret stops for line end navigation.
	DefaultInlineBoundarySelector = "a[href],code"
)

// ErrInvalidSelector is returned when a classification selector does not
// compile.
var ErrInvalidSelector = errors.New("invalid selector")

// ParseOptions configures Parse.
type ParseOptions struct {
	// AtomicSelector is a CSS selector matching atomic elements.
	// Empty means DefaultAtomicSelector.
	AtomicSelector string

	// InlineBoundarySelector is a CSS selector matching inline boundary
	// elements. Empty means DefaultInlineBoundarySelector.
	InlineBoundarySelector string
}

// Option configures parsing.
type Option func(*ParseOptions)

// WithAtomicSelector sets the selector used to classify atomic nodes.
func WithAtomicSelector(sel string) Option {
	return func(o *ParseOptions) {
		o.AtomicSelector = sel
	}
}

// WithInlineBoundarySelector sets the selector used to classify inline
// boundary elements.
func WithInlineBoundarySelector(sel string) Option {
	return func(o *ParseOptions) {
		o.InlineBoundarySelector = sel
	}
}

// Parse parses an HTML body fragment into a content tree rooted at a body
// element.
func Parse(r io.Reader, opts ...Option) (*Node, error) {
	var o ParseOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.AtomicSelector == "" {
		o.AtomicSelector = DefaultAtomicSelector
	}
	if o.InlineBoundarySelector == "" {
		o.InlineBoundarySelector = DefaultInlineBoundarySelector
	}

	atomicMatcher, err := compile(o.AtomicSelector)
	if err != nil {
		return nil, err
	}
	boundaryMatcher, err := compile(o.InlineBoundarySelector)
	if err != nil {
		return nil, err
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	frags, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	for _, f := range frags {
		body.AppendChild(f)
	}

	doc := goquery.NewDocumentFromNode(body)
	cls := classes{
		atomic:   matches(doc, atomicMatcher),
		boundary: matches(doc, boundaryMatcher),
	}

	root := &Node{Type: ElementNode, Tag: "body"}
	convertChildren(body, root, cls, false)
	return root, nil
}

// CompileSelector validates a classification selector.
func CompileSelector(sel string) error {
	_, err := compile(sel)
	return err
}

func compile(sel string) (cascadia.Selector, error) {
	m, err := cascadia.Compile(sel)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, sel, err)
	}
	return m, nil
}

type classes struct {
	atomic   map[*html.Node]bool
	boundary map[*html.Node]bool
}

func matches(doc *goquery.Document, m cascadia.Selector) map[*html.Node]bool {
	set := make(map[*html.Node]bool)
	doc.FindMatcher(m).Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			set[n] = true
		}
	})
	return set
}

// ParseString parses an HTML body fragment from a string.
func ParseString(s string, opts ...Option) (*Node, error) {
	return Parse(strings.NewReader(s), opts...)
}

// MustParse is like ParseString but panics on error. It is meant for
// fixtures.
func MustParse(s string, opts ...Option) *Node {
	root, err := ParseString(s, opts...)
	if err != nil {
		panic(err)
	}
	return root
}

func convertChildren(src *html.Node, dst *Node, cls classes, pre bool) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			el := &Node{
				Type:   ElementNode,
				Tag:    strings.ToLower(c.Data),
				atomic: cls.atomic[c],
			}
			el.boundary = cls.boundary[c] && !el.atomic && !blockTags[el.Tag]
			if len(c.Attr) > 0 {
				el.Attrs = make(map[string]string, len(c.Attr))
				for _, a := range c.Attr {
					el.Attrs[a.Key] = a.Val
				}
			}
			dst.AppendChild(el)
			convertChildren(c, el, cls, pre || el.Tag == "pre")
		case html.TextNode:
			data := c.Data
			if !pre {
				data = collapseSpace(data)
			}
			if data == "" || (!pre && data == " " && isBlockContext(c)) {
				continue
			}
			dst.AppendChild(NewText(data))
		}
	}
}

// isBlockContext reports whether a whitespace-only text node sits between
// blocks, where it renders nothing.
func isBlockContext(n *html.Node) bool {
	if n.Parent == nil || n.Parent.DataAtom == atom.Body && n.Parent.Parent == nil {
		return true
	}
	if blockTags[n.Parent.Data] && (n.PrevSibling == nil || n.NextSibling == nil) {
		return true
	}
	for _, s := range []*html.Node{n.PrevSibling, n.NextSibling} {
		if s != nil && s.Type == html.ElementNode && blockTags[s.Data] {
			return true
		}
	}
	return false
}

func collapseSpace(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				sb.WriteByte(' ')
			}
			space = true
		default:
			sb.WriteRune(r)
			space = false
		}
	}
	return sb.String()
}
