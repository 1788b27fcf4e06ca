package certgen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/LocBoyOff/DiplomGenerator/internal/pipeline"
)

// substitutedColor is the fixed muted gray every substituted run is
// rendered in, regardless of the template's original color.
const substitutedColor = "#7F7F7F"

// placeholderPattern matches {TOKEN} markers in template text.
var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// paragraphAtoms are the elements treated as paragraphs: their inline
// children are the runs merged during substitution.
var paragraphAtoms = map[atom.Atom]bool{
	atom.P: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Li: true, atom.Td: true, atom.Th: true,
	atom.Blockquote: true, atom.Figcaption: true,
}

// blockAtoms are elements that disqualify a div from being treated as a
// leaf paragraph.
var blockAtoms = map[atom.Atom]bool{
	atom.P: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Div: true, atom.Section: true, atom.Ul: true, atom.Ol: true,
	atom.Table: true, atom.Blockquote: true, atom.Figure: true,
}

// Template is a parsed single-slide certificate template. The loaded
// content is immutable; every Fill works on a fresh parse of it.
type Template struct {
	content      string
	placeholders []string
}

// LoadTemplate reads and parses the template at path. Markdown templates
// (.md, .markdown) are converted to HTML first; anything else is taken as
// HTML. Returns ErrTemplateMalformed when the document has no content
// slide (an empty or absent body).
func LoadTemplate(ctx context.Context, path string) (*Template, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- template path is user-provided
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}

	content := string(data)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		content, err = pipeline.NewGoldmarkConverter().ToHTML(ctx, content)
		if err != nil {
			return nil, err
		}
	}

	return ParseTemplate(content)
}

// ParseTemplate builds a Template from HTML content.
func ParseTemplate(content string) (*Template, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateMalformed, err)
	}

	body := findBody(doc)
	if body == nil || strings.TrimSpace(nodeText(body)) == "" && firstElement(body) == nil {
		return nil, ErrTemplateMalformed
	}

	seen := map[string]bool{}
	var placeholders []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(nodeText(body), -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			placeholders = append(placeholders, m[1])
		}
	}
	sort.Strings(placeholders)

	return &Template{content: content, placeholders: placeholders}, nil
}

// Placeholders returns the distinct {TOKEN} names found in the template,
// sorted.
func (t *Template) Placeholders() []string {
	out := make([]string, len(t.placeholders))
	copy(out, t.placeholders)
	return out
}

// Fill substitutes the record's values into a fresh copy of the template
// and returns the filled document. For every paragraph whose merged run
// text contains a mapped token, all occurrences of all mapped placeholders
// are replaced and the paragraph is rebuilt as a single run: font styling
// comes from the override when font.UseCustom is set, otherwise from the
// paragraph's original first run; text color is always forced to the fixed
// muted gray, and alignment is centered unless the paragraph already set
// one. Paragraphs without a matching token are left untouched. The
// template itself is never mutated.
func (t *Template) Fill(rec Record, font *FontSettings) (string, error) {
	if err := font.Validate(); err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(t.content))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateMalformed, err)
	}

	body := findBody(doc)
	if body == nil {
		return "", ErrTemplateMalformed
	}

	substituteParagraphs(body, rec.Values, font)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("rendering filled document: %v", err)
	}
	return pipeline.InjectSlideCSS(buf.String()), nil
}

// substituteParagraphs walks the tree and rewrites every paragraph whose
// merged text contains a mapped token.
func substituteParagraphs(n *html.Node, values map[string]string, font *FontSettings) {
	if n.Type == html.ElementNode && isParagraph(n) {
		fillParagraph(n, values, font)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		substituteParagraphs(c, values, font)
	}
}

// isParagraph reports whether the element is treated as one paragraph of
// runs. Divs and sections count only when they contain no nested block.
func isParagraph(n *html.Node) bool {
	if paragraphAtoms[n.DataAtom] {
		return true
	}
	if n.DataAtom != atom.Div && n.DataAtom != atom.Section {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && blockAtoms[c.DataAtom] {
			return false
		}
	}
	return true
}

// fillParagraph merges the paragraph's runs, performs token replacement on
// the merged string, and re-creates a single styled run with the result.
// Any per-run style variation inside the paragraph collapses to one
// uniform style afterwards.
func fillParagraph(p *html.Node, values map[string]string, font *FontSettings) {
	merged := nodeText(p)

	// Sorted keys keep replacement order (and therefore output) stable
	// when one substituted value happens to contain another token.
	keys := make([]string, 0, len(values))
	matched := false
	for ph := range values {
		keys = append(keys, ph)
		if strings.Contains(merged, "{"+ph+"}") {
			matched = true
		}
	}
	if !matched {
		return
	}
	sort.Strings(keys)

	for _, ph := range keys {
		merged = strings.ReplaceAll(merged, "{"+ph+"}", values[ph])
	}

	runStyle := buildRunStyle(p, font)

	for p.FirstChild != nil {
		p.RemoveChild(p.FirstChild)
	}
	run := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Span,
		Data:     "span",
		Attr:     []html.Attribute{{Key: "style", Val: runStyle}},
	}
	run.AppendChild(&html.Node{Type: html.TextNode, Data: merged})
	p.AppendChild(run)

	centerIfUnaligned(p)
}

// buildRunStyle assembles the inline style of the re-created run: explicit
// override, or the first original run's font properties, with the color
// forced either way.
func buildRunStyle(p *html.Node, font *FontSettings) string {
	var parts []string

	if font != nil && font.UseCustom {
		if font.Family != "" {
			parts = append(parts, "font-family:"+font.Family)
		}
		parts = append(parts, fmt.Sprintf("font-size:%gpt", font.Size))
		if font.Bold {
			parts = append(parts, "font-weight:bold")
		}
	} else if run := firstElement(p); run != nil {
		decls := parseStyle(attrValue(run, "style"))
		for _, prop := range []string{"font-family", "font-size", "font-weight"} {
			if v, ok := decls[prop]; ok {
				parts = append(parts, prop+":"+v)
			}
		}
		if _, hasWeight := decls["font-weight"]; !hasWeight && (run.DataAtom == atom.B || run.DataAtom == atom.Strong) {
			parts = append(parts, "font-weight:bold")
		}
	}

	parts = append(parts, "color:"+substitutedColor)
	return strings.Join(parts, ";")
}

// centerIfUnaligned forces text-align:center on the paragraph when it
// carries no alignment of its own. All attributes are inspected before
// anything is mutated: an align attribute counts regardless of where it
// sits relative to the style attribute.
func centerIfUnaligned(p *html.Node) {
	styleIdx := -1
	for i, a := range p.Attr {
		if a.Key == "align" {
			return
		}
		if a.Key == "style" {
			if _, ok := parseStyle(a.Val)["text-align"]; ok {
				return
			}
			styleIdx = i
		}
	}

	if styleIdx >= 0 {
		val := p.Attr[styleIdx].Val
		sep := ""
		if v := strings.TrimSpace(val); v != "" && !strings.HasSuffix(v, ";") {
			sep = ";"
		}
		p.Attr[styleIdx].Val = val + sep + "text-align:center"
		return
	}
	p.Attr = append(p.Attr, html.Attribute{Key: "style", Val: "text-align:center"})
}

// nodeText concatenates all text nodes under n in document order.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
			return
		}
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			walk(gc)
		}
	}
	walk(n)
	return sb.String()
}

// findBody returns the document's body element, or nil.
func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

// firstElement returns the first element child of n (depth-first), or nil.
func firstElement(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
		if e := firstElement(c); e != nil {
			return e
		}
	}
	return nil
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// parseStyle splits an inline style declaration list into a property map.
// Malformed declarations are skipped.
func parseStyle(style string) map[string]string {
	decls := map[string]string{}
	for _, d := range strings.Split(style, ";") {
		prop, val, ok := strings.Cut(d, ":")
		if !ok {
			continue
		}
		decls[strings.ToLower(strings.TrimSpace(prop))] = strings.TrimSpace(val)
	}
	return decls
}
