// SPDX-License-Identifier: MIT
package theme

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element roles the applier writes to
const (
	RoleSalonName = "salon-name"
	RoleWhatsApp  = "whatsapp-link"
	HeroImageID   = "hero-parallax-img"
)

// Document is the page being themed. Every method is a no-op when the page
// has no matching element.
type Document interface {
	// SetProperty sets a custom property on the root element's inline style
	SetProperty(name, value string)
	// SetText replaces the text of every element with the role class
	SetText(role, text string)
	// SetHref points every element with the role class at href
	SetHref(role, href string)
	// SetImageSource sets the src of the element with the given id
	SetImageSource(id, src string)
}

// HTMLDocument adapts a parsed HTML tree to Document
type HTMLDocument struct {
	root *html.Node
}

// ParseDocument reads an HTML page
func ParseDocument(r io.Reader) (*HTMLDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &HTMLDocument{root: root}, nil
}

// Render writes the document back out
func (d *HTMLDocument) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, returning "" if rendering fails
func (d *HTMLDocument) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Property returns the inline custom property on the root element
func (d *HTMLDocument) Property(name string) (string, bool) {
	el := d.element(func(n *html.Node) bool { return n.DataAtom == atom.Html })
	if el == nil {
		return "", false
	}
	for _, decl := range parseStyle(attr(el, "style")) {
		if decl[0] == name {
			return decl[1], true
		}
	}
	return "", false
}

func (d *HTMLDocument) SetProperty(name, value string) {
	el := d.element(func(n *html.Node) bool { return n.DataAtom == atom.Html })
	if el == nil {
		return
	}

	decls := parseStyle(attr(el, "style"))
	found := false
	for i := range decls {
		if decls[i][0] == name {
			decls[i][1] = value
			found = true
		}
	}
	if !found {
		decls = append(decls, [2]string{name, value})
	}

	parts := make([]string, 0, len(decls))
	for _, decl := range decls {
		parts = append(parts, decl[0]+": "+decl[1])
	}
	setAttr(el, "style", strings.Join(parts, "; ")+";")
}

func (d *HTMLDocument) SetText(role, text string) {
	for _, el := range d.elements(hasClass(role)) {
		for c := el.FirstChild; c != nil; {
			next := c.NextSibling
			el.RemoveChild(c)
			c = next
		}
		el.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

func (d *HTMLDocument) SetHref(role, href string) {
	for _, el := range d.elements(hasClass(role)) {
		setAttr(el, "href", href)
	}
}

func (d *HTMLDocument) SetImageSource(id, src string) {
	el := d.element(func(n *html.Node) bool { return attr(n, "id") == id })
	if el != nil {
		setAttr(el, "src", src)
	}
}

func (d *HTMLDocument) element(match func(*html.Node) bool) *html.Node {
	found := d.elements(match)
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

func (d *HTMLDocument) elements(match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return found
}

func hasClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// parseStyle splits an inline style into ordered name/value pairs
func parseStyle(style string) [][2]string {
	var decls [][2]string
	for _, part := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		decls = append(decls, [2]string{name, strings.TrimSpace(value)})
	}
	return decls
}
