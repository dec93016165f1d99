package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is a detached node under construction. It joins a document through Region.Append.
type Element struct {
	node *html.Node
}

// NewElement creates an element with the given tag name
func NewElement(tag string) *Element {
	return &Element{
		node: &html.Node{
			Type:     html.ElementNode,
			Data:     tag,
			DataAtom: atom.Lookup([]byte(tag)),
		},
	}
}

// Attr returns the value of key and whether it is set
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets key to val, replacing an existing value
func (e *Element) SetAttr(key, val string) *Element {
	for i, a := range e.node.Attr {
		if a.Key == key {
			e.node.Attr[i].Val = val
			return e
		}
	}

	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: val})
	return e
}

// AddClass adds each class not already present
func (e *Element) AddClass(classes ...string) *Element {
	current, _ := e.Attr("class")
	existing := strings.Fields(current)

	for _, c := range classes {
		found := false
		for _, have := range existing {
			if have == c {
				found = true
				break
			}
		}
		if !found {
			existing = append(existing, c)
		}
	}

	return e.SetAttr("class", strings.Join(existing, " "))
}

// SetText replaces the children with a single text node. The text is escaped on render.
func (e *Element) SetText(text string) *Element {
	e.clear()
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return e
}

// SetHTML replaces the children with markup parsed in the context of this element.
// The markup is trusted and inserted as-is.
func (e *Element) SetHTML(markup string) *Element {
	e.clear()

	context := &html.Node{Type: html.ElementNode, Data: e.node.Data, DataAtom: e.node.DataAtom}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		// only reader failures surface here, and a strings.Reader has none
		return e.SetText(markup)
	}

	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return e
}

// Append adds children in order
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		e.node.AppendChild(c.node)
	}
	return e
}

func (e *Element) clear() {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
}
