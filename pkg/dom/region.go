package dom

import (
	"github.com/PuerkitoBio/goquery"
)

// Region is a container in a Document that renderers clear and repopulate.
// Region methods must run inside Document.Mutate.
type Region struct {
	doc *Document
	id  string
	sel *goquery.Selection
}

func (r *Region) ID() string {
	return r.id
}

// Empty removes all children and drops handlers bound inside them
func (r *Region) Empty() {
	var handles []string
	r.sel.Find("[" + ClickAttr + "]").Each(func(_ int, s *goquery.Selection) {
		if h, ok := s.Attr(ClickAttr); ok {
			handles = append(handles, h)
		}
	})
	r.doc.unbind(handles)

	r.sel.Empty()
	r.doc.markDirty(r.id)
}

// Append adds el as the last child
func (r *Region) Append(el *Element) {
	r.sel.AppendNodes(el.node)
	r.doc.markDirty(r.id)
}

// Bind registers h as the click handler of el and returns its handle
func (r *Region) Bind(el *Element, h Handler) string {
	return r.doc.bind(el, h)
}

// Show makes the region visible
func (r *Region) Show() {
	if !r.visible() {
		r.sel.RemoveAttr("hidden")
		r.doc.markDirty(r.id)
	}
}

// Hide hides the region without clearing it
func (r *Region) Hide() {
	if r.visible() {
		r.sel.SetAttr("hidden", "")
		r.doc.markDirty(r.id)
	}
}

func (r *Region) Visible() bool {
	return r.visible()
}

func (r *Region) visible() bool {
	_, hidden := r.sel.Attr("hidden")
	return !hidden
}

// Find queries within the region
func (r *Region) Find(selector string) *goquery.Selection {
	return r.sel.Find(selector)
}

// HTML renders the region's children
func (r *Region) HTML() (string, error) {
	return r.sel.Html()
}
