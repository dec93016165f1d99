package dom

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// ClickAttr marks an element that has a click handler bound to it
const ClickAttr = "data-on-click"

var ErrUnknownHandler = errors.New("no handler bound")

// Handler reacts to an event on a bound element
type Handler func(ctx context.Context) error

// Patch carries the current state of one region for a client to apply
type Patch struct {
	Region string `json:"region"`
	HTML   string `json:"html"`
	Hidden bool   `json:"hidden"`
}

// Document is a server-side page. Tree mutations are serialized through Mutate and
// each batch of changes is reported to the observer while the lock is still held, so
// observers see patches in mutation order.
type Document struct {
	mu       sync.Mutex
	doc      *goquery.Document
	regions  map[string]*Region
	dirty    []string
	observer func([]Patch)

	hmu      sync.Mutex
	handlers map[string]Handler
	next     uint64
}

// Parse builds a document from page markup
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	return &Document{
		doc:      doc,
		regions:  make(map[string]*Region),
		handlers: make(map[string]Handler),
	}, nil
}

// Observe registers fn to receive patches after every Mutate that changed a region
func (d *Document) Observe(fn func([]Patch)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observer = fn
}

// Region returns a handle to the element with the given id
func (d *Document) Region(id string) (*Region, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if r, ok := d.regions[id]; ok {
		return r, nil
	}

	sel := d.doc.Find("#" + id).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("region %q not found", id)
	}

	r := &Region{doc: d, id: id, sel: sel}
	d.regions[id] = r
	return r, nil
}

// Mutate runs fn with exclusive access to the tree
func (d *Document) Mutate(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fn()

	if d.observer == nil || len(d.dirty) == 0 {
		return
	}
	d.observer(d.flush())
}

// Flush returns patches for regions changed since the last flush
func (d *Document) Flush() []Patch {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flush()
}

func (d *Document) flush() []Patch {
	patches := make([]Patch, 0, len(d.dirty))
	for _, id := range d.dirty {
		r := d.regions[id]
		markup, _ := r.sel.Html()
		patches = append(patches, Patch{
			Region: id,
			HTML:   markup,
			Hidden: !r.visible(),
		})
	}
	d.dirty = d.dirty[:0]
	return patches
}

func (d *Document) markDirty(id string) {
	for _, have := range d.dirty {
		if have == id {
			return
		}
	}
	d.dirty = append(d.dirty, id)
}

// HTML renders the whole document
func (d *Document) HTML() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.Html()
}

// Dispatch runs the handler bound under handle. The handler runs without the tree lock held.
func (d *Document) Dispatch(ctx context.Context, handle string) error {
	d.hmu.Lock()
	h, ok := d.handlers[handle]
	d.hmu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHandler, handle)
	}
	return h(ctx)
}

// Handlers reports how many handlers are currently bound
func (d *Document) Handlers() int {
	d.hmu.Lock()
	defer d.hmu.Unlock()
	return len(d.handlers)
}

func (d *Document) bind(el *Element, h Handler) string {
	d.hmu.Lock()
	defer d.hmu.Unlock()

	d.next++
	handle := "h" + strconv.FormatUint(d.next, 10)
	d.handlers[handle] = h
	el.SetAttr(ClickAttr, handle)
	return handle
}

func (d *Document) unbind(handles []string) {
	d.hmu.Lock()
	defer d.hmu.Unlock()
	for _, h := range handles {
		delete(d.handlers, h)
	}
}
