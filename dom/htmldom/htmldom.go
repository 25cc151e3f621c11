/*
Package htmldom binds parse trees of golang.org/x/net/html to the tree
capability interface of the styling engine.

The adapter wraps every element node of an HTML parse tree in a thin
handle implementing dom.Element. Handles are created once, up front, and
assigned consecutive opaque identities, so that a pointer comparison and
a map lookup are all the engine ever needs.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package htmldom

import (
	"strings"
	"sync"

	"github.com/npillmayer/casc/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document wraps an HTML parse tree for consumption by the styling engine.
type Document struct {
	root   *Elem
	lock   sync.RWMutex
	quirks bool
	elems  map[*html.Node]*Elem
}

// Elem is a styling-engine view onto one element node of an HTML parse
// tree. Elem implements dom.Element[*Elem].
type Elem struct {
	doc      *Document
	h        *html.Node
	id       dom.OpaqueNode
	parent   *Elem
	children []*Elem
	state    dom.ElementState
}

// FromHTML wraps a parsed HTML document. doc should be the document node
// as returned by html.Parse, or any element node to treat as root.
func FromHTML(docnode *html.Node) *Document {
	d := &Document{elems: make(map[*html.Node]*Elem)}
	root := docnode
	if root.Type == html.DocumentNode {
		for ch := root.FirstChild; ch != nil; ch = ch.NextSibling {
			if ch.Type == html.ElementNode {
				root = ch
				break
			}
		}
	}
	var serial dom.OpaqueNode
	d.root = d.wrap(root, nil, &serial)
	return d
}

func (d *Document) wrap(h *html.Node, parent *Elem, serial *dom.OpaqueNode) *Elem {
	*serial++
	e := &Elem{doc: d, h: h, id: *serial, parent: parent}
	d.elems[h] = e
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode {
			e.children = append(e.children, d.wrap(ch, e, serial))
		}
	}
	return e
}

// DocumentElement is part of interface dom.Document.
func (d *Document) DocumentElement() *Elem {
	return d.root
}

// SharedLock is part of interface dom.Document.
func (d *Document) SharedLock() *sync.RWMutex {
	return &d.lock
}

// IsHTMLDocument is part of interface dom.Document.
func (d *Document) IsHTMLDocument() bool {
	return d.root != nil && d.root.h.DataAtom == atom.Html
}

// QuirksMode is part of interface dom.Document.
func (d *Document) QuirksMode() bool {
	return d.quirks
}

// SetQuirksMode flags the document as a quirks-mode document.
func (d *Document) SetQuirksMode(quirks bool) {
	d.quirks = quirks
}

// ElemFor returns the element handle for an HTML node, if the node is an
// element node of this document.
func (d *Document) ElemFor(h *html.Node) (*Elem, bool) {
	e, ok := d.elems[h]
	return e, ok
}

// --- Interface dom.Element -------------------------------------------------

// Opaque is part of interface dom.Element.
func (e *Elem) Opaque() dom.OpaqueNode {
	return e.id
}

// ParentElement is part of interface dom.Element.
func (e *Elem) ParentElement() (*Elem, bool) {
	return e.parent, e.parent != nil
}

// ChildElements is part of interface dom.Element.
func (e *Elem) ChildElements() []*Elem {
	return e.children
}

// LocalName is part of interface dom.Element.
func (e *Elem) LocalName() string {
	return strings.ToLower(e.h.Data)
}

// Namespace is part of interface dom.Element.
func (e *Elem) Namespace() string {
	return e.h.Namespace
}

// Attr is part of interface dom.Element.
func (e *Elem) Attr(name string) (string, bool) {
	for _, a := range e.h.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// ID is part of interface dom.Element.
func (e *Elem) ID() string {
	v, _ := e.Attr("id")
	return v
}

// Classes is part of interface dom.Element.
func (e *Elem) Classes() []string {
	v, ok := e.Attr("class")
	if !ok {
		return nil
	}
	return strings.Fields(v)
}

// HasInlineStyle is part of interface dom.Element.
func (e *Elem) HasInlineStyle() bool {
	_, ok := e.Attr("style")
	return ok
}

// InlineStyle is part of interface dom.Element.
func (e *Elem) InlineStyle() string {
	v, _ := e.Attr("style")
	return v
}

// State is part of interface dom.Element.
func (e *Elem) State() dom.ElementState {
	return e.state
}

// SetState sets the user-interaction state flags of an element.
// Clients call this in response to user interaction, before triggering
// a new style pass.
func (e *Elem) SetState(state dom.ElementState) {
	e.state = state
}

// SetAttr sets or replaces an attribute of the underlying HTML node.
// Callers must hold the document's write lock if a styling pass may be
// running concurrently.
func (e *Elem) SetAttr(name, value string) {
	for i := range e.h.Attr {
		if e.h.Attr[i].Key == name {
			e.h.Attr[i].Val = value
			return
		}
	}
	e.h.Attr = append(e.h.Attr, html.Attribute{Key: name, Val: value})
}

// IsEmpty is part of interface dom.Element.
func (e *Elem) IsEmpty() bool {
	return e.h.FirstChild == nil
}

func (e *Elem) String() string {
	return "<" + e.LocalName() + ">"
}

func assertElement[E dom.Element[E]]() {}

var _ = assertElement[*Elem]
var _ dom.Document[*Elem] = &Document{}
