package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "sync"

// OpaqueNode is a stable element identity, unique within a document.
// Embedders assign it; the engine treats it as opaque and uses it as a
// cache- and result-key only.
type OpaqueNode uint64

// ElementState holds the user-interaction state flags of an element,
// as queried by dynamic pseudo-classes.
type ElementState uint16

// State flags for Element.State().
const (
	StateHover ElementState = 1 << iota
	StateActive
	StateFocus
	StateEnabled
	StateDisabled
	StateChecked
	StateVisited
	StateLink
	StateTarget
)

// Contains checks if all flags of s2 are set in s.
func (s ElementState) Contains(s2 ElementState) bool {
	return s&s2 == s2
}

// Element is the read-only capability interface a client's DOM has to
// implement for the styling engine to operate on it. The type parameter
// is the implementing type itself, so that navigation methods return
// elements of the client's concrete type.
//
// Implementations must be cheap to copy (a pointer or a small handle)
// and must return stable results for the duration of one style pass:
// the engine reads the tree concurrently and never mutates it.
type Element[E comparable] interface {
	comparable
	// Opaque returns the stable identity of this element.
	Opaque() OpaqueNode
	// ParentElement returns the parent, or ok=false for the root.
	ParentElement() (E, bool)
	// ChildElements returns the element children in document order.
	ChildElements() []E
	// LocalName returns the lower-cased tag name, e.g. "li".
	LocalName() string
	// Namespace returns the namespace URI, or "" for the HTML namespace.
	Namespace() string
	// Attr returns the value of an attribute.
	Attr(name string) (string, bool)
	// ID returns the value of the id attribute, or "".
	ID() string
	// Classes returns the entries of the class attribute.
	Classes() []string
	// HasInlineStyle denotes if a style attribute is present.
	HasInlineStyle() bool
	// InlineStyle returns the raw declaration text of the style attribute.
	InlineStyle() string
	// State returns the user-interaction state flags.
	State() ElementState
	// IsEmpty denotes if the element has no child nodes at all,
	// text nodes included (pseudo-class :empty).
	IsEmpty() bool
}

// Document is the capability interface for a document as a whole.
type Document[E comparable] interface {
	// DocumentElement returns the root element.
	DocumentElement() E
	// SharedLock returns the document-wide lock. The engine takes the
	// read side for the duration of a traversal; embedders take the
	// write side to mutate the tree.
	SharedLock() *sync.RWMutex
	// IsHTMLDocument denotes if this is an HTML document (as opposed
	// to a generic XML document). Type and class matching is
	// case-insensitive in HTML documents.
	IsHTMLDocument() bool
	// QuirksMode denotes if the document is in quirks mode.
	QuirksMode() bool
}
