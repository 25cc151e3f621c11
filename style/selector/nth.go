package selector

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/casc/dom"
)

// Matching an nth-family pseudo-class needs the 1-based ordinal position
// of an element among its siblings. Scanning the sibling list on every
// call would make matching quadratic over large sibling lists, so
// ordinals are memoized: one cache each for the four argument-less
// nth-family flavours, plus a dedicated cache per distinct
// ":nth-child(An+B of S)" selector list, keyed by the list's identity
// (the ordinal set differs per qualifying selector).
//
// An entry is valid only as long as the sibling set of its node is
// stable. Invalidation is coarse: any sibling mutation drops the whole
// cache. The scheduler serializes tree mutation against style passes, so
// within one pass entries never go stale.

// nthFlavour indexes the four always-present plain caches.
type nthFlavour uint8

const (
	nthChild nthFlavour = iota
	nthLastChild
	nthOfType
	nthLastOfType
)

func flavourOf(fromEnd, ofType bool) nthFlavour {
	switch {
	case !fromEnd && !ofType:
		return nthChild
	case fromEnd && !ofType:
		return nthLastChild
	case !fromEnd:
		return nthOfType
	}
	return nthLastOfType
}

// ofKey keys the per-selector-list caches; it distinguishes the
// from-end variant.
type ofKey struct {
	list    ListID
	fromEnd bool
}

// NthCaches memoizes sibling ordinals for the nth-family pseudo-classes.
// An NthCaches value is not safe for concurrent use; the scheduler hands
// each worker its own instance.
type NthCaches struct {
	plain [4]map[dom.OpaqueNode]int
	of    map[ofKey]map[dom.OpaqueNode]int
}

// NewNthCaches creates empty nth-index caches.
func NewNthCaches() *NthCaches {
	c := &NthCaches{of: make(map[ofKey]map[dom.OpaqueNode]int)}
	for i := range c.plain {
		c.plain[i] = make(map[dom.OpaqueNode]int)
	}
	return c
}

// Invalidate drops all memoized ordinals. Called whenever the sibling
// set of any cached node may have changed. Coarse, but correct: a finer
// per-parent policy would be an optimization, not a behavior change.
func (c *NthCaches) Invalidate() {
	for i := range c.plain {
		c.plain[i] = make(map[dom.OpaqueNode]int)
	}
	c.of = make(map[ofKey]map[dom.OpaqueNode]int)
}

func (c *NthCaches) lookupPlain(f nthFlavour, n dom.OpaqueNode) (int, bool) {
	if c == nil {
		return 0, false
	}
	ord, ok := c.plain[f][n]
	return ord, ok
}

func (c *NthCaches) storePlain(f nthFlavour, n dom.OpaqueNode, ord int) {
	if c == nil {
		return
	}
	c.plain[f][n] = ord
}

func (c *NthCaches) lookupOf(k ofKey, n dom.OpaqueNode) (int, bool) {
	if c == nil {
		return 0, false
	}
	ord, ok := c.of[k][n]
	return ord, ok
}

func (c *NthCaches) storeOf(k ofKey, n dom.OpaqueNode, ord int) {
	if c == nil {
		return
	}
	m := c.of[k]
	if m == nil {
		m = make(map[dom.OpaqueNode]int)
		c.of[k] = m
	}
	m[n] = ord
}

// ordinal returns the 1-based position of e among its siblings, from the
// start or from the end, over all siblings or only those of e's type.
// The root element has ordinal 1. On a cache miss the whole sibling list
// is scanned once and every sibling's ordinal is memoized.
func ordinal[E dom.Element[E]](e E, fromEnd, ofType bool, c *NthCaches) int {
	f := flavourOf(fromEnd, ofType)
	if ord, ok := c.lookupPlain(f, e.Opaque()); ok {
		return ord
	}
	parent, ok := e.ParentElement()
	if !ok {
		c.storePlain(f, e.Opaque(), 1)
		return 1
	}
	siblings := parent.ChildElements()
	result := 0
	count := 0
	for i := range siblings {
		sib := siblings[i]
		if fromEnd {
			sib = siblings[len(siblings)-1-i]
		}
		if ofType && !sameType(sib, e) {
			continue
		}
		count++
		c.storePlain(f, sib.Opaque(), count)
		if sib.Opaque() == e.Opaque() {
			result = count
		}
	}
	return result
}

// ordinalOf returns the 1-based position of e among those siblings
// matching the qualifying selector list, or 0 if e itself does not
// match. Uses the dedicated per-list cache bucket.
func ordinalOf[E dom.Element[E]](e E, of *List, fromEnd bool, c *NthCaches) int {
	key := ofKey{list: of.ID(), fromEnd: fromEnd}
	if ord, ok := c.lookupOf(key, e.Opaque()); ok {
		return ord
	}
	matches := func(el E) bool {
		m, _ := MatchList(of, el, c)
		return m
	}
	parent, ok := e.ParentElement()
	if !ok {
		ord := 0
		if matches(e) {
			ord = 1
		}
		c.storeOf(key, e.Opaque(), ord)
		return ord
	}
	siblings := parent.ChildElements()
	result := 0
	count := 0
	for i := range siblings {
		sib := siblings[i]
		if fromEnd {
			sib = siblings[len(siblings)-1-i]
		}
		if !matches(sib) {
			c.storeOf(key, sib.Opaque(), 0)
			continue
		}
		count++
		c.storeOf(key, sib.Opaque(), count)
		if sib.Opaque() == e.Opaque() {
			result = count
		}
	}
	return result
}

// ofType sibling comparison; type identity is local name + namespace.
func sameType[E dom.Element[E]](a, b E) bool {
	return a.LocalName() == b.LocalName() && a.Namespace() == b.Namespace()
}

// nthMatches reports wether ordinal n is in the set {An+B | n >= 0}.
func nthMatches(a, b, n int) bool {
	if n <= 0 {
		return false
	}
	if a == 0 {
		return n == b
	}
	if (n-b)%a != 0 {
		return false
	}
	return (n-b)/a >= 0
}
