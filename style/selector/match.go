package selector

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"strings"

	"github.com/npillmayer/casc/dom"
)

// Matches evaluates one selector against one element. Compounds are
// matched right-to-left: the rightmost compound against the subject
// element, then combinators walk to ancestors and preceding siblings.
// nth may be nil; ordinals are then computed without memoization.
func Matches[E dom.Element[E]](s *Selector, e E, nth *NthCaches) bool {
	if len(s.Compounds) == 0 {
		return false
	}
	return matchFrom(s.Compounds, s.Combinators, len(s.Compounds)-1, e, nth)
}

// MatchList evaluates a selector list and returns the greatest
// specificity among the matching selectors.
func MatchList[E dom.Element[E]](l *List, e E, nth *NthCaches) (bool, Specificity) {
	var maxSpec Specificity
	found := false
	for i := range l.Selectors {
		sel := &l.Selectors[i]
		if Matches(sel, e, nth) {
			found = true
			if maxSpec.Less(sel.Spec) {
				maxSpec = sel.Spec
			}
		}
	}
	return found, maxSpec
}

func matchFrom[E dom.Element[E]](cs []Compound, combs []Combinator, i int, e E, nth *NthCaches) bool {
	if !matchCompound(&cs[i], e, nth) {
		return false
	}
	if i == 0 {
		return true
	}
	switch combs[i-1] {
	case Child:
		p, ok := e.ParentElement()
		if !ok {
			return false
		}
		return matchFrom(cs, combs, i-1, p, nth)
	case Descendant:
		p, ok := e.ParentElement()
		for ok {
			if matchFrom(cs, combs, i-1, p, nth) {
				return true
			}
			p, ok = p.ParentElement()
		}
		return false
	case NextSibling:
		sib, ok := precedingSibling(e)
		if !ok {
			return false
		}
		return matchFrom(cs, combs, i-1, sib, nth)
	case SubsequentSibling:
		sib, ok := precedingSibling(e)
		for ok {
			if matchFrom(cs, combs, i-1, sib, nth) {
				return true
			}
			sib, ok = precedingSibling(sib)
		}
		return false
	}
	return false
}

func precedingSibling[E dom.Element[E]](e E) (E, bool) {
	var none E
	parent, ok := e.ParentElement()
	if !ok {
		return none, false
	}
	siblings := parent.ChildElements()
	for i := range siblings {
		if siblings[i].Opaque() == e.Opaque() {
			if i == 0 {
				return none, false
			}
			return siblings[i-1], true
		}
	}
	return none, false
}

func matchCompound[E dom.Element[E]](c *Compound, e E, nth *NthCaches) bool {
	if c.Tag != "" && c.Tag != e.LocalName() {
		return false
	}
	if c.ID != "" && c.ID != e.ID() {
		return false
	}
	if len(c.Classes) > 0 {
		classes := e.Classes()
		for _, want := range c.Classes {
			if !containsString(classes, want) {
				return false
			}
		}
	}
	for i := range c.Attrs {
		if !matchAttr(&c.Attrs[i], e) {
			return false
		}
	}
	for i := range c.Pseudos {
		if !matchPseudo(&c.Pseudos[i], e, nth) {
			return false
		}
	}
	return true
}

func matchAttr[E dom.Element[E]](a *AttrTest, e E) bool {
	v, ok := e.Attr(a.Name)
	if !ok {
		return false
	}
	switch a.Op {
	case "":
		return true
	case "=":
		return v == a.Value
	case "~=":
		return containsString(strings.Fields(v), a.Value)
	case "|=":
		return v == a.Value || strings.HasPrefix(v, a.Value+"-")
	case "^=":
		return a.Value != "" && strings.HasPrefix(v, a.Value)
	case "$=":
		return a.Value != "" && strings.HasSuffix(v, a.Value)
	case "*=":
		return a.Value != "" && strings.Contains(v, a.Value)
	}
	return false
}

func matchPseudo[E dom.Element[E]](p *Pseudo, e E, nth *NthCaches) bool {
	switch p.Kind {
	case PseudoFirstChild:
		return ordinal(e, false, false, nth) == 1
	case PseudoLastChild:
		return ordinal(e, true, false, nth) == 1
	case PseudoOnlyChild:
		return ordinal(e, false, false, nth) == 1 && ordinal(e, true, false, nth) == 1
	case PseudoFirstOfType:
		return ordinal(e, false, true, nth) == 1
	case PseudoLastOfType:
		return ordinal(e, true, true, nth) == 1
	case PseudoOnlyOfType:
		return ordinal(e, false, true, nth) == 1 && ordinal(e, true, true, nth) == 1
	case PseudoNthChild, PseudoNthLastChild:
		fromEnd := p.Kind == PseudoNthLastChild
		if p.Of != nil {
			return nthMatches(p.A, p.B, ordinalOf(e, p.Of, fromEnd, nth))
		}
		return nthMatches(p.A, p.B, ordinal(e, fromEnd, false, nth))
	case PseudoNthOfType, PseudoNthLastOfType:
		fromEnd := p.Kind == PseudoNthLastOfType
		return nthMatches(p.A, p.B, ordinal(e, fromEnd, true, nth))
	case PseudoEmpty:
		return e.IsEmpty()
	case PseudoRoot:
		_, hasParent := e.ParentElement()
		return !hasParent
	case PseudoHover:
		return e.State().Contains(dom.StateHover)
	case PseudoActive:
		return e.State().Contains(dom.StateActive)
	case PseudoFocus:
		return e.State().Contains(dom.StateFocus)
	case PseudoEnabled:
		return e.State().Contains(dom.StateEnabled)
	case PseudoDisabled:
		return e.State().Contains(dom.StateDisabled)
	case PseudoChecked:
		return e.State().Contains(dom.StateChecked)
	case PseudoVisited:
		return e.State().Contains(dom.StateVisited)
	case PseudoLink:
		return e.State().Contains(dom.StateLink)
	case PseudoTarget:
		return e.State().Contains(dom.StateTarget)
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
