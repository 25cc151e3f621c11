/*
Package selector implements CSS selectors and selector matching against
the tree capability interface of the styling engine.

Selectors are immutable once parsed. Every selector list is assigned a
stable integer identity at parse time; the nth-index caches and the rule
store key on this identity rather than on object addresses.

Matching never errors: a malformed selector cannot occur post-parse by
construction, and a selector that does not apply simply does not match.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package selector

import (
	"strings"
	"sync/atomic"

	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'casc.style'.
func tracer() tracing.Trace {
	return tracing.Select("casc.style")
}

// Specificity is the CSS specificity with the convention
// Specificity = [ID count, class/attribute/pseudo-class count, type count].
type Specificity [3]int

// Less returns true if s < other (strictly), false otherwise.
func (s Specificity) Less(other Specificity) bool {
	for i := range s {
		if s[i] < other[i] {
			return true
		}
		if s[i] > other[i] {
			return false
		}
	}
	return false
}

func (s Specificity) add(other Specificity) Specificity {
	for i, sp := range other {
		s[i] += sp
	}
	return s
}

// Combinator joins two compound selectors.
type Combinator uint8

// Combinators, in the order they appear in a selector's combinator list.
const (
	Descendant        Combinator = iota // E F
	Child                               // E > F
	NextSibling                         // E + F
	SubsequentSibling                   // E ~ F
)

// PseudoKind enumerates the pseudo-classes the matcher understands.
type PseudoKind uint8

const (
	PseudoFirstChild PseudoKind = iota
	PseudoLastChild
	PseudoOnlyChild
	PseudoFirstOfType
	PseudoLastOfType
	PseudoOnlyOfType
	PseudoNthChild
	PseudoNthLastChild
	PseudoNthOfType
	PseudoNthLastOfType
	PseudoEmpty
	PseudoRoot
	PseudoHover
	PseudoActive
	PseudoFocus
	PseudoEnabled
	PseudoDisabled
	PseudoChecked
	PseudoVisited
	PseudoLink
	PseudoTarget
)

// isStructural denotes pseudo-classes whose outcome depends on the
// element's ordinal position among its siblings.
func (k PseudoKind) isStructural() bool {
	return k <= PseudoNthLastOfType
}

// Pseudo is one pseudo-class test within a compound selector.
// A and B parameterize the nth-family kinds (An+B); Of carries the
// qualifying selector list of :nth-child(An+B of S).
type Pseudo struct {
	Kind PseudoKind
	A, B int
	Of   *List
}

// AttrTest is one attribute test within a compound selector.
// Op is one of "", "=", "~=", "|=", "^=", "$=", "*=".
type AttrTest struct {
	Name  string
	Op    string
	Value string
}

// Compound is a compound selector: a sequence of simple selectors all of
// which must match one and the same element.
type Compound struct {
	Tag     string // lower-cased type selector, "" matches any type
	ID      string
	Classes []string
	Attrs   []AttrTest
	Pseudos []Pseudo
}

// Selector is one complex selector: compound selectors joined by
// combinators. Compounds are kept in document order, the subject
// compound last; Combinators[i] joins Compounds[i] and Compounds[i+1].
type Selector struct {
	Compounds     []Compound
	Combinators   []Combinator
	PseudoElement string // "" or e.g. "before"
	Spec          Specificity
	usesNth       bool
}

// Specificity returns the precomputed specificity triple.
func (s *Selector) Specificity() Specificity {
	return s.Spec
}

// UsesNth denotes if matching this selector consults sibling ordinals.
// The style-sharing cache refuses to share styles whose matched rules
// used ordinal-dependent selectors.
func (s *Selector) UsesNth() bool {
	return s.usesNth
}

func (s *Selector) String() string {
	var b strings.Builder
	for i, c := range s.Compounds {
		if i > 0 {
			switch s.Combinators[i-1] {
			case Descendant:
				b.WriteByte(' ')
			case Child:
				b.WriteString(" > ")
			case NextSibling:
				b.WriteString(" + ")
			case SubsequentSibling:
				b.WriteString(" ~ ")
			}
		}
		b.WriteString(c.String())
	}
	if s.PseudoElement != "" {
		b.WriteString("::" + s.PseudoElement)
	}
	return b.String()
}

func (c Compound) String() string {
	var b strings.Builder
	if c.Tag != "" {
		b.WriteString(c.Tag)
	}
	if c.ID != "" {
		b.WriteString("#" + c.ID)
	}
	for _, class := range c.Classes {
		b.WriteString("." + class)
	}
	for _, a := range c.Attrs {
		if a.Op == "" {
			b.WriteString("[" + a.Name + "]")
		} else {
			b.WriteString("[" + a.Name + a.Op + "\"" + a.Value + "\"]")
		}
	}
	if b.Len() == 0 && len(c.Pseudos) == 0 {
		return "*"
	}
	return b.String()
}

// --- Selector lists --------------------------------------------------------

// ListID is the stable integer identity of a parsed selector list.
type ListID uint32

var nextListID uint32

// List is a parsed selector list (the comma-separated prelude of a rule).
type List struct {
	Selectors []Selector
	id        ListID
}

// newList registers a selector list, assigning its identity.
func newList(selectors []Selector) *List {
	id := ListID(atomic.AddUint32(&nextListID, 1))
	return &List{Selectors: selectors, id: id}
}

// ID returns the stable identity of this selector list.
func (l *List) ID() ListID {
	return l.id
}

// MaxSpecificity returns the specificity of the most specific selector
// in the list.
func (l *List) MaxSpecificity() Specificity {
	var out Specificity
	for _, sel := range l.Selectors {
		if out.Less(sel.Spec) {
			out = sel.Spec
		}
	}
	return out
}

// UsesNth denotes if any selector of the list consults sibling ordinals.
func (l *List) UsesNth() bool {
	for i := range l.Selectors {
		if l.Selectors[i].usesNth {
			return true
		}
	}
	return false
}

func (l *List) String() string {
	parts := make([]string, len(l.Selectors))
	for i := range l.Selectors {
		parts[i] = l.Selectors[i].String()
	}
	return strings.Join(parts, ", ")
}
