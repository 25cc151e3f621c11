/*
Package damage tracks restyle damage.

When a node's style changes, downstream layout and paint passes need not
always redo all of their work: a pure color change requires repainting
only, while a width change forces a reflow of boxes. Damage values form
a small ordered lattice

	NoDamage < RepaintDamage < ReflowDamage < MatchSelectorsDamage

with a join operation for accumulating damage over a subtree. Each
level includes all cheaper levels, so joining is plain bitwise union.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package damage

import (
	"github.com/npillmayer/casc/style"
)

// RestyleDamage is the minimum work a layout/paint pass has to redo for
// one node. The encoding is cumulative: every damage level carries the
// bits of all lower levels.
type RestyleDamage uint8

const (
	NoDamage             RestyleDamage = 0
	RepaintDamage        RestyleDamage = 1 << 0
	ReflowDamage         RestyleDamage = 1<<1 | RepaintDamage
	MatchSelectorsDamage RestyleDamage = 1<<2 | ReflowDamage
)

// Join accumulates two damage values. Join is the lattice maximum:
// commutative, idempotent, with NoDamage as neutral element.
func (d RestyleDamage) Join(other RestyleDamage) RestyleDamage {
	return d | other
}

// Includes tells if d covers all work implied by other.
func (d RestyleDamage) Includes(other RestyleDamage) bool {
	return d&other == other
}

func (d RestyleDamage) String() string {
	switch {
	case d.Includes(MatchSelectorsDamage):
		return "match-selectors"
	case d.Includes(ReflowDamage):
		return "reflow"
	case d.Includes(RepaintDamage):
		return "repaint"
	}
	return "none"
}

// ForAttributeChange returns the damage implied by a change of the
// named attribute, before any restyling happened. Changes to
// attributes that selectors may test invalidate previous match
// results.
func ForAttributeChange(name string) RestyleDamage {
	switch name {
	case "style":
		return ReflowDamage
	default:
		return MatchSelectorsDamage
	}
}

// Diff computes the damage implied by replacing computed style old with
// style now. A nil old style means the node has not been styled before
// and needs the full treatment.
func Diff(old, now *style.ComputedValues) RestyleDamage {
	if old == nil || now == nil {
		return MatchSelectorsDamage
	}
	if old == now {
		return NoDamage
	}
	d := NoDamage
	if ot, nt := old.Text(), now.Text(); ot != nt {
		if ot.FontSize != nt.FontSize || ot.LetterSpacing != nt.LetterSpacing ||
			ot.WordSpacing != nt.WordSpacing || ot.WhiteSpace != nt.WhiteSpace ||
			ot.Direction != nt.Direction {
			d = d.Join(ReflowDamage)
		} else if ot.Color != nt.Color {
			d = d.Join(RepaintDamage)
		}
	}
	if ob, nb := old.InheritedBox(), now.InheritedBox(); ob != nb && *ob != *nb {
		d = d.Join(RepaintDamage)
	}
	if ol, nl := old.List(), now.List(); ol != nl && *ol != *nl {
		d = d.Join(ReflowDamage)
	}
	if ob, nb := old.Box(), now.Box(); ob != nb && *ob != *nb {
		d = d.Join(ReflowDamage)
	}
	if om, nm := old.Margins(), now.Margins(); om != nm && *om != *nm {
		d = d.Join(ReflowDamage)
	}
	if op, np := old.Padding(), now.Padding(); op != np && *op != *np {
		d = d.Join(ReflowDamage)
	}
	if oc, nc := old.Column(), now.Column(); oc != nc && *oc != *nc {
		d = d.Join(ReflowDamage)
	}
	if oo, no := old.Outline(), now.Outline(); oo != no && *oo != *no {
		d = d.Join(RepaintDamage)
	}
	if ob, nb := old.Background(), now.Background(); ob != nb && *ob != *nb {
		d = d.Join(RepaintDamage)
	}
	if ou, nu := old.UI(), now.UI(); ou != nu && *ou != *nu {
		d = d.Join(RepaintDamage)
	}
	return d
}
