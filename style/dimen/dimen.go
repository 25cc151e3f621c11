/*
Package dimen provides an option type for CSS dimensions.

A CSS length like "width: 50%" cannot be resolved in isolation: it may be
auto, a keyword, relative to a font size or to a containing dimension.
DimenT captures the specified flavour of a dimension and defers resolution
until layout context is known.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dimen

import (
	"strconv"
	"strings"

	"github.com/npillmayer/casc/au"
	"github.com/npillmayer/tyse/core/percent"
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	kindMask      uint32 = 0x000f

	dimenEM      uint32 = 0x0100
	dimenREM     uint32 = 0x0200
	dimenVW      uint32 = 0x0300
	dimenVH      uint32 = 0x0400
	dimenPercent uint32 = 0x0500
	relativeMask uint32 = 0xff00
)

// DimenT is an option type for CSS dimensions.
//
//	type DimenT
//	    = Auto
//	    | Inherit
//	    | Initial
//	    | JustDimen au
//	    | Percentage Percent
//	    | FontRel unit
//	    | ViewRel unit
type DimenT struct {
	d       au.Au
	factor  float64 // scale for relative units, percentage points for %
	percent percent.Percent
	flags   uint32
}

// Auto returns the dimension "auto".
func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

// Inherit returns the explicit inheritance-kind "inherit".
func Inherit() DimenT {
	return DimenT{flags: dimenInherit}
}

// Initial returns the explicit inheritance-kind "initial".
func Initial() DimenT {
	return DimenT{flags: dimenInitial}
}

// JustDimen creates a CSS dimension with a fixed value of x.
func JustDimen(x au.Au) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Percentage creates a CSS dimension with a %-relative value of n points.
func Percentage(n int) DimenT {
	return DimenT{factor: float64(n), percent: percent.FromInt(n), flags: dimenPercent}
}

// Em creates a font-size-relative CSS dimension.
func Em(factor float64) DimenT {
	return DimenT{factor: factor, flags: dimenEM}
}

// Rem creates a root-font-size-relative CSS dimension.
func Rem(factor float64) DimenT {
	return DimenT{factor: factor, flags: dimenREM}
}

// Vw creates a viewport-width-relative CSS dimension (n in vw units).
func Vw(n float64) DimenT {
	return DimenT{factor: n, flags: dimenVW}
}

// Vh creates a viewport-height-relative CSS dimension (n in vh units).
func Vh(n float64) DimenT {
	return DimenT{factor: n, flags: dimenVH}
}

// Dimen parses a specified CSS dimension value. Unparsable input yields
// Initial(), keeping the resolver total: value validation is the parser's
// business, not ours.
func Dimen(value string) DimenT {
	value = strings.TrimSpace(strings.ToLower(value))
	switch value {
	case "auto":
		return Auto()
	case "inherit":
		return Inherit()
	case "initial", "unset", "":
		return Initial()
	}
	for _, suf := range [...]string{"%", "px", "pt", "em", "rem", "vw", "vh"} {
		if !strings.HasSuffix(value, suf) {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSuffix(value, suf), 64)
		if err != nil {
			break
		}
		switch suf {
		case "%":
			return Percentage(int(n))
		case "px":
			return JustDimen(au.FromPx(n))
		case "pt":
			return JustDimen(au.FromPt(n))
		case "em":
			return Em(n)
		case "rem":
			return Rem(n)
		case "vw":
			return Vw(n)
		case "vh":
			return Vh(n)
		}
	}
	if n, err := strconv.ParseFloat(value, 64); err == nil && n == 0 {
		return JustDimen(0) // unitless zero is a valid length
	}
	return Initial()
}

// ResolveContext carries the reference lengths needed to turn a relative
// dimension into app units.
type ResolveContext struct {
	PercentBase  au.Au // containing dimension for percentages
	FontSize     au.Au // for em
	RootFontSize au.Au // for rem
	ViewportW    au.Au // for vw
	ViewportH    au.Au // for vh
}

// Resolve computes the app-unit value of a dimension. Auto and the
// inheritance-kinds resolve to 0; callers are expected to pattern-match
// those kinds before resolving.
func (d DimenT) Resolve(ctx ResolveContext) au.Au {
	switch {
	case d.flags&kindMask == dimenAbsolute:
		return d.d
	case d.flags&relativeMask == dimenPercent:
		return ctx.PercentBase.Scale(d.factor / 100)
	case d.flags&relativeMask == dimenEM:
		return ctx.FontSize.Scale(d.factor)
	case d.flags&relativeMask == dimenREM:
		return ctx.RootFontSize.Scale(d.factor)
	case d.flags&relativeMask == dimenVW:
		return ctx.ViewportW.Scale(d.factor / 100)
	case d.flags&relativeMask == dimenVH:
		return ctx.ViewportH.Scale(d.factor / 100)
	}
	return 0
}

// IsAuto denotes if this dimension is "auto".
func (d DimenT) IsAuto() bool {
	return d.flags&kindMask == dimenAuto
}

// IsInherit denotes if this dimension is of inheritance-kind "inherit".
func (d DimenT) IsInherit() bool {
	return d.flags&kindMask == dimenInherit
}

// IsInitial denotes if this dimension is of inheritance-kind "initial".
func (d DimenT) IsInitial() bool {
	return d.flags&kindMask == dimenInitial
}

// IsRelative denotes if this dimension needs a reference length.
func (d DimenT) IsRelative() bool {
	return d.flags&relativeMask > 0
}

// ---------------------------------------------------------------------------

// Match starts a matching expression on a dimension.
func (d DimenT) Match() *Matcher {
	return &Matcher{dimen: d}
}

// Matcher is a helper for pattern-matching a DimenT.
type Matcher struct {
	dimen DimenT
}

// IsKind matches if the receiver's dimension has the same kind as d.
func (m *Matcher) IsKind(d DimenT) *Matcher {
	switch {
	case (m.dimen.flags & kindMask) == (d.flags & kindMask):
		return m
	case (m.dimen.flags&relativeMask > 0) && (d.flags&relativeMask > 0):
		if (m.dimen.flags & relativeMask) != (d.flags & relativeMask) {
			return nil
		}
		return m
	}
	return nil
}

// Just matches a fixed dimension and puts its value into x.
func (m *Matcher) Just(x *au.Au) *Matcher {
	if m.dimen.flags&dimenAbsolute > 0 {
		if x != nil {
			*x = m.dimen.d
		}
		return m
	}
	return nil
}

// Percentage matches a %-relative dimension and puts its value into p.
func (m *Matcher) Percentage(p *percent.Percent) *Matcher {
	if m.dimen.flags&relativeMask == dimenPercent {
		if p != nil {
			*p = m.dimen.percent
		}
		return m
	}
	return nil
}

func (d DimenT) String() string {
	switch d.flags & kindMask {
	case dimenAuto:
		return "auto"
	case dimenInherit:
		return "inherit"
	case dimenInitial:
		return "initial"
	case dimenAbsolute:
		return d.d.String()
	}
	switch d.flags & relativeMask {
	case dimenPercent:
		return d.percent.String()
	case dimenEM:
		return strconv.FormatFloat(d.factor, 'g', -1, 64) + "em"
	case dimenREM:
		return strconv.FormatFloat(d.factor, 'g', -1, 64) + "rem"
	case dimenVW:
		return strconv.FormatFloat(d.factor, 'g', -1, 64) + "vw"
	case dimenVH:
		return strconv.FormatFloat(d.factor, 'g', -1, 64) + "vh"
	}
	return "<none>"
}
