package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"strconv"
	"strings"

	"github.com/npillmayer/casc/au"
	"github.com/npillmayer/casc/style/dimen"
)

// Context carries the device-level reference values needed for
// computed-value derivation. Clients construct it once per style pass.
type Context struct {
	ViewportW    au.Au
	ViewportH    au.Au
	RootFontSize au.Au // 0 = default (16px)
}

func (ctx Context) rootFontSize() au.Au {
	if ctx.RootFontSize == 0 {
		return au.FromPx(16)
	}
	return ctx.RootFontSize
}

// Shared allocations for reset structs left untouched by the cascade.
// Derivation hands these out instead of allocating per node.
var (
	initialIBox    = InheritedBox{Visibility: "visible", Cursor: "auto"}
	initialList    = List{StyleType: "disc", StylePosition: "outside"}
	initialBox     = Box{Display: "inline", Position: "static", Float: "none", Width: dimen.Auto(), Height: dimen.Auto()}
	initialMargins = Margins{dimen.JustDimen(0), dimen.JustDimen(0), dimen.JustDimen(0), dimen.JustDimen(0)}
	initialPadding = Padding{dimen.JustDimen(0), dimen.JustDimen(0), dimen.JustDimen(0), dimen.JustDimen(0)}
	initialBg      = Background{Color: Transparent}
	initialUI      = UI{Opacity: 1}
	initialColumn  = Column{Count: 0, Width: dimen.Auto()}
)

// Keys of declared properties, bucketed by the struct they live in.
var (
	textKeys = [...]string{"color", "direction", "white-space", "letter-spacing",
		"word-spacing", "font-size"}
	iboxKeys    = [...]string{"visibility", "cursor"}
	listKeys    = [...]string{"list-style-type", "list-style-position"}
	boxKeys     = [...]string{"display", "position", "float", "width", "height"}
	marginKeys  = [...]string{"margin-top", "margin-right", "margin-bottom", "margin-left"}
	paddingKeys = [...]string{"padding-top", "padding-right", "padding-bottom", "padding-left"}
	outlineKeys = [...]string{"outline-color", "outline-style", "outline-width"}
	bgKeys      = [...]string{"background-color"}
	uiKeys      = [...]string{"opacity"}
	columnKeys  = [...]string{"column-count", "column-width"}
)

func touches(declared map[string]Property, keys []string) bool {
	for _, k := range keys {
		if _, ok := declared[k]; ok {
			return true
		}
	}
	return false
}

// Derive converts the winning specified values of a node into a computed
// style. declared maps property keys to the declaration that won the
// cascade for this node; properties without a winning declaration default
// per their inheritance behavior: inherited properties copy the parent's
// computed value (by struct sharing, not by deep copy), reset properties
// take their initial value. parent is nil for the root element.
//
// Derive is a total function: unparsable specified values cannot occur
// post-parse by construction and fall back to initial values.
func Derive(declared map[string]Property, parent *ComputedValues, ctx Context) *ComputedValues {
	cv := &ComputedValues{}
	fs := deriveFontSize(declared, parent, ctx)

	// Inherited structs: share the parent's allocation unless a winning
	// declaration touches the struct.
	cv.text = deriveText(declared, parent, fs, ctx)
	cv.ibox = deriveIBox(declared, parent)
	cv.list = deriveList(declared, parent)

	// Reset structs never inherit implicitly; untouched structs share
	// the initial-value allocations.
	cv.box = deriveBox(declared, parent, fs, ctx)
	var pmargins, ppadding *edges
	if parent != nil {
		pmargins = (*edges)(parent.margins)
		ppadding = (*edges)(parent.padding)
	}
	cv.margins = (*Margins)(deriveEdges((*edges)(&initialMargins), pmargins, marginKeys[:], declared, fs, ctx))
	cv.padding = (*Padding)(deriveEdges((*edges)(&initialPadding), ppadding, paddingKeys[:], declared, fs, ctx))
	cv.outline = deriveOutline(declared, parent, cv.text.Color, fs, ctx)
	cv.bg = deriveBackground(declared, parent, cv.text.Color)
	cv.ui = deriveUI(declared, parent)
	cv.column = deriveColumn(declared, parent, fs, ctx)
	return cv
}

// InitialValues returns the computed style of a hypothetical element with
// no matching declarations and no parent. Useful as the inherited context
// of a root element.
func InitialValues(ctx Context) *ComputedValues {
	return Derive(nil, nil, ctx)
}

// --- Per-struct derivation -------------------------------------------------

func deriveFontSize(declared map[string]Property, parent *ComputedValues, ctx Context) au.Au {
	parentFS := ctx.rootFontSize()
	if parent != nil {
		parentFS = parent.text.FontSize
	}
	v, ok := declared["font-size"]
	if !ok || v.IsInherit() || v.IsUnset() {
		return parentFS
	}
	if v.IsInitial() {
		return ctx.rootFontSize()
	}
	d := dimen.Dimen(v.String())
	if d.IsAuto() || d.IsInitial() || d.IsInherit() {
		return parentFS
	}
	// font-size percentages and em both resolve against the parent font size
	return d.Resolve(resolveCtx(parentFS, parentFS, ctx))
}

func deriveText(declared map[string]Property, parent *ComputedValues, fs au.Au, ctx Context) *InheritedText {
	var ptext *InheritedText
	if parent != nil {
		ptext = parent.text
	} else {
		ptext = &InheritedText{Color: Black, Direction: "ltr", WhiteSpace: "normal",
			FontSize: ctx.rootFontSize()}
	}
	if parent != nil && !touches(declared, textKeys[:]) {
		return ptext // struct sharing with the parent
	}
	text := *ptext
	text.FontSize = fs
	if v, ok := declared["color"]; ok {
		switch {
		case v.IsInherit(), v.IsUnset():
			text.Color = ptext.Color
		case v.IsInitial():
			text.Color = Black
		default:
			// currentcolor on the color property itself means "inherit"
			if c, ok := ParseColor(v, ptext.Color); ok {
				text.Color = c
			}
		}
	}
	text.Direction = inheritedKeyword(declared, "direction", ptext.Direction)
	text.WhiteSpace = inheritedKeyword(declared, "white-space", ptext.WhiteSpace)
	if v, ok := declared["letter-spacing"]; ok {
		text.LetterSpacing = spacing(v, ptext.LetterSpacing, fs, ctx)
	}
	if v, ok := declared["word-spacing"]; ok {
		text.WordSpacing = spacing(v, ptext.WordSpacing, fs, ctx)
	}
	return &text
}

func deriveIBox(declared map[string]Property, parent *ComputedValues) *InheritedBox {
	pibox := &initialIBox
	if parent != nil {
		pibox = parent.ibox
	}
	if !touches(declared, iboxKeys[:]) {
		return pibox
	}
	ibox := *pibox
	ibox.Visibility = inheritedKeyword(declared, "visibility", pibox.Visibility)
	ibox.Cursor = inheritedKeyword(declared, "cursor", pibox.Cursor)
	return &ibox
}

func deriveList(declared map[string]Property, parent *ComputedValues) *List {
	plist := &initialList
	if parent != nil {
		plist = parent.list
	}
	if !touches(declared, listKeys[:]) {
		return plist
	}
	list := *plist
	list.StyleType = inheritedKeyword(declared, "list-style-type", plist.StyleType)
	list.StylePosition = inheritedKeyword(declared, "list-style-position", plist.StylePosition)
	return &list
}

func deriveBox(declared map[string]Property, parent *ComputedValues, fs au.Au, ctx Context) *Box {
	if !touches(declared, boxKeys[:]) {
		return &initialBox
	}
	box := initialBox
	box.Display = resetKeyword(declared, "display", parentBox(parent).Display)
	box.Position = resetKeyword(declared, "position", parentBox(parent).Position)
	box.Float = resetKeyword(declared, "float", parentBox(parent).Float)
	if v, ok := declared["width"]; ok {
		box.Width = resetDimen(v, parentBox(parent).Width, dimen.Auto(), fs, ctx)
	}
	if v, ok := declared["height"]; ok {
		box.Height = resetDimen(v, parentBox(parent).Height, dimen.Auto(), fs, ctx)
	}
	return &box
}

// edges is the common shape of Margins and Padding.
type edges struct {
	Top, Right, Bottom, Left dimen.DimenT
}

func deriveEdges(initial *edges, parent *edges, keys []string, declared map[string]Property,
	fs au.Au, ctx Context) *edges {
	//
	if !touches(declared, keys) {
		return initial
	}
	if parent == nil {
		parent = initial
	}
	e := *initial
	slots := [...]*dimen.DimenT{&e.Top, &e.Right, &e.Bottom, &e.Left}
	pslots := [...]dimen.DimenT{parent.Top, parent.Right, parent.Bottom, parent.Left}
	for i, key := range keys {
		if v, ok := declared[key]; ok {
			*slots[i] = resetDimen(v, pslots[i], dimen.JustDimen(0), fs, ctx)
		}
	}
	return &e
}

func deriveOutline(declared map[string]Property, parent *ComputedValues,
	current Color, fs au.Au, ctx Context) *Outline {
	//
	outline := Outline{Color: current, Style: "none", Width: outlineWidth("medium", fs, ctx)}
	if !touches(declared, outlineKeys[:]) {
		return &outline
	}
	if v, ok := declared["outline-color"]; ok {
		switch {
		case v.IsInherit():
			outline.Color = parentOutline(parent).Color
		case v.IsInitial(), v.IsUnset():
			outline.Color = current
		default:
			if c, ok := ParseColor(v, current); ok {
				outline.Color = c
			}
		}
	}
	outline.Style = resetKeyword(declared, "outline-style", parentOutline(parent).Style)
	if v, ok := declared["outline-width"]; ok {
		switch {
		case v.IsInherit():
			outline.Width = parentOutline(parent).Width
		case v.IsInitial(), v.IsUnset():
			// keep initial
		default:
			outline.Width = outlineWidth(v.String(), fs, ctx)
		}
	}
	return &outline
}

func deriveBackground(declared map[string]Property, parent *ComputedValues, current Color) *Background {
	if !touches(declared, bgKeys[:]) {
		return &initialBg
	}
	v := declared["background-color"]
	bg := Background{Color: Transparent}
	switch {
	case v.IsInherit():
		if parent != nil {
			bg.Color = parent.bg.Color
		}
	case v.IsInitial(), v.IsUnset(), v.IsEmpty():
		// keep transparent
	default:
		if c, ok := ParseColor(v, current); ok {
			bg.Color = c
		}
	}
	return &bg
}

func deriveUI(declared map[string]Property, parent *ComputedValues) *UI {
	if !touches(declared, uiKeys[:]) {
		return &initialUI
	}
	v := declared["opacity"]
	switch {
	case v.IsInherit():
		if parent != nil {
			return parent.ui
		}
		return &initialUI
	case v.IsInitial(), v.IsUnset():
		return &initialUI
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
	if err != nil {
		return &initialUI
	}
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	return &UI{Opacity: f}
}

func deriveColumn(declared map[string]Property, parent *ComputedValues, fs au.Au, ctx Context) *Column {
	if !touches(declared, columnKeys[:]) {
		return &initialColumn
	}
	column := initialColumn
	if v, ok := declared["column-count"]; ok {
		switch {
		case v.IsInherit() && parent != nil:
			column.Count = parent.column.Count
		case v == "auto" || v.IsInitial() || v.IsUnset() || v.IsInherit():
			// keep auto
		default:
			if n, err := strconv.Atoi(strings.TrimSpace(v.String())); err == nil && n > 0 {
				column.Count = n
			}
		}
	}
	if v, ok := declared["column-width"]; ok {
		column.Width = resetDimen(v, parentColumn(parent).Width, dimen.Auto(), fs, ctx)
	}
	return &column
}

// --- Shared helpers --------------------------------------------------------

func resolveCtx(pctBase au.Au, fs au.Au, ctx Context) dimen.ResolveContext {
	return dimen.ResolveContext{
		PercentBase:  pctBase,
		FontSize:     fs,
		RootFontSize: ctx.rootFontSize(),
		ViewportW:    ctx.ViewportW,
		ViewportH:    ctx.ViewportH,
	}
}

// inheritedKeyword resolves a keyword-valued property against an
// inherited fallback. Used both for inherited properties (fallback =
// parent's computed value) and cascade keywords.
func inheritedKeyword(declared map[string]Property, key string, parentValue string) string {
	v, ok := declared[key]
	if !ok || v.IsInherit() || v.IsUnset() {
		return parentValue
	}
	if v.IsInitial() {
		return string(Initial(key))
	}
	return strings.ToLower(strings.TrimSpace(v.String()))
}

// resetKeyword resolves a keyword-valued reset property; absence keeps
// the initial value already present in the struct copy.
func resetKeyword(declared map[string]Property, key string, parentValue string) string {
	v, ok := declared[key]
	if !ok || v.IsInitial() || v.IsUnset() {
		return string(Initial(key))
	}
	if v.IsInherit() {
		return parentValue
	}
	return strings.ToLower(strings.TrimSpace(v.String()))
}

// spacing resolves letter-spacing/word-spacing; "normal" computes to 0.
func spacing(v Property, parentValue au.Au, fs au.Au, ctx Context) au.Au {
	switch {
	case v.IsInherit() || v.IsUnset():
		return parentValue
	case v.IsInitial() || v == "normal":
		return 0
	}
	return dimen.Dimen(v.String()).Resolve(resolveCtx(fs, fs, ctx))
}

// resetDimen resolves a dimension-valued reset property. Font- and
// viewport-relative units compute to absolute lengths here; percentages
// and auto stay symbolic, to be resolved by layout against a containing
// dimension supplied by the caller.
func resetDimen(v Property, parentValue dimen.DimenT, initial dimen.DimenT, fs au.Au, ctx Context) dimen.DimenT {
	switch {
	case v.IsInherit():
		return parentValue
	case v.IsInitial(), v.IsUnset():
		return initial
	}
	d := dimen.Dimen(v.String())
	if d.IsInherit() {
		return parentValue
	}
	if d.IsInitial() {
		return initial
	}
	if d.IsRelative() {
		if m := d.Match(); m.Percentage(nil) != nil {
			return d // percentages stay symbolic
		}
		return dimen.JustDimen(d.Resolve(resolveCtx(0, fs, ctx)))
	}
	return d
}

func outlineWidth(v string, fs au.Au, ctx Context) au.Au {
	switch strings.TrimSpace(v) {
	case "thin":
		return au.FromPx(1)
	case "medium":
		return au.FromPx(3)
	case "thick":
		return au.FromPx(5)
	}
	return dimen.Dimen(v).Resolve(resolveCtx(0, fs, ctx))
}

func parentBox(parent *ComputedValues) *Box {
	if parent == nil {
		return &initialBox
	}
	return parent.box
}

func parentOutline(parent *ComputedValues) *Outline {
	if parent == nil {
		return &Outline{Color: Black, Style: "none", Width: au.FromPx(3)}
	}
	return parent.outline
}

func parentColumn(parent *ComputedValues) *Column {
	if parent == nil {
		return &initialColumn
	}
	return parent.column
}
