package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/casc/au"
	"github.com/npillmayer/casc/style/dimen"
)

// The computed style of a node is split into small structs, grouped by
// topic. Structs holding inherited properties are separate from structs
// holding reset properties, so that a node without own declarations for a
// topic can share its parent's struct allocation instead of copying it.
// All structs are immutable once a ComputedValues has been published.

// InheritedText holds the inherited text-related properties.
type InheritedText struct {
	Color         Color
	Direction     string
	WhiteSpace    string
	LetterSpacing au.Au
	WordSpacing   au.Au
	FontSize      au.Au
}

// InheritedBox holds the inherited box-related properties.
type InheritedBox struct {
	Visibility string
	Cursor     string
}

// List holds the inherited list-marker properties.
type List struct {
	StyleType     string
	StylePosition string
}

// Box holds the reset box-generation properties.
type Box struct {
	Display  string
	Position string
	Float    string
	Width    dimen.DimenT
	Height   dimen.DimenT
}

// Margins holds the reset margin properties.
type Margins struct {
	Top, Right, Bottom, Left dimen.DimenT
}

// Padding holds the reset padding properties.
type Padding struct {
	Top, Right, Bottom, Left dimen.DimenT
}

// Outline holds the reset outline properties.
type Outline struct {
	Color Color
	Style string
	Width au.Au
}

// Background holds the reset background properties.
type Background struct {
	Color Color
}

// UI holds the reset user-interface properties.
type UI struct {
	Opacity float64
}

// Column holds the reset multi-column properties.
type Column struct {
	Count int // 0 = auto
	Width dimen.DimenT
}

// ComputedValues is the immutable result of resolving all properties for
// one node. It is created once per resolution, never mutated in place and
// replaced wholesale on restyle. Nodes with identical styling share one
// allocation; identity of the pointer is the engine-wide sharing test.
type ComputedValues struct {
	text    *InheritedText
	ibox    *InheritedBox
	list    *List
	box     *Box
	margins *Margins
	padding *Padding
	outline *Outline
	bg      *Background
	ui      *UI
	column  *Column
}

// Text returns the inherited text struct.
func (cv *ComputedValues) Text() *InheritedText { return cv.text }

// InheritedBox returns the inherited box struct.
func (cv *ComputedValues) InheritedBox() *InheritedBox { return cv.ibox }

// List returns the inherited list struct.
func (cv *ComputedValues) List() *List { return cv.list }

// Box returns the reset box struct.
func (cv *ComputedValues) Box() *Box { return cv.box }

// Margins returns the reset margins struct.
func (cv *ComputedValues) Margins() *Margins { return cv.margins }

// Padding returns the reset padding struct.
func (cv *ComputedValues) Padding() *Padding { return cv.padding }

// Outline returns the reset outline struct.
func (cv *ComputedValues) Outline() *Outline { return cv.outline }

// Background returns the reset background struct.
func (cv *ComputedValues) Background() *Background { return cv.bg }

// UI returns the reset user-interface struct.
func (cv *ComputedValues) UI() *UI { return cv.ui }

// Column returns the reset multi-column struct.
func (cv *ComputedValues) Column() *Column { return cv.column }
