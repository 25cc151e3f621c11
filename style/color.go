package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// Color is a computed color value with premultiplied alpha.
type Color struct {
	R, G, B, A uint8
}

// Transparent is the fully transparent color.
var Transparent = Color{}

// Black is opaque black, the initial value of the color property.
var Black = Color{A: 255}

// ParseColor resolves a specified color value to a computed color.
// "currentcolor" is substituted with current, which callers supply from
// the cascaded color property of the same node. ok is false for values
// the color parser rejects; those cannot occur post-parse by
// construction, so callers may fall back to Transparent.
func ParseColor(value Property, current Color) (Color, bool) {
	v := strings.ToLower(strings.TrimSpace(value.String()))
	if v == "currentcolor" {
		return current, true
	}
	c, err := csscolorparser.Parse(v)
	if err != nil {
		return Transparent, false
	}
	return premultiply(c), true
}

// premultiply scales the color channels by the alpha channel.
func premultiply(c csscolorparser.Color) Color {
	r, g, b, a := c.RGBA255()
	if a == 255 {
		return Color{r, g, b, a}
	}
	af := float64(a) / 255
	return Color{
		R: uint8(float64(r)*af + 0.5),
		G: uint8(float64(g)*af + 0.5),
		B: uint8(float64(b)*af + 0.5),
		A: a,
	}
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%d)", c.R, c.G, c.B, c.A)
}
