/*
Package au implements app units, the fixed-point length unit used by the
styling engine.

An app unit is 1/60th of a CSS pixel, stored in a 32-bit signed integer.
1/60 divides evenly by the common device scale factors and by the CSS
absolute units (1in = 96px, 1pt = 4/3px), so unit conversions stay exact.
Arithmetic on app units wraps on overflow; division truncates towards zero.
Overflow is defined behavior, not an error.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package au

import (
	"fmt"

	"github.com/npillmayer/tyse/core/dimen"
)

// PerPx is the number of app units per CSS pixel.
const PerPx = 60

// Au is a length in app units.
type Au int32

// New creates an app unit quantity from a raw unit count.
func New(n int32) Au {
	return Au(n)
}

// FromPx converts a pixel value to app units, rounding to the nearest unit.
func FromPx(px float64) Au {
	if px >= 0 {
		return Au(int32(px*PerPx + 0.5))
	}
	return Au(int32(px*PerPx - 0.5))
}

// FromPt converts a point value (1pt = 4/3 px) to app units.
func FromPt(pt float64) Au {
	return FromPx(pt * 4.0 / 3.0)
}

// Px returns the length in CSS pixels.
func (a Au) Px() float64 {
	return float64(a) / PerPx
}

// Add returns a+b with wrapping overflow.
func (a Au) Add(b Au) Au {
	return Au(int32(a) + int32(b))
}

// Sub returns a-b with wrapping overflow.
func (a Au) Sub(b Au) Au {
	return Au(int32(a) - int32(b))
}

// MulInt returns a*n with wrapping overflow.
func (a Au) MulInt(n int32) Au {
	return Au(int32(a) * n)
}

// DivInt returns a/n, truncated towards zero. n must not be 0.
func (a Au) DivInt(n int32) Au {
	return Au(int32(a) / n)
}

// ModInt returns the remainder of a/n. n must not be 0.
func (a Au) ModInt(n int32) Au {
	return Au(int32(a) % n)
}

// Scale multiplies by a float factor, rounding the result.
// Useful for percentages and em-factors.
func (a Au) Scale(f float64) Au {
	return FromPx(a.Px() * f)
}

// Min returns the smaller of a and b.
func Min(a, b Au) Au {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b Au) Au {
	if a > b {
		return a
	}
	return b
}

// DU converts to the dimension unit of the tyse typesetting engine
// (scaled points), for handing computed lengths over to a layout
// component. 1 CSS px = 3/4 pt.
func (a Au) DU() dimen.DU {
	return dimen.DU(int64(a) * int64(dimen.PT) * 3 / (4 * PerPx))
}

func (a Au) String() string {
	return fmt.Sprintf("%gpx", a.Px())
}
