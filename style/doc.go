/*
Package style implements CSS property values, computed-value derivation
and the immutable computed-style aggregates of the styling engine.

Styling a node produces a ComputedValues aggregate: a handful of small,
immutable style structs grouped by topic and by inheritance behavior.
Two nodes with identical styling share the very same struct allocations;
style sharing and restyle-damage diffing both rely on this identity.

A good explanation of the overall styling architecture may be found in

	https://hacks.mozilla.org/2017/08/inside-a-super-fast-css-engine-quantum-css-aka-stylo/

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'casc.style'.
func tracer() tracing.Trace {
	return tracing.Select("casc.style")
}
