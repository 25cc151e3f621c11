/*
Package dom declares the tree capability interface of the styling engine.

The engine never owns a document tree. Embedders bring their own DOM
implementation and expose it through interface Element, a read-only view
of elements, their attributes and their user-interaction state. The whole
engine is generic over the element type, which keeps the hot selector
matching path monomorphized instead of going through dynamic dispatch.

Every element carries a document-wide unique OpaqueNode identity. The
engine keys all of its caches and result stores on this identity and
never holds on to an element value longer than one traversal.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'casc.dom'.
func tracer() tracing.Trace {
	return tracing.Select("casc.dom")
}
