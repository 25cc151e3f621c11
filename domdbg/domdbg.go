/*
Package domdbg exports helpers to debug styled documents.

Dump prints a document tree together with the styling results of an
engine, one line per element, suitable for quick inspection in tests
and during development.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package domdbg

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/casc/dom"
	"github.com/npillmayer/casc/styler"
	"github.com/xlab/treeprint"
)

// Dump writes an indented tree rendering of a document to w. If ng is
// non-nil, every element is annotated with a digest of its computed
// style and its restyle damage from the last pass.
func Dump[E dom.Element[E]](w io.Writer, doc dom.Document[E], ng *styler.Engine[E]) error {
	root := doc.DocumentElement()
	tree := treeprint.NewWithRoot(label(root, ng))
	for _, ch := range root.ChildElements() {
		dumpElement(tree, ch, ng)
	}
	_, err := io.WriteString(w, tree.String())
	return err
}

func dumpElement[E dom.Element[E]](branch treeprint.Tree, e E, ng *styler.Engine[E]) {
	children := e.ChildElements()
	if len(children) == 0 {
		branch.AddNode(label(e, ng))
		return
	}
	sub := branch.AddBranch(label(e, ng))
	for _, ch := range children {
		dumpElement(sub, ch, ng)
	}
}

func label[E dom.Element[E]](e E, ng *styler.Engine[E]) string {
	var sb strings.Builder
	sb.WriteString("<" + e.LocalName() + ">")
	if id := e.ID(); id != "" {
		sb.WriteString(" #" + id)
	}
	for _, class := range e.Classes() {
		sb.WriteString(" ." + class)
	}
	if ng == nil {
		return sb.String()
	}
	res, ok := ng.StyleOf(e)
	if !ok {
		sb.WriteString("  (unstyled)")
		return sb.String()
	}
	s := res.Style
	fmt.Fprintf(&sb, "  color=%s font-size=%s display=%s width=%v damage=%s",
		s.Text().Color, s.Text().FontSize, s.Box().Display, s.Box().Width, res.Damage)
	return sb.String()
}
