package htmldom

import (
	"strings"
	"testing"

	"github.com/npillmayer/casc/dom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"
)

const myhtml = `
<html><head></head><body>
  <p id="single" class="a b">Hello</p>
  <ul style="color: red">
	<li>one</li>
	<li>two</li>
  </ul>
</body></html>
`

func buildDOM(t *testing.T) *Document {
	h, err := html.Parse(strings.NewReader(myhtml))
	if err != nil {
		t.Fatalf("cannot parse test document: %v", err)
	}
	return FromHTML(h)
}

func TestAdapterBasics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.dom")
	defer teardown()
	//
	doc := buildDOM(t)
	root := doc.DocumentElement()
	if root.LocalName() != "html" {
		t.Fatalf("expected root to be <html>, is %v", root)
	}
	if !doc.IsHTMLDocument() {
		t.Errorf("expected an HTML document")
	}
	body := root.ChildElements()[1]
	if body.LocalName() != "body" {
		t.Fatalf("expected 2nd child of root to be <body>, is %v", body)
	}
	p := body.ChildElements()[0]
	if p.ID() != "single" {
		t.Errorf("expected p#single, id is %q", p.ID())
	}
	if len(p.Classes()) != 2 || p.Classes()[0] != "a" {
		t.Errorf("expected classes [a b], are %v", p.Classes())
	}
	if p.IsEmpty() {
		t.Errorf("expected <p>Hello</p> not to be :empty")
	}
}

func TestAdapterIdentities(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.dom")
	defer teardown()
	//
	doc := buildDOM(t)
	seen := make(map[uint64]bool)
	var walk func(e *Elem)
	walk = func(e *Elem) {
		if seen[uint64(e.Opaque())] {
			t.Errorf("duplicate opaque identity %d at %v", e.Opaque(), e)
		}
		seen[uint64(e.Opaque())] = true
		for _, ch := range e.ChildElements() {
			if p, ok := ch.ParentElement(); !ok || p != e {
				t.Errorf("broken parent link at %v", ch)
			}
			walk(ch)
		}
	}
	walk(doc.DocumentElement())
	if len(seen) != 7 {
		t.Errorf("expected 7 elements in test document, have %d", len(seen))
	}
}

func TestAdapterMutation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.dom")
	defer teardown()
	//
	doc := buildDOM(t)
	body := doc.DocumentElement().ChildElements()[1]
	p := body.ChildElements()[0]
	p.SetAttr("class", "a b c")
	assert.Equal(t, []string{"a", "b", "c"}, p.Classes())
	p.SetAttr("lang", "en")
	lang, ok := p.Attr("lang")
	assert.True(t, ok)
	assert.Equal(t, "en", lang)
	assert.Equal(t, dom.ElementState(0), p.State())
	p.SetState(dom.StateHover | dom.StateFocus)
	assert.True(t, p.State().Contains(dom.StateHover))
	assert.False(t, p.State().Contains(dom.StateActive))
}

func TestAdapterInlineStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.dom")
	defer teardown()
	//
	doc := buildDOM(t)
	body := doc.DocumentElement().ChildElements()[1]
	ul := body.ChildElements()[1]
	if !ul.HasInlineStyle() {
		t.Fatalf("expected <ul> to carry a style attribute")
	}
	if ul.InlineStyle() != "color: red" {
		t.Errorf("unexpected inline style %q", ul.InlineStyle())
	}
}
