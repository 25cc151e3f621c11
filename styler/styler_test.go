package styler

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/casc/dom/htmldom"
	"github.com/npillmayer/casc/style"
	"github.com/npillmayer/casc/style/cascade"
	"github.com/npillmayer/casc/style/cssom"
	"github.com/npillmayer/casc/style/cssom/douceuradapter"
	"github.com/npillmayer/casc/style/damage"
	"github.com/npillmayer/casc/style/dimen"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"
)

func setup(t *testing.T, htmlsrc, css string, config Config) (*Engine[*htmldom.Elem], *htmldom.Document) {
	t.Helper()
	n, err := html.Parse(strings.NewReader(htmlsrc))
	if err != nil {
		t.Fatalf("cannot parse test document: %v", err)
	}
	doc := htmldom.FromHTML(n)
	ng := New[*htmldom.Elem](config)
	if css != "" {
		sheet, err := douceuradapter.Parse(css)
		if err != nil {
			t.Fatalf("cannot parse test stylesheet: %v", err)
		}
		rules, _ := cssom.Compile(sheet, cascade.Author, 0, 0)
		ng.SetRules(rules)
	}
	return ng, doc
}

func findAll(e *htmldom.Elem, tag string) []*htmldom.Elem {
	var out []*htmldom.Elem
	if e.LocalName() == tag {
		out = append(out, e)
	}
	for _, ch := range e.ChildElements() {
		out = append(out, findAll(ch, tag)...)
	}
	return out
}

func findOne(t *testing.T, doc *htmldom.Document, tag string) *htmldom.Elem {
	t.Helper()
	all := findAll(doc.DocumentElement(), tag)
	if len(all) != 1 {
		t.Fatalf("expected exactly one <%s>, have %d", tag, len(all))
	}
	return all[0]
}

func styleOf(t *testing.T, ng *Engine[*htmldom.Elem], e *htmldom.Elem) *style.ComputedValues {
	t.Helper()
	res, ok := ng.StyleOf(e)
	if !ok {
		t.Fatalf("no styling result for %v", e)
	}
	if res.Epoch != ng.Epoch() {
		t.Fatalf("stale styling result for %v", e)
	}
	return res.Style
}

func TestStyleDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.styler")
	defer teardown()
	ng, doc := setup(t,
		`<html><body><p>some text</p></body></html>`,
		`body { color: red } p { width: 120px }`,
		Config{Workers: 1})
	d, err := ng.Style(doc)
	if err != nil {
		t.Fatalf("styling pass failed: %v", err)
	}
	if d != damage.MatchSelectorsDamage {
		t.Errorf("first pass should report full damage, have %v", d)
	}
	p := findOne(t, doc, "p")
	s := styleOf(t, ng, p)
	if s.Text().Color != (style.Color{R: 255, A: 255}) {
		t.Errorf("color not inherited from body, have %v", s.Text().Color)
	}
	if s.Box().Width != dimen.Dimen("120px") {
		t.Errorf("width not applied, have %v", s.Box().Width)
	}
	body := findOne(t, doc, "body")
	if s.Text() != styleOf(t, ng, body).Text() {
		t.Errorf("untouched inherited struct should share the parent's allocation")
	}
}

func TestSecondPassIsClean(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.styler")
	defer teardown()
	ng, doc := setup(t,
		`<html><body><p>hi</p></body></html>`,
		`p { color: green }`,
		Config{Workers: 1})
	if _, err := ng.Style(doc); err != nil {
		t.Fatal(err)
	}
	before := styleOf(t, ng, findOne(t, doc, "p"))
	d, err := ng.Style(doc)
	if err != nil {
		t.Fatal(err)
	}
	if d != damage.NoDamage {
		t.Errorf("unchanged document should restyle with no damage, have %v", d)
	}
	if styleOf(t, ng, findOne(t, doc, "p")) != before {
		t.Errorf("unchanged element should keep its computed style allocation")
	}
}

func TestSetRulesBumpsEpoch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.styler")
	defer teardown()
	ng, doc := setup(t,
		`<html><body><p>hi</p></body></html>`,
		`p { color: green }`,
		Config{Workers: 1})
	if _, err := ng.Style(doc); err != nil {
		t.Fatal(err)
	}
	epoch := ng.Epoch()
	sheet, err := douceuradapter.Parse(`p { color: blue }`)
	if err != nil {
		t.Fatal(err)
	}
	rules, _ := cssom.Compile(sheet, cascade.Author, 0, 0)
	ng.SetRules(rules)
	if ng.Epoch() == epoch {
		t.Fatalf("installing rules should bump the epoch")
	}
	d, err := ng.Style(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Includes(damage.RepaintDamage) {
		t.Errorf("color change should damage at least repaint, have %v", d)
	}
	s := styleOf(t, ng, findOne(t, doc, "p"))
	if s.Text().Color != (style.Color{B: 255, A: 255}) {
		t.Errorf("new ruleset not applied, color is %v", s.Text().Color)
	}
}

func TestSiblingStyleSharing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.styler")
	defer teardown()
	ng, doc := setup(t,
		`<html><body><ul>
			<li class="item">one</li>
			<li class="item">two</li>
			<li class="item">three</li>
		</ul></body></html>`,
		`.item { color: red; margin-top: 4px }`,
		Config{Workers: 1, Sharing: SharingLRU})
	if _, err := ng.Style(doc); err != nil {
		t.Fatal(err)
	}
	lis := findAll(doc.DocumentElement(), "li")
	if len(lis) != 3 {
		t.Fatalf("expected 3 list items, have %d", len(lis))
	}
	first := styleOf(t, ng, lis[0])
	for _, li := range lis[1:] {
		if styleOf(t, ng, li) != first {
			t.Errorf("equivalent siblings should share one computed style allocation")
		}
	}
	// changing one sibling's class list breaks the sharing
	doc.SharedLock().Lock()
	lis[1].SetAttr("class", "item special")
	doc.SharedLock().Unlock()
	ng.MarkDamaged(lis[1], damage.ForAttributeChange("class"))
	if _, err := ng.Style(doc); err != nil {
		t.Fatal(err)
	}
	if styleOf(t, ng, lis[1]) == first {
		t.Errorf("changed sibling must not share the old style allocation")
	}
	if styleOf(t, ng, lis[0]) != first {
		t.Errorf("untouched sibling should keep its style allocation")
	}
}

func TestInlineStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.styler")
	defer teardown()
	ng, doc := setup(t,
		`<html><body><p id="it" style="color: blue">hi</p></body></html>`,
		`p#it { color: red }`,
		Config{Workers: 1, InlineParser: douceuradapter.ParseInline})
	if _, err := ng.Style(doc); err != nil {
		t.Fatal(err)
	}
	s := styleOf(t, ng, findOne(t, doc, "p"))
	if s.Text().Color != (style.Color{B: 255, A: 255}) {
		t.Errorf("inline style should beat id selector, color is %v", s.Text().Color)
	}
}

func TestParallelPass(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.styler")
	defer teardown()
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&sb, `<div class="outer"><p>cell %d</p><p class="x">more</p></div>`, i)
	}
	sb.WriteString("</body></html>")
	ng, doc := setup(t, sb.String(),
		`body { font-size: 20px } .outer { color: red } p.x { width: 2em }`,
		Config{Workers: 4, Sharing: SharingLRU})
	if _, err := ng.Style(doc); err != nil {
		t.Fatal(err)
	}
	var check func(e *htmldom.Elem, parent *style.ComputedValues)
	check = func(e *htmldom.Elem, parent *style.ComputedValues) {
		s := styleOf(t, ng, e)
		if parent != nil && s.Text().FontSize != parent.Text().FontSize &&
			e.LocalName() != "body" {
			t.Errorf("font size of %v not inherited", e)
		}
		for _, ch := range e.ChildElements() {
			check(ch, s)
		}
	}
	check(doc.DocumentElement(), nil)
	for _, p := range findAll(doc.DocumentElement(), "p") {
		s := styleOf(t, ng, p)
		if containsClass(p, "x") {
			// 2em against the inherited 20px font size
			if s.Box().Width != dimen.Dimen("40px") {
				t.Errorf("em width not resolved against font size, have %v", s.Box().Width)
			}
		}
		if s.Text().Color != (style.Color{R: 255, A: 255}) {
			t.Errorf("color not inherited into %v", p)
		}
	}
}

func containsClass(e *htmldom.Elem, class string) bool {
	for _, c := range e.Classes() {
		if c == class {
			return true
		}
	}
	return false
}
