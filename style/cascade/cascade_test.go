package cascade

import (
	"strings"
	"testing"

	"github.com/npillmayer/casc/dom/htmldom"
	"github.com/npillmayer/casc/style"
	"github.com/npillmayer/casc/style/selector"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"
)

func rule(t *testing.T, sel string, origin Origin, layer, source int, decls ...Declaration) *Rule {
	t.Helper()
	list, err := selector.Parse(sel)
	if err != nil {
		t.Fatalf("cannot parse selector %q: %v", sel, err)
	}
	return &Rule{
		Selectors:    list,
		Declarations: decls,
		Origin:       origin,
		Layer:        layer,
		Source:       source,
	}
}

func decl(name, value string) Declaration {
	return Declaration{Name: name, Value: style.Property(value)}
}

func important(name, value string) Declaration {
	return Declaration{Name: name, Value: style.Property(value), Important: true}
}

func matchedOn(t *testing.T, e *htmldom.Elem, rules ...*Rule) []MatchedRule {
	t.Helper()
	return MatchRules(rules, e, selector.NewNthCaches())
}

func testElem(t *testing.T) *htmldom.Elem {
	t.Helper()
	n, err := html.Parse(strings.NewReader(
		`<html><body><p id="it" class="intro note">text</p></body></html>`))
	if err != nil {
		t.Fatalf("cannot parse test document: %v", err)
	}
	doc := htmldom.FromHTML(n)
	var find func(e *htmldom.Elem) *htmldom.Elem
	find = func(e *htmldom.Elem) *htmldom.Elem {
		if e.ID() == "it" {
			return e
		}
		for _, ch := range e.ChildElements() {
			if f := find(ch); f != nil {
				return f
			}
		}
		return nil
	}
	p := find(doc.DocumentElement())
	if p == nil {
		t.Fatal("no #it in test document")
	}
	return p
}

func TestSpecificityBeatsSourceOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.style")
	defer teardown()
	a := rule(t, ".intro", Author, 0, 1, decl("color", "red")) // specificity (0,1,0)
	b := rule(t, "p", Author, 0, 2, decl("color", "blue"))     // specificity (0,0,1)
	e := testElem(t)
	for _, rules := range [][]*Rule{{a, b}, {b, a}} {
		values := Cascade(matchedOn(t, e, rules...))
		if values["color"] != "red" {
			t.Errorf("expected higher-specificity declaration to win, have %q", values["color"])
		}
	}
}

func TestSourceOrderBreaksTies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.style")
	defer teardown()
	a := rule(t, "p", Author, 0, 1, decl("color", "red"))
	b := rule(t, "p", Author, 0, 2, decl("color", "blue"))
	values := Cascade(matchedOn(t, testElem(t), a, b))
	if values["color"] != "blue" {
		t.Errorf("expected later source order to win a full tie, have %q", values["color"])
	}
}

func TestLaterLayerWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.style")
	defer teardown()
	// the earlier layer carries higher specificity, but layer order
	// precedes specificity
	a := rule(t, "p.intro#it", Author, 0, 2, decl("color", "red"))
	b := rule(t, "p", Author, 1, 1, decl("color", "blue"))
	values := Cascade(matchedOn(t, testElem(t), a, b))
	if values["color"] != "blue" {
		t.Errorf("expected later cascade layer to win, have %q", values["color"])
	}
}

func TestOriginOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.style")
	defer teardown()
	ua := rule(t, "p#it.intro", UserAgent, 0, 1, decl("color", "gray"))
	user := rule(t, "p", User, 0, 1, decl("color", "green"))
	author := rule(t, "p#it", Author, 0, 1, decl("color", "red"))
	values := Cascade(matchedOn(t, testElem(t), ua, user, author))
	if values["color"] != "gray" {
		t.Errorf("expected user-agent origin to outrank user and author, have %q", values["color"])
	}
}

func TestImportantReversal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.style")
	defer teardown()
	ua := rule(t, "p", UserAgent, 0, 1, decl("color", "gray"))
	author := rule(t, "p", Author, 0, 1, important("color", "red"))
	values := Cascade(matchedOn(t, testElem(t), ua, author))
	if values["color"] != "red" {
		t.Errorf("expected important author declaration to beat user-agent, have %q", values["color"])
	}
	// user-agent importance drops below everything
	uaImp := rule(t, "p", UserAgent, 0, 1, important("width", "100px"))
	author2 := rule(t, "p", Author, 0, 2, decl("width", "50px"))
	values = Cascade(matchedOn(t, testElem(t), uaImp, author2))
	if values["width"] != "50px" {
		t.Errorf("expected important user-agent declaration to sort last, have %q", values["width"])
	}
	authorImp := rule(t, "p", Author, 0, 1, important("height", "10px"))
	userImp := rule(t, "p", User, 0, 2, important("height", "20px"))
	values = Cascade(matchedOn(t, testElem(t), authorImp, userImp))
	if values["height"] != "10px" {
		t.Errorf("expected important author to beat important user, have %q", values["height"])
	}
}

func TestInlineDeclarations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.style")
	defer teardown()
	idRule := rule(t, "p#it", Author, 0, 1, decl("color", "red"))
	matched := matchedOn(t, testElem(t), idRule)
	matched = append(matched, InlineDeclarations([]Declaration{decl("color", "blue")}, 2))
	values := Cascade(matched)
	if values["color"] != "blue" {
		t.Errorf("expected inline declaration to beat id selector, have %q", values["color"])
	}
	// but not an important stylesheet declaration
	impRule := rule(t, "p", Author, 0, 1, important("float", "left"))
	matched = matchedOn(t, testElem(t), impRule)
	matched = append(matched, InlineDeclarations([]Declaration{decl("float", "right")}, 2))
	values = Cascade(matched)
	if values["float"] != "left" {
		t.Errorf("expected important declaration to beat normal inline, have %q", values["float"])
	}
}

func TestMatchRulesFilters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.style")
	defer teardown()
	miss := rule(t, "ul", Author, 0, 1, decl("color", "red"))
	hit := rule(t, ".note", Author, 0, 2, decl("color", "blue"))
	matched := matchedOn(t, testElem(t), miss, hit)
	if len(matched) != 1 {
		t.Fatalf("expected 1 matched rule, have %d", len(matched))
	}
	if matched[0].Spec != (selector.Specificity{0, 1, 0}) {
		t.Errorf("matched specificity = %v, want {0 1 0}", matched[0].Spec)
	}
}
