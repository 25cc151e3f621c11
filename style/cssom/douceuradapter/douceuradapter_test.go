package douceuradapter

import (
	"strings"
	"testing"

	"github.com/npillmayer/casc/style/cascade"
	"github.com/npillmayer/casc/style/cssom"
	"github.com/npillmayer/casc/style/selector"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"
)

const testCSS = `
p {
    margin: 10px 20px;
    color: red !important;
}
#nav li.active {
    display: block;
}
`

func TestParseAndCompile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.style")
	defer teardown()
	sheet, err := Parse(testCSS)
	if err != nil {
		t.Fatalf("cannot parse stylesheet: %v", err)
	}
	if sheet.Empty() {
		t.Fatal("stylesheet should not be empty")
	}
	rules, next := cssom.Compile(sheet, cascade.Author, 0, 0)
	if len(rules) != 2 {
		t.Fatalf("expected 2 compiled rules, have %d", len(rules))
	}
	if next != 2 {
		t.Errorf("expected next source number 2, have %d", next)
	}
	decls := rules[0].Declarations
	if len(decls) != 5 { // margin split into 4 sides, plus color
		t.Fatalf("expected 5 declarations for first rule, have %d", len(decls))
	}
	byName := map[string]cascade.Declaration{}
	for _, d := range decls {
		byName[d.Name] = d
	}
	if byName["margin-top"].Value != "10px" || byName["margin-left"].Value != "20px" {
		t.Errorf("margin shorthand not distributed: %v", decls)
	}
	if !byName["color"].Important {
		t.Errorf("important flag lost on color declaration")
	}
	if byName["margin-top"].Important {
		t.Errorf("important flag leaked onto margin declaration")
	}
	if rules[1].Selectors.MaxSpecificity() != (selector.Specificity{1, 1, 1}) {
		t.Errorf("unexpected specificity for second rule: %v", rules[1].Selectors.MaxSpecificity())
	}
}

func TestAppendRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.style")
	defer teardown()
	a, err := Parse("p { color: red }")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse("li { color: blue }")
	if err != nil {
		t.Fatal(err)
	}
	a.AppendRules(b)
	if len(a.Rules()) != 2 {
		t.Errorf("expected 2 rules after append, have %d", len(a.Rules()))
	}
}

func TestParseInline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.style")
	defer teardown()
	decls, err := ParseInline("padding: 5px; color: green !important")
	if err != nil {
		t.Fatalf("cannot parse inline style: %v", err)
	}
	if len(decls) != 5 {
		t.Fatalf("expected 5 declarations, have %d", len(decls))
	}
	found := false
	for _, d := range decls {
		if d.Name == "color" && d.Value == "green" && d.Important {
			found = true
		}
	}
	if !found {
		t.Errorf("important color declaration missing: %v", decls)
	}
}

func TestExtractStyleElements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.style")
	defer teardown()
	doc := `<html><head><style>p { color: red }</style></head>
		<body><style>li { color: blue }</style><p>hi</p></body></html>`
	n, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	sheets := ExtractStyleElements(n)
	if len(sheets) != 2 {
		t.Fatalf("expected 2 embedded stylesheets, have %d", len(sheets))
	}
	for _, sheet := range sheets {
		if sheet.Empty() {
			t.Errorf("extracted stylesheet is empty")
		}
	}
}
