package domdbg

import (
	"strings"
	"testing"

	"github.com/npillmayer/casc/dom/htmldom"
	"github.com/npillmayer/casc/style/cascade"
	"github.com/npillmayer/casc/style/cssom"
	"github.com/npillmayer/casc/style/cssom/douceuradapter"
	"github.com/npillmayer/casc/styler"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"
)

func TestDump(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.styler")
	defer teardown()
	n, err := html.Parse(strings.NewReader(
		`<html><body><div id="main"><p class="intro">hi</p></div></body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	doc := htmldom.FromHTML(n)
	sheet, err := douceuradapter.Parse(`p { color: red }`)
	if err != nil {
		t.Fatal(err)
	}
	rules, _ := cssom.Compile(sheet, cascade.Author, 0, 0)
	ng := styler.New[*htmldom.Elem](styler.Config{Workers: 1})
	ng.SetRules(rules)
	if _, err := ng.Style(doc); err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	if err := Dump[*htmldom.Elem](&sb, doc, ng); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	t.Logf("\n%s", out)
	for _, want := range []string{"<html>", "#main", ".intro", "color=rgba(255,0,0,255)"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump misses %q", want)
		}
	}
}
