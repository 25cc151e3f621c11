package dimen

import (
	"testing"

	"github.com/npillmayer/casc/au"
	"github.com/npillmayer/tyse/core/percent"
)

func TestDimenBasic(t *testing.T) {
	ten := JustDimen(au.FromPx(10))
	var x au.Au
	switch m := ten.Match(); m {
	case m.Just(&x):
		t.Logf("x = %s", x)
	default:
		t.Errorf("expected Just(10px) to be a fixed value, isn't: %#v", ten)
	}

	auto := Auto()
	switch m := auto.Match(); m {
	case m.IsKind(Auto()):
		t.Logf("dimen is auto")
	default:
		t.Errorf("expected dimen auto to match auto, isn't: %#v", auto)
	}

	pcnt := Percentage(80)
	var p percent.Percent
	switch m := pcnt.Match(); m {
	case m.Percentage(&p):
		t.Logf("percent = %s", p)
	default:
		t.Errorf("expected Percentage(80) to be a percentage value, isn't: %#v", pcnt)
	}
}

func TestDimenParse(t *testing.T) {
	inputs := []struct {
		value string
		want  DimenT
	}{
		{"auto", Auto()},
		{"inherit", Inherit()},
		{"initial", Initial()},
		{"10px", JustDimen(au.FromPx(10))},
		{"12pt", JustDimen(au.FromPt(12))},
		{"50%", Percentage(50)},
		{"0", JustDimen(0)},
		{"3pxx", Initial()}, // rejected upstream; total here
	}
	for _, input := range inputs {
		if d := Dimen(input.value); d != input.want {
			t.Errorf("expected Dimen(%q) = %v, is %v", input.value, input.want, d)
		}
	}
}

func TestDimenResolve(t *testing.T) {
	ctx := ResolveContext{
		PercentBase:  au.FromPx(200),
		FontSize:     au.FromPx(16),
		RootFontSize: au.FromPx(20),
		ViewportW:    au.FromPx(1000),
		ViewportH:    au.FromPx(500),
	}
	inputs := []struct {
		value string
		want  au.Au
	}{
		{"10px", au.FromPx(10)},
		{"50%", au.FromPx(100)},
		{"2em", au.FromPx(32)},
		{"1.5rem", au.FromPx(30)},
		{"10vw", au.FromPx(100)},
		{"10vh", au.FromPx(50)},
	}
	for _, input := range inputs {
		if got := Dimen(input.value).Resolve(ctx); got != input.want {
			t.Errorf("expected %q to resolve to %s, is %s", input.value, input.want, got)
		}
	}
}
