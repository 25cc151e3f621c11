package damage

import (
	"testing"

	"github.com/npillmayer/casc/style"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestLattice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.style")
	defer teardown()
	levels := []RestyleDamage{NoDamage, RepaintDamage, ReflowDamage, MatchSelectorsDamage}
	for _, d := range levels {
		if NoDamage.Join(d) != d {
			t.Errorf("NoDamage is not neutral for %v", d)
		}
		if d.Join(d) != d {
			t.Errorf("join of %v with itself is not idempotent", d)
		}
		for _, e := range levels {
			if d.Join(e) != e.Join(d) {
				t.Errorf("join of %v and %v is not commutative", d, e)
			}
		}
	}
	if ReflowDamage.Join(MatchSelectorsDamage) != MatchSelectorsDamage {
		t.Errorf("expected match-selectors damage to absorb reflow damage")
	}
	if !MatchSelectorsDamage.Includes(RepaintDamage) {
		t.Errorf("expected match-selectors damage to include repainting")
	}
	if RepaintDamage.Includes(ReflowDamage) {
		t.Errorf("repaint damage must not include reflow")
	}
}

func TestDiff(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.style")
	defer teardown()
	ctx := style.Context{}
	base := style.Derive(map[string]style.Property{}, nil, ctx)
	if d := Diff(nil, base); d != MatchSelectorsDamage {
		t.Errorf("first-time styling should yield full damage, have %v", d)
	}
	if d := Diff(base, base); d != NoDamage {
		t.Errorf("identical styles should yield no damage, have %v", d)
	}
	colored := style.Derive(map[string]style.Property{"color": "red"}, nil, ctx)
	if d := Diff(base, colored); d != RepaintDamage {
		t.Errorf("color change should yield repaint damage, have %v", d)
	}
	sized := style.Derive(map[string]style.Property{"width": "100px"}, nil, ctx)
	if d := Diff(base, sized); d != ReflowDamage {
		t.Errorf("width change should yield reflow damage, have %v", d)
	}
	// a value-identical rederivation is no damage, even if allocations differ
	again := style.Derive(map[string]style.Property{}, nil, ctx)
	if d := Diff(base, again); d != NoDamage {
		t.Errorf("value-identical styles should yield no damage, have %v", d)
	}
}

func TestForAttributeChange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casc.style")
	defer teardown()
	if d := ForAttributeChange("class"); d != MatchSelectorsDamage {
		t.Errorf("class change should invalidate selector matches, have %v", d)
	}
	if d := ForAttributeChange("style"); d != ReflowDamage {
		t.Errorf("inline style change should not require rematching, have %v", d)
	}
}
