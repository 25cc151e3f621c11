package au

import (
	"math"
	"testing"
)

func TestPxRoundTrip(t *testing.T) {
	for _, px := range []float64{0, 1, 16, 17.25, 0.013, 1e6, -4.2} {
		a := FromPx(px)
		b := FromPx(a.Px())
		if a != b {
			t.Errorf("expected round trip of %gpx to be stable, %d != %d", px, a, b)
		}
	}
}

func TestWrappingAdd(t *testing.T) {
	for _, n := range []int32{0, 1, -1, 4711, math.MaxInt32} {
		sum := New(n).Add(New(-n))
		if sum != New(0) {
			t.Errorf("expected %d + -%d = 0, is %d", n, n, sum)
		}
	}
	// i32::MIN has no positive counterpart; adding it to itself wraps to 0
	if New(math.MinInt32).Add(New(math.MinInt32)) != New(0) {
		t.Errorf("expected MIN+MIN to wrap to 0")
	}
	if New(math.MaxInt32).Add(New(1)) != New(math.MinInt32) {
		t.Errorf("expected MAX+1 to wrap to MIN")
	}
}

func TestTruncatingDiv(t *testing.T) {
	if New(7).DivInt(2) != New(3) {
		t.Errorf("expected 7/2 to truncate to 3")
	}
	if New(-7).DivInt(2) != New(-3) {
		t.Errorf("expected -7/2 to truncate to -3, is %d", New(-7).DivInt(2))
	}
	if New(7).ModInt(2) != New(1) {
		t.Errorf("expected 7%%2 = 1")
	}
}

func TestUnitConversions(t *testing.T) {
	if FromPx(1) != New(60) {
		t.Errorf("expected 1px = 60 units, is %d", FromPx(1))
	}
	if FromPt(3) != FromPx(4) {
		t.Errorf("expected 3pt = 4px")
	}
	du := FromPx(4).DU()
	t.Logf("4px = %v", du)
}
