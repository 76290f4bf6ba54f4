package cost

import "testing"

func TestOf(t *testing.T) {
	e := Edge{LengthCm: 1500, ClimbCm: 400}

	cases := []struct {
		w    float64
		want int64
	}{
		{1.0, 1500},
		{0.0, 400},
		{0.5, 950},
	}
	for _, c := range cases {
		if got := Of(e, c.w); got != c.want {
			t.Errorf("Of(%+v, %v) = %d, want %d", e, c.w, got, c.want)
		}
	}
}

func TestOfNonNegative(t *testing.T) {
	e := Edge{LengthCm: 100, ClimbCm: 0}
	for _, w := range []float64{0, 0.25, 0.5, 0.75, 1} {
		if got := Of(e, w); got < 0 {
			t.Errorf("Of(%+v, %v) = %d, want >= 0", e, w, got)
		}
	}
}

func TestOfRoundsHalfAwayFromZero(t *testing.T) {
	// 0.5*3 + 0.5*0 = 1.5 -> rounds to 2.
	e := Edge{LengthCm: 3, ClimbCm: 0}
	if got := Of(e, 0.5); got != 2 {
		t.Errorf("Of(%+v, 0.5) = %d, want 2", e, got)
	}
}
