package pair

import "testing"

func TestNewKey_Unordered(t *testing.T) {
	k1 := NewKey("b", "a")
	k2 := NewKey("a", "b")
	if k1 != k2 {
		t.Fatalf("NewKey not symmetric: %v vs %v", k1, k2)
	}
	if k1.A() != "a" || k1.B() != "b" {
		t.Errorf("expected (a,b), got (%s,%s)", k1.A(), k1.B())
	}
	if k1.String() != "a|b" {
		t.Errorf("String() = %q", k1.String())
	}
}

func TestKeyLess(t *testing.T) {
	tests := []struct {
		x, y Key
		want bool
	}{
		{NewKey("a", "b"), NewKey("a", "c"), true},
		{NewKey("a", "c"), NewKey("a", "b"), false},
		{NewKey("a", "z"), NewKey("b", "c"), true},
		{NewKey("a", "b"), NewKey("a", "b"), false},
	}
	for _, tc := range tests {
		if got := tc.x.Less(tc.y); got != tc.want {
			t.Errorf("%v.Less(%v) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestCount(t *testing.T) {
	tests := map[int]int{0: 0, 1: 0, 2: 1, 3: 3, 150: 11175}
	for n, want := range tests {
		if got := Count(n); got != want {
			t.Errorf("Count(%d) = %d, want %d", n, got, want)
		}
	}
}
