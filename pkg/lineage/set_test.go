package lineage

import "testing"

func TestNewSet(t *testing.T) {
	s := NewSet(5, 1, 3, 1, 5)
	want := Set{1, 3, 5}
	if !s.Equal(want) {
		t.Errorf("NewSet() = %v, want %v", s, want)
	}
	if empty := NewSet(); empty == nil {
		t.Error("NewSet() with no ids should be non-nil")
	}
}

func TestNewSetDoesNotModifyInput(t *testing.T) {
	in := []int64{3, 2, 1}
	NewSet(in...)
	if in[0] != 3 || in[2] != 1 {
		t.Errorf("input modified: %v", in)
	}
}

func TestSetContains(t *testing.T) {
	s := NewSet(2, 4, 6)
	for _, id := range []int64{2, 4, 6} {
		if !s.Contains(id) {
			t.Errorf("Contains(%d) = false", id)
		}
	}
	for _, id := range []int64{1, 3, 7} {
		if s.Contains(id) {
			t.Errorf("Contains(%d) = true", id)
		}
	}
}

func TestSetContainsAll(t *testing.T) {
	tests := []struct {
		name string
		a, b Set
		want bool
	}{
		{"proper superset", NewSet(1, 2, 3), NewSet(1, 3), true},
		{"equal", NewSet(1, 2), NewSet(1, 2), true},
		{"subset", NewSet(1, 2), NewSet(1, 2, 3), false},
		{"crossing", NewSet(1, 2, 3), NewSet(3, 4), false},
		{"disjoint", NewSet(1, 2), NewSet(3, 4), false},
		{"empty other", NewSet(1), NewSet(), true},
		{"both empty", NewSet(), NewSet(), true},
		{"gap in middle", NewSet(1, 5, 9), NewSet(1, 4, 9), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.ContainsAll(tt.b); got != tt.want {
				t.Errorf("%v.ContainsAll(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSetOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Set
		want bool
	}{
		{"shared last", NewSet(1, 2, 9), NewSet(5, 9), true},
		{"shared first", NewSet(1, 2), NewSet(1), true},
		{"interleaved disjoint", NewSet(1, 3, 5), NewSet(2, 4, 6), false},
		{"empty", NewSet(), NewSet(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetIsSorted(t *testing.T) {
	if !(Set{1, 2, 3}).IsSorted() {
		t.Error("sorted set reported unsorted")
	}
	if (Set{1, 1, 2}).IsSorted() {
		t.Error("duplicates should break the invariant")
	}
	if (Set{3, 1}).IsSorted() {
		t.Error("descending set reported sorted")
	}
}
