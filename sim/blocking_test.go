package sim

import "testing"

func TestBlockingDegree_HandComputed(t *testing.T) {
	// Lanes are bottom-to-top. Each expected value is worked out by hand:
	// split at the minimum, sum (p - min) over the run above it, recurse below.
	tests := []struct {
		name string
		lane []int
		want int
	}{
		{"empty", nil, 0},
		{"single", []int{5}, 0},
		{"retrieval order (smallest on top)", []int{3, 2, 1}, 0},
		{"reverse order buries the minimum", []int{1, 2, 3}, 3}, // run [1,2,3]: 0+1+2
		{"one blocker over the minimum", []int{3, 1, 2}, 1},     // run [1,2]: 1; prefix [3]
		{"larger blocker", []int{2, 1, 3}, 2},                   // run [1,3]: 2; prefix [2]
		{"minimum at the bottom", []int{1, 3, 2}, 3},            // run [1,3,2]: 0+2+1; prefix empty
		{"minimum on top, prefix blocked", []int{2, 3, 1}, 1},   // run [1]; prefix [2,3] run: 1
		{"two runs", []int{2, 4, 1, 3}, 4},                      // run [1,3]: 2; prefix [2,4]: 2
		{"deep run", []int{4, 1, 3, 2}, 3},                      // run [1,3,2]: 0+2+1; prefix [4]
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BlockingDegree(tt.lane); got != tt.want {
				t.Errorf("BlockingDegree(%v) = %d, want %d", tt.lane, got, tt.want)
			}
		})
	}
}

func TestBlockingDegree_DoesNotMutateInput(t *testing.T) {
	lane := []int{2, 4, 1, 3}
	BlockingDegree(lane)
	want := []int{2, 4, 1, 3}
	for i := range want {
		if lane[i] != want[i] {
			t.Fatalf("input mutated: got %v, want %v", lane, want)
		}
	}
}

func TestBlockingDegree_NonNegative(t *testing.T) {
	// GIVEN every permutation of 1..4
	perms := permutations([]int{1, 2, 3, 4})

	for _, p := range perms {
		// THEN the degree is never negative
		if d := BlockingDegree(p); d < 0 {
			t.Errorf("BlockingDegree(%v) = %d, want >= 0", p, d)
		}
	}
	if len(perms) != 24 {
		t.Fatalf("expected 24 permutations, got %d", len(perms))
	}
}

func permutations(vals []int) [][]int {
	if len(vals) <= 1 {
		return [][]int{append([]int(nil), vals...)}
	}
	var out [][]int
	for i := range vals {
		rest := make([]int, 0, len(vals)-1)
		rest = append(rest, vals[:i]...)
		rest = append(rest, vals[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]int{vals[i]}, p...))
		}
	}
	return out
}
