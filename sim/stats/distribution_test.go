package stats

import (
	"math"
	"testing"
)

func TestNewDistribution_EmptyInput_ZeroValue(t *testing.T) {
	d := NewDistribution(nil)
	if d != (Distribution{}) {
		t.Errorf("expected zero Distribution, got %+v", d)
	}
}

func TestNewDistribution_KnownValues(t *testing.T) {
	// GIVEN values 1..5 in shuffled order
	d := NewDistribution([]float64{5, 1, 4, 2, 3})

	// THEN summary statistics match hand computation
	if d.Count != 5 {
		t.Errorf("Count = %d, want 5", d.Count)
	}
	if d.Mean != 3 {
		t.Errorf("Mean = %v, want 3", d.Mean)
	}
	if d.Min != 1 || d.Max != 5 {
		t.Errorf("Min/Max = %v/%v, want 1/5", d.Min, d.Max)
	}
	if d.P50 != 3 {
		t.Errorf("P50 = %v, want 3", d.P50)
	}
	// rank = 0.95 * 4 = 3.8 → 4 + 0.8*(5-4)
	if math.Abs(d.P95-4.8) > 1e-9 {
		t.Errorf("P95 = %v, want 4.8", d.P95)
	}
}

func TestNewDistribution_DoesNotSortInput(t *testing.T) {
	in := []float64{3, 1, 2}
	NewDistribution(in)
	if in[0] != 3 || in[1] != 1 || in[2] != 2 {
		t.Errorf("input mutated: %v", in)
	}
}

func TestPercentile_SingleValue(t *testing.T) {
	if got := percentile([]float64{7}, 99); got != 7 {
		t.Errorf("percentile of single value = %v, want 7", got)
	}
}
