package statistics

import (
	"math"
	"strings"
	"testing"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdDev() != 0 {
		t.Errorf("Expected stddev of 0 for empty stats, got %f", stats.StdDev())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.Percentile(0.5) != 0 {
		t.Errorf("Expected percentile of 0 for empty stats, got %f", stats.Percentile(0.5))
	}
	if stats.Histogram(10) != nil {
		t.Errorf("Expected no histogram for empty stats")
	}
}

func TestStatistics_SingleValue(t *testing.T) {
	stats := &Statistics{}
	stats.Add(2.5)

	if stats.N != 1 {
		t.Errorf("Expected 1 observation, got %d", stats.N)
	}
	if stats.Mean() != 2.5 {
		t.Errorf("Expected mean of 2.5, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for single value, got %f", stats.Variance())
	}
	if stats.Median() != 2.5 {
		t.Errorf("Expected median of 2.5, got %f", stats.Median())
	}
	if stats.Min() != 2.5 || stats.Max() != 2.5 {
		t.Errorf("Expected min and max of 2.5, got %f and %f", stats.Min(), stats.Max())
	}
}

func TestStatistics_MultipleValues(t *testing.T) {
	stats := &Statistics{}
	for _, v := range []float64{1, 2, 3, 4, 5} {
		stats.Add(v)
	}

	if stats.Mean() != 3 {
		t.Errorf("Expected mean of 3, got %f", stats.Mean())
	}
	// sample variance of 1..5 is 2.5
	if math.Abs(stats.Variance()-2.5) > 1e-12 {
		t.Errorf("Expected variance of 2.5, got %f", stats.Variance())
	}
	if stats.Median() != 3 {
		t.Errorf("Expected median of 3, got %f", stats.Median())
	}

	stats.Add(6)
	if stats.Median() != 3.5 {
		t.Errorf("Expected median of 3.5 after adding a value, got %f", stats.Median())
	}
	if stats.Max() != 6 {
		t.Errorf("Expected max of 6 after adding a value, got %f", stats.Max())
	}
}

func TestStatistics_Percentiles(t *testing.T) {
	stats := &Statistics{}
	for i := 0; i <= 100; i++ {
		stats.Add(float64(i))
	}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 0},
		{0.05, 5},
		{0.25, 25},
		{0.5, 50},
		{0.95, 95},
		{1, 100},
		{1.5, 100},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := stats.Percentile(tt.p); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Percentile(%v) = %f, want %f", tt.p, got, tt.want)
		}
	}

	interp := &Statistics{}
	interp.Add(10)
	interp.Add(20)
	if got := interp.Percentile(0.5); got != 15 {
		t.Errorf("Expected interpolated percentile of 15, got %f", got)
	}
}

func TestStatistics_ConfidenceInterval(t *testing.T) {
	stats := &Statistics{}
	for i := 0; i < 100; i++ {
		stats.Add(float64(i % 2))
	}

	low, high := stats.ConfidenceInterval95()
	mean := stats.Mean()
	if low >= mean || high <= mean {
		t.Errorf("Expected CI [%f, %f] to contain mean %f", low, high, mean)
	}
	if math.Abs((high-low)/2-1.96*stats.StdError()) > 1e-12 {
		t.Errorf("Expected CI half width of 1.96 standard errors")
	}
}

func TestMoments_Merge(t *testing.T) {
	var a, b, all Moments
	for i := 0; i < 50; i++ {
		x := float64(i*i%17) - 8
		all.Add(x)
		if i%3 == 0 {
			a.Add(x)
		} else {
			b.Add(x)
		}
	}
	a.Merge(b)

	if a.N != all.N {
		t.Errorf("Expected merged count %d, got %d", all.N, a.N)
	}
	if math.Abs(a.Mean()-all.Mean()) > 1e-12 {
		t.Errorf("Expected merged mean %f, got %f", all.Mean(), a.Mean())
	}
	if math.Abs(a.Variance()-all.Variance()) > 1e-9 {
		t.Errorf("Expected merged variance %f, got %f", all.Variance(), a.Variance())
	}
}

func TestMoments_ConstantInput(t *testing.T) {
	var m Moments
	for i := 0; i < 1000; i++ {
		m.Add(0.1)
	}
	if m.Variance() < 0 {
		t.Errorf("Variance must never be negative, got %g", m.Variance())
	}
	if m.StdDev() > 1e-6 {
		t.Errorf("Expected negligible stddev for constant input, got %g", m.StdDev())
	}
}

func TestStatistics_MergeKeepsValues(t *testing.T) {
	a, b := &Statistics{}, &Statistics{}
	a.Add(3)
	a.Add(1)
	b.Add(2)

	if a.Median() != 2 {
		t.Errorf("Expected median 2 before merge, got %f", a.Median())
	}
	a.Merge(b)
	if len(a.Values) != 3 {
		t.Errorf("Expected 3 values after merge, got %d", len(a.Values))
	}
	if a.Median() != 2 {
		t.Errorf("Expected median 2 after merge, got %f", a.Median())
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Expected merged stats to validate, got %v", err)
	}
}

func TestStatistics_Histogram(t *testing.T) {
	stats := &Statistics{}
	for i := 0; i < 100; i++ {
		stats.Add(float64(i))
	}

	bins := stats.Histogram(10)
	if len(bins) != 10 {
		t.Fatalf("Expected 10 bins, got %d", len(bins))
	}
	total := 0
	for i, b := range bins {
		total += b.Count
		if b.Count != 10 {
			t.Errorf("Bin %d: expected 10 values, got %d", i, b.Count)
		}
	}
	if total != 100 {
		t.Errorf("Expected histogram to hold all 100 values, got %d", total)
	}
	if bins[0].Low != 0 || bins[9].High != 99 {
		t.Errorf("Expected histogram to span [0, 99], got [%f, %f]", bins[0].Low, bins[9].High)
	}

	flat := &Statistics{}
	flat.Add(7)
	flat.Add(7)
	if got := flat.Histogram(40); len(got) != 1 || got[0].Count != 2 {
		t.Errorf("Expected a single bin for a constant sample, got %+v", got)
	}
}

func TestStatistics_Validate_Valid(t *testing.T) {
	stats := &Statistics{}
	stats.Add(1.5)
	stats.Add(-2)
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid statistics, got %v", err)
	}
}

func TestStatistics_Validate_ValuesMismatch(t *testing.T) {
	stats := &Statistics{}
	stats.Add(1)
	stats.Values = append(stats.Values, 2)

	err := stats.Validate()
	if err == nil {
		t.Fatal("Expected validation error for values mismatch")
	}
	if !strings.Contains(err.Error(), "does not match") {
		t.Errorf("Expected values mismatch error, got %v", err)
	}
}

func TestStatistics_Validate_LedgerMismatch(t *testing.T) {
	stats := &Statistics{}
	stats.Add(1)
	stats.Sum = 5

	err := stats.Validate()
	if err == nil {
		t.Fatal("Expected validation error for ledger mismatch")
	}
	if !strings.Contains(err.Error(), "ledger mismatch") {
		t.Errorf("Expected ledger mismatch error, got %v", err)
	}
}

func TestStatistics_Validate_NonFinite(t *testing.T) {
	stats := &Statistics{}
	stats.Add(math.NaN())
	if err := stats.Validate(); err == nil {
		t.Error("Expected validation error for NaN observation")
	}
}
