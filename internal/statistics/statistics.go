package statistics

import (
	"fmt"
	"math"
	"sort"
)

// Moments is a running sum accumulator for mean and variance. The zero value
// is ready to use and two accumulators merge exactly.
type Moments struct {
	N     int
	Sum   float64
	SumSq float64 // Sum of squares for variance calculation
}

// Add incorporates one observation
func (m *Moments) Add(x float64) {
	m.N++
	m.Sum += x
	m.SumSq += x * x
}

// Merge folds another accumulator into this one
func (m *Moments) Merge(o Moments) {
	m.N += o.N
	m.Sum += o.Sum
	m.SumSq += o.SumSq
}

// Mean returns the arithmetic mean, or 0 with no observations
func (m Moments) Mean() float64 {
	if m.N == 0 {
		return 0
	}
	return m.Sum / float64(m.N)
}

// Variance returns the sample variance
func (m Moments) Variance() float64 {
	if m.N < 2 {
		return 0
	}
	mean := m.Mean()
	v := (m.SumSq - float64(m.N)*mean*mean) / float64(m.N-1)
	if v < 0 {
		// rounding on constant input
		return 0
	}
	return v
}

// StdDev returns the sample standard deviation
func (m Moments) StdDev() float64 {
	return math.Sqrt(m.Variance())
}

// StdError returns the standard error of the mean
func (m Moments) StdError() float64 {
	if m.N == 0 {
		return 0
	}
	return m.StdDev() / math.Sqrt(float64(m.N))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (m Moments) ConfidenceInterval95() (float64, float64) {
	mean := m.Mean()
	margin := 1.96 * m.StdError()
	return mean - margin, mean + margin
}

// Statistics keeps every observation so order statistics can be reported
// alongside the moments.
type Statistics struct {
	Moments
	Values []float64 // Store all values for median/percentile calculation

	sorted []float64
}

// Add incorporates one observation
func (s *Statistics) Add(x float64) {
	s.Moments.Add(x)
	s.Values = append(s.Values, x)
	s.sorted = nil
}

// Merge appends every observation of o
func (s *Statistics) Merge(o *Statistics) {
	s.Moments.Merge(o.Moments)
	s.Values = append(s.Values, o.Values...)
	s.sorted = nil
}

func (s *Statistics) sortedValues() []float64 {
	if s.sorted == nil && len(s.Values) > 0 {
		s.sorted = make([]float64, len(s.Values))
		copy(s.sorted, s.Values)
		sort.Float64s(s.sorted)
	}
	return s.sorted
}

// Median returns the median value of all observations
func (s *Statistics) Median() float64 {
	sorted := s.sortedValues()
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0) using
// linear interpolation between closest ranks.
func (s *Statistics) Percentile(p float64) float64 {
	sorted := s.sortedValues()
	if len(sorted) == 0 {
		return 0
	}
	p = math.Max(0, math.Min(1, p))

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Min returns the smallest observation
func (s *Statistics) Min() float64 {
	sorted := s.sortedValues()
	if len(sorted) == 0 {
		return 0
	}
	return sorted[0]
}

// Max returns the largest observation
func (s *Statistics) Max() float64 {
	sorted := s.sortedValues()
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)-1]
}

// Bin is one bucket of a histogram. Bins are half open except the last,
// which also holds the maximum.
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Histogram splits the observed range into equal width bins. A range of zero
// width collapses into a single bin.
func (s *Statistics) Histogram(bins int) []Bin {
	if bins < 1 || len(s.Values) == 0 {
		return nil
	}
	lo, hi := s.Min(), s.Max()
	if hi == lo {
		return []Bin{{Low: lo, High: hi, Count: len(s.Values)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Low = lo + float64(i)*width
		out[i].High = lo + float64(i+1)*width
	}
	out[bins-1].High = hi

	for _, v := range s.Values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

// Validate checks that the moments and the kept observations agree
func (s *Statistics) Validate() error {
	if len(s.Values) != s.N {
		return fmt.Errorf("values array length (%d) does not match observation count (%d)",
			len(s.Values), s.N)
	}

	sum := 0.0
	for _, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite observation %v", v)
		}
		sum += v
	}
	if math.Abs(sum-s.Sum) > 1e-6*math.Max(1, math.Abs(sum)) {
		return fmt.Errorf("ledger mismatch: values sum to %.6f, accumulator holds %.6f", sum, s.Sum)
	}
	return nil
}
