package simulator

import (
	"fmt"
	"math"

	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/statistics"
)

// HistogramBins is the number of equal width buckets over final bankrolls.
const HistogramBins = 40

// Summary is the scalar digest of a run. Ratios with a zero denominator are
// NaN.
type Summary struct {
	Sessions int `json:"sessions"`

	ROI               float64 `json:"roi"`
	EVPerHand         float64 `json:"ev_per_hand"`
	EVPerHandStdErr   float64 `json:"ev_per_hand_stderr"`
	RiskOfRuin        float64 `json:"risk_of_ruin"`
	SharpeRatio       float64 `json:"sharpe_ratio"`
	MeanFinalBankroll float64 `json:"mean_final_bankroll"`
	StdFinalBankroll  float64 `json:"std_final_bankroll"`

	MedianFinalBankroll float64 `json:"median_final_bankroll"`
	BestOutcome         float64 `json:"best_outcome"`
	WorstOutcome        float64 `json:"worst_outcome"`
	AvgHandsPlayed      float64 `json:"avg_hands_played"`
	Ruined              int     `json:"ruined"`

	// Per-round return in units of the wager.
	MeanHandReturn float64    `json:"mean_hand_return"`
	StdHandReturn  float64    `json:"std_hand_return"`
	HandReturnCI95 [2]float64 `json:"hand_return_ci95"`
	HandsSimulated int        `json:"hands_simulated"`
	OutcomeCounts  Counts     `json:"outcomes"`
}

// Percentiles of the final bankroll distribution
type Percentiles struct {
	P5  float64 `json:"p5"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P95 float64 `json:"p95"`
}

// Result is everything a run produces.
type Result struct {
	Seed    int64
	Summary Summary
	// Trajectories are ordered by session index.
	Trajectories      [][]float64
	FinalBankrolls    []float64
	AverageTrajectory []float64
	Histogram         []statistics.Bin
	Percentiles       Percentiles
}

// Aggregate reduces session records into a result. hands is the configured
// session length, which is the denominator of the per-hand expectation even
// for sessions that stopped early. A final bankroll ledger that does not add
// up is reported as an invariant violation.
func Aggregate(initial float64, hands int, sessions []Session) (*Result, error) {
	res := &Result{
		Trajectories:   make([][]float64, len(sessions)),
		FinalBankrolls: make([]float64, len(sessions)),
	}

	var (
		finals  statistics.Statistics
		returns statistics.Moments
		counts  Counts
		ruined  int
		played  int
	)
	for i, s := range sessions {
		res.Trajectories[i] = s.Trajectory
		res.FinalBankrolls[i] = s.Final
		finals.Add(s.Final)
		returns.Merge(s.Returns)
		counts.Merge(s.Counts)
		played += s.HandsPlayed()
		if s.Ruined {
			ruined++
		}
	}

	if err := finals.Validate(); err != nil {
		return nil, fmt.Errorf("%w: final bankrolls: %w", game.ErrInvariant, err)
	}

	n := float64(len(sessions))
	sum := Summary{
		Sessions:          len(sessions),
		MeanFinalBankroll: finals.Mean(),
		StdFinalBankroll:  finals.StdDev(),
		Ruined:            ruined,
		HandsSimulated:    returns.N,
		MeanHandReturn:    returns.Mean(),
		StdHandReturn:     returns.StdDev(),
		OutcomeCounts:     counts,
		SharpeRatio:       ratio(returns.Mean(), returns.StdDev()),
		ROI:               ratio(finals.Mean()-initial, initial),
		EVPerHand:         ratio(finals.Mean()-initial, float64(hands)),
		EVPerHandStdErr:   ratio(finals.StdError(), float64(hands)),
		RiskOfRuin:        ratio(float64(ruined), n),
		AvgHandsPlayed:    ratio(float64(played), n),
	}
	if returns.N > 0 {
		lo, hi := returns.ConfidenceInterval95()
		sum.HandReturnCI95 = [2]float64{lo, hi}
	} else {
		sum.HandReturnCI95 = [2]float64{math.NaN(), math.NaN()}
	}
	if len(sessions) > 0 {
		sum.MedianFinalBankroll = finals.Median()
		sum.BestOutcome = finals.Max() - initial
		sum.WorstOutcome = initial - finals.Min()
		res.Percentiles = Percentiles{
			P5:  finals.Percentile(0.05),
			P25: finals.Percentile(0.25),
			P50: finals.Percentile(0.50),
			P75: finals.Percentile(0.75),
			P95: finals.Percentile(0.95),
		}
	} else {
		nan := math.NaN()
		sum.MeanFinalBankroll, sum.StdFinalBankroll, sum.MedianFinalBankroll = nan, nan, nan
		sum.BestOutcome, sum.WorstOutcome = nan, nan
		res.Percentiles = Percentiles{nan, nan, nan, nan, nan}
	}

	res.Summary = sum
	res.Histogram = finals.Histogram(HistogramBins)
	res.AverageTrajectory = averageTrajectory(initial, sessions)
	return res, nil
}

// ratio divides, returning NaN instead of an infinity or an error when the
// denominator is zero.
func ratio(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

// averageTrajectory is the per-round mean bankroll. Sessions that stopped
// early hold their last bankroll for the remaining rounds.
func averageTrajectory(initial float64, sessions []Session) []float64 {
	length := 0
	for _, s := range sessions {
		length = max(length, len(s.Trajectory))
	}
	if length == 0 {
		return nil
	}

	avg := make([]float64, length)
	for _, s := range sessions {
		last := initial
		for i := range avg {
			if i < len(s.Trajectory) {
				last = s.Trajectory[i]
			}
			avg[i] += last
		}
	}
	for i := range avg {
		avg[i] /= float64(len(sessions))
	}
	return avg
}
