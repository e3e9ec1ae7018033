// Package report turns a finished run into a JSON document and styled
// terminal output.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/lox/blackjacksim/internal/config"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/simulator"
	"github.com/lox/blackjacksim/internal/statistics"
)

// Number is a float that encodes NaN and infinities as JSON null.
type Number float64

// MarshalJSON implements json.Marshaler
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// Summary mirrors simulator.Summary with JSON safe numbers.
type Summary struct {
	Sessions            int              `json:"sessions"`
	ROI                 Number           `json:"roi"`
	EVPerHand           Number           `json:"ev_per_hand"`
	EVPerHandStdErr     Number           `json:"ev_per_hand_stderr"`
	RiskOfRuin          Number           `json:"risk_of_ruin"`
	SharpeRatio         Number           `json:"sharpe_ratio"`
	MeanFinalBankroll   Number           `json:"mean_final_bankroll"`
	StdFinalBankroll    Number           `json:"std_final_bankroll"`
	MedianFinalBankroll Number           `json:"median_final_bankroll"`
	BestOutcome         Number           `json:"best_outcome"`
	WorstOutcome        Number           `json:"worst_outcome"`
	AvgHandsPlayed      Number           `json:"avg_hands_played"`
	Ruined              int              `json:"ruined"`
	MeanHandReturn      Number           `json:"mean_hand_return"`
	StdHandReturn       Number           `json:"std_hand_return"`
	HandReturnCI95      [2]Number        `json:"hand_return_ci95"`
	HandsSimulated      int              `json:"hands_simulated"`
	Outcomes            simulator.Counts `json:"outcomes"`
}

// Percentiles of the final bankroll distribution
type Percentiles struct {
	P5  Number `json:"p5"`
	P25 Number `json:"p25"`
	P50 Number `json:"p50"`
	P75 Number `json:"p75"`
	P95 Number `json:"p95"`
}

// Report is the JSON document written for a run.
type Report struct {
	RunID             string           `json:"run_id"`
	StartedAt         time.Time        `json:"started_at"`
	DurationSeconds   float64          `json:"duration_seconds"`
	Seed              int64            `json:"seed"`
	Configuration     config.Config    `json:"configuration"`
	Rules             game.Rules       `json:"rules"`
	Summary           Summary          `json:"summary"`
	Percentiles       Percentiles      `json:"percentiles"`
	Histogram         []statistics.Bin `json:"histogram"`
	AverageTrajectory []float64        `json:"average_trajectory"`
	Trajectories      [][]float64      `json:"trajectories,omitempty"`
}

// New builds the report of a run. Full trajectories are only included when
// asked for since they dominate the document size.
func New(run *simulator.Run, cfg config.Config, trajectories bool) *Report {
	s := run.Summary
	seed := run.Seed
	cfg.Seed = &seed

	r := &Report{
		RunID:           uuid.NewString(),
		StartedAt:       run.StartedAt.UTC(),
		DurationSeconds: run.Duration.Seconds(),
		Seed:            run.Seed,
		Configuration:   cfg,
		Rules:           cfg.Rules,
		Summary: Summary{
			Sessions:            s.Sessions,
			ROI:                 Number(s.ROI),
			EVPerHand:           Number(s.EVPerHand),
			EVPerHandStdErr:     Number(s.EVPerHandStdErr),
			RiskOfRuin:          Number(s.RiskOfRuin),
			SharpeRatio:         Number(s.SharpeRatio),
			MeanFinalBankroll:   Number(s.MeanFinalBankroll),
			StdFinalBankroll:    Number(s.StdFinalBankroll),
			MedianFinalBankroll: Number(s.MedianFinalBankroll),
			BestOutcome:         Number(s.BestOutcome),
			WorstOutcome:        Number(s.WorstOutcome),
			AvgHandsPlayed:      Number(s.AvgHandsPlayed),
			Ruined:              s.Ruined,
			MeanHandReturn:      Number(s.MeanHandReturn),
			StdHandReturn:       Number(s.StdHandReturn),
			HandReturnCI95:      [2]Number{Number(s.HandReturnCI95[0]), Number(s.HandReturnCI95[1])},
			HandsSimulated:      s.HandsSimulated,
			Outcomes:            s.OutcomeCounts,
		},
		Percentiles: Percentiles{
			P5:  Number(run.Percentiles.P5),
			P25: Number(run.Percentiles.P25),
			P50: Number(run.Percentiles.P50),
			P75: Number(run.Percentiles.P75),
			P95: Number(run.Percentiles.P95),
		},
		Histogram:         run.Histogram,
		AverageTrajectory: run.AverageTrajectory,
	}
	if trajectories {
		r.Trajectories = run.Trajectories
	}
	return r
}

// Encode writes the report as indented JSON
func (r *Report) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteFile writes the report to filename. Readers see either the previous
// file or the complete new one, never a partial write.
func (r *Report) WriteFile(filename string) error {
	return writeAtomic(filename, 0o644, r.Encode)
}

// writeAtomic streams into a temporary file in the target directory, syncs
// it and renames it over filename. Both files share a filesystem, so the
// rename is atomic.
func writeAtomic(filename string, perm os.FileMode, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := write(tmp); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
