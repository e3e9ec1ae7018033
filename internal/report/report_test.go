package report

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjacksim/internal/bot"
	"github.com/lox/blackjacksim/internal/config"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/simulator"
	"github.com/lox/blackjacksim/internal/statistics"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func testRun() (*simulator.Run, config.Config) {
	var flat statistics.Moments
	flat.Add(0)
	flat.Add(0)
	sessions := []simulator.Session{
		{Trajectory: []float64{100, 100}, Final: 100, Returns: flat},
		{Trajectory: []float64{100, 100}, Final: 100, Returns: flat},
	}
	res, err := simulator.Aggregate(100, 2, sessions)
	if err != nil {
		panic(err)
	}
	res.Seed = 7

	cfg := config.Default()
	cfg.InitialBankroll = 100
	cfg.Hands = 2
	cfg.Simulations = 2
	return &simulator.Run{
		Result:    res,
		StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration:  1500 * time.Millisecond,
	}, cfg
}

func TestNumberMarshalsNaNAsNull(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		b, err := json.Marshal(Number(v))
		require.NoError(t, err)
		assert.Equal(t, "null", string(b))
	}
	b, err := json.Marshal(Number(-0.25))
	require.NoError(t, err)
	assert.Equal(t, "-0.25", string(b))
}

func TestReportEncode(t *testing.T) {
	run, cfg := testRun()
	r := New(run, cfg, false)

	_, err := uuid.Parse(r.RunID)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Encode(&buf))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, r.RunID, doc["run_id"])
	assert.Equal(t, 1.5, doc["duration_seconds"])
	assert.Equal(t, 7.0, doc["seed"])
	assert.Equal(t, "2026-01-02T03:04:05Z", doc["started_at"])
	assert.NotContains(t, doc, "trajectories")

	summary := doc["summary"].(map[string]any)
	assert.Nil(t, summary["sharpe_ratio"], "zero variance Sharpe ratio encodes as null")
	assert.Equal(t, 0.0, summary["roi"])
	assert.Equal(t, 0.0, summary["risk_of_ruin"])

	configuration := doc["configuration"].(map[string]any)
	assert.Equal(t, 7.0, configuration["seed"], "the effective seed is recorded")
	assert.Equal(t, "skycity", configuration["rules_preset"])

	rules := doc["rules"].(map[string]any)
	assert.Equal(t, 1.5, rules["blackjack_payout"])
	assert.Len(t, doc["average_trajectory"], 2)
}

func TestReportTrajectories(t *testing.T) {
	run, cfg := testRun()
	r := New(run, cfg, true)
	assert.Len(t, r.Trajectories, 2)
}

func TestWriteFile(t *testing.T) {
	run, cfg := testRun()
	r := New(run, cfg, false)

	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))
	require.NoError(t, r.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteFileMissingDirectory(t *testing.T) {
	run, cfg := testRun()
	err := New(run, cfg, false).WriteFile(filepath.Join(t.TempDir(), "missing", "report.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create temp file")
}

func TestRenderSummary(t *testing.T) {
	run, cfg := testRun()
	out := RenderSummary(run, cfg)

	assert.Contains(t, out, "2 sessions x 2 hands")
	assert.Contains(t, out, "seed 7")
	assert.Contains(t, out, "Sharpe ratio")
	assert.Contains(t, out, "n/a", "undefined Sharpe ratio is shown as n/a")
	assert.Contains(t, out, "Risk of ruin")
	assert.Contains(t, out, "0.00%")
}

func TestRenderChart(t *testing.T) {
	out := RenderChart(bot.BasicChart)
	for _, want := range []string{"hard", "soft", "pair", "A,7", "T,T", "Ds", "Ph"} {
		assert.Contains(t, out, want)
	}
	// one line per row plus headers, borders and legend
	lines := strings.Count(out, "\n") + 1
	assert.Greater(t, lines, 18+10+10)
}

func TestRenderRules(t *testing.T) {
	plus, ok := game.Preset("blackjack-plus")
	require.True(t, ok)
	out := RenderRules("blackjack-plus", plus)

	assert.Contains(t, out, "1.2:1")
	assert.Contains(t, out, "push")
	assert.Contains(t, out, "hits soft 17")
	assert.Contains(t, out, "unlimited")
}

func TestRenderStrategies(t *testing.T) {
	out := RenderStrategies()
	for _, name := range bot.Names() {
		assert.Contains(t, out, name)
		assert.Contains(t, out, bot.Describe(name))
	}
	assert.Contains(t, out, "basic (default)")
}
