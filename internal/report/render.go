package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjacksim/internal/bot"
	"github.com/lox/blackjacksim/internal/config"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/simulator"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Width(24)

	gainStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Width(3).Align(lipgloss.Center)

	moveStyles = map[bot.Move]lipgloss.Style{
		bot.MoveHit:         cellStyle.Foreground(lipgloss.Color("15")),
		bot.MoveStand:       cellStyle.Foreground(lipgloss.Color("11")),
		bot.MoveDouble:      cellStyle.Foreground(lipgloss.Color("10")),
		bot.MoveDoubleStand: cellStyle.Foreground(lipgloss.Color("10")),
		bot.MoveSplit:       cellStyle.Foreground(lipgloss.Color("14")),
		bot.MoveSplitDAS:    cellStyle.Foreground(lipgloss.Color("14")),
		bot.NoMove:          cellStyle.Foreground(lipgloss.Color("8")),
	}
)

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

func signed(v float64, format string) string {
	s := formatNumber(v, format)
	switch {
	case math.IsNaN(v) || v == 0:
		return s
	case v > 0:
		return gainStyle.Render(s)
	default:
		return lossStyle.Render(s)
	}
}

func formatNumber(v float64, format string) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf(format, v)
}

// RenderSummary renders the scalar results of a run.
func RenderSummary(run *simulator.Run, cfg config.Config) string {
	s := run.Summary
	c := s.OutcomeCounts

	lines := []string{
		headerStyle.Render(fmt.Sprintf("Blackjack simulation: %d sessions x %d hands", s.Sessions, cfg.Hands)),
		dimStyle.Render(fmt.Sprintf("bankroll %g, bet %g, strategy %s, rules %s, seed %d",
			cfg.InitialBankroll, cfg.BetSize, cfg.Strategy, cfg.RulesPreset, run.Seed)),
		"",
		row("EV per hand", signed(s.EVPerHand, "%+.4f")+dimStyle.Render(formatNumber(s.EVPerHandStdErr, " (± %.4f)"))),
		row("Return per hand", signed(s.MeanHandReturn*100, "%+.3f%%")+dimStyle.Render(
			fmt.Sprintf(" (95%% CI %s to %s)",
				formatNumber(s.HandReturnCI95[0]*100, "%+.3f%%"),
				formatNumber(s.HandReturnCI95[1]*100, "%+.3f%%")))),
		row("ROI", signed(s.ROI*100, "%+.2f%%")),
		row("Risk of ruin", formatNumber(s.RiskOfRuin*100, "%.2f%%")+dimStyle.Render(fmt.Sprintf(" (%d sessions)", s.Ruined))),
		row("Sharpe ratio", formatNumber(s.SharpeRatio, "%.4f")),
		"",
		row("Mean final bankroll", formatNumber(s.MeanFinalBankroll, "%.2f")),
		row("Median final bankroll", formatNumber(s.MedianFinalBankroll, "%.2f")),
		row("Std final bankroll", formatNumber(s.StdFinalBankroll, "%.2f")),
		row("Best outcome", signed(s.BestOutcome, "%+.2f")),
		row("Worst outcome", signed(-s.WorstOutcome, "%+.2f")),
		row("Percentiles", fmt.Sprintf("P5=%.1f P25=%.1f P50=%.1f P75=%.1f P95=%.1f",
			run.Percentiles.P5, run.Percentiles.P25, run.Percentiles.P50, run.Percentiles.P75, run.Percentiles.P95)),
		row("Avg hands played", formatNumber(s.AvgHandsPlayed, "%.1f")),
		"",
		row("Hands", fmt.Sprintf("%d (%d rounds)", c.Hands, c.Rounds)),
		row("Wins / losses / pushes", fmt.Sprintf("%s / %s / %s", pct(c.Wins, c.Hands), pct(c.Losses+c.Busts, c.Hands), pct(c.Pushes, c.Hands))),
		row("Blackjacks", pct(c.Blackjacks, c.Rounds)),
		row("Busts", pct(c.Busts, c.Hands)),
		row("Doubles / splits", fmt.Sprintf("%d / %d", c.Doubles, c.Splits)),
		row("Insurance taken / won", fmt.Sprintf("%d / %d", c.InsuranceTaken, c.InsuranceWon)),
		"",
		dimStyle.Render(fmt.Sprintf("completed in %s", run.Duration.Round(time.Millisecond))),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func pct(n, total int) string {
	if total == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", float64(n)/float64(total)*100)
}

// RenderChart renders the three tables of a strategy chart.
func RenderChart(chart *bot.Chart) string {
	var sections []string
	for _, kind := range []bot.Kind{bot.Hard, bot.Soft, bot.Pair} {
		sections = append(sections, renderTable(kind, chart.Rows(kind)))
	}
	legend := dimStyle.Render("H hit  S stand  D double else hit  Ds double else stand  P split  Ph split if DAS else hit  - play the total")
	return lipgloss.JoinVertical(lipgloss.Left, append(sections, legend)...)
}

func renderTable(kind bot.Kind, rows []bot.ChartRow) string {
	label := lipgloss.NewStyle().Width(6)

	var b strings.Builder
	b.WriteString(label.Inherit(headerStyle).Render(kind.String()))
	for _, col := range bot.Columns {
		b.WriteString(cellStyle.Inherit(headerStyle).Render(col))
	}
	b.WriteByte('\n')

	for _, r := range rows {
		b.WriteString(label.Render(r.Label))
		for _, m := range r.Moves {
			b.WriteString(moveStyles[m].Render(m.String()))
		}
		b.WriteByte('\n')
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// RenderRules renders a rule set.
func RenderRules(name string, rules game.Rules) string {
	yesNo := func(v bool) string {
		if v {
			return "yes"
		}
		return "no"
	}
	splits := "unlimited"
	if rules.MaxSplitHands > 0 {
		splits = fmt.Sprintf("%d hands", rules.MaxSplitHands)
	}
	dealer := "stands on soft 17"
	if rules.DealerHitsSoft17 {
		dealer = "hits soft 17"
	}
	twentyTwo := "bust"
	if rules.DealerPush22 {
		twentyTwo = "push"
	}

	lines := []string{
		headerStyle.Render(name),
		row("Decks", fmt.Sprintf("%d (continuous shuffle)", rules.Decks)),
		row("Dealer", dealer),
		row("Blackjack pays", fmt.Sprintf("%g:1", rules.BlackjackPayout)),
		row("Double", "hard 9, 10, 11 only"),
		row("Double after split", yesNo(rules.DoubleAfterSplit)),
		row("Splits", splits),
		row("Resplit aces", yesNo(rules.ResplitAces)),
		row("Insurance pays", fmt.Sprintf("%g:1", rules.InsurancePayout)),
		row("Dealer 22", twentyTwo),
		row("Five card charlie", yesNo(rules.FiveCardCharlie)),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// RenderStrategies lists the registered player strategies.
func RenderStrategies() string {
	lines := []string{headerStyle.Render("Strategies")}
	for _, name := range bot.Names() {
		label := name
		if name == bot.DefaultStrategy {
			label += " (default)"
		}
		lines = append(lines, row(label, bot.Describe(name)))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}
