package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
)

// Kind is the row family of a chart entry.
type Kind int

const (
	Hard Kind = iota
	Soft
	Pair
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case Hard:
		return "hard"
	case Soft:
		return "soft"
	case Pair:
		return "pair"
	default:
		return "unknown"
	}
}

// Category identifies one chart row. Hard and soft rows are keyed by the hand
// total, pair rows by the point value of one card with aces counted as 11.
type Category struct {
	Kind  Kind
	Total int
}

// Classify returns the pair category of a splittable hand and the hard or
// soft category otherwise.
func Classify(hand *game.Hand, splittable bool) Category {
	if splittable && hand.IsPair() {
		return Category{Kind: Pair, Total: pairValue(hand.Cards[0])}
	}
	total, soft := hand.Value()
	if soft {
		return Category{Kind: Soft, Total: total}
	}
	return Category{Kind: Hard, Total: total}
}

func pairValue(c deck.Card) int {
	if c.IsAce() {
		return 11
	}
	return c.Points()
}

// Move is a chart cell. Some cells carry a fallback for when the preferred
// play is not available.
type Move uint8

const (
	// NoMove marks a pair that is not split; the hand is played off the
	// hard or soft rows instead.
	NoMove Move = iota
	MoveHit
	MoveStand
	// MoveDouble doubles when allowed and hits otherwise.
	MoveDouble
	// MoveDoubleStand doubles when allowed and stands otherwise.
	MoveDoubleStand
	MoveSplit
	// MoveSplitDAS splits only when doubling after a split is allowed.
	MoveSplitDAS
)

var moveCodes = map[string]Move{
	"-":  NoMove,
	"H":  MoveHit,
	"S":  MoveStand,
	"D":  MoveDouble,
	"Ds": MoveDoubleStand,
	"P":  MoveSplit,
	"Ph": MoveSplitDAS,
}

// String returns the chart code of the move
func (m Move) String() string {
	switch m {
	case MoveHit:
		return "H"
	case MoveStand:
		return "S"
	case MoveDouble:
		return "D"
	case MoveDoubleStand:
		return "Ds"
	case MoveSplit:
		return "P"
	case MoveSplitDAS:
		return "Ph"
	default:
		return "-"
	}
}

// Resolve turns a hard or soft cell into the action taken under ctx.
func (m Move) Resolve(ctx game.DecisionContext) game.Action {
	switch m {
	case MoveStand:
		return game.Stand
	case MoveDouble:
		if ctx.CanDouble {
			return game.Double
		}
		return game.Hit
	case MoveDoubleStand:
		if ctx.CanDouble {
			return game.Double
		}
		return game.Stand
	default:
		return game.Hit
	}
}

// Splits reports whether a pair cell splits under ctx.
func (m Move) Splits(ctx game.DecisionContext) bool {
	switch m {
	case MoveSplit:
		return true
	case MoveSplitDAS:
		return ctx.DoubleAfterSplit
	default:
		return false
	}
}

// Columns are the dealer upcards in chart order.
var Columns = []string{"2", "3", "4", "5", "6", "7", "8", "9", "T", "A"}

// column maps a dealer upcard to its chart column.
func column(upcard deck.Card) int {
	if upcard.IsAce() {
		return 9
	}
	return upcard.Points() - 2
}

const (
	minHard, maxHard = 4, 21
	minSoft, maxSoft = 12, 21
	minPair, maxPair = 2, 11
)

// Chart is a complete decision table.
type Chart struct {
	hard  [maxHard + 1][10]Move
	soft  [maxSoft + 1][10]Move
	pairs [maxPair + 1][10]Move
}

// Multi-deck, dealer hits soft 17, double after split, no surrender.
var basicHard = []string{
	"4-8:   H  H  H  H  H  H  H  H  H  H",
	"9:     H  D  D  D  D  H  H  H  H  H",
	"10:    D  D  D  D  D  D  D  D  H  H",
	"11:    D  D  D  D  D  D  D  D  D  D",
	"12:    H  H  S  S  S  H  H  H  H  H",
	"13-16: S  S  S  S  S  H  H  H  H  H",
	"17-21: S  S  S  S  S  S  S  S  S  S",
}

var basicSoft = []string{
	"12:    H  H  H  H  H  H  H  H  H  H",
	"13-14: H  H  H  D  D  H  H  H  H  H",
	"15-16: H  H  D  D  D  H  H  H  H  H",
	"17:    H  D  D  D  D  H  H  H  H  H",
	"18:    Ds Ds Ds Ds Ds S  S  H  H  H",
	"19:    S  S  S  S  Ds S  S  S  S  S",
	"20-21: S  S  S  S  S  S  S  S  S  S",
}

var basicPairs = []string{
	"2-3: Ph Ph P  P  P  P  -  -  -  -",
	"4:   -  -  -  Ph Ph -  -  -  -  -",
	"5:   -  -  -  -  -  -  -  -  -  -",
	"6:   Ph P  P  P  P  -  -  -  -  -",
	"7:   P  P  P  P  P  P  -  -  -  -",
	"8:   P  P  P  P  P  P  P  P  P  P",
	"9:   P  P  P  P  P  -  P  P  -  -",
	"10:  -  -  -  -  -  -  -  -  -  -",
	"11:  P  P  P  P  P  P  P  P  P  P",
}

// BasicChart is the minimal house edge chart for six or more decks with the
// dealer hitting soft 17 and doubling allowed after splits.
var BasicChart = MustParseChart(basicHard, basicSoft, basicPairs)

// ParseChart builds a chart from row specs of the form "13-16: S S ...",
// each listing one move per dealer upcard from 2 to ace. Every row of every
// family must be covered exactly once.
func ParseChart(hard, soft, pairs []string) (*Chart, error) {
	c := &Chart{}
	if err := parseRows(c.hard[:], minHard, hard, Hard); err != nil {
		return nil, err
	}
	if err := parseRows(c.soft[:], minSoft, soft, Soft); err != nil {
		return nil, err
	}
	if err := parseRows(c.pairs[:], minPair, pairs, Pair); err != nil {
		return nil, err
	}
	return c, nil
}

// MustParseChart is like ParseChart but panics on error
func MustParseChart(hard, soft, pairs []string) *Chart {
	c, err := ParseChart(hard, soft, pairs)
	if err != nil {
		panic(err)
	}
	return c
}

func parseRows(table [][10]Move, lo int, rows []string, kind Kind) error {
	seen := make([]bool, len(table))
	for _, row := range rows {
		label, cells, ok := strings.Cut(row, ":")
		if !ok {
			return fmt.Errorf("%s row %q: missing ':'", kind, row)
		}
		from, to, err := parseSpan(strings.TrimSpace(label))
		if err != nil {
			return fmt.Errorf("%s row %q: %w", kind, row, err)
		}
		if from < lo || to >= len(table) || from > to {
			return fmt.Errorf("%s row %q: totals outside %d-%d", kind, row, lo, len(table)-1)
		}

		codes := strings.Fields(cells)
		if len(codes) != len(Columns) {
			return fmt.Errorf("%s row %q: want %d moves, got %d", kind, row, len(Columns), len(codes))
		}
		var moves [10]Move
		for i, code := range codes {
			m, ok := moveCodes[code]
			if !ok {
				return fmt.Errorf("%s row %q: unknown move %q", kind, row, code)
			}
			if kind == Pair && m != NoMove && m != MoveSplit && m != MoveSplitDAS {
				return fmt.Errorf("%s row %q: pair rows only split or pass, got %q", kind, row, code)
			}
			if kind != Pair && (m == NoMove || m == MoveSplit || m == MoveSplitDAS) {
				return fmt.Errorf("%s row %q: %q is only valid for pairs", kind, row, code)
			}
			moves[i] = m
		}

		for total := from; total <= to; total++ {
			if seen[total] {
				return fmt.Errorf("%s total %d listed twice", kind, total)
			}
			seen[total] = true
			table[total] = moves
		}
	}
	for total := lo; total < len(table); total++ {
		if !seen[total] {
			return fmt.Errorf("%s total %d missing", kind, total)
		}
	}
	return nil
}

func parseSpan(label string) (int, int, error) {
	lo, hi, isRange := strings.Cut(label, "-")
	from, err := strconv.Atoi(lo)
	if err != nil {
		return 0, 0, fmt.Errorf("bad total %q", lo)
	}
	if !isRange {
		return from, from, nil
	}
	to, err := strconv.Atoi(hi)
	if err != nil {
		return 0, 0, fmt.Errorf("bad total %q", hi)
	}
	return from, to, nil
}

// Lookup returns the cell for a category against a dealer upcard. ok is
// false for categories the chart has no row for.
func (c *Chart) Lookup(cat Category, upcard deck.Card) (m Move, ok bool) {
	col := column(upcard)
	if col < 0 || col > 9 {
		return NoMove, false
	}
	switch cat.Kind {
	case Hard:
		if cat.Total >= minHard && cat.Total <= maxHard {
			return c.hard[cat.Total][col], true
		}
	case Soft:
		if cat.Total >= minSoft && cat.Total <= maxSoft {
			return c.soft[cat.Total][col], true
		}
	case Pair:
		if cat.Total >= minPair && cat.Total <= maxPair {
			return c.pairs[cat.Total][col], true
		}
	}
	return NoMove, false
}

// ChartRow is one rendered row of a chart.
type ChartRow struct {
	Label string
	Moves []Move
}

// Rows lists one row per total of a family, in ascending order.
func (c *Chart) Rows(kind Kind) []ChartRow {
	var (
		lo, hi int
		table  [][10]Move
	)
	switch kind {
	case Hard:
		lo, hi, table = minHard, maxHard, c.hard[:]
	case Soft:
		lo, hi, table = minSoft, maxSoft, c.soft[:]
	case Pair:
		lo, hi, table = minPair, maxPair, c.pairs[:]
	default:
		return nil
	}

	rows := make([]ChartRow, 0, hi-lo+1)
	for total := lo; total <= hi; total++ {
		moves := make([]Move, len(Columns))
		copy(moves, table[total][:])
		rows = append(rows, ChartRow{Label: rowLabel(kind, total), Moves: moves})
	}
	return rows
}

func rowLabel(kind Kind, total int) string {
	switch kind {
	case Soft:
		if total == 12 {
			return "A,A"
		}
		return "A," + strconv.Itoa(total-11)
	case Pair:
		card := strconv.Itoa(total)
		switch total {
		case 10:
			card = "T"
		case 11:
			card = "A"
		}
		return card + "," + card
	default:
		return strconv.Itoa(total)
	}
}
