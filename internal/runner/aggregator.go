package runner

import (
	"strconv"

	"github.com/lox/pql/internal/pql"
	"github.com/lox/pql/internal/rating"
	"github.com/lox/pql/internal/vm"
)

// aggregator folds a selector's per-trial outputs into its COUNT, AVG,
// MIN, or MAX result. Aggregators are worker-local and merged pairwise
// when a statement finishes; every operation commutes, so merge order
// does not matter.
type aggregator struct {
	kind pql.SelectorKind
	game rating.Game

	trials int64

	trues int64 // COUNT

	sum float64 // AVG

	best    vm.Value // MIN / MAX
	hasBest bool
}

func newAggregator(kind pql.SelectorKind, game rating.Game) *aggregator {
	return &aggregator{kind: kind, game: game}
}

// push folds one trial's value.
func (a *aggregator) push(v vm.Value) {
	a.trials++

	switch a.kind {
	case pql.SelectorCount:
		if v.Bool() {
			a.trues++
		}

	case pql.SelectorAvg:
		a.sum += v.AsDouble()

	case pql.SelectorMax:
		if !a.hasBest || a.less(a.best, v) {
			a.best = v
			a.hasBest = true
		}

	case pql.SelectorMin:
		if !a.hasBest || a.less(v, a.best) {
			a.best = v
			a.hasBest = true
		}
	}
}

// less orders two selector outputs of the same kind under the game's
// orderings.
func (a *aggregator) less(x, y vm.Value) bool {
	switch {
	case x.IsNumeric() && y.IsNumeric():
		return x.AsDouble() < y.AsDouble()
	case x.Kind == vm.KindHandType:
		return x.HandType().Compare(y.HandType(), a.game) < 0
	case x.Kind == vm.KindFlopHandCategory:
		return x.FlopCategory().Compare(y.FlopCategory(), a.game) < 0
	default:
		return x.I < y.I
	}
}

// merge folds another worker's partial aggregate into this one.
func (a *aggregator) merge(other *aggregator) {
	a.trials += other.trials
	a.trues += other.trues
	a.sum += other.sum

	if other.hasBest {
		better := !a.hasBest ||
			(a.kind == pql.SelectorMax && a.less(a.best, other.best)) ||
			(a.kind == pql.SelectorMin && a.less(other.best, a.best))
		if better {
			a.best = other.best
			a.hasBest = true
		}
	}
}

// format renders the aggregate for the report.
func (a *aggregator) format() string {
	switch a.kind {
	case pql.SelectorCount:
		pct := 0.0
		if a.trials > 0 {
			pct = 100 * float64(a.trues) / float64(a.trials)
		}
		return strconv.FormatFloat(pct, 'g', 6, 64) + "%"

	case pql.SelectorAvg:
		avg := 0.0
		if a.trials > 0 {
			avg = a.sum / float64(a.trials)
		}
		return strconv.FormatFloat(avg, 'g', -1, 64)

	default:
		if !a.hasBest {
			return "-"
		}
		return a.best.Format()
	}
}
