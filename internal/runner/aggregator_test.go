package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/pql/internal/pql"
	"github.com/lox/pql/internal/rating"
	"github.com/lox/pql/internal/vm"
)

func TestAggregatorCount(t *testing.T) {
	a := newAggregator(pql.SelectorCount, rating.GameHoldem)

	a.push(vm.BoolValue(true))
	a.push(vm.BoolValue(false))
	a.push(vm.BoolValue(true))
	a.push(vm.BoolValue(true))

	assert.Equal(t, "75%", a.format())
}

func TestAggregatorAvg(t *testing.T) {
	a := newAggregator(pql.SelectorAvg, rating.GameHoldem)

	a.push(vm.LongValue(1))
	a.push(vm.DoubleValue(2))
	a.push(vm.CardCountValue(3))
	a.push(vm.FractionValue(1, 2))

	assert.Equal(t, "1.625", a.format())
}

func TestAggregatorMinMax(t *testing.T) {
	max := newAggregator(pql.SelectorMax, rating.GameHoldem)
	min := newAggregator(pql.SelectorMin, rating.GameHoldem)

	for _, v := range []vm.Value{vm.LongValue(3), vm.LongValue(7), vm.LongValue(5)} {
		max.push(v)
		min.push(v)
	}

	assert.Equal(t, "7", max.format())
	assert.Equal(t, "3", min.format())
}

func TestAggregatorHandTypeOrdering(t *testing.T) {
	// Short-deck MAX: the flush outranks the full house.
	a := newAggregator(pql.SelectorMax, rating.GameShortDeck)
	a.push(vm.HandTypeValue(rating.FullHouse))
	a.push(vm.HandTypeValue(rating.Flush))

	assert.Equal(t, "flush", a.format())

	// Standard MAX keeps the full house on top.
	b := newAggregator(pql.SelectorMax, rating.GameHoldem)
	b.push(vm.HandTypeValue(rating.FullHouse))
	b.push(vm.HandTypeValue(rating.Flush))

	assert.Equal(t, "fullhouse", b.format())
}

func TestAggregatorMerge(t *testing.T) {
	a := newAggregator(pql.SelectorCount, rating.GameHoldem)
	b := newAggregator(pql.SelectorCount, rating.GameHoldem)

	a.push(vm.BoolValue(true))
	b.push(vm.BoolValue(false))
	b.push(vm.BoolValue(true))

	a.merge(b)
	assert.Equal(t, int64(3), a.trialCount())
	assert.Equal(t, "66.6667%", a.format())

	// MIN/MAX merge keeps the global extremum.
	m1 := newAggregator(pql.SelectorMin, rating.GameHoldem)
	m2 := newAggregator(pql.SelectorMin, rating.GameHoldem)
	m1.push(vm.LongValue(5))
	m2.push(vm.LongValue(2))

	m1.merge(m2)
	assert.Equal(t, "2", m1.format())
}
