package runner

import (
	"bytes"
	"context"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exec runs a program with a deterministic single worker and returns the
// output and error streams.
func exec(t *testing.T, src string, trials int) (string, string) {
	t.Helper()

	var out, errOut bytes.Buffer
	r := New(src, &out, &errOut,
		WithTrials(trials),
		WithWorkers(1),
		WithSeed(42),
	)

	_ = r.Run(context.Background())
	return out.String(), errOut.String()
}

func assertMatch(t *testing.T, src string, re string) {
	t.Helper()

	out, errOut := exec(t, src, 1)
	assert.Regexp(t, regexp.MustCompile(re), out, "src=%s err=%s", src, errOut)
}

func assertYes(t *testing.T, src string) {
	t.Helper()
	assertMatch(t, src, `100%`)
}

func assertNo(t *testing.T, src string) {
	t.Helper()
	assertMatch(t, src, `(\s|=)0%`)
}

func TestScenarioFlushHandType(t *testing.T) {
	assertYes(t, "select count(handtype(hero, river) = flush) from game='holdem', hero='AsKs', board='2s7sJs3h4d'")
}

func TestScenarioStraightBoard(t *testing.T) {
	assertYes(t, "select count(straightboard(flop)) from game='shortdeck', board='9hTcJd'")
}

func TestScenarioShortDeckFlopCategory(t *testing.T) {
	assertYes(t, "select count(minflophandcategory(hero, flopfullhouse)) from game='shortdeck', board='7s8s9s', hero='AsKs'")
}

func TestScenarioBoardSuitCount(t *testing.T) {
	assertMatch(t, "select avg(boardsuitcount(flop)) from board='ssshd'", `(?m) = 1$`)
}

func TestScenarioTurnCard(t *testing.T) {
	assertYes(t, "select count(turncard() = tocard('ks')) from board='AAAKs2d'")
}

func TestScenarioRateHiHand(t *testing.T) {
	// The straight-flush encoding of a royal flush: tag 011 with the ace
	// index in the window above it.
	assertMatch(t, "select max(ratehihand('AsKsQsJsTs')) from board='*'", `(?m) = 30720$`)
}

func TestOutcomes(t *testing.T) {
	assertYes(t, "select count(winshi(p2)) from board='2s3h4cJsKh', p1='AsAh', p2='KcKd'")
	assertNo(t, "select count(besthirating(p1, flop)) from board='AsKsQhJdTc', p1='AhKh', p2='JsTs'")
	assertYes(t, "select count(besthirating(p1, river)) from board='AsKsQhJdTc', p1='AhKh', p2='JsTs'")
	assertYes(t, "select count(winninghandtype() = flush) from game='holdem', p1='KhKd', p2='5s6s', board='KsQsJs2c4d'")
	assertYes(t, "select count(tieshi(p1)) from game='holdem', p1='KdKc', p2='QdQc', board='As2s3s4s5s'")
	assertYes(t, "select count(scoops(p1)) from game='holdem', p1='KdKc', board='As2s3s4s5s'")
}

func TestRankAverages(t *testing.T) {
	assertMatch(t, "select avg(rankcount(boardranks(flop))) from board='AKQJT'", `(?m) = 3$`)
	assertMatch(t, "select avg(rankcount(boardranks(river))) from board='AKQJT'", `(?m) = 5$`)
	assertMatch(t, "select avg(rankcount(duplicatedboardranks(flop))) from board='AAK'", `(?m) = 1$`)
	assertMatch(t, "select avg(rankcount(handranks(hero))) from board='*', hero='AA'", `(?m) = 1$`)
	assertMatch(t, "select avg(rankcount(duplicatedhandranks(hero))) from board='*', hero='AA'", `(?m) = 1$`)
}

func TestSelectorLabels(t *testing.T) {
	out, _ := exec(t, "select count(winshi(hero)) as wins, avg(equity(hero, river)) from hero='AA', board='2s3h4cJsKh'", 1)

	assert.Contains(t, out, "wins 0 = ")
	assert.Contains(t, out, "AVG 1 = ")
	assert.Contains(t, out, "1 trials")
}

func TestMultipleStatements(t *testing.T) {
	out, _ := exec(t, "select count(winshi(hero)) from hero='AA', board='*'; select count(winshi(hero)) from hero='KK', board='*'", 5)

	assert.Contains(t, out, strings.Repeat("-", 80))
	assert.Equal(t, 2, strings.Count(out, "trials"))
}

func TestStatementIndependence(t *testing.T) {
	// A bad first statement still lets the second run.
	out, errOut := exec(t, "select count(unknownfn(1)) from board='*'; select count(winshi(hero)) from hero='AA', board='*'", 3)

	assert.Contains(t, errOut, "unrecognized function")
	assert.Contains(t, out, "trials")
}

func TestSamplingFailure(t *testing.T) {
	// Three dead aces leave no way to deal a pocket pair of aces.
	_, errOut := exec(t, "select count(winshi(hero)) from hero='AA', dead='AsAhAd'", 3)
	assert.Contains(t, errOut, "sampling failed")
}

func TestSyntaxErrorReporting(t *testing.T) {
	_, errOut := exec(t, "select count(winshi(hero) from hero='AA'", 1)
	assert.NotEmpty(t, errOut)
}

func TestRangeErrorReporting(t *testing.T) {
	_, errOut := exec(t, "select count(winshi(hero)) from hero='A?'", 1)
	assert.Contains(t, errOut, "invalid range")
	assert.Contains(t, errOut, `"?"`)
}

func TestCountProbabilityBounds(t *testing.T) {
	out, _ := exec(t, "select count(pocketpair(hero)) from hero='*', board='*'", 500)

	re := regexp.MustCompile(`COUNT 0 = ([0-9.]+)%`)
	m := re.FindStringSubmatch(out)
	require.NotNil(t, m, out)

	pct, err := strconv.ParseFloat(m[1], 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pct, 0.0)
	assert.LessOrEqual(t, pct, 100.0)
}

func TestDeterminismUnderSeed(t *testing.T) {
	src := "select avg(equity(hero, river)), count(pocketpair(hero)) from hero='*', villain='*', board='*'"

	out1, _ := exec(t, src, 200)
	out2, _ := exec(t, src, 200)
	assert.Equal(t, out1, out2, "fixed seed and one worker must be byte-identical")
}

func TestParallelWorkers(t *testing.T) {
	var out, errOut bytes.Buffer
	r := New("select count(pocketpair(hero)) from hero='*', board='*'", &out, &errOut,
		WithTrials(1000),
		WithWorkers(4),
		WithSeed(7),
	)

	require.NoError(t, r.Run(context.Background()))
	assert.Contains(t, out.String(), "1000 trials")
}

func TestDefaultBoardAndGame(t *testing.T) {
	// game defaults to holdem, board to '*'.
	out, errOut := exec(t, "select count(winshi(hero)) from hero='AA'", 10)
	assert.Empty(t, errOut)
	assert.Contains(t, out, "10 trials")
}

func TestOmahaEndToEnd(t *testing.T) {
	assertYes(t, "select count(handtype(hero, river) = straightflush) from game='omaha', hero='AsKs2h3d', board='QsJsTs7c8c'")
}

func TestCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, errOut bytes.Buffer
	r := New("select count(pocketpair(hero)) from hero='*', board='*'", &out, &errOut,
		WithTrials(1000000),
		WithWorkers(1),
		WithSeed(7),
	)

	err := r.Run(ctx)
	assert.Error(t, err)
}
