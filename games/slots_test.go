package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// scriptedChoice returns a fixed sequence of weighted-choice indices
type scriptedChoice struct {
	picks []int
	pos   int
}

func (s *scriptedChoice) Intn(n int) int                     { return 0 }
func (s *scriptedChoice) Shuffle(n int, swap func(i, j int)) {}

func (s *scriptedChoice) WeightedChoice(weights []int) int {
	pick := s.picks[s.pos]
	s.pos++
	return pick
}

func TestSpinReels_TripleSevensPaysHundredTimes(t *testing.T) {
	rng := &scriptedChoice{picks: []int{6, 6, 6}}

	result := SpinReels(rng, 10)

	assert.Equal(t, [3]string{"7", "7", "7"}, result.Reels)
	assert.Equal(t, int64(100), result.Multiplier)
	assert.Equal(t, int64(1000), result.Payout)
	assert.Equal(t, int64(SlotsTripleXP), result.XP)
	assert.True(t, result.Won)
	assert.True(t, result.Triple)
}

func TestSpinReels_TripleMultipliers(t *testing.T) {
	tests := []struct {
		symbol     int
		multiplier int64
	}{
		{0, 3}, {1, 5}, {2, 7}, {3, 10}, {4, 20}, {5, 50}, {6, 100},
	}

	for _, tt := range tests {
		rng := &scriptedChoice{picks: []int{tt.symbol, tt.symbol, tt.symbol}}
		result := SpinReels(rng, 1)
		assert.Equal(t, tt.multiplier, result.Multiplier, "symbol index %d", tt.symbol)
	}
}

func TestSpinReels_PairPaysDouble(t *testing.T) {
	// Pair positions should not matter
	for _, picks := range [][]int{{0, 0, 1}, {0, 1, 0}, {1, 0, 0}} {
		rng := &scriptedChoice{picks: picks}

		result := SpinReels(rng, 25)

		assert.Equal(t, int64(2), result.Multiplier)
		assert.Equal(t, int64(50), result.Payout)
		assert.Equal(t, int64(SlotsPairXP), result.XP)
		assert.True(t, result.Won)
		assert.False(t, result.Triple)
	}
}

func TestSpinReels_NoMatchLoses(t *testing.T) {
	rng := &scriptedChoice{picks: []int{0, 1, 2}}

	result := SpinReels(rng, 25)

	assert.False(t, result.Won)
	assert.Zero(t, result.Payout)
	assert.Zero(t, result.XP)
}

func TestWeightedChoice_Distribution(t *testing.T) {
	// The production source must respect weight boundaries: with weights
	// summing to 100, rolls 0..29 pick index 0 and roll 99 picks the last.
	source := NewRandomSource()

	counts := make([]int, len(reelWeights))
	for i := 0; i < 10000; i++ {
		counts[source.WeightedChoice(reelWeights)]++
	}

	// Common symbols must dominate rare ones by a wide margin
	assert.Greater(t, counts[0], counts[6])
	assert.Greater(t, counts[1], counts[5])
	for _, c := range counts {
		assert.Greater(t, c, 0)
	}
}
