package games

// Slots XP rewards
const (
	SlotsTripleXP = 25
	SlotsPairXP   = 10
)

// The reel alphabet is skewed toward common symbols; multipliers grow
// strictly from the most common symbol to the rarest.
var (
	reelSymbols = []string{"A", "B", "C", "D", "E", "F", "7"}
	reelWeights = []int{30, 25, 20, 15, 5, 3, 2}

	tripleMultipliers = map[string]int64{
		"A": 3,
		"B": 5,
		"C": 7,
		"D": 10,
		"E": 20,
		"F": 50,
		"7": 100,
	}
)

// SpinResult is the outcome of a single slots spin. Triple marks a
// jackpot: pairs pay out but count as neither a win nor a loss in the
// player's record.
type SpinResult struct {
	Reels      [3]string
	Multiplier int64
	Payout     int64
	XP         int64
	Won        bool
	Triple     bool
}

// SpinReels draws three independent weighted symbols and scores them:
// three of a kind pays bet times the symbol multiplier, any pair pays
// double, otherwise the bet is lost. The bet must already be debited.
func SpinReels(rng RandomSource, bet int64) SpinResult {
	var result SpinResult
	for i := range result.Reels {
		result.Reels[i] = reelSymbols[rng.WeightedChoice(reelWeights)]
	}

	a, b, c := result.Reels[0], result.Reels[1], result.Reels[2]
	switch {
	case a == b && b == c:
		result.Multiplier = tripleMultipliers[a]
		result.Payout = bet * result.Multiplier
		result.XP = SlotsTripleXP
		result.Won = true
		result.Triple = true
	case a == b || b == c || a == c:
		result.Multiplier = 2
		result.Payout = bet * 2
		result.XP = SlotsPairXP
		result.Won = true
	}
	return result
}
