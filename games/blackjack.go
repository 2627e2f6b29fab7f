package games

// Blackjack XP rewards
const (
	BlackjackWinXP     = 30
	BlackjackNaturalXP = 40
)

// StandKind classifies the dealer showdown after the player stands
type StandKind int

const (
	StandDealerBust StandKind = iota
	StandPlayerWins
	StandDealerWins
	StandPush
)

// StandResult is the terminal outcome of a stand
type StandResult struct {
	Kind        StandKind
	PlayerValue int
	DealerValue int
	// Payout is the amount credited back to the player. The bet was
	// debited at the start, so a win pays 2x bet and a push pays 1x.
	Payout int64
	XP     int64
}

// Blackjack is the card-duel state machine for one player against the
// dealer. The bet is debited before the game is created; every terminal
// path either pays out through the ledger or forfeits the debited bet.
type Blackjack struct {
	rng    RandomSource
	deck   []Card
	player []Card
	dealer []Card
	bet    int64
}

// NewBlackjack shuffles a fresh 52-card deck and deals two cards each
func NewBlackjack(rng RandomSource, bet int64) *Blackjack {
	g := &Blackjack{
		rng: rng,
		bet: bet,
	}
	g.deck = NewDeck()
	rng.Shuffle(len(g.deck), func(i, j int) {
		g.deck[i], g.deck[j] = g.deck[j], g.deck[i]
	})
	g.player = []Card{g.draw(), g.draw()}
	g.dealer = []Card{g.draw(), g.draw()}
	return g
}

// draw takes the top card. When the shoe runs out mid-game (an unusually
// long run of hits), a fresh shuffled deck replaces it transparently.
func (g *Blackjack) draw() Card {
	if len(g.deck) == 0 {
		g.deck = NewDeck()
		g.rng.Shuffle(len(g.deck), func(i, j int) {
			g.deck[i], g.deck[j] = g.deck[j], g.deck[i]
		})
	}
	card := g.deck[len(g.deck)-1]
	g.deck = g.deck[:len(g.deck)-1]
	return card
}

// Bet returns the debited stake
func (g *Blackjack) Bet() int64 {
	return g.bet
}

// PlayerHand returns the player's cards
func (g *Blackjack) PlayerHand() []Card {
	return g.player
}

// DealerHand returns the dealer's cards
func (g *Blackjack) DealerHand() []Card {
	return g.dealer
}

// PlayerValue returns the player's current hand value
func (g *Blackjack) PlayerValue() int {
	return HandValue(g.player)
}

// DealerValue returns the dealer's current hand value
func (g *Blackjack) DealerValue() int {
	return HandValue(g.dealer)
}

// IsNatural reports whether the initial two-card deal totals 21
func (g *Blackjack) IsNatural() bool {
	return len(g.player) == 2 && g.PlayerValue() == 21
}

// NaturalPayout is the credit for a natural: bet times 2.5, truncated
func (g *Blackjack) NaturalPayout() int64 {
	return g.bet * 5 / 2
}

// Hit deals one card to the player. Returns the drawn card, the new total
// and whether the player busted (an immediate loss, bet already forfeited).
func (g *Blackjack) Hit() (Card, int, bool) {
	card := g.draw()
	g.player = append(g.player, card)
	value := g.PlayerValue()
	return card, value, value > 21
}

// Stand plays out the dealer (draws while under 17) and resolves the game
func (g *Blackjack) Stand() StandResult {
	for HandValue(g.dealer) < 17 {
		g.dealer = append(g.dealer, g.draw())
	}

	playerVal := g.PlayerValue()
	dealerVal := g.DealerValue()

	result := StandResult{
		PlayerValue: playerVal,
		DealerValue: dealerVal,
	}
	switch {
	case dealerVal > 21:
		result.Kind = StandDealerBust
		result.Payout = g.bet * 2
		result.XP = BlackjackWinXP
	case playerVal > dealerVal:
		result.Kind = StandPlayerWins
		result.Payout = g.bet * 2
		result.XP = BlackjackWinXP
	case playerVal < dealerVal:
		result.Kind = StandDealerWins
	default:
		result.Kind = StandPush
		result.Payout = g.bet // stake refunded
	}
	return result
}
