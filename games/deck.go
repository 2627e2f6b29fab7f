package games

// Card is a single playing card
type Card struct {
	Rank string
	Suit string
}

func (c Card) String() string {
	return c.Rank + c.Suit
}

var (
	suits = []string{"S", "H", "D", "C"}
	ranks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
)

// NewDeck builds an ordered standard 52-card deck
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range suits {
		for _, r := range ranks {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

func cardValue(c Card) int {
	switch c.Rank {
	case "J", "Q", "K":
		return 10
	case "A":
		return 11
	case "10":
		return 10
	default:
		return int(c.Rank[0] - '0')
	}
}

// HandValue sums a hand counting aces as 11, then downgrades aces to 1
// one at a time while the total exceeds 21.
func HandValue(hand []Card) int {
	value := 0
	aces := 0
	for _, c := range hand {
		value += cardValue(c)
		if c.Rank == "A" {
			aces++
		}
	}
	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}
	return value
}

// HandString renders a hand as space-separated cards
func HandString(hand []Card) string {
	out := ""
	for i, c := range hand {
		if i > 0 {
			out += " "
		}
		out += c.String()
	}
	return out
}
