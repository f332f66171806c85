package card

import "math/rand"

// SwapAll reverses every card so the definition is asked.
func SwapAll(deck []Card) {
	for i := range deck {
		deck[i].Swap()
	}
}

// RandomlySwap reverses each card with probability one half.
func RandomlySwap(rnd *rand.Rand, deck []Card) {
	for i := range deck {
		if rnd.Intn(2) == 1 {
			deck[i].Swap()
		}
	}
}

// CountDone returns how many cards are learned.
func CountDone(deck []Card) int {
	n := 0
	for i := range deck {
		if deck[i].Status() == StatusDone {
			n++
		}
	}
	return n
}

// Remaining returns how many cards still need work.
func Remaining(deck []Card) int {
	return len(deck) - CountDone(deck)
}

// Shuffle permutes the deck uniformly.
func Shuffle(rnd *rand.Rand, deck []Card) {
	rnd.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}
