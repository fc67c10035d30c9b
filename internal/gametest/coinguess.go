package gametest

import (
	"golang.org/x/exp/rand"

	"github.com/Shadetheartist/bg-ai/game"
)

// Coin guesses.
const (
	GuessHeads = "heads"
	GuessTails = "tails"
)

// CoinGuess is a one-move hidden-information game: a coin lies face down,
// P1 names a face, and wins if right, otherwise P2 wins. P1 cannot see
// the coin, so deciding requires determinization.
type CoinGuess struct {
	// Coin is the hidden face (GuessHeads or GuessTails). Only a
	// determinized state carries a meaningful value.
	Coin  string
	Guess string

	// Rigged pins every determinization to heads. The sample still
	// consumes one word from the source, so stream advancement stays
	// observable to tests.
	Rigged bool
}

// NewCoinGuess returns the undetermined game.
func NewCoinGuess(rigged bool) CoinGuess {
	return CoinGuess{Rigged: rigged}
}

// Actions implements game.State.
func (c CoinGuess) Actions() []string {
	if c.Guess != "" {
		return nil
	}
	return []string{GuessHeads, GuessTails}
}

// Apply implements game.State.
func (c CoinGuess) Apply(_ *rand.Rand, guess string) (CoinGuess, error) {
	c.Guess = guess
	return c, nil
}

// Outcome implements game.State.
func (c CoinGuess) Outcome() (game.Outcome[PlayerID], bool) {
	if c.Guess == "" {
		return game.Outcome[PlayerID]{}, false
	}
	if c.Guess == c.Coin {
		return game.Winner(P1), true
	}
	return game.Winner(P2), true
}

// Player implements game.State.
func (c CoinGuess) Player() PlayerID { return P1 }

// Determine implements game.Determinable by sampling the hidden face.
func (c CoinGuess) Determine(rng *rand.Rand, _ PlayerID) CoinGuess {
	word := rng.Uint32()
	if c.Rigged {
		c.Coin = GuessHeads
		return c
	}
	if word&1 == 0 {
		c.Coin = GuessHeads
	} else {
		c.Coin = GuessTails
	}
	return c
}

var _ game.DeterminableState[CoinGuess, string, PlayerID] = CoinGuess{}
