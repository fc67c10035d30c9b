package gametest

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/Shadetheartist/bg-ai/game"
)

// Nim is a last-take-wins counting game: players alternate removing 1 or
// 2 from Remaining, and whoever takes the final token wins. Deterministic
// with a branching tree, which makes it useful for idempotence and arena
// tests.
type Nim struct {
	Remaining int
	ToMove    PlayerID
}

// NewNim returns a Nim game with remaining tokens, P1 to move.
func NewNim(remaining int) Nim {
	return Nim{Remaining: remaining, ToMove: P1}
}

// Actions implements game.State.
func (n Nim) Actions() []int {
	switch {
	case n.Remaining >= 2:
		return []int{1, 2}
	case n.Remaining == 1:
		return []int{1}
	}
	return nil
}

// Apply implements game.State.
func (n Nim) Apply(_ *rand.Rand, take int) (Nim, error) {
	if take < 1 || take > 2 || take > n.Remaining {
		return Nim{}, errors.Errorf("cannot take %d with %d remaining", take, n.Remaining)
	}
	return Nim{Remaining: n.Remaining - take, ToMove: other(n.ToMove)}, nil
}

// Outcome implements game.State. The player who emptied the pile is the
// one not to move.
func (n Nim) Outcome() (game.Outcome[PlayerID], bool) {
	if n.Remaining > 0 {
		return game.Outcome[PlayerID]{}, false
	}
	return game.Winner(other(n.ToMove)), true
}

// Player implements game.State.
func (n Nim) Player() PlayerID { return n.ToMove }

func other(p PlayerID) PlayerID {
	if p == P1 {
		return P2
	}
	return P1
}

var _ game.State[Nim, int, PlayerID] = Nim{}
