package mcts

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/Shadetheartist/bg-ai/game"
)

// EscapeNoActions is the escape reason reported when a rollout reaches a
// non-terminal state with no legal actions.
const EscapeNoActions = "No actions available."

// Rollout plays state to completion choosing uniformly random actions,
// and returns the terminal outcome. The input state is never mutated;
// each step goes through the pure Apply contract. A non-terminal state
// with no legal actions ends the rollout with an Escape outcome. An Apply
// failure is a game-contract violation and is returned as an error.
func Rollout[S game.State[S, A, P], A any, P comparable](state S, rng *rand.Rand) (game.Outcome[P], error) {
	current := state
	for {
		if outcome, ok := current.Outcome(); ok {
			return outcome, nil
		}

		actions := current.Actions()
		if len(actions) == 0 {
			return game.Escape[P](EscapeNoActions), nil
		}

		action := actions[rng.Intn(len(actions))]
		next, err := current.Apply(rng, action)
		if err != nil {
			return game.Outcome[P]{}, errors.Wrapf(err, "rollout applying action %v", action)
		}
		current = next
	}
}
