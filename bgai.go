// Package bgai is a generic decision engine for board and card games,
// built on Monte Carlo Tree Search and its information-set variant.
// Given a game state, a random source, and a search budget it returns the
// action expected to maximize the deciding player's outcome.
//
// Games plug in through the contracts in the game package; the engine
// itself knows nothing about any concrete game.
package bgai

import (
	"golang.org/x/exp/rand"

	"github.com/Shadetheartist/bg-ai/game"
	"github.com/Shadetheartist/bg-ai/ismcts"
	"github.com/Shadetheartist/bg-ai/mcts"
	"github.com/Shadetheartist/bg-ai/rng"
)

// MCTS builds a game tree rooted at state, searches it for
// numSimulations iterations, and returns the most-visited root action.
// ok is false only when the state has no legal actions.
func MCTS[S game.State[S, A, P], A any, P comparable](
	state S, r *rand.Rand, numSimulations int,
) (action A, ok bool, err error) {
	tree, err := BuildGameTree[S, A, P](state, r, numSimulations)
	if err != nil {
		return action, false, err
	}
	action, ok = tree.BestAction()
	return action, ok, nil
}

// BuildGameTree returns the searched tree itself, for callers that want
// the root statistics and not just the chosen action.
func BuildGameTree[S game.State[S, A, P], A any, P comparable](
	state S, r *rand.Rand, numSimulations int,
) (*mcts.GameTree[S, A, P], error) {
	tree := mcts.New[S, A, P](state)
	if err := tree.SearchN(r, numSimulations); err != nil {
		return nil, err
	}
	return tree, nil
}

// ISMCTS samples numDeterminizations worlds from the hidden state, runs
// an independent numSimulations-iteration search on each, and returns the
// action with the highest aggregate score for the deciding player.
func ISMCTS[S game.DeterminableState[S, A, P], A comparable, P comparable](
	state S, src rng.Cloneable, numDeterminizations, numSimulations int,
) (A, bool, error) {
	return ismcts.Search[S, A, P](state, src, numDeterminizations, numSimulations)
}

// ISMCTSParallel is ISMCTS with one worker goroutine per determinization.
func ISMCTSParallel[S game.DeterminableState[S, A, P], A comparable, P comparable](
	state S, src rng.Cloneable, numDeterminizations, numSimulations int,
) (A, bool, error) {
	return ismcts.SearchParallel[S, A, P](state, src, numDeterminizations, numSimulations)
}
