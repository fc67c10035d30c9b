package bgai

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/Shadetheartist/bg-ai/game"
	"github.com/Shadetheartist/bg-ai/rng"
)

// An Agent is a player policy: it binds a player identity to a way of
// choosing actions. Agents hold no mutable state between calls and are
// cheap to copy.
//
// Decide receives the caller's cloneable source; plain MCTS draws from it
// directly while IS-MCTS clones it per determinization. ok is false when
// the state offers no legal action.
type Agent[S any, A any, P comparable] interface {
	Player() P
	Decide(src rng.Cloneable, state S) (action A, ok bool, err error)
}

// MCTSAgent decides with a plain Monte Carlo tree search. Suitable for
// perfect-information games.
type MCTSAgent[S game.State[S, A, P], A any, P comparable] struct {
	player P
	conf   MCTSConfig
}

// NewMCTSAgent returns an agent for player with the given search budget.
func NewMCTSAgent[S game.State[S, A, P], A any, P comparable](
	player P, conf MCTSConfig,
) (*MCTSAgent[S, A, P], error) {
	if !conf.IsValid() {
		return nil, errors.Errorf("invalid MCTS config %+v", conf)
	}
	return &MCTSAgent[S, A, P]{player: player, conf: conf}, nil
}

// Player returns the identity this agent plays as.
func (a *MCTSAgent[S, A, P]) Player() P { return a.player }

// Decide runs the search and returns the chosen action.
func (a *MCTSAgent[S, A, P]) Decide(src rng.Cloneable, state S) (A, bool, error) {
	return MCTS[S, A, P](state, rand.New(src), a.conf.NumSimulations)
}

// ISMCTSAgent decides with an information-set search over sampled
// determinizations. Suitable for games with hidden state.
type ISMCTSAgent[S game.DeterminableState[S, A, P], A comparable, P comparable] struct {
	player P
	conf   ISMCTSConfig
}

// NewISMCTSAgent returns an agent for player with the given search budget.
func NewISMCTSAgent[S game.DeterminableState[S, A, P], A comparable, P comparable](
	player P, conf ISMCTSConfig,
) (*ISMCTSAgent[S, A, P], error) {
	if !conf.IsValid() {
		return nil, errors.Errorf("invalid IS-MCTS config %+v", conf)
	}
	return &ISMCTSAgent[S, A, P]{player: player, conf: conf}, nil
}

// Player returns the identity this agent plays as.
func (a *ISMCTSAgent[S, A, P]) Player() P { return a.player }

// Decide runs the search and returns the chosen action.
func (a *ISMCTSAgent[S, A, P]) Decide(src rng.Cloneable, state S) (A, bool, error) {
	if a.conf.Parallel {
		return ISMCTSParallel[S, A, P](state, src, a.conf.NumDeterminizations, a.conf.NumSimulations)
	}
	return ISMCTS[S, A, P](state, src, a.conf.NumDeterminizations, a.conf.NumSimulations)
}
