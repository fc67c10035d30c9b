package bgai

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"k8s.io/klog/v2"

	"github.com/Shadetheartist/bg-ai/game"
	"github.com/Shadetheartist/bg-ai/rng"
)

// Arena driver errors.
var (
	// ErrNoAgent reports that no agent is registered for the player to move.
	ErrNoAgent = errors.New("no agent for player")
	// ErrNoDecision reports that an agent returned no action on a
	// non-terminal state.
	ErrNoDecision = errors.New("agent returned no action")
)

// Arena drives full matches: it routes each turn to the registered agent
// for the player to move, applies the chosen action, and repeats until
// the game reports an outcome. One random source is shared serially by
// all agents and by stochastic moves.
type Arena[S game.State[S, A, P], A any, P comparable] struct {
	agents map[P]Agent[S, A, P]
	src    rng.Cloneable
}

// NewArena returns an arena drawing from src with the given agents
// registered under their players.
func NewArena[S game.State[S, A, P], A any, P comparable](
	src rng.Cloneable, agents ...Agent[S, A, P],
) *Arena[S, A, P] {
	a := &Arena[S, A, P]{
		agents: make(map[P]Agent[S, A, P], len(agents)),
		src:    src,
	}
	for _, agent := range agents {
		a.agents[agent.Player()] = agent
	}
	return a
}

// Record is the trace of one played game.
type Record[A any, P comparable] struct {
	Outcome game.Outcome[P]
	Moves   []A
}

// Play plays state to completion and returns the record. It fails when a
// turn cannot be routed (ErrNoAgent), an agent declines to act
// (ErrNoDecision) or errors, or the chosen action cannot be applied; the
// partial record is returned alongside the error.
func (ar *Arena[S, A, P]) Play(state S) (*Record[A, P], error) {
	record := &Record[A, P]{}
	r := rand.New(ar.src)

	current := state
	for {
		if outcome, ok := current.Outcome(); ok {
			record.Outcome = outcome
			if klog.V(1).Enabled() {
				klog.Infof("game over after %d moves: %v", len(record.Moves), outcome)
			}
			return record, nil
		}

		player := current.Player()
		agent, ok := ar.agents[player]
		if !ok {
			return record, errors.Wrapf(ErrNoAgent, "player %v", player)
		}

		action, ok, err := agent.Decide(ar.src, current)
		if err != nil {
			return record, errors.WithMessagef(err, "agent for player %v", player)
		}
		if !ok {
			return record, errors.Wrapf(ErrNoDecision, "player %v", player)
		}

		next, err := current.Apply(r, action)
		if err != nil {
			return record, errors.Wrapf(err, "applying action %v for player %v", action, player)
		}

		if klog.V(2).Enabled() {
			klog.Infof("player %v plays %v", player, action)
		}
		record.Moves = append(record.Moves, action)
		current = next
	}
}

// SeriesResult tallies a series of games.
type SeriesResult[P comparable] struct {
	Games   int
	Wins    map[P]int
	Draws   map[P]int
	Escapes int
}

// Series plays numGames games from the same starting state and tallies
// outcomes per player. A failed game does not stop the series; the
// failures are collected and returned together after the remaining games
// finish.
func (ar *Arena[S, A, P]) Series(state S, numGames int) (*SeriesResult[P], error) {
	result := &SeriesResult[P]{
		Wins:  make(map[P]int),
		Draws: make(map[P]int),
	}

	var errs error
	for i := 0; i < numGames; i++ {
		record, err := ar.Play(state)
		if err != nil {
			errs = multierror.Append(errs, errors.WithMessagef(err, "game %d", i))
			continue
		}

		result.Games++
		switch record.Outcome.Kind() {
		case game.OutcomeWinner:
			result.Wins[record.Outcome.Winner()]++
		case game.OutcomeDraw:
			for _, p := range record.Outcome.Drawn() {
				result.Draws[p]++
			}
		case game.OutcomeEscape:
			result.Escapes++
		}
	}
	return result, errs
}
