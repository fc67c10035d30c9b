// Package ismcts implements Information-Set MCTS for imperfect-information
// games: the hidden state is sampled into N fully observable
// determinizations from the deciding player's perspective, an independent
// MCTS runs on each, and the per-action per-player root scores are summed
// to pick the final action.
package ismcts

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/Shadetheartist/bg-ai/game"
	"github.com/Shadetheartist/bg-ai/mcts"
	"github.com/Shadetheartist/bg-ai/rng"
)

// determinization holds one sampled world's root statistics.
type determinization[A comparable, P comparable] struct {
	index  int
	scores []mcts.Score[A, P]
}

// Search runs numDeterminizations independent MCTS searches of
// numSimulations iterations each and aggregates their root scores.
// Determinization i samples from a clone of src advanced by i 32-bit
// words, so results are reproducible from a single seed while streams
// stay decorrelated. ok is false when no determinization produced any
// root score.
func Search[S game.DeterminableState[S, A, P], A comparable, P comparable](
	state S, src rng.Cloneable, numDeterminizations, numSimulations int,
) (action A, ok bool, err error) {
	player := state.Player()

	determinizations := make([]determinization[A, P], 0, numDeterminizations)
	for i := 0; i < numDeterminizations; i++ {
		r := rng.CloneAdvanced(src, i)
		sample := state.Determine(r, player)

		tree := mcts.New[S, A, P](sample)
		if err := tree.SearchN(r, numSimulations); err != nil {
			return action, false, errors.WithMessagef(err, "determinization %d", i)
		}

		determinizations = append(determinizations, determinization[A, P]{
			index:  i,
			scores: tree.RootScores(),
		})
	}

	action, ok = aggregate(determinizations, player)
	return action, ok, nil
}

// aggregate sums score per (action, player) bucket across all
// determinizations and returns the action maximizing the deciding
// player's total. Ties break to the first maximum in first-seen action
// order, which is deterministic for a fixed determinization order.
func aggregate[A comparable, P comparable](
	determinizations []determinization[A, P], player P,
) (best A, ok bool) {
	totals := make(map[A]map[P]float32)
	var order []A // first-seen action order, so selection never depends on map iteration
	for _, d := range determinizations {
		for _, s := range d.scores {
			perPlayer, seen := totals[s.Action]
			if !seen {
				perPlayer = make(map[P]float32)
				totals[s.Action] = perPlayer
				order = append(order, s.Action)
			}
			perPlayer[s.Player] += s.Score
		}
	}

	if len(order) == 0 {
		return best, false
	}

	best = order[0]
	bestScore := totals[best][player]
	for _, a := range order[1:] {
		if score := totals[a][player]; score > bestScore {
			best, bestScore = a, score
		}
	}
	if klog.V(1).Enabled() {
		klog.Infof("aggregated %d determinizations over %d actions, best scores %.1f",
			len(determinizations), len(order), bestScore)
	}
	return best, true
}
