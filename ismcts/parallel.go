package ismcts

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Shadetheartist/bg-ai/game"
	"github.com/Shadetheartist/bg-ai/mcts"
	"github.com/Shadetheartist/bg-ai/rng"
)

// SearchParallel is Search with each determinization running on its own
// worker goroutine. Every worker owns its advanced RNG clone, its sampled
// state, and its tree; the only shared resource is the results list,
// behind a single mutex each worker takes exactly once. All workers are
// joined before aggregation, which runs serially.
//
// Results are restored to determinization order before aggregating, so
// float32 totals sum in the same order as the serial variant and the two
// return the same action.
func SearchParallel[S game.DeterminableState[S, A, P], A comparable, P comparable](
	state S, src rng.Cloneable, numDeterminizations, numSimulations int,
) (action A, ok bool, err error) {
	player := state.Player()

	var (
		mu               sync.Mutex
		determinizations = make([]determinization[A, P], 0, numDeterminizations)
	)

	var workers errgroup.Group
	for i := 0; i < numDeterminizations; i++ {
		i := i
		r := rng.CloneAdvanced(src, i)
		sample := state.Determine(r, player)

		workers.Go(func() error {
			tree := mcts.New[S, A, P](sample)
			if err := tree.SearchN(r, numSimulations); err != nil {
				return errors.WithMessagef(err, "determinization %d", i)
			}

			mu.Lock()
			determinizations = append(determinizations, determinization[A, P]{
				index:  i,
				scores: tree.RootScores(),
			})
			mu.Unlock()
			return nil
		})
	}

	if err := workers.Wait(); err != nil {
		return action, false, err
	}

	// restore determinization order so aggregation sums in the same order
	// as the serial variant
	sort.Slice(determinizations, func(i, j int) bool {
		return determinizations[i].index < determinizations[j].index
	})

	action, ok = aggregate(determinizations, player)
	return action, ok, nil
}
