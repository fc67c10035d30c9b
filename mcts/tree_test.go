package mcts

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/Shadetheartist/bg-ai/internal/gametest"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestNewTreeHasOnlyRoot(t *testing.T) {
	tree := New[gametest.Scripted, string, gametest.PlayerID](gametest.SingleWin())

	require.Equal(t, 1, tree.Len())
	require.Equal(t, uint32(0), tree.node(tree.root).visits)
	require.Empty(t, tree.node(tree.root).scores)

	_, ok := tree.BestAction()
	require.False(t, ok)
	require.Empty(t, tree.RootScores())
}

func TestSearchNZeroIsNoOp(t *testing.T) {
	tree := New[gametest.Scripted, string, gametest.PlayerID](gametest.SingleWin())
	require.NoError(t, tree.SearchN(newRand(1), 0))

	require.Equal(t, 1, tree.Len())
	require.Equal(t, uint32(0), tree.node(tree.root).visits)
}

func TestSingleWin(t *testing.T) {
	tree := New[gametest.Scripted, string, gametest.PlayerID](gametest.SingleWin())
	require.NoError(t, tree.SearchN(newRand(1), 1))

	root := tree.node(tree.root)
	require.Equal(t, uint32(1), root.visits)
	require.Len(t, root.children, 1)

	child := tree.node(root.children[0])
	require.Equal(t, uint32(1), child.visits)
	require.Equal(t, float32(1), child.playerScore(gametest.P1))

	action, ok := tree.BestAction()
	require.True(t, ok)
	require.Equal(t, "a", action)
}

func TestTwoBranchExploitationDominates(t *testing.T) {
	tree := New[gametest.Scripted, string, gametest.PlayerID](gametest.TwoBranch())
	require.NoError(t, tree.SearchN(newRand(2), 1000))

	root := tree.node(tree.root)
	require.Len(t, root.children, 2)

	var aVisits, bVisits uint32
	for _, id := range root.children {
		child := tree.node(id)
		switch child.action {
		case "a":
			aVisits = child.visits
		case "b":
			bVisits = child.visits
		}
	}
	require.Greater(t, aVisits, bVisits)

	action, ok := tree.BestAction()
	require.True(t, ok)
	require.Equal(t, "a", action)
}

func TestDrawScoresBothPlayers(t *testing.T) {
	const iterations = 10

	tree := New[gametest.Scripted, string, gametest.PlayerID](gametest.DrawGame())
	require.NoError(t, tree.SearchN(newRand(3), iterations))

	root := tree.node(tree.root)
	require.Len(t, root.children, 1)

	child := tree.node(root.children[0])
	require.Equal(t, uint32(iterations), child.visits)
	require.Equal(t, float32(iterations), child.playerScore(gametest.P1))
	require.Equal(t, float32(iterations), child.playerScore(gametest.P2))
}

func TestEscapePropagatesVisitsNotScores(t *testing.T) {
	tree := New[gametest.Scripted, string, gametest.PlayerID](gametest.Stuck())
	rng := newRand(4)
	require.NoError(t, tree.SearchN(rng, 1))

	for i := range tree.nodes {
		n := &tree.nodes[i]
		require.NotZero(t, n.visits)
		require.Empty(t, n.scores)
	}

	action, ok := tree.BestAction()
	require.True(t, ok)
	require.Equal(t, "s", action)

	// the next iteration descends into the stuck node itself; expanding a
	// non-terminal state without actions is a contract violation
	err := tree.Search(rng)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no actions to expand into")
}

func TestTerminalRootNeverExpands(t *testing.T) {
	tree := New[gametest.Scripted, string, gametest.PlayerID](gametest.TerminalRoot())
	require.NoError(t, tree.SearchN(newRand(5), 3))

	require.Equal(t, 1, tree.Len())
	require.Equal(t, uint32(3), tree.node(tree.root).visits)

	_, ok := tree.BestAction()
	require.False(t, ok)
}

func TestInvariants(t *testing.T) {
	const iterations = 200

	tree := New[gametest.Nim, int, gametest.PlayerID](gametest.NewNim(10))
	require.NoError(t, tree.SearchN(newRand(6), iterations))

	incoming := make(map[nodeID]int)
	for i := range tree.nodes {
		id := nodeID(i)
		n := tree.node(id)

		// visits never exceed the iteration count
		require.LessOrEqual(t, n.visits, uint32(iterations))

		// per-player score is bounded by visits; the combined total by
		// visits times the player count
		var total float32
		for _, ps := range n.scores {
			require.LessOrEqual(t, ps.score, float32(n.visits))
			total += ps.score
		}
		require.LessOrEqual(t, total, float32(n.visits)*2)

		for _, child := range n.children {
			incoming[child]++
			require.Equal(t, id, tree.node(child).parent)
		}
	}

	// every non-root node has exactly one incoming edge
	require.NotContains(t, incoming, tree.root)
	for i := 1; i < tree.Len(); i++ {
		require.Equal(t, 1, incoming[nodeID(i)], "node %d", i)
	}

	// every iteration back-propagates through the root, so the root's
	// visits equal the iteration count
	root := tree.node(tree.root)
	require.Equal(t, uint32(iterations), root.visits)
}

func TestSearchNAdditivity(t *testing.T) {
	one := New[gametest.Nim, int, gametest.PlayerID](gametest.NewNim(8))
	require.NoError(t, one.SearchN(newRand(7), 30))

	two := New[gametest.Nim, int, gametest.PlayerID](gametest.NewNim(8))
	r := newRand(7)
	require.NoError(t, two.SearchN(r, 10))
	require.NoError(t, two.SearchN(r, 20))

	require.Equal(t, one.nodes, two.nodes)
}

func TestUnvisitedChildHasInfinitePriority(t *testing.T) {
	tree := New[gametest.Scripted, string, gametest.PlayerID](gametest.TwoBranch())
	require.NoError(t, tree.expand(newRand(8), tree.root))

	for _, id := range tree.node(tree.root).children {
		require.True(t, math32.IsInf(tree.ucb1(id, gametest.P1), 1))
	}
}

func TestBestActionTieBreaksToFirstChild(t *testing.T) {
	tree := New[gametest.Scripted, string, gametest.PlayerID](gametest.TwoBranch())
	require.NoError(t, tree.expand(newRand(9), tree.root))

	for _, id := range tree.node(tree.root).children {
		tree.node(id).visits = 7
	}

	action, ok := tree.BestAction()
	require.True(t, ok)
	require.Equal(t, "a", action)
}

func TestBestActionMatchesMaxVisits(t *testing.T) {
	tree := New[gametest.Nim, int, gametest.PlayerID](gametest.NewNim(6))
	require.NoError(t, tree.SearchN(newRand(10), 300))

	action, ok := tree.BestAction()
	require.True(t, ok)

	var max uint32
	for _, id := range tree.node(tree.root).children {
		if v := tree.node(id).visits; v > max {
			max = v
		}
	}
	for _, id := range tree.node(tree.root).children {
		child := tree.node(id)
		if child.action == action {
			require.Equal(t, max, child.visits)
		}
	}
}

func TestRootScoresFlattensChildStatistics(t *testing.T) {
	tree := New[gametest.Scripted, string, gametest.PlayerID](gametest.TwoBranch())
	require.NoError(t, tree.SearchN(newRand(11), 50))

	scores := tree.RootScores()
	require.NotEmpty(t, scores)

	var totalP1 float32
	for _, s := range scores {
		require.Contains(t, []string{"a", "b"}, s.Action)
		require.NotZero(t, s.Visits)
		if s.Player == gametest.P1 {
			totalP1 += s.Score
		}
	}
	require.Equal(t, tree.node(tree.root).playerScore(gametest.P1), totalP1)
}

func TestSearchFailsOnActionlessNonTerminalRoot(t *testing.T) {
	tree := New[gametest.Scripted, string, gametest.PlayerID](gametest.BrokenRoot())
	err := tree.SearchN(newRand(12), 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no actions to expand into")
}

func TestSearchFailsOnApplyError(t *testing.T) {
	tree := New[gametest.Scripted, string, gametest.PlayerID](gametest.BrokenApply())
	err := tree.SearchN(newRand(13), 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no transition")
}
