package mcts

import (
	"fmt"

	"github.com/chewxy/math32"
)

// nodeID is essentially *node: an index into the tree's node arena.
// Handles stay valid for the tree's lifetime; nodes are never deleted
// during a search session.
type nodeID int32

const nilNode nodeID = -1

var math32NegInf = math32.Inf(-1)

// playerScore is one entry of a node's per-player accumulated rewards.
// Players are few, so a flat list beats a map for lookup and for cache
// friendliness; a missing player reads as 0.
type playerScore[P comparable] struct {
	player P
	score  float32
}

// node is a single state in the game tree. Non-root nodes record the
// action on their incoming edge along with the edge's own visit counter.
type node[S any, A any, P comparable] struct {
	state    S
	parent   nodeID
	children []nodeID

	action     A // action on the edge from parent; zero value at the root
	edgeVisits uint32

	visits uint32
	scores []playerScore[P]
}

// playerScore returns the accumulated reward for player, 0 if the player
// has never scored here.
func (n *node[S, A, P]) playerScore(player P) float32 {
	for i := range n.scores {
		if n.scores[i].player == player {
			return n.scores[i].score
		}
	}
	return 0
}

// addScore accumulates delta into player's reward.
func (n *node[S, A, P]) addScore(player P, delta float32) {
	for i := range n.scores {
		if n.scores[i].player == player {
			n.scores[i].score += delta
			return
		}
	}
	n.scores = append(n.scores, playerScore[P]{player: player, score: delta})
}

// isLeaf is true iff the node has no outgoing edges.
func (n *node[S, A, P]) isLeaf() bool { return len(n.children) == 0 }

// Format formats print.
func (n *node[S, A, P]) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "{Action: %v, Visits: %d, Scores: %v}", n.action, n.visits, n.scores)
}

// ucb1 computes the upper confidence bound of the node from the
// perspective player's point of view:
//
//	exploit = scores[perspective] / visits
//	explore = c * sqrt(ln(parent visits + 1) / visits)
//
// An unvisited node has infinite priority so it is expanded before any
// visited sibling.
func (t *GameTree[S, A, P]) ucb1(id nodeID, perspective P) float32 {
	n := t.node(id)
	if n.visits == 0 {
		return math32.Inf(1)
	}

	// first component of the UCB1 formula corresponds to exploitation:
	// the average reward, or win ratio, of the node
	exploit := n.playerScore(perspective) / float32(n.visits)

	// the second component corresponds to exploration
	var parentVisits uint32
	if n.parent != nilNode {
		parentVisits = t.node(n.parent).visits
	}
	explore := t.constantOfExploration *
		math32.Sqrt(math32.Log(float32(parentVisits)+1)/float32(n.visits))

	return exploit + explore
}
