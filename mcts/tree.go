package mcts

import (
	"github.com/chewxy/math32"

	"github.com/Shadetheartist/bg-ai/game"
)

// GameTree owns the search graph: a rooted directed tree whose nodes hold
// per-state statistics and whose edges carry the action that produced the
// child. Nodes live in a flat arena and are addressed by stable indices,
// so growing the tree never moves statistics out from under a handle held
// earlier in the same search.
//
// A tree is built from a starting state, mutated by SearchN, then queried
// with BestAction or RootScores and discarded. Trees are not safe for
// concurrent use; parallel IS-MCTS gives each worker its own tree.
type GameTree[S game.State[S, A, P], A any, P comparable] struct {
	nodes                 []node[S, A, P]
	root                  nodeID
	constantOfExploration float32
}

// New allocates a tree whose root holds state, with zero visits and an
// empty score list.
func New[S game.State[S, A, P], A any, P comparable](state S) *GameTree[S, A, P] {
	t := &GameTree[S, A, P]{
		nodes:                 make([]node[S, A, P], 0, 64),
		constantOfExploration: math32.Sqrt(2),
	}
	t.root = t.alloc(state, nilNode)
	return t
}

// alloc appends a node to the arena and returns its handle.
func (t *GameTree[S, A, P]) alloc(state S, parent nodeID) nodeID {
	t.nodes = append(t.nodes, node[S, A, P]{
		state:  state,
		parent: parent,
	})
	return nodeID(len(t.nodes) - 1)
}

// addChild allocates a child of parent reached via action.
func (t *GameTree[S, A, P]) addChild(parent nodeID, state S, action A) nodeID {
	id := t.alloc(state, parent)
	t.nodes[id].action = action
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id
}

// node returns the node behind the handle. The pointer is only valid
// until the next alloc.
func (t *GameTree[S, A, P]) node(id nodeID) *node[S, A, P] {
	return &t.nodes[id]
}

// Len returns the number of nodes in the tree.
func (t *GameTree[S, A, P]) Len() int { return len(t.nodes) }

// BestAction returns the action on the edge to the most-visited child of
// the root. Ties break to the first maximum in child order. ok is false
// iff the root has no children.
func (t *GameTree[S, A, P]) BestAction() (action A, ok bool) {
	children := t.node(t.root).children
	if len(children) == 0 {
		return action, false
	}
	best := children[0]
	for _, id := range children[1:] {
		if t.node(id).visits > t.node(best).visits {
			best = id
		}
	}
	return t.node(best).action, true
}

// RootScores returns the flattened statistics of the root's children: one
// record per (action, player) pair that has accumulated a score, in child
// order then score-insertion order. Children that never scored for any
// player contribute no records.
func (t *GameTree[S, A, P]) RootScores() []Score[A, P] {
	var scores []Score[A, P]
	for _, id := range t.node(t.root).children {
		child := t.node(id)
		for _, ps := range child.scores {
			scores = append(scores, Score[A, P]{
				Action: child.action,
				Player: ps.player,
				Score:  ps.score,
				Visits: child.visits,
			})
		}
	}
	return scores
}
