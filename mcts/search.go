package mcts

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"k8s.io/klog/v2"

	"github.com/Shadetheartist/bg-ai/game"
)

/*
Here lies the search code, while node.go and tree.go handle the data
structure stuff.

One search iteration performs the four classic phases:

	SELECT, EXPAND, ROLLOUT, BACKPROPAGATE.

Selection descends from the root by UCB1 from the perspective of the
root state's current player, held constant throughout the descent.
*/

// SearchN runs iterations independent search cycles. Iteration k+1
// observes all statistics written by iteration k. It stops at the first
// game-contract violation.
func (t *GameTree[S, A, P]) SearchN(rng *rand.Rand, iterations int) error {
	for i := 0; i < iterations; i++ {
		if err := t.Search(rng); err != nil {
			return errors.WithMessagef(err, "search iteration %d", i)
		}
	}
	if klog.V(2).Enabled() {
		klog.Infof("searched %d iterations, tree holds %d nodes", iterations, t.Len())
	}
	return nil
}

// Search runs one selection/expansion/rollout/back-propagation cycle.
func (t *GameTree[S, A, P]) Search(rng *rand.Rand) error {
	current := t.root

	// track visited nodes for back propagation
	visited := make([]nodeID, 0, 16)
	visited = append(visited, current)

	perspective := t.node(t.root).state.Player()

	// SELECT: descend while the current node has children
	for !t.node(current).isLeaf() {
		current = t.selectChild(current, perspective)
		visited = append(visited, current)
	}

	var outcome game.Outcome[P]
	if terminal, ok := t.node(current).state.Outcome(); ok {
		// a terminal node is never expanded
		outcome = terminal
	} else {
		// EXPAND: one child per legal action
		if err := t.expand(rng, current); err != nil {
			return err
		}

		// pick one newly created child by the same rule and ROLLOUT
		// from its state
		next := t.selectChild(current, perspective)
		visited = append(visited, next)

		var err error
		outcome, err = Rollout[S, A, P](t.node(next).state, rng)
		if err != nil {
			return err
		}
	}

	t.backPropagate(visited, outcome)
	return nil
}

// selectChild returns the child of id maximizing UCB1; the first maximum
// in child order wins ties. id must have children.
func (t *GameTree[S, A, P]) selectChild(id nodeID, perspective P) nodeID {
	selected := nilNode
	best := math32NegInf
	for _, child := range t.node(id).children {
		if value := t.ucb1(child, perspective); value > best {
			selected = child
			best = value
		}
	}
	if selected == nilNode {
		panic("could not select a node, this node has no children")
	}
	return selected
}

// expand enumerates the legal actions of id's state and adds one child
// per action. Zero actions on a non-terminal state and Apply failures are
// game-contract violations.
func (t *GameTree[S, A, P]) expand(rng *rand.Rand, id nodeID) error {
	actions := t.node(id).state.Actions()
	if len(actions) == 0 {
		return errors.New("no actions to expand into")
	}

	for _, action := range actions {
		state, err := t.node(id).state.Apply(rng, action)
		if err != nil {
			return errors.Wrapf(err, "expanding action %v", action)
		}
		t.addChild(id, state, action)
	}
	return nil
}

// backPropagate updates the visit count and each player's score for every
// visited node. Edge counters advance only on the Winner arm for
// non-root nodes; nothing reads them when picking an action, the node
// counters decide.
func (t *GameTree[S, A, P]) backPropagate(visited []nodeID, outcome game.Outcome[P]) {
	for _, id := range visited {
		n := t.node(id)
		n.visits++

		switch outcome.Kind() {
		case game.OutcomeWinner:
			n.addScore(outcome.Winner(), 1)
			if id != t.root {
				n.edgeVisits++
			}
		case game.OutcomeDraw:
			for _, p := range outcome.Drawn() {
				n.addScore(p, 1)
			}
		case game.OutcomeEscape:
			// visits still count, scores are untouched
		}
	}
}
