// Package gametest provides small deterministic games used by the engine
// tests: a scripted graph game whose every transition and outcome is laid
// out by the test, a Nim variant for deeper trees, and a coin-guessing
// game with hidden state for the information-set searches.
package gametest

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/Shadetheartist/bg-ai/game"
)

// PlayerID identifies a test player.
type PlayerID uint8

// Test players.
const (
	P1 PlayerID = iota + 1
	P2
)

// Position is one node of a scripted game graph.
type Position struct {
	Player   PlayerID
	Actions  []string          // ordered action labels
	Next     map[string]string // action label -> position name
	Terminal bool
	Outcome  game.Outcome[PlayerID]
}

// Script is the immutable graph shared by all states of one scripted game.
type Script struct {
	positions map[string]Position
}

// Scripted is a game state pointing into a Script. The zero value is not
// usable; construct with NewScripted.
type Scripted struct {
	script *Script
	pos    string
}

// NewScripted returns the scripted game at the start position.
func NewScripted(start string, positions map[string]Position) Scripted {
	return Scripted{script: &Script{positions: positions}, pos: start}
}

// At returns the state at the named position of the same script.
func (s Scripted) At(pos string) Scripted {
	return Scripted{script: s.script, pos: pos}
}

// Pos returns the current position name.
func (s Scripted) Pos() string { return s.pos }

// Actions implements game.State.
func (s Scripted) Actions() []string {
	return s.script.positions[s.pos].Actions
}

// Apply implements game.State. An action with no scripted successor
// yields an error, which tests use to provoke contract violations.
func (s Scripted) Apply(_ *rand.Rand, action string) (Scripted, error) {
	next, ok := s.script.positions[s.pos].Next[action]
	if !ok {
		return Scripted{}, errors.Errorf("no transition for action %q at %q", action, s.pos)
	}
	return s.At(next), nil
}

// Outcome implements game.State.
func (s Scripted) Outcome() (game.Outcome[PlayerID], bool) {
	p := s.script.positions[s.pos]
	return p.Outcome, p.Terminal
}

// Player implements game.State.
func (s Scripted) Player() PlayerID {
	return s.script.positions[s.pos].Player
}

var _ game.State[Scripted, string, PlayerID] = Scripted{}

// SingleWin is a one-action game: "a" leads straight to a win for P1.
func SingleWin() Scripted {
	return NewScripted("root", map[string]Position{
		"root": {Player: P1, Actions: []string{"a"}, Next: map[string]string{"a": "win"}},
		"win":  {Player: P2, Terminal: true, Outcome: game.Winner(P1)},
	})
}

// TwoBranch offers P1 the choice between winning ("a") and handing the
// win to P2 ("b").
func TwoBranch() Scripted {
	return NewScripted("root", map[string]Position{
		"root":  {Player: P1, Actions: []string{"a", "b"}, Next: map[string]string{"a": "winP1", "b": "winP2"}},
		"winP1": {Player: P2, Terminal: true, Outcome: game.Winner(P1)},
		"winP2": {Player: P1, Terminal: true, Outcome: game.Winner(P2)},
	})
}

// DrawGame has a single action leading to a draw between both players.
func DrawGame() Scripted {
	return NewScripted("root", map[string]Position{
		"root": {Player: P1, Actions: []string{"d"}, Next: map[string]string{"d": "draw"}},
		"draw": {Player: P2, Terminal: true, Outcome: game.Draw(P1, P2)},
	})
}

// Stuck reaches, in one step, a non-terminal position with no legal
// actions: every rollout escapes.
func Stuck() Scripted {
	return NewScripted("root", map[string]Position{
		"root":  {Player: P1, Actions: []string{"s"}, Next: map[string]string{"s": "stuck"}},
		"stuck": {Player: P2},
	})
}

// TerminalRoot is already decided before any move.
func TerminalRoot() Scripted {
	return NewScripted("root", map[string]Position{
		"root": {Player: P1, Terminal: true, Outcome: game.Winner(P1)},
	})
}

// BrokenRoot violates the game contract: the root is non-terminal and
// offers no actions.
func BrokenRoot() Scripted {
	return NewScripted("root", map[string]Position{
		"root": {Player: P1},
	})
}

// BrokenApply violates the game contract: the root's only action has no
// scripted transition, so Apply fails during expansion.
func BrokenApply() Scripted {
	return NewScripted("root", map[string]Position{
		"root": {Player: P1, Actions: []string{"a"}},
	})
}
