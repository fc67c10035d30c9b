package game

import (
	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// ChessMove encodes a chess move with UCI notation.
type ChessMove string

// ChessState adapts notnil/chess to the State contract. Chess is a
// perfect-information game, so it is suitable for plain MCTS; it does not
// implement Determinable.
type ChessState struct {
	game *chess.Game
}

// NewChessGame returns the starting position.
func NewChessGame() *ChessState {
	return &ChessState{game: chess.NewGame(chess.UseNotation(chess.UCINotation{}))}
}

// ChessGameFromFEN returns the position described by fen.
func ChessGameFromFEN(fen string) (*ChessState, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing FEN %q", fen)
	}
	return &ChessState{game: chess.NewGame(opt, chess.UseNotation(chess.UCINotation{}))}, nil
}

// Actions returns all legal moves in the order the move generator emits them.
func (s *ChessState) Actions() []ChessMove {
	moves := s.game.ValidMoves()
	actions := make([]ChessMove, len(moves))
	for i, m := range moves {
		actions[i] = ChessMove(m.String())
	}
	return actions
}

// Apply plays the move on a copy of the game and returns the new state.
// Chess moves are deterministic; the random source is unused.
func (s *ChessState) Apply(_ *rand.Rand, m ChessMove) (*ChessState, error) {
	next := s.game.Clone()
	if err := next.MoveStr(string(m)); err != nil {
		return nil, errors.Wrapf(err, "applying move %s", m)
	}
	return &ChessState{game: next}, nil
}

// Outcome reports the game result. Draws by any method count for both
// colors.
func (s *ChessState) Outcome() (Outcome[chess.Color], bool) {
	switch s.game.Outcome() {
	case chess.NoOutcome:
		return Outcome[chess.Color]{}, false
	case chess.WhiteWon:
		return Winner(chess.White), true
	case chess.BlackWon:
		return Winner(chess.Black), true
	default:
		return Draw(chess.White, chess.Black), true
	}
}

// Player returns the color to move next.
func (s *ChessState) Player() chess.Color {
	return s.game.Position().Turn()
}

// Board returns the underlying board, e.g. for display.
func (s *ChessState) Board() *chess.Board {
	return s.game.Position().Board()
}

var _ State[*ChessState, ChessMove, chess.Color] = (*ChessState)(nil)
