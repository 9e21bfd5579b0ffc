package chesscore

import "errors"

// Sentinel errors for move and notation handling. Callers distinguish the
// failure kinds with errors.Is.
var (
	// ErrBadInput indicates malformed FEN, SAN, UCI or square text.
	ErrBadInput = errors.New("malformed input")

	// ErrBadMove indicates well-formed input that matches no legal move.
	ErrBadMove = errors.New("no matching legal move")

	// ErrAmbiguousMove indicates input that matches more than one legal move.
	ErrAmbiguousMove = errors.New("ambiguous move")

	// ErrNeedsPromotion indicates a promotion move submitted without a
	// promotion piece.
	ErrNeedsPromotion = errors.New("promotion piece required")

	// ErrGameOver indicates a move attempted on a finished game.
	ErrGameOver = errors.New("game is over")
)
