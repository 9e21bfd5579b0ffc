package chesscore

import "fmt"

// Piece constants and types for pieces and colors.
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteBishop Piece = 2
	WhiteKnight Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	// Black pieces are encoded as (white piece type | 8) so that
	// - piece & 7 gives the type in [1..6]
	// - piece & 8 != 0 indicates Black
	BlackPawn   Piece = 1 | 8
	BlackBishop Piece = 2 | 8
	BlackKnight Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8

	// MovedFlag is set once a piece has ever left its origin square.
	MovedFlag Piece = 0x10
)

// PieceType is a colorless representation of a chess piece used for table lookups.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeBishop PieceType = 2
	PieceTypeKnight PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// Type returns the colorless type of the piece (ignores side and moved flag).
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color { return Color(p & 8) }

// Moved reports whether the piece has ever left its origin square.
func (p Piece) Moved() bool { return p&MovedFlag != 0 }

// PieceFromType combines a colorless type with a side to produce a concrete Piece.
func PieceFromType(color Color, pt PieceType) Piece {
	if pt == PieceTypeNone {
		return NoPiece
	}
	return Piece(pt) | Piece(color)
}

// Color of a side. The values are chosen so that the enemy side is 8-c and the
// color can be OR-ed straight into a piece byte.
type Color uint8

const (
	White Color = 0
	Black Color = 8
)

// Other returns the opposing side.
func (c Color) Other() Color { return 8 - c }

// bit maps the color to an attack-table index half: 0 for White, 1 for Black.
func (c Color) bit() int {
	if c == White {
		return 0
	}
	return 1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Square is a 0x88 board index: the low nibble is the file, the next nibble
// the rank. A square is on the board iff sq & 0x88 == 0.
type Square int

// NoEnPassant is the off-board sentinel used when no en-passant capture is
// available.
const NoEnPassant Square = 0x88

// OnBoard reports whether the square index addresses a real board square.
func (s Square) OnBoard() bool { return s&0x88 == 0 }

// File returns the file in [0..7], 0 being the a-file.
func (s Square) File() int { return int(s & 7) }

// Rank returns the rank in [0..7], 0 being White's back rank.
func (s Square) Rank() int { return int(s >> 4) }

// SquareAt builds a square index from a file and rank in [0..7].
func SquareAt(file, rank int) Square { return Square(rank<<4 | file) }

// SquareFromAlgebraic parses a two-character algebraic square like "e4".
func SquareFromAlgebraic(alg string) (Square, error) {
	if len(alg) != 2 {
		return 0, fmt.Errorf("invalid square %q: %w", alg, ErrBadInput)
	}
	file := alg[0]
	rank := alg[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, fmt.Errorf("invalid square %q: %w", alg, ErrBadInput)
	}
	return SquareAt(int(file-'a'), int(rank-'1')), nil
}

// String renders the square in algebraic form, or "-" when off the board.
func (s Square) String() string {
	if !s.OnBoard() {
		return "-"
	}
	return string([]byte{'a' + byte(s.File()), '1' + byte(s.Rank())})
}
