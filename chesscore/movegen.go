package chesscore

import "golang.org/x/exp/slices"

// Move records a single move together with everything needed to revert it.
// Zero values mean "absent" for piece and coordinate slots alike; a1 can never
// be an en-passant target, so MarkEnPassant == 0 safely means none.
type Move struct {
	What         Piece  // piece byte as it stood before the move
	From         Square // origin square
	To           Square // destination square
	Capture      Piece  // captured piece byte, or NoPiece
	CaptureCoord Square // square of the captured piece; differs from To only en passant

	CastleRook     Piece // rook byte for castling moves, or NoPiece
	CastleRookFrom Square
	CastleRookTo   Square

	Promote       PieceType // promotion piece type, or PieceTypeNone
	MarkEnPassant Square    // en-passant target created by this move, or 0

	prior priorState
}

// priorState is the metadata snapshot taken before a move is applied,
// restored verbatim on UnmakeMove.
type priorState struct {
	clock   int
	moveNum int
	ep      Square
	status  GameStatus
	castles CastleRights
}

// IsCapture reports whether the move takes a piece, en passant included.
func (m Move) IsCapture() bool { return m.Capture != NoPiece }

// IsCastle reports whether the move is a castle.
func (m Move) IsCastle() bool { return m.CastleRook != NoPiece }

// Kingside reports, for a castle move, whether the rook started on the king's
// high side.
func (m Move) Kingside() bool { return m.CastleRookFrom > m.From }

// String produces the UCI form of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promote != PieceTypeNone {
		s += string(pieceLetter(m.Promote) | 0x20)
	}
	return s
}

// Promotion variants are emitted in this order.
var promotionTypes = [4]PieceType{PieceTypeQueen, PieceTypeRook, PieceTypeKnight, PieceTypeBishop}

// GenerateLegalMoves returns every legal move for the side to move. The list
// is memoized per color until the next mutation; callers get their own copy.
func (p *Position) GenerateLegalMoves() []Move {
	return slices.Clone(p.legalMoves(p.cur().turn))
}

// HasLegalMoves reports whether the side to move has any legal move.
func (p *Position) HasLegalMoves() bool { return len(p.legalMoves(p.cur().turn)) > 0 }

// legalMoves returns the memoized legal move list for one color, generating
// it on demand. The returned slice is the cache itself; do not mutate.
func (p *Position) legalMoves(c Color) []Move {
	l := p.cur()
	if l.moveCache[c.bit()] == nil {
		moves := p.generateLegal(c)
		l = p.cur()
		l.moveCache[c.bit()] = moves
	}
	return l.moveCache[c.bit()]
}

// generateLegal produces pseudo-legal moves and keeps those that leave no
// king of the moving side attacked. The trial apply on a saved layer handles
// pins and discovered checks without separate pin analysis.
func (p *Position) generateLegal(c Color) []Move {
	pseudo := p.pseudoMoves(c)
	moves := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		p.save()
		p.applyBoard(m)
		ok := !p.kingInDanger(c)
		p.restore()
		if ok {
			moves = append(moves, m)
		}
	}
	return moves
}

func (p *Position) pseudoMoves(c Color) []Move {
	moves := make([]Move, 0, 64)
	pieces := p.cur().pieceList
	for _, sq := range pieces {
		pc := p.cur().board[sq]
		if pc.Color() != c {
			continue
		}
		switch pc.Type() {
		case PieceTypePawn:
			moves = p.pawnMoves(moves, sq, pc)
		case PieceTypeKnight:
			moves = p.stepMoves(moves, sq, pc, knightJumps[:])
		case PieceTypeBishop:
			moves = p.sliderMoves(moves, sq, pc, dirs[4:])
		case PieceTypeRook:
			moves = p.sliderMoves(moves, sq, pc, dirs[:4])
		case PieceTypeQueen:
			moves = p.sliderMoves(moves, sq, pc, dirs[:])
		case PieceTypeKing:
			moves = p.stepMoves(moves, sq, pc, dirs[:])
			moves = p.castleMoves(moves, sq, pc)
		}
	}
	return moves
}

// moveTo builds a plain move, recording a capture when the destination is
// occupied. The caller has already checked the occupant is an enemy.
func (p *Position) moveTo(pc Piece, from, to Square) Move {
	m := Move{What: pc, From: from, To: to}
	if target := p.cur().board[to]; target != NoPiece {
		m.Capture = target
		m.CaptureCoord = to
	}
	return m
}

func (p *Position) stepMoves(dst []Move, sq Square, pc Piece, deltas []Square) []Move {
	board := &p.cur().board
	for _, d := range deltas {
		t := sq + d
		if !t.OnBoard() {
			continue
		}
		if board[t] != NoPiece && board[t].Color() == pc.Color() {
			continue
		}
		dst = append(dst, p.moveTo(pc, sq, t))
	}
	return dst
}

func (p *Position) sliderMoves(dst []Move, sq Square, pc Piece, deltas []Square) []Move {
	board := &p.cur().board
	for _, d := range deltas {
		for t := sq + d; t.OnBoard(); t += d {
			if board[t] == NoPiece {
				dst = append(dst, p.moveTo(pc, sq, t))
				continue
			}
			if board[t].Color() != pc.Color() {
				dst = append(dst, p.moveTo(pc, sq, t))
			}
			break
		}
	}
	return dst
}

func (p *Position) pawnMoves(dst []Move, sq Square, pc Piece) []Move {
	l := p.cur()
	forward, startRank, lastRank := Square(16), 1, 7
	if pc.Color() == Black {
		forward, startRank, lastRank = -16, 6, 0
	}

	one := sq + forward
	if one.OnBoard() && l.board[one] == NoPiece {
		dst = p.emitPawn(dst, Move{What: pc, From: sq, To: one}, one.Rank() == lastRank)
		if sq.Rank() == startRank {
			two := one + forward
			if l.board[two] == NoPiece {
				dst = append(dst, Move{What: pc, From: sq, To: two, MarkEnPassant: one})
			}
		}
	}

	for _, side := range [2]Square{-1, 1} {
		t := sq + forward + side
		if !t.OnBoard() {
			continue
		}
		if target := l.board[t]; target != NoPiece {
			if target.Color() != pc.Color() {
				m := Move{What: pc, From: sq, To: t, Capture: target, CaptureCoord: t}
				dst = p.emitPawn(dst, m, t.Rank() == lastRank)
			}
		} else if t == l.ep {
			capCoord := t - forward
			dst = append(dst, Move{
				What: pc, From: sq, To: t,
				Capture: l.board[capCoord], CaptureCoord: capCoord,
			})
		}
	}
	return dst
}

// emitPawn appends a pawn move, expanding it into the four promotion variants
// when it reaches the last rank.
func (p *Position) emitPawn(dst []Move, m Move, promotes bool) []Move {
	if !promotes {
		return append(dst, m)
	}
	for _, pt := range promotionTypes {
		pm := m
		pm.Promote = pt
		dst = append(dst, pm)
	}
	return dst
}

// castleMoves emits castles for an unmoved king. Rook origins come from the
// castle rights map, so any Chess960 file works; destinations are the fixed
// g/f and c/d files. The path check clears king and rook, then walks a
// throwaway king over every square the real king traverses.
func (p *Position) castleMoves(dst []Move, sq Square, pc Piece) []Move {
	if pc.Moved() {
		return dst
	}
	c := pc.Color()
	homeRank := 0
	if c == Black {
		homeRank = 7
	}
	if sq.Rank() != homeRank {
		return dst
	}
	for _, kingside := range [2]bool{true, false} {
		file, ok := p.cur().castles.File(c, kingside)
		if !ok {
			continue
		}
		rookFrom := SquareAt(file, homeRank)
		rook := p.cur().board[rookFrom]
		if rook&^MovedFlag != PieceFromType(c, PieceTypeRook) {
			continue
		}
		kingToFile, rookToFile := 6, 5
		if !kingside {
			kingToFile, rookToFile = 2, 3
		}
		kingTo := SquareAt(kingToFile, homeRank)
		rookTo := SquareAt(rookToFile, homeRank)

		// Every square the king or rook crosses must be empty, origins aside.
		lo := minSquare(sq, kingTo, rookFrom, rookTo)
		hi := maxSquare(sq, kingTo, rookFrom, rookTo)
		blocked := false
		for s := lo; s <= hi; s++ {
			if s == sq || s == rookFrom {
				continue
			}
			if p.cur().board[s] != NoPiece {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}

		// The king may not castle out of, through, or into check.
		p.save()
		p.remove(sq)
		p.remove(rookFrom)
		step := Square(1)
		if kingTo < sq {
			step = -1
		}
		king := PieceFromType(c, PieceTypeKing)
		for s := sq; ; s += step {
			p.place(s, king)
			if s == kingTo {
				break
			}
		}
		danger := p.kingInDanger(c)
		p.restore()
		if danger {
			continue
		}

		dst = append(dst, Move{
			What: pc, From: sq, To: kingTo,
			CastleRook: rook, CastleRookFrom: rookFrom, CastleRookTo: rookTo,
		})
	}
	return dst
}

func minSquare(s Square, rest ...Square) Square {
	for _, r := range rest {
		if r < s {
			s = r
		}
	}
	return s
}

func maxSquare(s Square, rest ...Square) Square {
	for _, r := range rest {
		if r > s {
			s = r
		}
	}
	return s
}
