package chesscore

// Direction deltas in 0x88 space, orthogonal first (indices 0..3), then
// diagonal (4..7). Slider coverage tests rely on this split.
var dirs = [8]Square{16, 1, -16, -1, 17, -15, -17, 15}

// Knight jump deltas.
var knightJumps = [8]Square{31, 33, 14, 18, -18, -14, -33, -31}

// attackIndex addresses the per-square, per-color attacker count.
func attackIndex(sq Square, c Color) int { return int(sq)<<1 | c.bit() }

// IsAttacked reports whether any piece of the given color attacks the square.
// O(1): the table is maintained incrementally on every placement and removal.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	return p.cur().attacks[attackIndex(sq, by)] > 0
}

// sliderCovers reports whether a piece type slides along the direction with
// the given index into dirs.
func sliderCovers(pt PieceType, dirIndex int) bool {
	switch pt {
	case PieceTypeQueen:
		return true
	case PieceTypeRook:
		return dirIndex < 4
	case PieceTypeBishop:
		return dirIndex >= 4
	}
	return false
}

// eachAttack visits every square the piece attacks from sq through the current
// occupancy. Slider rays include the blocking square and stop there.
func (p *Position) eachAttack(sq Square, pc Piece, visit func(Square)) {
	board := &p.cur().board
	switch pc.Type() {
	case PieceTypePawn:
		forward := Square(16)
		if pc.Color() == Black {
			forward = -16
		}
		for _, side := range [2]Square{-1, 1} {
			if t := sq + forward + side; t.OnBoard() {
				visit(t)
			}
		}
	case PieceTypeKnight:
		for _, d := range knightJumps {
			if t := sq + d; t.OnBoard() {
				visit(t)
			}
		}
	case PieceTypeKing:
		for _, d := range dirs {
			if t := sq + d; t.OnBoard() {
				visit(t)
			}
		}
	default:
		for i, d := range dirs {
			if !sliderCovers(pc.Type(), i) {
				continue
			}
			for t := sq + d; t.OnBoard(); t += d {
				visit(t)
				if board[t] != NoPiece {
					break
				}
			}
		}
	}
}

// bumpAttacks adds (delta=1) or removes (delta=-1) one piece's contribution to
// the attack table.
func (p *Position) bumpAttacks(sq Square, pc Piece, delta int) {
	l := p.cur()
	c := pc.Color()
	p.eachAttack(sq, pc, func(t Square) {
		if delta > 0 {
			l.attacks[attackIndex(t, c)]++
		} else {
			l.attacks[attackIndex(t, c)]--
		}
	})
}

// slidersThrough adjusts the rays of every slider whose line passes through
// sq after the occupancy there changed. delta=-1 truncates rays (a piece was
// placed on sq), delta=1 extends them (sq was vacated). For each principal
// direction the nearest piece is found; if it slides along that line, every
// square behind sq on the continuation of its ray gains or loses its
// contribution, up to and including the next blocker.
func (p *Position) slidersThrough(sq Square, delta int) {
	l := p.cur()
	for i, d := range dirs {
		t := sq + d
		for t.OnBoard() && l.board[t] == NoPiece {
			t += d
		}
		if !t.OnBoard() {
			continue
		}
		pc := l.board[t]
		if !sliderCovers(pc.Type(), i) {
			continue
		}
		c := pc.Color()
		for x := sq - d; x.OnBoard(); x -= d {
			if delta > 0 {
				l.attacks[attackIndex(x, c)]++
			} else {
				l.attacks[attackIndex(x, c)]--
			}
			if l.board[x] != NoPiece {
				break
			}
		}
	}
}

// kingInDanger reports whether any king of the given color stands on an
// attacked square. Transient extra kings placed during castle legality checks
// are all tested.
func (p *Position) kingInDanger(c Color) bool {
	l := p.cur()
	enemy := c.Other()
	king := PieceFromType(c, PieceTypeKing)
	for _, sq := range l.pieceList {
		if l.board[sq]&^MovedFlag == king && p.IsAttacked(sq, enemy) {
			return true
		}
	}
	return false
}

// InCheck reports whether the given side's king is attacked.
func (p *Position) InCheck(c Color) bool { return p.kingInDanger(c) }
