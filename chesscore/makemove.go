package chesscore

// applyBoard performs only the board-level mutation of a move, keeping the
// attack table exact. Metadata, clocks and hashing are MakeMove's business;
// trial applies during move generation use this alone.
func (p *Position) applyBoard(m Move) {
	moved := m.What | MovedFlag
	if m.Promote != PieceTypeNone {
		moved = PieceFromType(m.What.Color(), m.Promote) | MovedFlag
	}
	if m.IsCastle() {
		// Clear both origins first: in Chess960 the rook may stand on the
		// king's destination square or vice versa.
		p.remove(m.From)
		p.remove(m.CastleRookFrom)
		p.place(m.To, moved)
		p.place(m.CastleRookTo, m.CastleRook|MovedFlag)
		return
	}
	if m.IsCapture() {
		p.remove(m.CaptureCoord)
	}
	p.remove(m.From)
	p.place(m.To, moved)
}

// revertBoard undoes applyBoard. The stored What byte carries the original
// moved flag, so reverting restores it exactly.
func (p *Position) revertBoard(m Move) {
	if m.IsCastle() {
		p.remove(m.To)
		p.remove(m.CastleRookTo)
		p.place(m.From, m.What)
		p.place(m.CastleRookFrom, m.CastleRook)
		return
	}
	p.remove(m.To)
	p.place(m.From, m.What)
	if m.IsCapture() {
		p.place(m.CaptureCoord, m.Capture)
	}
}

// MakeMove applies a legal move, updates clocks, castle rights, the
// repetition count and the game status, and returns the move with the
// pre-move state recorded for UnmakeMove. Moves come from
// GenerateLegalMoves; MakeMove does not validate.
func (p *Position) MakeMove(m Move) Move {
	l := p.cur()
	mover := m.What.Color()
	m.prior = priorState{
		clock:   l.clock,
		moveNum: l.moveNum,
		ep:      l.ep,
		status:  l.status,
		castles: l.castles,
	}

	p.applyBoard(m)

	l = p.cur()
	if m.MarkEnPassant != 0 {
		l.ep = m.MarkEnPassant
	} else {
		l.ep = NoEnPassant
	}
	if m.What.Type() == PieceTypePawn || m.IsCapture() {
		l.clock = 0
	} else {
		l.clock++
	}
	switch m.What.Type() {
	case PieceTypeKing:
		l.castles.KingMoved(mover)
	case PieceTypeRook:
		l.castles.RookMoved(m.From)
	}
	if m.Capture.Type() == PieceTypeRook {
		l.castles.RookMoved(m.CaptureCoord)
	}
	if mover == Black {
		l.moveNum++
	}
	l.turn = mover.Other()
	l.moveCache[0], l.moveCache[1] = nil, nil

	seen := p.putHash(p.hashKey())
	p.classify(mover, seen)
	return m
}

// UnmakeMove reverts a move previously returned by MakeMove, restoring board,
// metadata and repetition counts exactly.
func (p *Position) UnmakeMove(m Move) {
	p.removeHash(p.hashKey())
	p.revertBoard(m)
	l := p.cur()
	l.clock = m.prior.clock
	l.moveNum = m.prior.moveNum
	l.ep = m.prior.ep
	l.status = m.prior.status
	l.castles = m.prior.castles
	l.turn = m.What.Color()
	l.moveCache[0], l.moveCache[1] = nil, nil
}
