package chesscore

// GameStatus classifies a position. The ordering matters: everything at Draw
// or above is a drawn game.
type GameStatus int

const (
	Active GameStatus = iota
	Checkmate
	Resigned
	Draw
	DrawStalemate
	DrawRepetition
	DrawFiftyMoves
	DrawNoMaterial
)

// GameOver reports whether the game has ended.
func (s GameStatus) GameOver() bool { return s != Active }

// IsDraw reports whether the status is any of the draw outcomes.
func (s GameStatus) IsDraw() bool { return s >= Draw }

func (s GameStatus) String() string {
	switch s {
	case Active:
		return "active"
	case Checkmate:
		return "checkmate"
	case Resigned:
		return "resigned"
	case Draw:
		return "draw"
	case DrawStalemate:
		return "stalemate"
	case DrawRepetition:
		return "draw by repetition"
	case DrawFiftyMoves:
		return "draw by fifty-move rule"
	case DrawNoMaterial:
		return "draw by insufficient material"
	}
	return "unknown"
}

// classify updates the status after mover's move has been applied and the
// position hashed for the seen-th time. Checkmate and stalemate are decided
// first; only then the draw rules, so mate on the hundredth halfmove is mate.
func (p *Position) classify(mover Color, seen int) {
	enemy := mover.Other()
	inCheck := p.kingInDanger(enemy)
	canMove := len(p.legalMoves(enemy)) > 0
	l := p.cur()
	switch {
	case !canMove && inCheck:
		l.status = Checkmate
	case !canMove:
		l.status = DrawStalemate
	case l.clock >= 100:
		l.status = DrawFiftyMoves
	case seen >= 3:
		l.status = DrawRepetition
	case p.insufficientMaterial():
		l.status = DrawNoMaterial
	}
}

// insufficientMaterial reports a dead position: king against king, a lone
// minor against a bare king, or bishop against bishop on same-colored
// squares. Two knights against a bare king is not covered.
func (p *Position) insufficientMaterial() bool {
	l := p.cur()
	var minors [2]int
	var bishopShade [2]int
	bishops := 0
	for _, sq := range l.pieceList {
		pc := l.board[sq]
		switch pc.Type() {
		case PieceTypePawn, PieceTypeRook, PieceTypeQueen:
			return false
		case PieceTypeKing:
			continue
		case PieceTypeBishop:
			bishops++
			bishopShade[pc.Color().bit()] = (sq.File() + sq.Rank()) & 1
			minors[pc.Color().bit()]++
		case PieceTypeKnight:
			minors[pc.Color().bit()]++
		}
	}
	w, b := minors[0], minors[1]
	switch {
	case w == 0 && b == 0:
		return true
	case w+b == 1:
		return true
	case w == 1 && b == 1 && bishops == 2:
		return bishopShade[0] == bishopShade[1]
	}
	return false
}

// InCheckmate reports whether the side to move is checkmated.
func (p *Position) InCheckmate() bool {
	return p.InCheck(p.cur().turn) && !p.HasLegalMoves()
}

// InStalemate reports whether the side to move is stalemated.
func (p *Position) InStalemate() bool {
	return !p.InCheck(p.cur().turn) && !p.HasLegalMoves()
}
