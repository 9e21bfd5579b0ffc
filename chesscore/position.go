package chesscore

// layer is one slot in the undo arena: a full snapshot of board, attack table
// and game metadata. Slots are reused across save/restore so deep trial
// sequences allocate only while the arena grows.
type layer struct {
	board   [128]Piece
	attacks [256]uint8
	clock   int
	moveNum int
	ep      Square
	status  GameStatus
	turn    Color
	castles CastleRights

	// seen holds repetition counts keyed by position hash. It is not copied
	// on save; lookups walk the arena downwards instead (see putHash).
	seen map[string]int

	pieceList []Square
	moveCache [2][]Move
}

// Position is a mutable chess position with a layered undo arena. A Position
// must not be shared between goroutines; independent Positions are fully
// independent.
type Position struct {
	layers []layer
	idx    int
}

// NewPosition returns an empty board with White to move and no castle rights.
// Populate it with Set before the first move query.
func NewPosition() *Position {
	p := &Position{layers: make([]layer, 1, 32)}
	l := &p.layers[0]
	l.ep = NoEnPassant
	l.moveNum = 1
	l.castles = NoCastleRights
	l.seen = make(map[string]int)
	return p
}

// cur returns the active layer. The pointer must not be held across
// save/restore: growing the arena relocates the slots.
func (p *Position) cur() *layer { return &p.layers[p.idx] }

// save clones the active layer into the next arena slot and switches to it.
// The repetition map starts empty in the new slot; putHash walks down.
func (p *Position) save() {
	if p.idx+1 >= len(p.layers) {
		p.layers = append(p.layers, layer{})
	}
	src := &p.layers[p.idx]
	dst := &p.layers[p.idx+1]
	dst.board = src.board
	dst.attacks = src.attacks
	dst.clock = src.clock
	dst.moveNum = src.moveNum
	dst.ep = src.ep
	dst.status = src.status
	dst.turn = src.turn
	dst.castles = src.castles
	dst.pieceList = append(dst.pieceList[:0], src.pieceList...)
	if dst.seen == nil {
		dst.seen = make(map[string]int)
	} else {
		clear(dst.seen)
	}
	dst.moveCache[0], dst.moveCache[1] = nil, nil
	p.idx++
}

// restore discards the active layer and reactivates the one below it.
func (p *Position) restore() {
	if p.idx == 0 {
		panic("chesscore: restore without save")
	}
	p.idx--
}

// PieceAt returns the piece on a square, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece { return p.cur().board[sq] }

// Turn reports which side is to play.
func (p *Position) Turn() Color { return p.cur().turn }

// Status returns the game status as of the last applied move.
func (p *Position) Status() GameStatus { return p.cur().status }

// Clock returns the halfmove counter for the fifty-move rule.
func (p *Position) Clock() int { return p.cur().clock }

// MoveNumber returns the full-move number (increments after Black moves).
func (p *Position) MoveNumber() int { return p.cur().moveNum }

// EnPassant returns the en-passant target square, or NoEnPassant.
func (p *Position) EnPassant() Square { return p.cur().ep }

// Castles returns the castle rights map.
func (p *Position) Castles() CastleRights { return p.cur().castles }

// SetTurn sets the side to play. Construction use only.
func (p *Position) SetTurn(c Color) { p.cur().turn = c }

// Set places a piece on a square, replacing any occupant, and keeps the piece
// list and attack table in sync. Positions must be fully built before the
// first move query; Set does not invalidate memoized move lists.
func (p *Position) Set(sq Square, pc Piece) {
	p.remove(sq)
	if pc != NoPiece {
		p.place(sq, pc)
	}
}

// Clear removes any piece from the given square. Construction use only, like Set.
func (p *Position) Clear(sq Square) { p.remove(sq) }

// place puts a piece on an empty square and updates the attack table, both for
// the piece's own attacks and for slider rays now blocked at sq.
func (p *Position) place(sq Square, pc Piece) {
	l := p.cur()
	l.board[sq] = pc
	l.pieceList = append(l.pieceList, sq)
	p.bumpAttacks(sq, pc, 1)
	p.slidersThrough(sq, -1)
}

// remove takes a piece off a square and updates the attack table, reopening
// slider rays that were blocked at sq. Removing an empty square is a no-op.
func (p *Position) remove(sq Square) {
	l := p.cur()
	pc := l.board[sq]
	if pc == NoPiece {
		return
	}
	p.bumpAttacks(sq, pc, -1)
	l.board[sq] = 0
	for i, s := range l.pieceList {
		if s == sq {
			last := len(l.pieceList) - 1
			l.pieceList[i] = l.pieceList[last]
			l.pieceList = l.pieceList[:last]
			break
		}
	}
	p.slidersThrough(sq, 1)
}

// Validate checks internal consistency between the board array, the piece list
// and the incremental attack table by recomputing both from scratch.
// Returns true if consistent, false otherwise.
func (p *Position) Validate() bool {
	l := p.cur()
	var want [256]uint8
	occupied := 0
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := SquareAt(file, rank)
			pc := l.board[sq]
			if pc == NoPiece {
				continue
			}
			occupied++
			p.eachAttack(sq, pc, func(t Square) {
				want[attackIndex(t, pc.Color())]++
			})
		}
	}
	if want != l.attacks {
		return false
	}
	if len(l.pieceList) != occupied {
		return false
	}
	for _, sq := range l.pieceList {
		if !sq.OnBoard() || l.board[sq] == NoPiece {
			return false
		}
	}
	return true
}
