package chesscore

// Startpos constant.
const Startpos = FENStartPos

// ParseFen is a FEN parser that panics on invalid input, for fixtures and
// drivers that only ever feed known-good strings.
func ParseFen(fen string) *Position {
	p, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return p
}

// Apply plays a move and returns an undo closure.
func (p *Position) Apply(m Move) func() {
	applied := p.MakeMove(m)
	return func() { p.UnmakeMove(applied) }
}
