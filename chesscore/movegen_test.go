package chesscore_test

import (
	"testing"

	"chess-rules/chesscore"
)

func findMove(t *testing.T, p *chesscore.Position, from, to chesscore.Square) (chesscore.Move, bool) {
	t.Helper()
	for _, m := range p.GenerateLegalMoves() {
		if m.From == from && m.To == to {
			return m, true
		}
	}
	return chesscore.Move{}, false
}

func TestStartPositionMoveCount(t *testing.T) {
	p := chesscore.ParseFen(chesscore.FENStartPos)
	moves := p.GenerateLegalMoves()
	if len(moves) != 20 {
		t.Fatalf("start position: got %d moves want 20", len(moves))
	}
}

func TestPromotionExpansion(t *testing.T) {
	p := chesscore.ParseFen("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	a7 := chesscore.SquareAt(0, 6)
	a8 := chesscore.SquareAt(0, 7)
	var promos []chesscore.PieceType
	for _, m := range p.GenerateLegalMoves() {
		if m.From == a7 && m.To == a8 {
			promos = append(promos, m.Promote)
		}
	}
	want := []chesscore.PieceType{
		chesscore.PieceTypeQueen,
		chesscore.PieceTypeRook,
		chesscore.PieceTypeKnight,
		chesscore.PieceTypeBishop,
	}
	if len(promos) != 4 {
		t.Fatalf("promotion must expand to 4 moves, got %d", len(promos))
	}
	for i := range want {
		if promos[i] != want[i] {
			t.Fatalf("promotion order mismatch at %d: got %v want %v", i, promos[i], want[i])
		}
	}
}

func TestPawnDoubleStepOnlyFromStartRank(t *testing.T) {
	p := chesscore.ParseFen("4k3/8/8/8/8/4P3/8/4K3 w - - 0 1")
	e3 := chesscore.SquareAt(4, 2)
	e5 := chesscore.SquareAt(4, 4)
	if _, ok := findMove(t, p, e3, e5); ok {
		t.Fatalf("pawn on e3 must not double step")
	}
}

func TestCastlingLegality(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		legal bool
	}{
		{"free path", "4k3/8/8/8/8/8/8/4K2R w K - 0 1", true},
		{"through attacked square", "4k3/8/8/5r2/8/8/8/4K2R w K - 0 1", false},
		{"into attacked square", "4k3/8/8/6r1/8/8/8/4K2R w K - 0 1", false},
		{"out of check", "4k3/8/4r3/8/8/8/8/4K2R w K - 0 1", false},
		{"blocked path", "4k3/8/8/8/8/8/8/4KN1R w K - 0 1", false},
		{"no rights", "4k3/8/8/8/8/8/8/4K2R w - - 0 1", false},
	}
	for _, tc := range cases {
		p := chesscore.ParseFen(tc.fen)
		var castle *chesscore.Move
		for _, m := range p.GenerateLegalMoves() {
			if m.IsCastle() {
				m := m
				castle = &m
			}
		}
		if tc.legal && castle == nil {
			t.Fatalf("%s: expected castle to be legal", tc.name)
		}
		if !tc.legal && castle != nil {
			t.Fatalf("%s: castle %s should be illegal", tc.name, castle)
		}
	}
}

func TestEnPassantGeneration(t *testing.T) {
	// Without the en-passant field the capture must not exist.
	p := chesscore.ParseFen("8/8/8/2k5/3Pp3/8/8/4K3 b - - 0 1")
	e4 := chesscore.SquareAt(4, 3)
	d3 := chesscore.SquareAt(3, 2)
	if _, ok := findMove(t, p, e4, d3); ok {
		t.Fatalf("en passant offered without a target square")
	}

	// With the target set the capture exists and removes the d4 pawn.
	p = chesscore.ParseFen("8/8/8/2k5/3Pp3/8/8/4K3 b - d3 0 1")
	m, ok := findMove(t, p, e4, d3)
	if !ok {
		t.Fatalf("expected exd3 en passant")
	}
	if !m.IsCapture() || m.CaptureCoord != chesscore.SquareAt(3, 3) {
		t.Fatalf("en passant must capture the pawn on d4, got %+v", m)
	}
	p.MakeMove(m)
	if p.PieceAt(chesscore.SquareAt(3, 3)) != chesscore.NoPiece {
		t.Fatalf("captured pawn still on d4")
	}
}

func TestEnPassantPinRejected(t *testing.T) {
	// Capturing en passant would clear the fourth rank and expose the black
	// king on a4 to the rook on h4.
	p := chesscore.ParseFen("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	e4 := chesscore.SquareAt(4, 3)
	d3 := chesscore.SquareAt(3, 2)
	if _, ok := findMove(t, p, e4, d3); ok {
		t.Fatalf("pinned en passant capture must be rejected")
	}
}

func TestPinnedPieceMovesFiltered(t *testing.T) {
	// The d2 knight is pinned against the king by the d8 rook.
	p := chesscore.ParseFen("3r3k/8/8/8/8/8/3N4/3K4 w - - 0 1")
	d2 := chesscore.SquareAt(3, 1)
	for _, m := range p.GenerateLegalMoves() {
		if m.From == d2 {
			t.Fatalf("pinned knight must have no moves, found %s", m)
		}
	}
}

func TestGeneratedMovesNeverLeaveKingInCheck(t *testing.T) {
	fens := []string{
		chesscore.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
	}
	for _, fen := range fens {
		p := chesscore.ParseFen(fen)
		mover := p.Turn()
		for _, m := range p.GenerateLegalMoves() {
			applied := p.MakeMove(m)
			if p.InCheck(mover) {
				t.Fatalf("%s in %s leaves own king attacked", m, fen)
			}
			p.UnmakeMove(applied)
		}
	}
}
