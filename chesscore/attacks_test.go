package chesscore_test

import (
	"sort"
	"testing"

	"chess-rules/chesscore"
	"chess-rules/internal/testutil"
)

// helper: black king in the a8 corner, white king on e1, the rest of the board free
func emptyBoard(t *testing.T) *chesscore.Position {
	t.Helper()
	p, err := chesscore.ParseFEN("k7/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	return p
}

func TestIsAttackedRookFiles(t *testing.T) {
	p := emptyBoard(t)
	e1 := chesscore.SquareAt(4, 0)
	e8 := chesscore.SquareAt(4, 7)
	p.Set(e8, chesscore.BlackRook)
	if !p.InCheck(chesscore.White) {
		t.Fatalf("expected White in check from rook on file")
	}
	if !p.IsAttacked(e1, chesscore.Black) {
		t.Fatalf("expected e1 attacked by Black")
	}
	// Add a blocker at e3 (white pawn)
	e3 := chesscore.SquareAt(4, 2)
	p.Set(e3, chesscore.WhitePawn)
	if p.IsAttacked(e1, chesscore.Black) {
		t.Fatalf("did not expect e1 attacked after blocker added")
	}
	if !p.IsAttacked(e3, chesscore.Black) {
		t.Fatalf("the blocker itself terminates the ray and is attacked")
	}
	// Removing the blocker reopens the ray.
	p.Clear(e3)
	if !p.IsAttacked(e1, chesscore.Black) {
		t.Fatalf("expected e1 attacked again after blocker removed")
	}
	if !p.Validate() {
		t.Fatalf("attack table inconsistent after edits")
	}
}

func TestIsAttackedBishopDiagonals(t *testing.T) {
	p := emptyBoard(t)
	e1 := chesscore.SquareAt(4, 0)
	b4 := chesscore.SquareAt(1, 3)
	p.Set(b4, chesscore.BlackBishop)
	if !p.IsAttacked(e1, chesscore.Black) {
		t.Fatalf("expected e1 attacked along b4-c3-d2-e1")
	}
	c3 := chesscore.SquareAt(2, 2)
	p.Set(c3, chesscore.BlackKnight)
	if p.IsAttacked(e1, chesscore.Black) {
		t.Fatalf("diagonal should be blocked at c3")
	}
	if !p.Validate() {
		t.Fatalf("attack table inconsistent after edits")
	}
}

func TestIsAttackedPawnDirection(t *testing.T) {
	p := emptyBoard(t)
	d4 := chesscore.SquareAt(3, 3)
	p.Set(d4, chesscore.WhitePawn)
	for _, sq := range []chesscore.Square{chesscore.SquareAt(2, 4), chesscore.SquareAt(4, 4)} {
		if !p.IsAttacked(sq, chesscore.White) {
			t.Fatalf("white pawn on d4 must attack %s", sq)
		}
	}
	for _, sq := range []chesscore.Square{chesscore.SquareAt(2, 2), chesscore.SquareAt(4, 2), chesscore.SquareAt(3, 4)} {
		if p.IsAttacked(sq, chesscore.White) {
			t.Fatalf("white pawn on d4 must not attack %s", sq)
		}
	}
}

// The incremental table must stay exact through arbitrary piece traffic. Each
// position is checked against the full recomputation in Validate.
func TestAttackTableConsistency(t *testing.T) {
	fens := []string{
		chesscore.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp2ppp/8/3pp3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq d6 0 3",
	}
	for _, fen := range fens {
		p, err := chesscore.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if !p.Validate() {
			t.Fatalf("inconsistent after load: %s", fen)
		}
		for _, m := range p.GenerateLegalMoves() {
			applied := p.MakeMove(m)
			if !p.Validate() {
				t.Fatalf("inconsistent after %s in %s", m, fen)
			}
			p.UnmakeMove(applied)
		}
		if !p.Validate() {
			t.Fatalf("inconsistent after unmake sweep: %s", fen)
		}
	}
}

func sortedMoveStrings(moves []chesscore.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}

// Adding and then removing the same piece on a free square must leave the
// generated move set unchanged.
func TestMoveSetInvariantUnderSetClear(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	base, err := chesscore.ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	edited, err := chesscore.ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	free := chesscore.SquareAt(0, 4) // a5
	edited.Set(free, chesscore.BlackQueen)
	edited.Clear(free)
	if !edited.Validate() {
		t.Fatalf("attack table inconsistent after set/clear")
	}
	testutil.AssertEqual(t, sortedMoveStrings(edited.GenerateLegalMoves()), sortedMoveStrings(base.GenerateLegalMoves()))
}
