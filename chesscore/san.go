package chesscore

import (
	"fmt"
	"strings"
)

// SAN renders a legal move of the current position in Standard Algebraic
// Notation, with the shortest departure coordinates that keep it unambiguous
// among the legal moves.
func (p *Position) SAN(m Move) string {
	var sb strings.Builder
	if m.IsCastle() {
		if m.Kingside() {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		pt := m.What.Type()
		if pt != PieceTypePawn {
			sb.WriteByte(pieceLetter(pt))
			sb.WriteString(p.disambiguation(m))
		}
		if m.IsCapture() {
			if pt == PieceTypePawn {
				sb.WriteByte('a' + byte(m.From.File()))
			}
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		if m.Promote != PieceTypeNone {
			sb.WriteByte('=')
			sb.WriteByte(pieceLetter(m.Promote))
		}
	}

	applied := p.MakeMove(m)
	if p.Status() == Checkmate {
		sb.WriteByte('#')
	} else if p.kingInDanger(p.Turn()) {
		sb.WriteByte('+')
	}
	p.UnmakeMove(applied)

	return sb.String()
}

// disambiguation picks the departure coordinates for a piece move: nothing if
// no same-type twin targets the same square, else the file, else the rank,
// else the full origin square when twins share both.
func (p *Position) disambiguation(m Move) string {
	sameFile, sameRank, twins := false, false, false
	for _, o := range p.legalMoves(m.What.Color()) {
		if o.From == m.From || o.To != m.To || o.What.Type() != m.What.Type() {
			continue
		}
		twins = true
		if o.From.File() == m.From.File() {
			sameFile = true
		}
		if o.From.Rank() == m.From.Rank() {
			sameRank = true
		}
	}
	switch {
	case !twins:
		return ""
	case sameFile && sameRank:
		return m.From.String()
	case sameFile:
		return string([]byte{'1' + byte(m.From.Rank())})
	default:
		return string([]byte{'a' + byte(m.From.File())})
	}
}

// sanSuffixes are trailing tokens stripped before parsing: annotations,
// en-passant markers and game results.
var sanSuffixes = []string{"e.p.", "ep", "1-0", "0-1", "1/2-1/2", "½-½"}

func stripSANSuffixes(san string) string {
	s := strings.TrimSpace(san)
	for {
		trimmed := strings.TrimRight(s, " \t!?+#")
		for _, suf := range sanSuffixes {
			trimmed = strings.TrimSuffix(trimmed, suf)
		}
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}

// sanPattern is the feature set extracted from a SAN string, matched against
// the legal move list.
type sanPattern struct {
	piece    PieceType
	fromFile int // -1 if absent
	fromRank int // -1 if absent
	capture  bool
	to       Square
	promote  PieceType
	castle   bool
	kingside bool
}

func parseSANPattern(san string) (sanPattern, error) {
	pat := sanPattern{fromFile: -1, fromRank: -1, piece: PieceTypePawn}
	s := stripSANSuffixes(san)
	if s == "" {
		return pat, fmt.Errorf("empty move text: %w", ErrBadInput)
	}

	switch s {
	case "O-O", "0-0":
		pat.castle, pat.kingside = true, true
		return pat, nil
	case "O-O-O", "0-0-0":
		pat.castle = true
		return pat, nil
	}

	if i := strings.IndexByte(s, '='); i >= 0 {
		if i+2 != len(s) {
			return pat, fmt.Errorf("bad promotion in %q: %w", san, ErrBadInput)
		}
		switch s[i+1] | 0x20 {
		case 'q':
			pat.promote = PieceTypeQueen
		case 'r':
			pat.promote = PieceTypeRook
		case 'n':
			pat.promote = PieceTypeKnight
		case 'b':
			pat.promote = PieceTypeBishop
		default:
			return pat, fmt.Errorf("unknown promotion piece in %q: %w", san, ErrBadInput)
		}
		s = s[:i]
	}

	if len(s) < 2 {
		return pat, fmt.Errorf("bad move text %q: %w", san, ErrBadInput)
	}
	to, err := SquareFromAlgebraic(s[len(s)-2:])
	if err != nil {
		return pat, fmt.Errorf("bad destination in %q: %w", san, ErrBadInput)
	}
	pat.to = to
	s = s[:len(s)-2]

	if len(s) > 0 {
		switch s[0] {
		case 'N':
			pat.piece = PieceTypeKnight
			s = s[1:]
		case 'B':
			pat.piece = PieceTypeBishop
			s = s[1:]
		case 'R':
			pat.piece = PieceTypeRook
			s = s[1:]
		case 'Q':
			pat.piece = PieceTypeQueen
			s = s[1:]
		case 'K':
			pat.piece = PieceTypeKing
			s = s[1:]
		}
	}
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case ch >= 'a' && ch <= 'h':
			pat.fromFile = int(ch - 'a')
		case ch >= '1' && ch <= '8':
			pat.fromRank = int(ch - '1')
		case ch == 'x':
			pat.capture = true
		default:
			return pat, fmt.Errorf("bad move text %q: %w", san, ErrBadInput)
		}
	}
	return pat, nil
}

func (pat sanPattern) matches(m Move) bool {
	if pat.castle {
		return m.IsCastle() && m.Kingside() == pat.kingside
	}
	if m.IsCastle() {
		return false
	}
	if m.To != pat.to || m.What.Type() != pat.piece {
		return false
	}
	if pat.fromFile >= 0 && m.From.File() != pat.fromFile {
		return false
	}
	if pat.fromRank >= 0 && m.From.Rank() != pat.fromRank {
		return false
	}
	if m.IsCapture() != pat.capture {
		return false
	}
	if pat.promote != PieceTypeNone && m.Promote != pat.promote {
		return false
	}
	return true
}

// ParseSAN resolves a SAN string against the legal moves of the current
// position. Annotation suffixes are stripped; 0-0 castle forms are accepted.
// Fails with ErrBadMove when nothing matches, ErrNeedsPromotion when the only
// ambiguity is the promotion piece, and ErrAmbiguousMove otherwise.
func (p *Position) ParseSAN(san string) (Move, error) {
	pat, err := parseSANPattern(san)
	if err != nil {
		return Move{}, err
	}
	var matches []Move
	for _, m := range p.legalMoves(p.cur().turn) {
		if pat.matches(m) {
			matches = append(matches, m)
		}
	}
	return selectMatch(matches, san)
}

// FindMove selects a legal move by origin, destination and optional promotion
// piece, the object and UCI submission form. The NeedsPromotion rule is the
// same as for SAN.
func (p *Position) FindMove(from, to Square, promote PieceType) (Move, error) {
	var matches []Move
	for _, m := range p.legalMoves(p.cur().turn) {
		if m.From != from || m.To != to {
			continue
		}
		if promote != PieceTypeNone && m.Promote != promote {
			continue
		}
		matches = append(matches, m)
	}
	return selectMatch(matches, from.String()+to.String())
}

// selectMatch reduces a candidate list to one move or the appropriate error.
func selectMatch(matches []Move, text string) (Move, error) {
	switch len(matches) {
	case 0:
		return Move{}, fmt.Errorf("%q: %w", text, ErrBadMove)
	case 1:
		return matches[0], nil
	}
	promotionOnly := true
	for _, m := range matches[1:] {
		if m.From != matches[0].From || m.To != matches[0].To || m.Promote == PieceTypeNone {
			promotionOnly = false
			break
		}
	}
	if promotionOnly && matches[0].Promote != PieceTypeNone {
		return Move{}, fmt.Errorf("%q: %w", text, ErrNeedsPromotion)
	}
	return Move{}, fmt.Errorf("%q: %w", text, ErrAmbiguousMove)
}

// ParseUCI resolves a UCI move string ("e2e4", "e7e8q") against the legal
// move list.
func (p *Position) ParseUCI(move string) (Move, error) {
	from, to, promote, err := splitUCI(move)
	if err != nil {
		return Move{}, err
	}
	return p.FindMove(from, to, promote)
}

func splitUCI(move string) (from, to Square, promote PieceType, err error) {
	s := strings.TrimSpace(move)
	if len(s) < 4 || len(s) > 5 {
		return 0, 0, 0, fmt.Errorf("invalid move %q: %w", move, ErrBadInput)
	}
	if from, err = SquareFromAlgebraic(s[0:2]); err != nil {
		return 0, 0, 0, err
	}
	if to, err = SquareFromAlgebraic(s[2:4]); err != nil {
		return 0, 0, 0, err
	}
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			promote = PieceTypeQueen
		case 'r':
			promote = PieceTypeRook
		case 'n':
			promote = PieceTypeKnight
		case 'b':
			promote = PieceTypeBishop
		default:
			return 0, 0, 0, fmt.Errorf("invalid promotion piece in %q: %w", move, ErrBadInput)
		}
	}
	return from, to, promote, nil
}

// PlaySAN parses and applies a SAN move, returning the applied move for a
// later UnmakeMove. Fails with ErrGameOver if the game has ended.
func (p *Position) PlaySAN(san string) (Move, error) {
	if p.Status().GameOver() {
		return Move{}, fmt.Errorf("%q: %w", san, ErrGameOver)
	}
	m, err := p.ParseSAN(san)
	if err != nil {
		return Move{}, err
	}
	return p.MakeMove(m), nil
}

// PlayUCI parses and applies a UCI move. Fails with ErrGameOver if the game
// has ended.
func (p *Position) PlayUCI(move string) (Move, error) {
	if p.Status().GameOver() {
		return Move{}, fmt.Errorf("%q: %w", move, ErrGameOver)
	}
	m, err := p.ParseUCI(move)
	if err != nil {
		return Move{}, err
	}
	return p.MakeMove(m), nil
}
