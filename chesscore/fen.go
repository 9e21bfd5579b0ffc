package chesscore

import (
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// pieceFromChar converts a FEN character to the corresponding Piece constant.
func pieceFromChar(ch byte) Piece {
	var pt PieceType
	switch ch | 0x20 {
	case 'p':
		pt = PieceTypePawn
	case 'n':
		pt = PieceTypeKnight
	case 'b':
		pt = PieceTypeBishop
	case 'r':
		pt = PieceTypeRook
	case 'q':
		pt = PieceTypeQueen
	case 'k':
		pt = PieceTypeKing
	default:
		return NoPiece
	}
	color := White
	if ch >= 'a' {
		color = Black
	}
	return PieceFromType(color, pt)
}

// pieceLetter returns the uppercase letter for a piece type.
func pieceLetter(pt PieceType) byte {
	switch pt {
	case PieceTypePawn:
		return 'P'
	case PieceTypeKnight:
		return 'N'
	case PieceTypeBishop:
		return 'B'
	case PieceTypeRook:
		return 'R'
	case PieceTypeQueen:
		return 'Q'
	case PieceTypeKing:
		return 'K'
	}
	return '?'
}

// charFromPiece converts a Piece to its FEN character representation.
func charFromPiece(p Piece) byte {
	ch := pieceLetter(p.Type())
	if p.Color() == Black {
		ch |= 0x20
	}
	return ch
}

// ParseFEN parses a FEN string and returns a Position set up accordingly.
// The clock and move number fields may be omitted and default to 0 and 1.
// Castling accepts both the standard KQkq letters and Shredder-FEN file
// letters for Chess960 positions.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("invalid FEN: not enough fields: %w", ErrBadInput)
	}

	p := NewPosition()

	// 1. Piece placement
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("invalid FEN: incorrect number of ranks: %w", ErrBadInput)
	}
	var kings [2]int
	var kingSquares [2]Square
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			pc := pieceFromChar(ch)
			if pc == NoPiece {
				return nil, fmt.Errorf("invalid FEN: unrecognized piece character %q: %w", ch, ErrBadInput)
			}
			if file >= 8 {
				return nil, fmt.Errorf("invalid FEN: too many squares in rank: %w", ErrBadInput)
			}
			sq := SquareAt(file, rank)
			p.Set(sq, pc)
			if pc.Type() == PieceTypeKing {
				kings[pc.Color().bit()]++
				kingSquares[pc.Color().bit()] = sq
			}
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("invalid FEN: rank does not have 8 columns: %w", ErrBadInput)
		}
	}
	if kings[0] != 1 || kings[1] != 1 {
		return nil, fmt.Errorf("invalid FEN: expected exactly one king per side: %w", ErrBadInput)
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		p.SetTurn(White)
	case "b":
		p.SetTurn(Black)
	default:
		return nil, fmt.Errorf("invalid FEN: side to move must be 'w' or 'b': %w", ErrBadInput)
	}

	// 3. Castling rights
	castles := NoCastleRights
	if fields[2] != "-" {
		for j := 0; j < len(fields[2]); j++ {
			ch := fields[2][j]
			color := White
			if ch >= 'a' {
				color = Black
			}
			kingFile := kingSquares[color.bit()].File()
			homeRank := 0
			if color == Black {
				homeRank = 7
			}
			switch {
			case ch == 'K' || ch == 'k':
				file, ok := p.outermostRook(color, homeRank, kingFile, true)
				if !ok {
					return nil, fmt.Errorf("invalid FEN: no kingside rook for %q: %w", ch, ErrBadInput)
				}
				castles.Set(color, true, file)
			case ch == 'Q' || ch == 'q':
				file, ok := p.outermostRook(color, homeRank, kingFile, false)
				if !ok {
					return nil, fmt.Errorf("invalid FEN: no queenside rook for %q: %w", ch, ErrBadInput)
				}
				castles.Set(color, false, file)
			case (ch >= 'A' && ch <= 'H') || (ch >= 'a' && ch <= 'h'):
				file := int(ch|0x20) - 'a'
				castles.Set(color, file > kingFile, file)
			default:
				return nil, fmt.Errorf("invalid FEN: invalid castling rights character %q: %w", ch, ErrBadInput)
			}
		}
	}
	p.cur().castles = castles

	// 4. En passant target square
	if fields[3] != "-" {
		ep, err := SquareFromAlgebraic(fields[3])
		if err != nil {
			return nil, fmt.Errorf("invalid FEN: en passant square: %w", ErrBadInput)
		}
		if r := ep.Rank(); r != 2 && r != 5 {
			return nil, fmt.Errorf("invalid FEN: en passant square on impossible rank: %w", ErrBadInput)
		}
		p.cur().ep = ep
	}

	// 5. Halfmove clock
	if len(fields) > 4 {
		clock, err := strconv.Atoi(fields[4])
		if err != nil || clock < 0 {
			return nil, fmt.Errorf("invalid FEN: halfmove clock is not a number: %w", ErrBadInput)
		}
		p.cur().clock = clock
	}

	// 6. Fullmove number
	if len(fields) > 5 {
		moveNum, err := strconv.Atoi(fields[5])
		if err != nil || moveNum < 1 {
			return nil, fmt.Errorf("invalid FEN: fullmove number is not a number: %w", ErrBadInput)
		}
		p.cur().moveNum = moveNum
	}

	// Record the position once and settle the initial status, so a dead or
	// already-decided position reports it straight after loading.
	seen := p.putHash(p.hashKey())
	p.classify(p.cur().turn.Other(), seen)
	return p, nil
}

// outermostRook finds the rook file backing a standard castling letter: the
// outermost rook of the color on its back rank beyond the king.
func (p *Position) outermostRook(c Color, rank, kingFile int, kingside bool) (int, bool) {
	rook := PieceFromType(c, PieceTypeRook)
	if kingside {
		for file := 7; file > kingFile; file-- {
			if p.cur().board[SquareAt(file, rank)]&^MovedFlag == rook {
				return file, true
			}
		}
	} else {
		for file := 0; file < kingFile; file++ {
			if p.cur().board[SquareAt(file, rank)]&^MovedFlag == rook {
				return file, true
			}
		}
	}
	return 0, false
}

// writePlacement appends the FEN piece placement field.
func (p *Position) writePlacement(sb *strings.Builder) {
	l := p.cur()
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := l.board[SquareAt(file, rank)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(charFromPiece(pc))
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// writeCastles appends the FEN castling field, preferring the standard KQkq
// letters and falling back to Shredder file letters when a tracked rook sits
// on a non-standard file.
func (p *Position) writeCastles(sb *strings.Builder) {
	l := p.cur()
	if !l.castles.Any() {
		sb.WriteByte('-')
		return
	}
	emit := func(c Color, kingside bool, std int, letter byte) {
		file, ok := l.castles.File(c, kingside)
		if !ok {
			return
		}
		if file == std {
			sb.WriteByte(letter)
			return
		}
		ch := byte('A' + file)
		if c == Black {
			ch |= 0x20
		}
		sb.WriteByte(ch)
	}
	emit(White, true, 7, 'K')
	emit(White, false, 0, 'Q')
	emit(Black, true, 7, 'k')
	emit(Black, false, 0, 'q')
}

// ToFEN produces the FEN string representation of the position.
func (p *Position) ToFEN() string {
	l := p.cur()
	var sb strings.Builder
	p.writePlacement(&sb)
	sb.WriteByte(' ')
	if l.turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	p.writeCastles(&sb)
	sb.WriteByte(' ')
	if l.ep.OnBoard() {
		sb.WriteString(l.ep.String())
	} else {
		sb.WriteByte('-')
	}
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(l.clock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(l.moveNum))
	return sb.String()
}
