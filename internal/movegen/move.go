package movegen

import (
	"fmt"

	"github.com/tylersaunders/lark/internal/board"
)

// Move packs everything about a single pseudo-legal move into one integer,
// starting from the least significant bit:
//
//	Field       Bits   Shift
//	piece       3      0
//	from        6      3
//	to          6      9
//	captured    3      15
//	promoted    3      18
//	en passant  1      21
//	double step 1      22
//	castling    1      23
//	sort score  32     24
//
// The three-bit piece fields hold a board.PieceType; board.NoPieceType marks
// "no capture" and "no promotion". The sort score is mutable scratch space for
// move ordering and takes no part in equality of the move proper.
type Move uint64

const (
	shiftPiece      = 0
	shiftFrom       = 3
	shiftTo         = 9
	shiftCaptured   = 15
	shiftPromoted   = 18
	shiftEnPassant  = 21
	shiftDoubleStep = 22
	shiftCastling   = 23
	shiftSortScore  = 24

	maskPiece  = 0x7
	maskSquare = 0x3F
	maskFlag   = 0x1
	maskScore  = 0xFFFFFFFF
)

// NewMove builds a move from its parts. Captured and promoted take
// board.NoPieceType when the move is not a capture or a promotion.
func NewMove(piece board.PieceType, from, to board.Square, captured, promoted board.PieceType, enPassant, doubleStep, castling bool) Move {
	m := Move(piece)<<shiftPiece |
		Move(from)<<shiftFrom |
		Move(to)<<shiftTo |
		Move(captured)<<shiftCaptured |
		Move(promoted)<<shiftPromoted
	if enPassant {
		m |= 1 << shiftEnPassant
	}
	if doubleStep {
		m |= 1 << shiftDoubleStep
	}
	if castling {
		m |= 1 << shiftCastling
	}
	return m
}

// Piece returns the moving piece type.
func (m Move) Piece() board.PieceType {
	return board.PieceType(m >> shiftPiece & maskPiece)
}

// From returns the origin square.
func (m Move) From() board.Square {
	return board.Square(m >> shiftFrom & maskSquare)
}

// To returns the destination square.
func (m Move) To() board.Square {
	return board.Square(m >> shiftTo & maskSquare)
}

// Captured returns the captured piece type, or board.NoPieceType.
func (m Move) Captured() board.PieceType {
	return board.PieceType(m >> shiftCaptured & maskPiece)
}

// Promoted returns the promotion piece type, or board.NoPieceType.
func (m Move) Promoted() board.PieceType {
	return board.PieceType(m >> shiftPromoted & maskPiece)
}

// IsEnPassant reports whether the move is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m>>shiftEnPassant&maskFlag != 0
}

// IsDoubleStep reports whether the move is a pawn double step.
func (m Move) IsDoubleStep() bool {
	return m>>shiftDoubleStep&maskFlag != 0
}

// IsCastling reports whether the move is a castling move.
func (m Move) IsCastling() bool {
	return m>>shiftCastling&maskFlag != 0
}

// IsCapture reports whether the move captures a piece. En passant captures
// carry the en passant flag instead: the destination square is empty.
func (m Move) IsCapture() bool {
	return m.Captured() != board.NoPieceType
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Promoted() != board.NoPieceType
}

// SortScore returns the move ordering score.
func (m Move) SortScore() uint32 {
	return uint32(m >> shiftSortScore & maskScore)
}

// WithSortScore returns the move with its sort score replaced.
func (m Move) WithSortScore(score uint32) Move {
	cleared := m &^ (maskScore << shiftSortScore)
	return cleared | Move(score)<<shiftSortScore
}

// String renders the move as piece character plus origin and destination,
// with the promotion piece appended when present, e.g. "pe7e8=q".
func (m Move) String() string {
	s := fmt.Sprintf("%c%s%s", m.Piece().Char(), m.From(), m.To())
	if m.IsPromotion() {
		s += fmt.Sprintf("=%c", m.Promoted().Char())
	}
	return s
}
