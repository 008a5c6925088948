package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tylersaunders/lark/internal/board"
)

// Built once; the generator is immutable and shared by every test.
var testGen = New()

func movesByPiece(moves []Move, pt board.PieceType) []Move {
	var out []Move
	for _, m := range moves {
		if m.Piece() == pt {
			out = append(out, m)
		}
	}
	return out
}

func destinations(moves []Move) []board.Square {
	out := make([]board.Square, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.To())
	}
	return out
}

func TestRookMovesBlockedByOwnPieces(t *testing.T) {
	// The rook slides up the a-file until its own king blocks it, and
	// along the first rank until its own knight does. Neither blocker
	// square is a destination.
	pos := board.NewPosition()
	pos.PutPiece(board.Rook, board.White, board.A1)
	pos.PutPiece(board.King, board.White, board.A6)
	pos.PutPiece(board.Knight, board.White, board.C1)
	pos.SideToMove = board.White

	rookMoves := movesByPiece(testGen.GenerateMoves(pos, nil), board.Rook)

	assert.ElementsMatch(t,
		[]board.Square{board.B1, board.A2, board.A3, board.A4, board.A5},
		destinations(rookMoves))
	for _, m := range rookMoves {
		assert.Equal(t, board.A1, m.From())
		assert.False(t, m.IsCapture())
	}
}

func TestQueenMovesEmptyBoard(t *testing.T) {
	// A queen on b2 of an otherwise empty board reaches 23 squares.
	pos := board.NewPosition()
	pos.PutPiece(board.Queen, board.White, board.B2)
	pos.SideToMove = board.White

	moves := testGen.GenerateMoves(pos, nil)
	assert.Len(t, moves, 23)
}

func TestKingMoves(t *testing.T) {
	pos := board.NewPosition()
	pos.PutPiece(board.King, board.White, board.D4)
	pos.SideToMove = board.White

	moves := testGen.GenerateMoves(pos, nil)
	assert.ElementsMatch(t,
		[]board.Square{
			board.C3, board.C4, board.C5,
			board.D3, board.D5,
			board.E3, board.E4, board.E5,
		},
		destinations(moves))
}

func TestKingMovesCorner(t *testing.T) {
	pos := board.NewPosition()
	pos.PutPiece(board.King, board.Black, board.A1)
	pos.SideToMove = board.Black

	moves := testGen.GenerateMoves(pos, nil)
	assert.ElementsMatch(t,
		[]board.Square{board.A2, board.B1, board.B2},
		destinations(moves))
}

func TestKnightMovesCorner(t *testing.T) {
	pos := board.NewPosition()
	pos.PutPiece(board.Knight, board.White, board.A1)
	pos.SideToMove = board.White

	moves := testGen.GenerateMoves(pos, nil)
	assert.ElementsMatch(t,
		[]board.Square{board.B3, board.C2},
		destinations(moves))
}

func TestKnightMovesCenter(t *testing.T) {
	pos := board.NewPosition()
	pos.PutPiece(board.Knight, board.Black, board.D4)
	pos.SideToMove = board.Black

	moves := testGen.GenerateMoves(pos, nil)
	assert.ElementsMatch(t,
		[]board.Square{
			board.B3, board.B5, board.C2, board.C6,
			board.E2, board.E6, board.F3, board.F5,
		},
		destinations(moves))
}

func TestPawnMovesWhite(t *testing.T) {
	pos := board.NewPosition()
	pos.PutPiece(board.Pawn, board.White, board.D2)
	pos.PutPiece(board.Pawn, board.White, board.E4)
	pos.PutPiece(board.Pawn, board.Black, board.D5)
	pos.SideToMove = board.White

	moves := testGen.GenerateMoves(pos, nil)
	assert.ElementsMatch(t,
		[]board.Square{board.D3, board.D4, board.E5, board.D5},
		destinations(moves))

	for _, m := range moves {
		switch {
		case m.To() == board.D4:
			assert.True(t, m.IsDoubleStep(), "d2d4 should be a double step")
		case m.To() == board.D5:
			assert.Equal(t, board.Pawn, m.Captured(), "e4d5 should capture the pawn")
		default:
			assert.False(t, m.IsDoubleStep())
			assert.False(t, m.IsCapture())
		}
	}
}

func TestPawnMovesBlack(t *testing.T) {
	pos := board.NewPosition()
	pos.PutPiece(board.Pawn, board.Black, board.E7)
	pos.PutPiece(board.Pawn, board.Black, board.D5)
	pos.PutPiece(board.Pawn, board.White, board.E4)
	pos.SideToMove = board.Black

	moves := testGen.GenerateMoves(pos, nil)
	assert.ElementsMatch(t,
		[]board.Square{board.E6, board.E5, board.D4, board.E4},
		destinations(moves))
}

func TestPawnDoubleStepBlocked(t *testing.T) {
	// A piece on d3 stops both the single and the double push.
	pos := board.NewPosition()
	pos.PutPiece(board.Pawn, board.White, board.D2)
	pos.PutPiece(board.Knight, board.Black, board.D3)
	pos.SideToMove = board.White

	moves := movesByPiece(testGen.GenerateMoves(pos, nil), board.Pawn)
	assert.Empty(t, moves)

	// A piece on d4 still allows the single push.
	pos = board.NewPosition()
	pos.PutPiece(board.Pawn, board.White, board.D2)
	pos.PutPiece(board.Knight, board.Black, board.D4)
	pos.SideToMove = board.White

	moves = movesByPiece(testGen.GenerateMoves(pos, nil), board.Pawn)
	assert.ElementsMatch(t, []board.Square{board.D3}, destinations(moves))
}

func TestPawnEnPassantCapture(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2")
	require.NoError(t, err)

	moves := movesByPiece(testGen.GenerateMoves(pos, nil), board.Pawn)
	assert.ElementsMatch(t, []board.Square{board.D6, board.E6}, destinations(moves))

	for _, m := range moves {
		if m.To() == board.D6 {
			assert.True(t, m.IsEnPassant())
			// The destination square itself is empty.
			assert.Equal(t, board.NoPieceType, m.Captured())
		} else {
			assert.False(t, m.IsEnPassant())
		}
	}
}

func TestPawnPromotionFanOut(t *testing.T) {
	pos := board.NewPosition()
	pos.PutPiece(board.Pawn, board.White, board.E7)
	pos.PutPiece(board.Rook, board.Black, board.D8)
	pos.SideToMove = board.White

	moves := testGen.GenerateMoves(pos, nil)

	// Four promotions straight ahead plus four capture promotions.
	require.Len(t, moves, 8)

	var promos []board.PieceType
	for _, m := range moves {
		assert.True(t, m.IsPromotion())
		if m.To() == board.D8 {
			assert.Equal(t, board.Rook, m.Captured())
			promos = append(promos, m.Promoted())
		}
	}
	assert.ElementsMatch(t,
		[]board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight},
		promos)
}

func TestPawnOnFinalRankGeneratesNothing(t *testing.T) {
	// Degenerate but accepted input: the pawn has nowhere to push and
	// nothing to capture, and generation must not fall off the board.
	pos := board.NewPosition()
	pos.PutPiece(board.Pawn, board.White, board.E8)
	pos.SideToMove = board.White

	assert.Empty(t, testGen.GenerateMoves(pos, nil))
}

func TestCapturedPieceRecorded(t *testing.T) {
	pos := board.NewPosition()
	pos.PutPiece(board.Rook, board.White, board.A1)
	pos.PutPiece(board.Bishop, board.Black, board.A4)
	pos.SideToMove = board.White

	moves := testGen.GenerateMoves(pos, nil)

	var capture *Move
	for i := range moves {
		if moves[i].To() == board.A4 {
			capture = &moves[i]
		}
		// Nothing beyond the bishop is reachable.
		assert.NotEqual(t, board.A5, moves[i].To())
	}
	require.NotNil(t, capture, "rook should capture on a4")
	assert.Equal(t, board.Bishop, capture.Captured())
}

func TestCastlingBothSides(t *testing.T) {
	pos, err := board.ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	var castles []Move
	for _, m := range testGen.GenerateMoves(pos, nil) {
		if m.IsCastling() {
			castles = append(castles, m)
		}
	}

	assert.ElementsMatch(t, []board.Square{board.G1, board.C1}, destinations(castles))
	for _, m := range castles {
		assert.Equal(t, board.King, m.Piece())
		assert.Equal(t, board.E1, m.From())
	}
}

func TestCastlingBlockedByPieces(t *testing.T) {
	// A bishop on f1 blocks the king side; the queen side stays open.
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/R3KB1R w KQ - 0 1")
	require.NoError(t, err)

	var castles []Move
	for _, m := range testGen.GenerateMoves(pos, nil) {
		if m.IsCastling() {
			castles = append(castles, m)
		}
	}
	assert.ElementsMatch(t, []board.Square{board.C1}, destinations(castles))
}

func TestCastlingThroughAttackedSquare(t *testing.T) {
	// A black rook on f8 covers f1, forbidding the king-side castle. The
	// queen-side transit square d1 is not attacked.
	pos, err := board.ParseFEN("4kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)

	var castles []Move
	for _, m := range testGen.GenerateMoves(pos, nil) {
		if m.IsCastling() {
			castles = append(castles, m)
		}
	}
	assert.ElementsMatch(t, []board.Square{board.C1}, destinations(castles))
}

func TestCastlingRequiresRights(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/R3K2R w - - 0 1")
	require.NoError(t, err)

	for _, m := range testGen.GenerateMoves(pos, nil) {
		assert.False(t, m.IsCastling())
	}
}

func TestCastlingWithoutKing(t *testing.T) {
	// Rights without a king: a degenerate position, generation just
	// produces no castling moves.
	pos := board.NewPosition()
	pos.PutPiece(board.Rook, board.White, board.A1)
	pos.PutPiece(board.Rook, board.White, board.H1)
	pos.CastlingRights = board.WhiteKingSideCastle | board.WhiteQueenSideCastle
	pos.SideToMove = board.White

	for _, m := range testGen.GenerateMoves(pos, nil) {
		assert.False(t, m.IsCastling())
	}
}

func TestBlackCastling(t *testing.T) {
	pos, err := board.ParseFEN("r3k2r/8/8/8/8/8/8/4K3 b kq - 0 1")
	require.NoError(t, err)

	var castles []Move
	for _, m := range testGen.GenerateMoves(pos, nil) {
		if m.IsCastling() {
			castles = append(castles, m)
		}
	}
	assert.ElementsMatch(t, []board.Square{board.G8, board.C8}, destinations(castles))
}

func TestSquareAttacked(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/3r4/8/8/3P4/4K3 w - - 0 1")
	require.NoError(t, err)

	// The black rook on d5 attacks down the d-file until the white pawn.
	assert.True(t, testGen.SquareAttacked(pos, board.D2, board.Black))
	assert.True(t, testGen.SquareAttacked(pos, board.D7, board.Black))
	assert.False(t, testGen.SquareAttacked(pos, board.D1, board.Black), "pawn blocks the file")

	// The white pawn on d2 attacks c3 and e3.
	assert.True(t, testGen.SquareAttacked(pos, board.C3, board.White))
	assert.True(t, testGen.SquareAttacked(pos, board.E3, board.White))
	assert.False(t, testGen.SquareAttacked(pos, board.D3, board.White), "pawns do not attack straight ahead")

	// Kings attack their neighborhood.
	assert.True(t, testGen.SquareAttacked(pos, board.F2, board.White))
	assert.True(t, testGen.SquareAttacked(pos, board.D8, board.Black))
}

// SquareAttacked must agree with the union of every attack set actually
// generated for the attacking side.
func TestSquareAttackedMatchesAttackSets(t *testing.T) {
	pos, err := board.ParseFEN("r1bqk2r/pppp1ppp/2n2n2/2b1p3/2B1P3/2N2N2/PPPP1PPP/R1BQK2R w KQkq - 6 5")
	require.NoError(t, err)

	for _, by := range []board.Color{board.White, board.Black} {
		var attacked board.Bitboard
		occ := pos.AllOccupied

		for pt := board.Pawn; pt <= board.King; pt++ {
			pieces := pos.Pieces[by][pt]
			for pieces != 0 {
				from := pieces.PopLSB()
				switch pt {
				case board.Pawn:
					attacked |= testGen.PawnAttacks(by, from)
				case board.Knight:
					attacked |= testGen.KnightAttacks(from)
				case board.Bishop:
					attacked |= testGen.BishopAttacks(from, occ)
				case board.Rook:
					attacked |= testGen.RookAttacks(from, occ)
				case board.Queen:
					attacked |= testGen.QueenAttacks(from, occ)
				case board.King:
					attacked |= testGen.KingAttacks(from)
				}
			}
		}

		for sq := board.A1; sq <= board.H8; sq++ {
			assert.Equal(t, attacked.IsSet(sq), testGen.SquareAttacked(pos, sq, by),
				"square %s, attacker %s", sq, by)
		}
	}
}

func TestStartingPositionMoveCount(t *testing.T) {
	// Twenty moves from the initial position: sixteen pawn moves and four
	// knight moves.
	pos := board.StartingPosition()
	moves := testGen.GenerateMoves(pos, nil)
	assert.Len(t, moves, 20)
}

func TestGenerateMovesReusesSlice(t *testing.T) {
	pos := board.StartingPosition()

	buf := make([]Move, 0, 64)
	first := testGen.GenerateMoves(pos, buf)
	second := testGen.GenerateMoves(pos, first[:0])

	assert.Equal(t, first, second)
}

func TestNewFromMagicsRejectsBadNumbers(t *testing.T) {
	var zeros [64]uint64
	_, err := NewFromMagics(zeros, DefaultBishopMagics)
	assert.Error(t, err)

	_, err = NewFromMagics(DefaultRookMagics, zeros)
	assert.Error(t, err)
}

func TestNewViaSearchMatchesDefaultTables(t *testing.T) {
	g, err := NewViaSearch(SearchOptions{Seed: 9})
	require.NoError(t, err)

	// Different magic numbers, same attack sets.
	occupancies := []board.Bitboard{
		board.Empty,
		board.SquareBB(board.D4) | board.SquareBB(board.F6),
		board.Rank2 | board.Rank7,
	}
	for _, occ := range occupancies {
		for sq := board.A1; sq <= board.H8; sq++ {
			assert.Equal(t, testGen.RookAttacks(sq, occ), g.RookAttacks(sq, occ))
			assert.Equal(t, testGen.BishopAttacks(sq, occ), g.BishopAttacks(sq, occ))
		}
	}
}
