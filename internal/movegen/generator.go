// Package movegen generates pseudo-legal chess moves from bitboards.
//
// Slider attacks are answered by precomputed perfect-hash tables indexed
// with magic numbers; king, knight and pawn attacks come from plain lookup
// tables. Generated moves may leave the mover's own king in check: filtering
// those out is the caller's job.
package movegen

import (
	"fmt"

	"github.com/tylersaunders/lark/internal/board"
	"golang.org/x/sync/errgroup"
)

// promotionPieces is the fan-out for a pawn reaching the final rank.
var promotionPieces = [4]board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight}

// Generator holds the attack tables for every piece type. It is immutable
// after construction and safe for concurrent use.
type Generator struct {
	king   [64]board.Bitboard
	knight [64]board.Bitboard
	pawns  [2][64]board.Bitboard

	rook         []board.Bitboard
	bishop       []board.Bitboard
	rookMagics   [64]Magic
	bishopMagics [64]Magic
}

// New constructs a Generator from the baked-in default magic numbers.
// Those numbers are known to be valid, so construction cannot fail.
func New() *Generator {
	g, err := NewFromMagics(DefaultRookMagics, DefaultBishopMagics)
	if err != nil {
		panic(fmt.Sprintf("default magic numbers rejected: %v", err))
	}
	return g
}

// NewFromMagics constructs a Generator from caller-supplied magic numbers,
// one per square for each slider. It returns an error if any number fails
// to hash its square's blocker boards perfectly.
func NewFromMagics(rookNumbers, bishopNumbers [64]uint64) (*Generator, error) {
	g := &Generator{}
	g.initKing()
	g.initKnight()
	g.initPawns()

	var err error
	if g.rook, g.rookMagics, err = buildSliderTable(board.Rook, rookNumbers); err != nil {
		return nil, err
	}
	if g.bishop, g.bishopMagics, err = buildSliderTable(board.Bishop, bishopNumbers); err != nil {
		return nil, err
	}
	return g, nil
}

// NewViaSearch constructs a Generator by searching for fresh magic numbers.
// This is slow compared to NewFromMagics but needs no precomputed input.
// The rook and bishop searches run concurrently. The numbers it found are
// afterwards available through MagicNumbers.
func NewViaSearch(opts SearchOptions) (*Generator, error) {
	g := &Generator{}
	g.initKing()
	g.initKnight()
	g.initPawns()

	var eg errgroup.Group
	eg.Go(func() error {
		var err error
		g.rook, g.rookMagics, _, err = searchSliderTable(board.Rook, opts)
		return err
	})
	eg.Go(func() error {
		var err error
		g.bishop, g.bishopMagics, _, err = searchSliderTable(board.Bishop, opts)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return g, nil
}

// MagicNumbers returns the magic numbers the generator was built with.
func (g *Generator) MagicNumbers() (rook, bishop [64]uint64) {
	for sq := 0; sq < 64; sq++ {
		rook[sq] = g.rookMagics[sq].Number
		bishop[sq] = g.bishopMagics[sq].Number
	}
	return rook, bishop
}

func (g *Generator) initKing() {
	for sq := board.A1; sq <= board.H8; sq++ {
		b := board.SquareBB(sq)
		g.king[sq] = b.NorthWest() | b.North() | b.NorthEast() |
			b.West() | b.East() |
			b.SouthWest() | b.South() | b.SouthEast()
	}
}

func (g *Generator) initKnight() {
	for sq := board.A1; sq <= board.H8; sq++ {
		b := board.SquareBB(sq)
		g.knight[sq] = (b << 15 & board.NotFileH) | // north-north-west
			(b << 17 & board.NotFileA) | // north-north-east
			(b << 6 & board.NotFileGH) | // north-west-west
			(b << 10 & board.NotFileAB) | // north-east-east
			(b >> 10 & board.NotFileGH) | // south-west-west
			(b >> 6 & board.NotFileAB) | // south-east-east
			(b >> 17 & board.NotFileH) | // south-south-west
			(b >> 15 & board.NotFileA) // south-south-east
	}
}

func (g *Generator) initPawns() {
	for sq := board.A1; sq <= board.H8; sq++ {
		b := board.SquareBB(sq)
		g.pawns[board.White][sq] = b.NorthWest() | b.NorthEast()
		g.pawns[board.Black][sq] = b.SouthWest() | b.SouthEast()
	}
}

// KingAttacks returns the squares a king on sq attacks.
func (g *Generator) KingAttacks(sq board.Square) board.Bitboard {
	return g.king[sq]
}

// KnightAttacks returns the squares a knight on sq attacks.
func (g *Generator) KnightAttacks(sq board.Square) board.Bitboard {
	return g.knight[sq]
}

// PawnAttacks returns the squares a pawn of the given color on sq attacks.
// Attacks only: pushes are not included.
func (g *Generator) PawnAttacks(c board.Color, sq board.Square) board.Bitboard {
	return g.pawns[c][sq]
}

// RookAttacks returns the squares a rook on sq attacks given the full board
// occupancy.
func (g *Generator) RookAttacks(sq board.Square, occupancy board.Bitboard) board.Bitboard {
	return g.rook[g.rookMagics[sq].Index(occupancy)]
}

// BishopAttacks returns the squares a bishop on sq attacks given the full
// board occupancy.
func (g *Generator) BishopAttacks(sq board.Square, occupancy board.Bitboard) board.Bitboard {
	return g.bishop[g.bishopMagics[sq].Index(occupancy)]
}

// QueenAttacks returns the squares a queen on sq attacks given the full
// board occupancy.
func (g *Generator) QueenAttacks(sq board.Square, occupancy board.Bitboard) board.Bitboard {
	return g.RookAttacks(sq, occupancy) | g.BishopAttacks(sq, occupancy)
}

// GenerateMoves appends all pseudo-legal moves for the side to move to moves
// and returns the extended slice. Callers can reuse a slice across calls
// with moves[:0].
func (g *Generator) GenerateMoves(pos *board.Position, moves []Move) []Move {
	moves = g.piece(pos, board.King, moves)
	moves = g.piece(pos, board.Queen, moves)
	moves = g.piece(pos, board.Rook, moves)
	moves = g.piece(pos, board.Bishop, moves)
	moves = g.piece(pos, board.Knight, moves)
	moves = g.pawnMoves(pos, moves)
	moves = g.castling(pos, moves)
	return moves
}

// piece generates moves for every piece of the given type belonging to the
// side to move. Pawns have their own generator.
func (g *Generator) piece(pos *board.Position, pt board.PieceType, moves []Move) []Move {
	us := pos.SideToMove
	own := pos.Occupied[us]

	pieces := pos.Pieces[us][pt]
	for pieces != 0 {
		from := pieces.PopLSB()

		var targets board.Bitboard
		switch pt {
		case board.King:
			targets = g.king[from]
		case board.Knight:
			targets = g.knight[from]
		case board.Rook:
			targets = g.RookAttacks(from, pos.AllOccupied)
		case board.Bishop:
			targets = g.BishopAttacks(from, pos.AllOccupied)
		case board.Queen:
			targets = g.QueenAttacks(from, pos.AllOccupied)
		default:
			panic(fmt.Sprintf("piece generator cannot handle %v", pt))
		}

		moves = g.addMoves(pos, pt, from, targets&^own, moves)
	}
	return moves
}

// pawnMoves generates pushes, double steps, captures and en passant
// captures for every pawn of the side to move.
func (g *Generator) pawnMoves(pos *board.Position, moves []Move) []Move {
	us := pos.SideToMove
	them := us.Other()
	empty := ^pos.AllOccupied

	// The double-step landing rank.
	fourth := board.Rank4
	if us == board.Black {
		fourth = board.Rank5
	}

	pawns := pos.Pieces[us][board.Pawn]
	for pawns != 0 {
		from := pawns.PopLSB()
		b := board.SquareBB(from)

		var oneStep, twoStep board.Bitboard
		if us == board.White {
			oneStep = b.North() & empty
			twoStep = oneStep.North() & empty & fourth
		} else {
			oneStep = b.South() & empty
			twoStep = oneStep.South() & empty & fourth
		}

		targets := g.pawns[us][from]
		captures := targets & pos.Occupied[them]

		var epCapture board.Bitboard
		if pos.EnPassant != board.NoSquare {
			epCapture = targets & board.SquareBB(pos.EnPassant)
		}

		moves = g.addMoves(pos, board.Pawn, from, oneStep|twoStep|captures|epCapture, moves)
	}
	return moves
}

// castling generates castling moves for the side to move. Only the rights,
// the emptiness of the squares between king and rook, and attacks on the
// king's start and transit squares are checked; whether the landing square
// is attacked is a legality question left to the caller, like any other
// move into check. A position without a king on its home square generates
// nothing.
func (g *Generator) castling(pos *board.Position, moves []Move) []Move {
	us := pos.SideToMove
	them := us.Other()
	king := pos.Pieces[us][board.King]
	occ := pos.AllOccupied

	if us == board.White {
		if pos.CastlingRights.CanCastle(board.White, true) && king.IsSet(board.E1) &&
			occ&(board.SquareBB(board.F1)|board.SquareBB(board.G1)) == 0 &&
			!g.SquareAttacked(pos, board.E1, them) && !g.SquareAttacked(pos, board.F1, them) {
			moves = append(moves, NewMove(board.King, board.E1, board.G1, board.NoPieceType, board.NoPieceType, false, false, true))
		}
		if pos.CastlingRights.CanCastle(board.White, false) && king.IsSet(board.E1) &&
			occ&(board.SquareBB(board.B1)|board.SquareBB(board.C1)|board.SquareBB(board.D1)) == 0 &&
			!g.SquareAttacked(pos, board.E1, them) && !g.SquareAttacked(pos, board.D1, them) {
			moves = append(moves, NewMove(board.King, board.E1, board.C1, board.NoPieceType, board.NoPieceType, false, false, true))
		}
		return moves
	}

	if pos.CastlingRights.CanCastle(board.Black, true) && king.IsSet(board.E8) &&
		occ&(board.SquareBB(board.F8)|board.SquareBB(board.G8)) == 0 &&
		!g.SquareAttacked(pos, board.E8, them) && !g.SquareAttacked(pos, board.F8, them) {
		moves = append(moves, NewMove(board.King, board.E8, board.G8, board.NoPieceType, board.NoPieceType, false, false, true))
	}
	if pos.CastlingRights.CanCastle(board.Black, false) && king.IsSet(board.E8) &&
		occ&(board.SquareBB(board.B8)|board.SquareBB(board.C8)|board.SquareBB(board.D8)) == 0 &&
		!g.SquareAttacked(pos, board.E8, them) && !g.SquareAttacked(pos, board.D8, them) {
		moves = append(moves, NewMove(board.King, board.E8, board.C8, board.NoPieceType, board.NoPieceType, false, false, true))
	}
	return moves
}

// addMoves expands a target bitboard into concrete moves. The captured
// piece is read off the destination square; a pawn landing on the final
// rank fans out into one move per promotion piece.
func (g *Generator) addMoves(pos *board.Position, pt board.PieceType, from board.Square, targets board.Bitboard, moves []Move) []Move {
	us := pos.SideToMove
	isPawn := pt == board.Pawn

	promoRank := board.Rank8
	if us == board.Black {
		promoRank = board.Rank1
	}

	for targets != 0 {
		to := targets.PopLSB()

		captured := board.NoPieceType
		if p := pos.PieceAt(to); p != board.NoPiece {
			captured = p.Type()
		}

		enPassant := isPawn && to == pos.EnPassant
		doubleStep := isPawn && (int(to)-int(from) == 16 || int(from)-int(to) == 16)

		if isPawn && board.SquareBB(to)&promoRank != 0 {
			for _, promo := range promotionPieces {
				moves = append(moves, NewMove(pt, from, to, captured, promo, false, false, false))
			}
			continue
		}

		moves = append(moves, NewMove(pt, from, to, captured, board.NoPieceType, enPassant, doubleStep, false))
	}
	return moves
}

// SquareAttacked reports whether any piece of the given color attacks sq.
// It asks the question in reverse: a super-piece on sq looks outward with
// every attack pattern, and whatever enemy piece it sees with a pattern is a
// piece attacking sq with that same pattern.
func (g *Generator) SquareAttacked(pos *board.Position, sq board.Square, by board.Color) bool {
	occ := pos.AllOccupied
	attackers := &pos.Pieces[by]

	if g.pawns[by.Other()][sq]&attackers[board.Pawn] != 0 {
		return true
	}
	if g.knight[sq]&attackers[board.Knight] != 0 {
		return true
	}
	if g.king[sq]&attackers[board.King] != 0 {
		return true
	}
	if g.RookAttacks(sq, occ)&(attackers[board.Rook]|attackers[board.Queen]) != 0 {
		return true
	}
	if g.BishopAttacks(sq, occ)&(attackers[board.Bishop]|attackers[board.Queen]) != 0 {
		return true
	}
	return false
}
