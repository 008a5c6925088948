package movegen

import "github.com/tylersaunders/lark/internal/board"

// edgesWithout returns the edges of the board, excluding any edge the given
// square itself sits on. A rook on a1 must keep a2-a7 and b1-g1 as potential
// blocker squares even though they lie on the board's rim from its view.
func edgesWithout(sq board.Square) board.Bitboard {
	fileBB := board.FileMask[sq.File()]
	rankBB := board.RankMask[sq.Rank()]

	return (board.FileA &^ fileBB) |
		(board.FileH &^ fileBB) |
		(board.Rank1 &^ rankBB) |
		(board.Rank8 &^ rankBB)
}

// rookMask returns the relevant occupancy mask for a rook on sq: every square
// the rook could see on an empty board, minus the board edges and the rook's
// own square. Only these squares can change what the rook attacks.
func rookMask(sq board.Square) board.Bitboard {
	cross := board.FileMask[sq.File()] | board.RankMask[sq.Rank()]
	return cross &^ edgesWithout(sq) &^ board.SquareBB(sq)
}

// bishopMask returns the relevant occupancy mask for a bishop on sq.
func bishopMask(sq board.Square) board.Bitboard {
	diagonals := castRay(board.Empty, sq, NorthWest) |
		castRay(board.Empty, sq, NorthEast) |
		castRay(board.Empty, sq, SouthEast) |
		castRay(board.Empty, sq, SouthWest)
	return diagonals &^ edgesWithout(sq)
}

// blockerSubsets enumerates every subset of the mask with the Carry-Rippler
// method, starting with the empty board. A mask with n bits set yields 2^n
// subsets. See https://www.chessprogramming.org/Traversing_Subsets_of_a_Set
func blockerSubsets(mask board.Bitboard) []board.Bitboard {
	subsets := make([]board.Bitboard, 0, 1<<mask.PopCount())

	n := board.Empty
	for {
		subsets = append(subsets, n)
		n = (n - mask) & mask
		if n == 0 {
			return subsets
		}
	}
}

// rookAttacksSlow computes the rook attack set for sq against the given
// blockers by walking the four orthogonal rays. Used to fill the magic
// tables; move generation reads the tables instead.
func rookAttacksSlow(sq board.Square, blockers board.Bitboard) board.Bitboard {
	return castRay(blockers, sq, North) |
		castRay(blockers, sq, East) |
		castRay(blockers, sq, South) |
		castRay(blockers, sq, West)
}

// bishopAttacksSlow computes the bishop attack set for sq against the given
// blockers by walking the four diagonal rays.
func bishopAttacksSlow(sq board.Square, blockers board.Bitboard) board.Bitboard {
	return castRay(blockers, sq, NorthWest) |
		castRay(blockers, sq, NorthEast) |
		castRay(blockers, sq, SouthEast) |
		castRay(blockers, sq, SouthWest)
}
