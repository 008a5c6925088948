package movegen

import "github.com/tylersaunders/lark/internal/board"

// Magic holds everything needed to index one square's slice of a slider
// attack table.
//
// The attack table is a perfect hash. A rook on a1 sees 14 squares on an
// empty board, but the two squares at the far ends of its rank and file can
// never hide a relevant blocker, so only 12 bits of occupancy matter. Those
// 12 bits give 4096 blocker configurations, each mapping to exactly one
// attack set. The magic number spreads those configurations over indexes
// 0..4095 without collisions; Offset shifts the range to this square's
// region of the shared table.
type Magic struct {
	Mask   board.Bitboard // relevant occupancy mask for the square
	Shift  uint8          // 64 minus the number of bits set in Mask
	Offset uint64         // start of this square's region in the table
	Number uint64         // the magic multiplier itself
}

// Index maps a full board occupancy to this square's attack table index:
//
//	((occupancy & mask) * number >> shift) + offset
func (m Magic) Index(occupancy board.Bitboard) int {
	blockers := occupancy & m.Mask
	return int((uint64(blockers)*m.Number)>>m.Shift + m.Offset)
}
