package movegen

import "github.com/tylersaunders/lark/internal/board"

// Direction is a compass direction a slider ray can point in.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
	NorthWest
	NorthEast
	SouthEast
	SouthWest
)

// castRay walks square by square from sq in the given direction, collecting
// squares until it runs off the board or lands on a blocker. The blocker
// square itself is included in the ray; whether that square is a capture or
// a friendly piece is the caller's concern.
func castRay(blockers board.Bitboard, sq board.Square, dir Direction) board.Bitboard {
	file := sq.File()
	rank := sq.Rank()
	cursor := board.SquareBB(sq)
	ray := board.Empty

	for {
		switch dir {
		case North:
			if rank == 7 {
				return ray
			}
			cursor <<= 8
			rank++
		case East:
			if file == 7 {
				return ray
			}
			cursor <<= 1
			file++
		case South:
			if rank == 0 {
				return ray
			}
			cursor >>= 8
			rank--
		case West:
			if file == 0 {
				return ray
			}
			cursor >>= 1
			file--
		case NorthWest:
			if rank == 7 || file == 0 {
				return ray
			}
			cursor <<= 7
			rank++
			file--
		case NorthEast:
			if rank == 7 || file == 7 {
				return ray
			}
			cursor <<= 9
			rank++
			file++
		case SouthEast:
			if rank == 0 || file == 7 {
				return ray
			}
			cursor >>= 7
			rank--
			file++
		case SouthWest:
			if rank == 0 || file == 0 {
				return ray
			}
			cursor >>= 9
			rank--
			file--
		}

		ray |= cursor
		if cursor&blockers != 0 {
			return ray
		}
	}
}
