// Package eval scores chess positions.
package eval

import "github.com/tylersaunders/lark/internal/board"

// Evaluate scores the position from the side to move's point of view: a
// positive value means the side to move is better, a negative value means
// the opponent is. Currently a plain material count in centipawns.
func Evaluate(pos *board.Position) int {
	value := pos.Material[board.White] - pos.Material[board.Black]
	if pos.SideToMove == board.Black {
		value = -value
	}
	return value
}
