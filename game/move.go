package game

import (
	"errors"
	"fmt"
)

var ErrInvalidArgument = errors.New("invalid argument")

// Move places a piece in cell of sub-board. Both coordinates are in [0,8].
type Move struct {
	board int8
	cell  int8
}

// NewMove validates the coordinates and returns the move.
func NewMove(board, cell int) (Move, error) {
	if board < 0 || board > 8 || cell < 0 || cell > 8 {
		return Move{}, fmt.Errorf("%w: move (%d, %d) out of range [0,8]", ErrInvalidArgument, board, cell)
	}
	return Move{board: int8(board), cell: int8(cell)}, nil
}

// MustMove is like NewMove but panics on invalid coordinates.
func MustMove(board, cell int) Move {
	m, err := NewMove(board, cell)
	if err != nil {
		panic(err)
	}
	return m
}

// MoveFromIndex converts an index in [0,81) (board*9+cell) back to a move.
func MoveFromIndex(idx int) (Move, error) {
	if idx < 0 || idx >= NumCells {
		return Move{}, fmt.Errorf("%w: index %d out of range [0,81)", ErrInvalidArgument, idx)
	}
	return Move{board: int8(idx / 9), cell: int8(idx % 9)}, nil
}

// SubBoard is the index of the sub-board the move targets.
func (m Move) SubBoard() int {
	return int(m.board)
}

// Cell is the index inside the sub-board. It also names the sub-board the
// opponent is sent to.
func (m Move) Cell() int {
	return int(m.cell)
}

func (m Move) Index() int {
	return int(m.board)*9 + int(m.cell)
}

func (m Move) String() string {
	return fmt.Sprintf("Move(%d, %d)", m.board, m.cell)
}
