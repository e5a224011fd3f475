package game

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var ErrInvalidLayout = errors.New("invalid board layout")

// ParseBoard rebuilds a position from a serialized layout and the move that
// produced it. The layout holds one character per cell, row-major over the
// full 9x9 grid: 'x' and 'o' (any case) are pieces, anything else is empty.
// Whitespace is skipped, so a layout can be written as a tab-separated grid.
//
// The player to move and every status are derived from the cells alone.
// lastMove must point at a piece of the player who moved last, so a layout
// without pieces cannot be parsed; start those games from NewBoard.
func ParseBoard(layout string, lastMove Move) (Board, error) {
	var cells []Piece
	for _, r := range layout {
		if unicode.IsSpace(r) {
			continue
		}
		switch unicode.ToLower(r) {
		case 'x':
			cells = append(cells, X)
		case 'o':
			cells = append(cells, O)
		default:
			cells = append(cells, Empty)
		}
	}
	if len(cells) != NumCells {
		return Board{}, fmt.Errorf("%w: got %d cells, want %d", ErrInvalidLayout, len(cells), NumCells)
	}

	b := Board{lastMove: lastMove, hasLastMove: true}
	xCount, oCount := 0, 0
	for pos, p := range cells {
		b.cells[rowColIndex[pos]] = p
		switch p {
		case X:
			xCount++
		case O:
			oCount++
		}
	}

	// X moves first, so X is never behind and at most one piece ahead
	switch xCount - oCount {
	case 0:
		b.currentPlayer = PlayerX
	case 1:
		b.currentPlayer = PlayerO
	default:
		return Board{}, fmt.Errorf("%w: %d X pieces and %d O pieces", ErrInvalidLayout, xCount, oCount)
	}
	if b.cells[lastMove.Index()] != b.currentPlayer.Other().Piece() {
		return Board{}, fmt.Errorf("%w: last move %v does not hold a %v piece", ErrInvalidLayout, lastMove, b.currentPlayer.Other())
	}

	for i := 0; i < NumSubBoards; i++ {
		status, err := deriveStatus(b.cells[i*9:i*9+9], nil)
		if err != nil {
			return Board{}, fmt.Errorf("%w: sub-board %d: %v", ErrInvalidLayout, i, err)
		}
		b.subStatus[i] = status
	}
	owner, closed := statusGrid(b.subStatus)
	status, err := deriveStatus(owner[:], closed[:])
	if err != nil {
		return Board{}, fmt.Errorf("%w: global board: %v", ErrInvalidLayout, err)
	}
	b.topStatus = status

	return b, nil
}

// deriveStatus is the status check for a grid whose last mover is unknown,
// so both symbols are tried. A nil closed slice means "closed iff owned".
func deriveStatus(owner []Piece, closed []bool) (GameStatus, error) {
	var grid [9]Piece
	var full [9]bool
	for i := range grid {
		grid[i] = owner[i]
		if closed != nil {
			full[i] = closed[i]
		} else {
			full[i] = owner[i] != Empty
		}
	}

	xLine, oLine := ownsLine(grid, X), ownsLine(grid, O)
	switch {
	case xLine && oLine:
		return InProgress, errors.New("both players own a line")
	case xLine:
		return XWins, nil
	case oLine:
		return OWins, nil
	}
	return gridStatus(grid, full, PlayerX), nil
}

// Layout serializes the cells in the format read by ParseBoard.
func (b Board) Layout() string {
	var sb strings.Builder
	sb.Grow(NumCells)
	for pos := 0; pos < NumCells; pos++ {
		switch b.cells[rowColIndex[pos]] {
		case X:
			sb.WriteByte('x')
		case O:
			sb.WriteByte('o')
		default:
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
