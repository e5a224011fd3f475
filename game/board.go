package game

import (
	"fmt"
	"hash/fnv"
	"strings"
)

const (
	NumSubBoards = 9
	NumCells     = NumSubBoards * 9
)

// lines are the 8 winning triples of a 3x3 grid: rows, columns, diagonals.
var lines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Lines returns the 8 winning triples of a 3x3 grid.
func Lines() [8][3]int {
	return lines
}

// rowColIndex maps a row-major position on the full 9x9 grid (row*9+col)
// to the board*9+cell index used internally.
var rowColIndex = func() [NumCells]int {
	var idx [NumCells]int
	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			board := (row/3)*3 + col/3
			cell := (row%3)*3 + col%3
			idx[row*9+col] = board*9 + cell
		}
	}
	return idx
}()

// Board is the complete game state. It is a value type: assigning a Board
// copies it, and copies never share state. Use NewBoard or ParseBoard; the
// zero value has no player to move.
type Board struct {
	cells         [NumCells]Piece
	subStatus     [NumSubBoards]GameStatus
	topStatus     GameStatus
	currentPlayer PlayerSymbol
	lastMove      Move
	hasLastMove   bool
}

// NewBoard returns the empty opening position with X to move.
func NewBoard() Board {
	return Board{currentPlayer: PlayerX}
}

func (b Board) CurrentPlayer() PlayerSymbol {
	return b.currentPlayer
}

// Status is the status of the whole game.
func (b Board) Status() GameStatus {
	return b.topStatus
}

func (b Board) IsGameOver() bool {
	return b.topStatus != InProgress
}

// LastMove returns the move that produced this position, if any.
func (b Board) LastMove() (Move, bool) {
	return b.lastMove, b.hasLastMove
}

func (b Board) SubStatus(board int) GameStatus {
	return b.subStatus[board]
}

// SubStatuses returns the 3x3 grid of sub-board outcomes.
func (b Board) SubStatuses() [NumSubBoards]GameStatus {
	return b.subStatus
}

func (b Board) PieceAt(board, cell int) Piece {
	return b.cells[board*9+cell]
}

// PieceAtRowCol addresses the full 9x9 grid row-major.
func (b Board) PieceAtRowCol(row, col int) Piece {
	return b.cells[rowColIndex[row*9+col]]
}

// SubBoard returns a copy of the 9 cells of sub-board i.
func (b Board) SubBoard(i int) [9]Piece {
	var sub [9]Piece
	copy(sub[:], b.cells[i*9:i*9+9])
	return sub
}

// IsMoveLegal reports whether the player to move may play m.
func (b Board) IsMoveLegal(m Move) bool {
	// only empty cells, no matter what
	if b.cells[m.Index()] != Empty {
		return false
	}
	// the opening move can go anywhere
	if !b.hasLastMove {
		return true
	}
	if b.subStatus[m.board] != InProgress {
		return false
	}
	// the previous cell picks the active sub-board, unless that one is decided
	active := b.lastMove.cell
	if m.board != active {
		return b.subStatus[active] != InProgress
	}
	return true
}

// LegalMoves enumerates every legal move, board-major then cell-minor.
func (b Board) LegalMoves() []Move {
	var moves []Move
	for board := 0; board < NumSubBoards; board++ {
		for cell := 0; cell < 9; cell++ {
			m := Move{board: int8(board), cell: int8(cell)}
			if b.IsMoveLegal(m) {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

// Play applies m for the player to move. Playing an illegal move is a
// programming error and panics; check IsMoveLegal first.
func (b *Board) Play(m Move) {
	if !b.IsMoveLegal(m) {
		panic(fmt.Sprintf("illegal move %v for player %v", m, b.currentPlayer))
	}
	mover := b.currentPlayer
	b.cells[m.Index()] = mover.Piece()

	// only the mover can have completed a line
	b.subStatus[m.board] = b.calcSubStatus(int(m.board), mover)
	// a decided game stays decided, even if more pieces are placed
	if b.topStatus == InProgress {
		b.topStatus = b.calcTopStatus(mover)
	}

	b.currentPlayer = mover.Other()
	b.lastMove = m
	b.hasLastMove = true
}

func (b Board) calcSubStatus(board int, mover PlayerSymbol) GameStatus {
	var owner [9]Piece
	var closed [9]bool
	for i := 0; i < 9; i++ {
		owner[i] = b.cells[board*9+i]
		closed[i] = owner[i] != Empty
	}
	return gridStatus(owner, closed, mover)
}

func (b Board) calcTopStatus(mover PlayerSymbol) GameStatus {
	owner, closed := statusGrid(b.subStatus)
	return gridStatus(owner, closed, mover)
}

// statusGrid views the sub-board outcomes as a 3x3 grid of pieces. A drawn
// sub-board is closed but owned by nobody.
func statusGrid(status [NumSubBoards]GameStatus) (owner [9]Piece, closed [9]bool) {
	for i, s := range status {
		switch s {
		case XWins:
			owner[i] = X
		case OWins:
			owner[i] = O
		}
		closed[i] = s != InProgress
	}
	return owner, closed
}

// gridStatus is the win check shared by sub-boards and the global grid.
func gridStatus(owner [9]Piece, closed [9]bool, mover PlayerSymbol) GameStatus {
	if ownsLine(owner, mover.Piece()) {
		return WinStatus(mover)
	}
	for _, c := range closed {
		if !c {
			return InProgress
		}
	}
	return Draw
}

func ownsLine(owner [9]Piece, p Piece) bool {
	for _, l := range lines {
		if owner[l[0]] == p && owner[l[1]] == p && owner[l[2]] == p {
			return true
		}
	}
	return false
}

// Equal reports structural equality: cells, sub-board statuses, player to
// move and last move.
func (b Board) Equal(other Board) bool {
	return b.cells == other.cells &&
		b.subStatus == other.subStatus &&
		b.currentPlayer == other.currentPlayer &&
		b.hasLastMove == other.hasLastMove &&
		b.lastMove == other.lastMove
}

// Hash combines the same fields as Equal, in a fixed order.
func (b Board) Hash() uint64 {
	var buf [NumCells + NumSubBoards + 4]byte
	for i, p := range b.cells {
		buf[i] = byte(p)
	}
	for i, s := range b.subStatus {
		buf[NumCells+i] = byte(s)
	}
	n := NumCells + NumSubBoards
	buf[n] = byte(b.currentPlayer)
	if b.hasLastMove {
		buf[n+1] = 1
		buf[n+2] = byte(b.lastMove.board)
		buf[n+3] = byte(b.lastMove.cell)
	}

	hasher := fnv.New64a()
	hasher.Write(buf[:])
	return hasher.Sum64()
}

// String renders the 9x9 grid. The last move is wrapped in brackets.
func (b Board) String() string {
	const sep = "+---------+---------+---------+\n"
	var sb strings.Builder
	for row := 0; row < 9; row++ {
		if row%3 == 0 {
			sb.WriteString(sep)
		}
		for col := 0; col < 9; col++ {
			if col%3 == 0 {
				sb.WriteString("|")
			}
			idx := rowColIndex[row*9+col]
			if b.hasLastMove && b.lastMove.Index() == idx {
				fmt.Fprintf(&sb, "[%v]", b.cells[idx])
			} else {
				fmt.Fprintf(&sb, " %v ", b.cells[idx])
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(sep)
	return sb.String()
}
