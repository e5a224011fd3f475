package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func playAll(t *testing.T, b *Board, moves ...Move) {
	t.Helper()
	for i, m := range moves {
		require.Truef(t, b.IsMoveLegal(m), "move %d (%v) should be legal", i, m)
		b.Play(m)
	}
}

// xTakesTopRow leaves X to move in sub-board 0 holding cells 0 and 1.
func xTakesTopRow() []Move {
	return []Move{
		MustMove(0, 0), // X, sends O to 0
		MustMove(0, 4), // O, sends X to 4
		MustMove(4, 2), // X, sends O to 2
		MustMove(2, 0), // O, sends X to 0
		MustMove(0, 1), // X, sends O to 1
		MustMove(1, 0), // O, sends X to 0
	}
}

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	require.Equal(t, PlayerX, b.CurrentPlayer(), "X should move first")
	require.Equal(t, InProgress, b.Status())
	require.False(t, b.IsGameOver())
	_, ok := b.LastMove()
	require.False(t, ok, "Empty board should have no last move")
	require.Len(t, b.LegalMoves(), NumCells, "Opening move can go anywhere")
	for i := 0; i < NumSubBoards; i++ {
		require.Equal(t, InProgress, b.SubStatus(i))
		require.Equal(t, [9]Piece{}, b.SubBoard(i))
	}
}

func TestBoardPlay(t *testing.T) {
	t.Run("changing exactly one cell and flipping the player", func(t *testing.T) {
		for _, m := range NewBoard().LegalMoves() {
			b := NewBoard()
			before := b
			b.Play(m)

			changed := 0
			for i := 0; i < NumCells; i++ {
				if b.cells[i] != before.cells[i] {
					changed++
					require.Equal(t, Empty, before.cells[i])
					require.Equal(t, X, b.cells[i])
				}
			}
			require.Equal(t, 1, changed, "Play should change exactly one cell")
			require.Equal(t, PlayerO, b.CurrentPlayer())
			last, ok := b.LastMove()
			require.True(t, ok)
			require.Equal(t, m, last)
		}
	})

	t.Run("sending the opponent to the sub-board named by the cell", func(t *testing.T) {
		b := NewBoard()
		b.Play(MustMove(4, 7))

		for _, m := range b.LegalMoves() {
			require.Equal(t, 7, m.SubBoard())
		}
		require.Len(t, b.LegalMoves(), 9)
		require.False(t, b.IsMoveLegal(MustMove(3, 3)))
	})

	t.Run("winning a sub-board", func(t *testing.T) {
		b := NewBoard()
		playAll(t, &b, xTakesTopRow()...)
		require.Equal(t, InProgress, b.SubStatus(0))

		playAll(t, &b, MustMove(0, 2))

		require.Equal(t, XWins, b.SubStatus(0), "X owns the top row of sub-board 0")
		require.Equal(t, InProgress, b.Status())
	})

	t.Run("keeping a decided sub-board closed", func(t *testing.T) {
		b := NewBoard()
		playAll(t, &b, xTakesTopRow()...)
		playAll(t, &b, MustMove(0, 2), MustMove(2, 3), MustMove(3, 0))

		require.Equal(t, XWins, b.SubStatus(0), "Status should never revert")
		require.False(t, b.IsMoveLegal(MustMove(0, 5)), "No piece may be added to a decided sub-board")
	})

	t.Run("freeing the player when the active sub-board is decided", func(t *testing.T) {
		b := NewBoard()
		playAll(t, &b, xTakesTopRow()...)
		// X wins 0, O plays 3 in sub-board 2, X plays cell 0 in sub-board 3
		playAll(t, &b, MustMove(0, 2), MustMove(2, 3), MustMove(3, 0))

		require.True(t, b.IsMoveLegal(MustMove(5, 5)))
		require.True(t, b.IsMoveLegal(MustMove(3, 1)))
		for _, m := range b.LegalMoves() {
			require.NotEqual(t, 0, m.SubBoard())
		}
	})

	t.Run("panicking on an illegal move", func(t *testing.T) {
		b := NewBoard()
		b.Play(MustMove(4, 4))

		require.Panics(t, func() { b.Play(MustMove(4, 4)) }, "Occupied cell")
		require.Panics(t, func() { b.Play(MustMove(0, 0)) }, "Wrong sub-board")
	})

	t.Run("leaving copies untouched", func(t *testing.T) {
		b := NewBoard()
		child := b
		child.Play(MustMove(0, 0))

		require.Equal(t, Empty, b.PieceAt(0, 0))
		require.Equal(t, X, child.PieceAt(0, 0))
	})
}

func TestLegalMovesMatchIsMoveLegal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 50; game++ {
		b := NewBoard()
		for !b.IsGameOver() {
			legal := b.LegalMoves()
			listed := make(map[Move]bool, len(legal))
			for _, m := range legal {
				require.True(t, b.IsMoveLegal(m), "Listed move %v should be legal", m)
				listed[m] = true
			}
			for idx := 0; idx < NumCells; idx++ {
				m, err := MoveFromIndex(idx)
				require.NoError(t, err)
				require.Equal(t, b.IsMoveLegal(m), listed[m], "Move %v", m)
			}
			require.NotEmpty(t, legal, "A game in progress always has a legal move")
			b.Play(legal[rng.Intn(len(legal))])
		}
	}
}

func TestRandomGamesTerminate(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for game := 0; game < 100; game++ {
		b := NewBoard()
		plies := 0
		for !b.IsGameOver() {
			legal := b.LegalMoves()
			b.Play(legal[rng.Intn(len(legal))])
			plies++
			require.LessOrEqual(t, plies, NumCells)
		}
		require.Contains(t, []GameStatus{XWins, OWins, Draw}, b.Status())

		xCount, oCount := 0, 0
		for _, p := range b.cells {
			switch p {
			case X:
				xCount++
			case O:
				oCount++
			}
		}
		require.Contains(t, []int{0, 1}, xCount-oCount, "Piece count invariant")
	}
}

func TestFinishedGameKeepsItsStatus(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	checked := 0
	for game := 0; game < 200; game++ {
		b := NewBoard()
		for !b.IsGameOver() {
			legal := b.LegalMoves()
			b.Play(legal[rng.Intn(len(legal))])
		}
		final := b.Status()

		// placing pieces is still legal if a sub-board is open
		for _, m := range b.LegalMoves() {
			after := b
			after.Play(m)
			require.Equal(t, final, after.Status(), "Game %d: %v after %v", game, final, m)
			checked++
		}
	}
	require.Positive(t, checked, "Some finished games still have open cells")
}

func TestBoardHashAndEqual(t *testing.T) {
	t.Run("matching structurally identical boards", func(t *testing.T) {
		a, b := NewBoard(), NewBoard()
		playAll(t, &a, xTakesTopRow()...)
		playAll(t, &b, xTakesTopRow()...)

		require.True(t, a.Equal(b))
		require.Equal(t, a.Hash(), b.Hash())
		require.True(t, a == b, "Boards are comparable values")
	})

	t.Run("distinguishing the last move", func(t *testing.T) {
		cells := map[Move]Piece{MustMove(4, 4): X, MustMove(4, 3): X, MustMove(3, 4): O}
		a, err := ParseBoard(layoutOf(cells), MustMove(4, 4))
		require.NoError(t, err)
		b, err := ParseBoard(layoutOf(cells), MustMove(4, 3))
		require.NoError(t, err)

		require.Equal(t, a.cells, b.cells, "Same pieces on both boards")
		require.False(t, a.Equal(b), "Last moves differ")
		require.NotEqual(t, a.Hash(), b.Hash())
	})

	t.Run("changing the hash for every single cell", func(t *testing.T) {
		base := NewBoard()
		base.Play(MustMove(4, 4))

		seen := map[uint64]int{base.Hash(): -1}
		for idx := 0; idx < NumCells; idx++ {
			for _, p := range []Piece{X, O} {
				if base.cells[idx] == p {
					continue
				}
				changed := base
				changed.cells[idx] = p
				prev, dup := seen[changed.Hash()]
				require.Falsef(t, dup, "Cell %d set to %v collides with %d", idx, p, prev)
				seen[changed.Hash()] = idx
			}
		}
	})
}

func TestSubBoard(t *testing.T) {
	b := NewBoard()
	playAll(t, &b, MustMove(2, 4), MustMove(4, 2))

	require.Equal(t, [9]Piece{4: X}, b.SubBoard(2))
	require.Equal(t, [9]Piece{2: O}, b.SubBoard(4))

	sub := b.SubBoard(2)
	sub[0] = O
	require.Equal(t, Empty, b.PieceAt(2, 0), "SubBoard returns a copy")
}

func TestBoardString(t *testing.T) {
	b := NewBoard()
	b.Play(MustMove(0, 0))

	out := b.String()
	require.True(t, strings.HasPrefix(out, "+---------+"))
	require.Contains(t, out, "[X]", "Last move is highlighted")
	require.Equal(t, 13, strings.Count(out, "\n"))
}
