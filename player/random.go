package player

import (
	"fmt"

	"uttt/game"
	"uttt/searcher"

	"golang.org/x/exp/rand"
)

// Random plays uniformly drawn legal moves.
type Random struct {
	symbol  game.PlayerSymbol
	initial game.Board
	board   game.Board
	seed    uint64
	rng     *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{
		initial: game.NewBoard(),
		board:   game.NewBoard(),
		seed:    seed,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (r *Random) Initialize(symbol game.PlayerSymbol, board game.Board) {
	r.symbol = symbol
	r.initial = board
	r.board = board
}

// GetMove draws (sub-board, cell) pairs until one is legal.
func (r *Random) GetMove() (game.Move, error) {
	if r.board.IsGameOver() {
		return game.Move{}, fmt.Errorf("%w: %v", searcher.ErrGameOver, r.board.Status())
	}
	if len(r.board.LegalMoves()) == 0 {
		return game.Move{}, searcher.ErrNoLegalMoves
	}

	for {
		move := game.MustMove(r.rng.Intn(9), r.rng.Intn(9))
		if r.board.IsMoveLegal(move) {
			r.board.Play(move)
			return move, nil
		}
	}
}

func (r *Random) ReceiveMove(move game.Move) {
	r.board.Play(move)
}

// Reset restores the initial board and replays the same sequence of draws.
func (r *Random) Reset() {
	r.board = r.initial
	r.rng.Seed(r.seed)
}

func (r *Random) Terminate() {}
