package player

import (
	"sync"
	"sync/atomic"

	"uttt/experiments/metrics"
	"uttt/game"
	"uttt/searcher"

	"github.com/rs/zerolog/log"
)

// AI picks its moves with a negamax searcher.
type AI struct {
	mu        sync.Mutex
	symbol    game.PlayerSymbol
	initial   game.Board
	mainBoard game.Board
	searcher  *searcher.Searcher
	last      metrics.SearchMetric

	// stop is polled between root candidates, so it never takes mu
	stop atomic.Bool
}

func NewAI(s *searcher.Searcher) *AI {
	return &AI{
		initial:   game.NewBoard(),
		mainBoard: game.NewBoard(),
		searcher:  s,
	}
}

func (a *AI) Initialize(symbol game.PlayerSymbol, board game.Board) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.symbol = symbol
	a.initial = board
	a.mainBoard = board
}

func (a *AI) GetMove() (game.Move, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	result, err := a.searcher.Search(a.mainBoard, a.stop.Load)
	if err != nil {
		return game.Move{}, err
	}
	a.mainBoard.Play(result.Move)
	a.last = result.Metric

	log.Debug().Msgf("%v chose %v with score %d", a.symbol, result.Move, result.Score)
	return result.Move, nil
}

func (a *AI) ReceiveMove(move game.Move) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mainBoard.Play(move)
}

// Reset restores the initial board and clears counters, cache and the stop
// flag.
func (a *AI) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mainBoard = a.initial
	a.last = metrics.SearchMetric{}
	a.searcher.Reset()
	a.stop.Store(false)
}

func (a *AI) Terminate() {
	a.stop.Store(true)

	attempts, hits := a.searcher.CacheStats()
	ratio := 0.0
	if attempts > 0 {
		ratio = float64(hits) / float64(attempts)
	}
	log.Info().Msgf("%v search depth %d: %d cache attempts, %d hits (%.2f%%)",
		a.symbol, a.searcher.Depth(), attempts, hits, ratio*100)
}

func (a *AI) LastSearch() metrics.SearchMetric {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}
