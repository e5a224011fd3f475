package searcher

import (
	"errors"
	"fmt"
	"sync/atomic"

	"uttt/experiments/metrics"
	"uttt/game"
	"uttt/meta"

	"github.com/rs/zerolog/log"
)

var (
	// ErrNoLegalMoves means the search was asked to move on a board that has
	// no legal move at all. The game should have ended before that.
	ErrNoLegalMoves = errors.New("no legal moves")
	ErrGameOver     = errors.New("game is already over")
	ErrStopped      = errors.New("search stopped before any move was scored")
)

type Option func(s *Searcher)

// Searcher runs a depth-limited negamax with alpha-beta pruning over
// copies of the board. Static scores of non-terminal boards go through its
// cache.
type Searcher struct {
	depth    int
	cache    Cache
	metrics  metrics.Collector
	attempts atomic.Int64
	hits     atomic.Int64
}

func WithDepth(depth int) Option {
	return func(s *Searcher) {
		if depth > 0 {
			s.depth = depth
		}
	}
}

func WithCache(cache Cache) Option {
	return func(s *Searcher) {
		if cache != nil {
			s.cache = cache
		}
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = metrics.NewCollector()
	}
}

func New(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		depth:   meta.DefaultDepth,
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	if s.cache == nil {
		s.cache = NewMapCache()
	}
	return s
}

func (s *Searcher) Depth() int {
	return s.depth
}

// CacheStats returns how many non-terminal boards were looked up and how
// many of those were found, since construction or the last Reset.
func (s *Searcher) CacheStats() (attempts, hits int64) {
	return s.attempts.Load(), s.hits.Load()
}

// Reset clears the counters and the cache.
func (s *Searcher) Reset() {
	s.attempts.Store(0)
	s.hits.Store(0)
	s.cache.Clear()
}

type Child struct {
	Move  game.Move
	Board game.Board
}

// Children pairs every legal move with the board it produces, in legal move
// order.
func Children(board game.Board) []Child {
	moves := board.LegalMoves()
	children := make([]Child, len(moves))
	for i, move := range moves {
		next := board
		next.Play(move)
		children[i] = Child{Move: move, Board: next}
	}
	return children
}

type Result struct {
	Move   game.Move
	Score  Score // from the view of the player to move
	Metric metrics.SearchMetric
}

// Search picks the move with the strictly greatest negamax value for the
// player to move. Ties go to the move enumerated first. stop is polled
// before every root child; once it reports true the best move so far is
// returned. A forced win ends the search early.
func (s *Searcher) Search(board game.Board, stop func() bool) (Result, error) {
	children := Children(board)
	if len(children) == 0 {
		return Result{}, fmt.Errorf("%w: %v to move, status %v", ErrNoLegalMoves, board.CurrentPlayer(), board.Status())
	}
	if board.IsGameOver() {
		return Result{}, fmt.Errorf("%w: %v", ErrGameOver, board.Status())
	}

	s.metrics.Start(s.depth)

	// Each child is scored for its own mover, the opponent, and then negated
	weight := Score(board.CurrentPlayer().Other().Sign())

	var best Result
	found := false
	for _, child := range children {
		if stop != nil && stop() {
			s.metrics.SetStopped()
			break
		}

		value := -s.Negamax(child.Board, s.depth-1, MinScore, MaxScore, weight)
		log.Debug().Msgf("%v scores %v for %v", child.Move, value, board.CurrentPlayer())

		if !found || value > best.Score {
			best.Move = child.Move
			best.Score = value
			found = true
		}
		if value >= MaxScore {
			break
		}
	}
	if !found {
		return Result{}, ErrStopped
	}

	best.Metric = s.metrics.Complete(int32(best.Score))
	return best, nil
}

// Negamax returns the value of board for the side whose sign is weight:
// larger is better for that side. Pruning is fail-hard.
func (s *Searcher) Negamax(board game.Board, depth int, alpha, beta, weight Score) Score {
	s.metrics.AddNode()
	if depth <= 0 || board.IsGameOver() {
		return weight * s.StaticAnalysis(board)
	}

	best := MinScore
	for _, child := range Children(board) {
		value := -s.Negamax(child.Board, depth-1, -beta, -alpha, -weight)
		best = max(best, value)
		alpha = max(alpha, value)
		if alpha >= beta {
			break
		}
	}
	return best
}

// StaticAnalysis scores board from X's view. Finished games map to the
// sentinels without touching the cache.
func (s *Searcher) StaticAnalysis(board game.Board) Score {
	if board.IsGameOver() {
		return terminalScore(board.Status())
	}

	s.attempts.Add(1)
	s.metrics.AddCacheAttempt()
	if score, ok := s.cache.Load(board); ok {
		s.hits.Add(1)
		s.metrics.AddCacheHit()
		return score
	}

	score := CalcStaticAnalysis(board)
	s.cache.Store(board, score)
	return score
}
