package player

import (
	"errors"
	"fmt"
	"strings"

	"uttt/experiments/metrics"
	"uttt/game"
	"uttt/meta"
	"uttt/searcher"
	"uttt/utils"
)

var ErrUnsupportedKind = errors.New("unsupported player kind")

const (
	KindRandom = "random"
	KindAI     = "ai"
	KindHuman  = "human"
)

// Kinds lists every kind the settings file may name.
var Kinds = []string{KindRandom, KindAI, KindHuman}

// Player is one side of a game. The orchestrator calls Initialize before
// the first move, then GetMove on the player's turns and ReceiveMove with
// every move of the opponent. Implementations keep their own mirror of the
// board. Initialize may be called again mid-game to replace the mirror, for
// instance after a rejected move; Reset returns to that latest board.
type Player interface {
	Initialize(symbol game.PlayerSymbol, board game.Board)
	// GetMove blocks until a move is chosen and plays it on the mirror.
	GetMove() (game.Move, error)
	ReceiveMove(move game.Move)
	Reset()
	// Terminate asks a running GetMove to return early and reports stats.
	Terminate()
}

// SearchReporter is implemented by players that search for their moves.
type SearchReporter interface {
	LastSearch() metrics.SearchMetric
}

type Option func(o *options)

type options struct {
	depth   int
	cache   searcher.Cache
	seed    uint64
	metrics bool
}

func WithDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.depth = depth
		}
	}
}

func WithCache(cache searcher.Cache) Option {
	return func(o *options) {
		o.cache = cache
	}
}

func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

func WithMetrics() Option {
	return func(o *options) {
		o.metrics = true
	}
}

// New creates a player of the given kind, case-insensitively.
func New(kind string, opts ...Option) (Player, error) {
	o := options{depth: meta.DefaultDepth, seed: meta.DefaultSeed}
	for _, opt := range opts {
		opt(&o)
	}

	kind = strings.ToLower(kind)
	switch kind {
	case KindRandom:
		return NewRandom(o.seed), nil
	case KindAI:
		searchOpts := []searcher.Option{searcher.WithDepth(o.depth), searcher.WithCache(o.cache)}
		if o.metrics {
			searchOpts = append(searchOpts, searcher.WithMetrics())
		}
		return NewAI(searcher.New(searchOpts...)), nil
	}

	if !utils.Contains(Kinds, kind) {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrUnsupportedKind, kind)
	}
	return nil, fmt.Errorf("%w: %s players need an input device", ErrUnsupportedKind, kind)
}
