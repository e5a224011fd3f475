package engine

import (
	"context"
	"errors"

	"uttt/experiments/metrics"
	"uttt/game"
)

var ErrTooManyIllegalMoves = errors.New("too many illegal moves")

type Engine interface {
	// Run plays a game until it is over, the context is done or a player fails
	Run(ctx context.Context) (game.GameStatus, metrics.GameMetric, []metrics.MoveMetric, error)
}
