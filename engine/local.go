package engine

import (
	"context"
	"fmt"
	"time"

	"uttt/experiments/metrics"
	"uttt/game"
	"uttt/meta"
	"uttt/player"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Local runs both players in this process and holds the authoritative board.
type Local struct {
	ID      string
	Board   game.Board
	players map[game.PlayerSymbol]player.Player
}

func NewLocal(x, o player.Player, board game.Board) *Local {
	return &Local{
		ID:    uuid.NewString(),
		Board: board,
		players: map[game.PlayerSymbol]player.Player{
			game.PlayerX: x,
			game.PlayerO: o,
		},
	}
}

func (e *Local) Run(ctx context.Context) (game.GameStatus, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		ID:             e.ID,
		StartingPlayer: e.Board.CurrentPlayer(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	for symbol, p := range e.players {
		p.Initialize(symbol, e.Board)
	}
	// A cancelled context interrupts a search in progress
	stop := context.AfterFunc(ctx, e.terminate)
	defer func() {
		if stop() {
			e.terminate()
		}
	}()

	log.Info().Msgf("game %s: %v is starting", e.ID, e.Board.CurrentPlayer())

	for plies := 0; !e.Board.IsGameOver() && plies < meta.MaxPlies; plies++ {
		if err := ctx.Err(); err != nil {
			return e.Board.Status(), e.complete(gameMetric, moveMetrics), moveMetrics, err
		}

		mover := e.Board.CurrentPlayer()
		start := time.Now()
		move, err := e.requestMove(ctx, mover)
		if err != nil {
			return e.Board.Status(), e.complete(gameMetric, moveMetrics), moveMetrics, err
		}

		searchMetric := metrics.SearchMetric{Duration: time.Since(start)}
		if reporter, ok := e.players[mover].(player.SearchReporter); ok {
			searchMetric = reporter.LastSearch()
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         plies + 1,
			Player:       mover,
			Move:         move,
			SearchMetric: searchMetric,
		})

		e.players[mover.Other()].ReceiveMove(move)
		e.Board.Play(move)
		log.Debug().Msgf("game %s ply %d: %v plays %v", e.ID, plies+1, mover, move)
	}

	log.Info().Msgf("game %s: %v after %d moves", e.ID, e.Board.Status(), len(moveMetrics))
	return e.Board.Status(), e.complete(gameMetric, moveMetrics), moveMetrics, nil
}

// requestMove asks mover for a move until it proposes a legal one. Before
// every retry the player's mirror is reset to the authoritative board.
func (e *Local) requestMove(ctx context.Context, mover game.PlayerSymbol) (game.Move, error) {
	for attempt := 1; ; attempt++ {
		move, err := e.players[mover].GetMove()
		if err != nil {
			if ctx.Err() != nil {
				return game.Move{}, ctx.Err()
			}
			return game.Move{}, fmt.Errorf("player %v failed to move: %w", mover, err)
		}
		if e.Board.IsMoveLegal(move) {
			return move, nil
		}

		log.Warn().Msgf("game %s: %v proposed illegal %v (attempt %d)", e.ID, mover, move, attempt)
		if attempt >= meta.MaxIllegalMoves {
			return game.Move{}, fmt.Errorf("%w: %v proposed %d", ErrTooManyIllegalMoves, mover, attempt)
		}
		// the player already applied the rejected move to its mirror
		e.players[mover].Initialize(mover, e.Board)
	}
}

func (e *Local) terminate() {
	for _, p := range e.players {
		p.Terminate()
	}
}

func (e *Local) complete(gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric) metrics.GameMetric {
	gameMetric.Winner = e.Board.Status()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	return gameMetric
}
