package experiments

import (
	"context"
	"fmt"
	"time"

	"uttt/config"
	"uttt/engine"
	"uttt/experiments/metrics"
	"uttt/game"
	"uttt/player"
	"uttt/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Summary struct {
	Games     int
	XWins     int
	OWins     int
	Draws     int
	Moves     int
	Duration  time.Duration
	OutputDir string // empty when nothing was written
}

func (s *Summary) add(status game.GameStatus, moves int) {
	s.Games++
	s.Moves += moves
	switch status {
	case game.XWins:
		s.XWins++
	case game.OWins:
		s.OWins++
	case game.Draw:
		s.Draws++
	}
}

// RunMatch plays cfg.Match.Games games between the configured players, up
// to cfg.Match.Concurrency at a time. The first failing game cancels the
// rest.
func RunMatch(ctx context.Context, cfg config.Config) (Summary, error) {
	return runMatch(ctx, cfg, "match")
}

func runMatch(ctx context.Context, cfg config.Config, name string) (Summary, error) {
	start := time.Now()
	board, err := cfg.StartBoard()
	if err != nil {
		return Summary{}, err
	}

	agents := []metrics.AgentConfig{
		agentConfig(1, cfg.Players.X, cfg),
		agentConfig(2, cfg.Players.O, cfg),
	}

	var shared searcher.Cache
	if cfg.AI.SharedCache {
		shared = searcher.NewShardedCache(cfg.AI.CacheShards)
	}

	log.Info().Msgf("starting %s of %d games: X=%+v O=%+v", name, cfg.Match.Games, agents[0], agents[1])

	gameRecords := make([]metrics.GameRecord, cfg.Match.Games)
	moveRecords := make([][]metrics.MoveRecord, cfg.Match.Games)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Match.Concurrency)
	for i := 0; i < cfg.Match.Games; i++ {
		i := i
		g.Go(func() error {
			seed := cfg.Match.Seed + uint64(2*i)
			x, err := newPlayer(cfg.Players.X, cfg, shared, seed)
			if err != nil {
				return err
			}
			o, err := newPlayer(cfg.Players.O, cfg, shared, seed+1)
			if err != nil {
				return err
			}

			e := engine.NewLocal(x, o, board)
			status, gameMetric, moveMetrics, err := e.Run(gctx)
			if err != nil {
				return fmt.Errorf("game %d (%s): %w", i+1, e.ID, err)
			}

			gameRecords[i] = metrics.GameRecord{
				Seq:        i + 1,
				AgentX:     agents[0].ID,
				AgentO:     agents[1].ID,
				GameMetric: gameMetric,
			}
			for _, mm := range moveMetrics {
				moveRecords[i] = append(moveRecords[i], metrics.MoveRecord{Game: e.ID, MoveMetric: mm})
			}
			log.Info().Msgf("completed game %d of %d: %v", i+1, cfg.Match.Games, status)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	var summary Summary
	for _, record := range gameRecords {
		summary.add(record.Winner, record.TotalMoves)
	}
	summary.Duration = time.Since(start)
	log.Info().Msgf("completed %s: %+v", name, summary)

	if cfg.Output.Dir == "" {
		return summary, nil
	}
	dir, err := store(cfg.Output.Dir, name, agents, gameRecords, moveRecords)
	if err != nil {
		return summary, err
	}
	summary.OutputDir = dir
	return summary, nil
}

// RunDepthSweep plays one match per search depth with everything else
// taken from cfg.
func RunDepthSweep(ctx context.Context, cfg config.Config, depths []int) ([]Summary, error) {
	summaries := make([]Summary, 0, len(depths))
	for _, depth := range depths {
		c := cfg
		c.AI.Depth = depth
		summary, err := runMatch(ctx, c, fmt.Sprintf("depth_%d", depth))
		if err != nil {
			return summaries, fmt.Errorf("depth %d: %w", depth, err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func agentConfig(id int, kind string, cfg config.Config) metrics.AgentConfig {
	agent := metrics.AgentConfig{ID: id, Kind: kind}
	if kind == player.KindAI {
		agent.Depth = cfg.AI.Depth
		agent.SharedCache = cfg.AI.SharedCache
	}
	return agent
}

func newPlayer(kind string, cfg config.Config, shared searcher.Cache, seed uint64) (player.Player, error) {
	return player.New(kind,
		player.WithDepth(cfg.AI.Depth),
		player.WithCache(shared),
		player.WithSeed(seed),
		player.WithMetrics(),
	)
}

func store(dir, name string, agents []metrics.AgentConfig, games []metrics.GameRecord, moves [][]metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(agents)
	if err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(games)
	if err != nil {
		return "", fmt.Errorf("failed to store game records: %w", err)
	}
	log.Info().Msg("stored game records")

	var flat []metrics.MoveRecord
	for _, records := range moves {
		flat = append(flat, records...)
	}
	err = writer.WriteMoveRecords(flat)
	if err != nil {
		return "", fmt.Errorf("failed to store move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}
