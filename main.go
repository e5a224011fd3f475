package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"uttt/config"
	"uttt/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	settings := flag.String("settings", "", "Path to the settings file (default: settings.yaml in . or ..)")
	games := flag.Int("games", 0, "Number of games, overrides match.games")
	output := flag.String("output", "", "Directory for CSV records, overrides output.dir")
	depths := flag.String("depths", "", "Comma separated search depths to sweep, e.g. 1,2,3")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg := config.LoadOrDefault(*settings)
	if *games > 0 {
		cfg.Match.Games = *games
	}
	if *output != "" {
		cfg.Output.Dir = *output
	}
	zerolog.SetGlobalLevel(cfg.LogLevel())

	board, err := cfg.StartBoard()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid start board")
	}
	log.Debug().Msgf("start board, %v to move:\n%v", board.CurrentPlayer(), board)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *depths == "" {
		summary, err := experiments.RunMatch(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("match failed")
		}
		logSummary(summary)
		return
	}

	var sweep []int
	for _, field := range strings.Split(*depths, ",") {
		depth, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || depth < 1 {
			log.Fatal().Msgf("invalid depth %q", field)
		}
		sweep = append(sweep, depth)
	}
	summaries, err := experiments.RunDepthSweep(ctx, cfg, sweep)
	if err != nil {
		log.Fatal().Err(err).Msg("depth sweep failed")
	}
	for _, summary := range summaries {
		logSummary(summary)
	}
}

func logSummary(s experiments.Summary) {
	log.Info().
		Int("games", s.Games).
		Int("x_wins", s.XWins).
		Int("o_wins", s.OWins).
		Int("draws", s.Draws).
		Int("moves", s.Moves).
		Dur("duration", s.Duration).
		Str("output", s.OutputDir).
		Msg("match summary")
}
