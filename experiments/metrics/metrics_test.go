package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"uttt/game"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counting a search", func(t *testing.T) {
		c := NewCollector()
		c.Start(4)
		c.AddNode()
		c.AddNode()
		c.AddCacheAttempt()
		c.AddCacheAttempt()
		c.AddCacheHit()

		metric := c.Complete(12)

		require.Equal(t, 4, metric.Depth)
		require.Equal(t, 2, metric.Nodes)
		require.Equal(t, 2, metric.CacheAttempts)
		require.Equal(t, 1, metric.CacheHits)
		require.Equal(t, int32(12), metric.Score)
		require.False(t, metric.Stopped)
	})

	t.Run("starting from zero on every search", func(t *testing.T) {
		c := NewCollector()
		c.Start(1)
		c.AddNode()
		c.SetStopped()
		c.Start(1)

		metric := c.Complete(0)
		require.Zero(t, metric.Nodes)
		require.False(t, metric.Stopped)
	})

	t.Run("ignoring everything in the dummy", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(3)
		c.AddNode()
		require.Equal(t, SearchMetric{}, c.Complete(5))
	})
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "match")
	require.NoError(t, err)

	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	err = w.WriteAgentConfigs([]AgentConfig{{ID: 1, Kind: "ai", Depth: 3}, {ID: 2, Kind: "random"}})
	require.NoError(t, err)
	err = w.WriteGameRecords([]GameRecord{{
		Seq:    1,
		AgentX: 1,
		AgentO: 2,
		GameMetric: GameMetric{
			ID:             "game-1",
			StartingPlayer: game.PlayerX,
			Winner:         game.XWins,
			StartTime:      start,
			EndTime:        start.Add(time.Second),
			Duration:       time.Second,
			TotalMoves:     31,
		},
	}})
	require.NoError(t, err)
	err = w.WriteMoveRecords([]MoveRecord{{
		Game: "game-1",
		MoveMetric: MoveMetric{
			Step:         1,
			Player:       game.PlayerX,
			Move:         game.MustMove(0, 4),
			SearchMetric: SearchMetric{Depth: 3, Nodes: 10, CacheAttempts: 8, CacheHits: 2, Score: 4},
		},
	}})
	require.NoError(t, err)

	agents := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
	require.Equal(t, []string{"id", "kind", "depth", "shared_cache"}, agents[0])
	require.Equal(t, []string{"1", "ai", "3", "false"}, agents[1])
	require.Len(t, agents, 3)

	games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, games, 2)
	require.Equal(t, "game-1", games[1][1])
	require.Equal(t, "X wins", games[1][5])
	require.Equal(t, "31", games[1][9])

	moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Len(t, moves, 2)
	require.Equal(t, []string{"game-1", "1", "X", "0", "4"}, moves[1][:5])
	require.Equal(t, "4", moves[1][10])
}
