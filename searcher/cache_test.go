package searcher

import (
	"sync"
	"testing"

	"uttt/game"

	"github.com/stretchr/testify/require"
)

func TestCaches(t *testing.T) {
	caches := map[string]func() Cache{
		"map":     func() Cache { return NewMapCache() },
		"sharded": func() Cache { return NewShardedCache(4) },
	}
	for name, newCache := range caches {
		t.Run(name, func(t *testing.T) {
			cache := newCache()
			b := game.NewBoard()
			b.Play(game.MustMove(0, 0))

			_, ok := cache.Load(b)
			require.False(t, ok)

			cache.Store(b, 3)
			score, ok := cache.Load(b)
			require.True(t, ok)
			require.Equal(t, Score(3), score)

			other := game.NewBoard()
			other.Play(game.MustMove(0, 1))
			_, ok = cache.Load(other)
			require.False(t, ok, "Only structurally equal boards share an entry")

			cache.Store(b, 4)
			require.Equal(t, 1, cache.Len(), "Storing again overwrites")

			cache.Clear()
			require.Zero(t, cache.Len())
		})
	}
}

func TestShardedCacheConcurrentAccess(t *testing.T) {
	cache := NewShardedCache(8)
	boards := randomBoards(17, 10)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, b := range boards {
				if _, ok := cache.Load(b); !ok {
					cache.Store(b, CalcStaticAnalysis(b))
				}
			}
		}()
	}
	wg.Wait()

	distinct := map[game.Board]bool{}
	for _, b := range boards {
		distinct[b] = true
		score, ok := cache.Load(b)
		require.True(t, ok)
		require.Equal(t, CalcStaticAnalysis(b), score)
	}
	require.Equal(t, len(distinct), cache.Len())
}

func TestNewShardedCacheNeedsOneShard(t *testing.T) {
	cache := NewShardedCache(0)
	require.Len(t, cache.shards, 1)
}
