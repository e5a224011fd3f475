package searcher

import (
	"sync"

	"uttt/game"
)

// Cache maps a non-terminal board to its static score. Boards are compared
// structurally, so transpositions share an entry.
type Cache interface {
	Load(board game.Board) (Score, bool)
	Store(board game.Board, score Score)
	Len() int
	Clear()
}

// MapCache is a plain map for a single searcher. It is not safe for
// concurrent use.
type MapCache struct {
	scores map[game.Board]Score
}

func NewMapCache() *MapCache {
	return &MapCache{scores: make(map[game.Board]Score)}
}

func (c *MapCache) Load(board game.Board) (Score, bool) {
	score, ok := c.scores[board]
	return score, ok
}

func (c *MapCache) Store(board game.Board, score Score) {
	c.scores[board] = score
}

func (c *MapCache) Len() int {
	return len(c.scores)
}

func (c *MapCache) Clear() {
	clear(c.scores)
}

type shard struct {
	mu     sync.RWMutex
	scores map[game.Board]Score
}

// ShardedCache splits its entries over lock-striped shards picked by the
// board hash. Players searching concurrently can share one.
type ShardedCache struct {
	shards []shard
}

func NewShardedCache(shards int) *ShardedCache {
	if shards < 1 {
		shards = 1
	}
	c := &ShardedCache{shards: make([]shard, shards)}
	for i := range c.shards {
		c.shards[i].scores = make(map[game.Board]Score)
	}
	return c
}

func (c *ShardedCache) shardFor(board game.Board) *shard {
	return &c.shards[board.Hash()%uint64(len(c.shards))]
}

func (c *ShardedCache) Load(board game.Board) (Score, bool) {
	s := c.shardFor(board)
	s.mu.RLock()
	defer s.mu.RUnlock()
	score, ok := s.scores[board]
	return score, ok
}

func (c *ShardedCache) Store(board game.Board, score Score) {
	s := c.shardFor(board)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[board] = score
}

func (c *ShardedCache) Len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.RLock()
		n += len(s.scores)
		s.mu.RUnlock()
	}
	return n
}

func (c *ShardedCache) Clear() {
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		clear(s.scores)
		s.mu.Unlock()
	}
}
