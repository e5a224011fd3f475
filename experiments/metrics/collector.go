package metrics

import (
	"sync/atomic"
	"time"

	"uttt/game"
)

type SearchMetric struct {
	Depth         int
	Duration      time.Duration
	Nodes         int
	CacheAttempts int
	CacheHits     int
	Score         int32
	Stopped       bool
}

type MoveMetric struct {
	Step   int
	Player game.PlayerSymbol
	Move   game.Move
	SearchMetric
}

type GameMetric struct {
	ID             string // uuid
	StartingPlayer game.PlayerSymbol
	Winner         game.GameStatus
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector accumulates the counters of a single search.
type Collector interface {
	Start(depth int)
	AddNode()
	AddCacheAttempt()
	AddCacheHit()
	SetStopped()
	Complete(score int32) SearchMetric
}

type collector struct {
	depth     int
	startTime time.Time
	nodes     atomic.Int32
	attempts  atomic.Int32
	hits      atomic.Int32
	stopped   atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth int) {
	m.depth = depth
	m.startTime = time.Now()
	m.nodes.Store(0)
	m.attempts.Store(0)
	m.hits.Store(0)
	m.stopped.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddCacheAttempt() {
	m.attempts.Add(1)
}

func (m *collector) AddCacheHit() {
	m.hits.Add(1)
}

func (m *collector) SetStopped() {
	m.stopped.Store(true)
}

func (m *collector) Complete(score int32) SearchMetric {
	return SearchMetric{
		Depth:         m.depth,
		Duration:      time.Since(m.startTime),
		Nodes:         int(m.nodes.Load()),
		CacheAttempts: int(m.attempts.Load()),
		CacheHits:     int(m.hits.Load()),
		Score:         score,
		Stopped:       m.stopped.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int)                   {}
func (m *dummyCollector) AddNode()                          {}
func (m *dummyCollector) AddCacheAttempt()                  {}
func (m *dummyCollector) AddCacheHit()                      {}
func (m *dummyCollector) SetStopped()                       {}
func (m *dummyCollector) Complete(score int32) SearchMetric { return SearchMetric{} }
