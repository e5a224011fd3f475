// meta/meta.go
package meta

// DefaultDepth is the negamax search depth used when none is configured.
const DefaultDepth = 3

// MaxPlies caps a game; a board has 81 cells so no game is longer.
const MaxPlies = 81

// MaxIllegalMoves is how often a player may propose an illegal move in a row.
const MaxIllegalMoves = 3

// DefaultCacheShards is the shard count of a shared score cache.
const DefaultCacheShards = 64

const (
	DefaultGames       = 10
	DefaultConcurrency = 1
	DefaultSeed        = 1
	SettingsFile       = "settings.yaml"
)
