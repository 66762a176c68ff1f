package match

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/ultitrack/recorder/pkg/core"
)

// Context holds the current match metadata and the latest score. Loggers and
// sinks read it while the dispatcher writes it.
type Context struct {
	mu    sync.RWMutex
	match core.Match
	score core.Score
}

// NewContext creates a new Context with default values
func NewContext() *Context {
	return &Context{
		match: core.Match{Name: "No match loaded"},
	}
}

// GetMatch returns the current match
func (mc *Context) GetMatch() core.Match {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.match
}

// SetMatch replaces the match and resets the score
func (mc *Context) SetMatch(m core.Match) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.match = m
	mc.score = core.Score{}
}

func (mc *Context) GetScore() core.Score {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.score
}

func (mc *Context) SetScore(s core.Score) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.score = s
}

// LogAttrs is a logging.ContextProvider: every log line carries the match
// name and running score.
func (mc *Context) LogAttrs() []slog.Attr {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return []slog.Attr{
		slog.String("match", mc.match.Name),
		slog.String("score", fmt.Sprintf("%d-%d", mc.score.Home, mc.score.Away)),
	}
}
