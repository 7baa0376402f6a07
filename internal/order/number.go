package order

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// DefaultPrefix is prepended to every generated order number.
const DefaultPrefix = "HBL"

// NumberGenerator mints order numbers of the form <prefix><yymmdd><nnn>.
// The three-digit suffix is a per-day counter seeded at a random offset, so
// numbers do not collide within a process run and do not reveal daily volume.
type NumberGenerator struct {
	Prefix string
	Now    func() time.Time

	mu  sync.Mutex
	day string
	seq int
}

func (g *NumberGenerator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// Next returns a fresh order number for the current day.
func (g *NumberGenerator) Next() string {
	prefix := g.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	day := g.now().Format("060102")

	g.mu.Lock()
	if day != g.day {
		g.day = day
		g.seq = rand.IntN(1000)
	} else {
		g.seq = (g.seq + 1) % 1000
	}
	seq := g.seq
	g.mu.Unlock()

	return fmt.Sprintf("%s%s%03d", prefix, day, seq)
}
