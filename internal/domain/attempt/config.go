package attempt

import (
	"math/rand"
	"time"
)

// Config holds optional settings for a new attempt.
type Config struct {
	MaxDuration *time.Duration // nil = no time limit
	Shuffle     bool           // randomize Likert and forced-choice item order
	Rebuilds    int            // whole pair-set rebuilds when construction comes out short
	Rand        *rand.Rand     // nil = seeded from the clock
}

// DefaultConfig shuffles items, allows 10 pair-set rebuilds and sets no time
// limit.
func DefaultConfig() Config {
	return Config{
		MaxDuration: nil,
		Shuffle:     true,
		Rebuilds:    10,
		Rand:        nil,
	}
}

func (c Config) rng() *rand.Rand {
	if c.Rand != nil {
		return c.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
