package panel

import "math/rand/v2"

// SupporterProbability is the chance a new panel shows the supporter widget.
const SupporterProbability = 0.6

// Decider decides, once per panel, whether the supporter widget is shown.
type Decider interface {
	ShowSupporter() bool
}

// Fixed always returns the same decision.
type Fixed bool

func (f Fixed) ShowSupporter() bool { return bool(f) }

// Probability shows the widget with probability p.
type Probability struct {
	P   float64
	Rng *rand.Rand
}

// NewProbability returns a Probability decider seeded from the runtime.
func NewProbability(p float64) *Probability {
	return &Probability{P: p, Rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

func (d *Probability) ShowSupporter() bool {
	return d.Rng.Float64() < d.P
}
