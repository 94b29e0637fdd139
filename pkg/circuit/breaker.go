package circuit

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

var (
	ErrOpen          = errors.New("circuit breaker is open")
	ErrTrialInFlight = errors.New("circuit breaker trial in flight")
)

// Config tunes a Breaker.
type Config struct {
	// Threshold consecutive failures open the circuit.
	Threshold int
	// Cooldown is how long the circuit stays open before a trial call.
	Cooldown time.Duration
	// Trials is the number of successful half-open calls that close it again.
	Trials int
}

func DefaultConfig() Config {
	return Config{
		Threshold: 5,
		Cooldown:  30 * time.Second,
		Trials:    2,
	}
}

// Breaker fails calls to a dependency fast once it has failed Threshold
// times in a row. While half open, one trial runs at a time.
type Breaker struct {
	mu        sync.Mutex
	name      string
	config    Config
	logger    *zap.Logger
	state     State
	failures  int
	successes int
	openedAt  time.Time
	trialing  bool
}

func NewBreaker(name string, config Config, logger *zap.Logger) *Breaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Threshold <= 0 {
		config.Threshold = 1
	}
	if config.Trials <= 0 {
		config.Trials = 1
	}
	return &Breaker{name: name, config: config, logger: logger}
}

// Execute runs fn unless the circuit is open and records its outcome.
func (b *Breaker) Execute(fn func() error) error {
	if err := b.Allow(); err != nil {
		return err
	}
	err := fn()
	b.Record(err)
	return err
}

func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		if time.Since(b.openedAt) < b.config.Cooldown {
			return ErrOpen
		}
		b.transition(StateHalfOpen)
		b.trialing = true
		return nil
	case StateHalfOpen:
		if b.trialing {
			return ErrTrialInFlight
		}
		b.trialing = true
		return nil
	default:
		return nil
	}
}

func (b *Breaker) Record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.trialing = false
	if err != nil {
		b.failures++
		b.successes = 0
		if b.state == StateHalfOpen || b.failures >= b.config.Threshold {
			b.openedAt = time.Now()
			b.transition(StateOpen)
		}
		return
	}

	b.failures = 0
	if b.state == StateHalfOpen {
		b.successes++
		if b.successes >= b.config.Trials {
			b.transition(StateClosed)
		}
	}
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// must hold mu
func (b *Breaker) transition(to State) {
	if b.state == to {
		return
	}
	from := b.state
	b.state = to
	if to == StateClosed {
		b.failures = 0
		b.successes = 0
	}

	b.logger.Warn("Circuit breaker state changed",
		zap.String("name", b.name),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
	)
}
