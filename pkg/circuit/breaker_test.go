package circuit

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

var errRedisDown = errors.New("dial tcp: connection refused")

func TestBreakerOpensAfterThreshold(t *testing.T) {
	breaker := NewBreaker("redis", Config{Threshold: 3, Cooldown: time.Hour, Trials: 1}, zap.NewNop())

	for i := 0; i < 2; i++ {
		breaker.Record(errRedisDown)
	}
	if breaker.State() != StateClosed {
		t.Fatalf("Expected CLOSED below the threshold, got %s", breaker.State())
	}

	breaker.Record(errRedisDown)
	if breaker.State() != StateOpen {
		t.Fatalf("Expected OPEN after 3 failures, got %s", breaker.State())
	}

	called := false
	err := breaker.Execute(func() error { called = true; return nil })
	if !errors.Is(err, ErrOpen) {
		t.Errorf("Expected ErrOpen, got %v", err)
	}
	if called {
		t.Error("Expected the call to be skipped while open")
	}
}

func TestBreakerSuccessResetsFailures(t *testing.T) {
	breaker := NewBreaker("redis", Config{Threshold: 2, Cooldown: time.Hour}, nil)

	breaker.Record(errRedisDown)
	breaker.Record(nil)
	breaker.Record(errRedisDown)

	if breaker.State() != StateClosed {
		t.Errorf("Expected failures to be consecutive, got %s", breaker.State())
	}
}

func TestBreakerHalfOpenTrial(t *testing.T) {
	breaker := NewBreaker("redis", Config{Threshold: 1, Cooldown: 20 * time.Millisecond, Trials: 2}, nil)
	breaker.Record(errRedisDown)

	time.Sleep(30 * time.Millisecond)

	if err := breaker.Allow(); err != nil {
		t.Fatalf("Expected a trial after the cooldown, got %v", err)
	}
	if breaker.State() != StateHalfOpen {
		t.Fatalf("Expected HALF_OPEN, got %s", breaker.State())
	}
	if err := breaker.Allow(); !errors.Is(err, ErrTrialInFlight) {
		t.Errorf("Expected a single trial at a time, got %v", err)
	}

	breaker.Record(nil)
	if err := breaker.Execute(func() error { return nil }); err != nil {
		t.Fatalf("Expected second trial to run, got %v", err)
	}
	if breaker.State() != StateClosed {
		t.Errorf("Expected CLOSED after 2 good trials, got %s", breaker.State())
	}
}

func TestBreakerFailedTrialReopens(t *testing.T) {
	breaker := NewBreaker("redis", Config{Threshold: 1, Cooldown: 20 * time.Millisecond, Trials: 1}, nil)
	breaker.Record(errRedisDown)
	time.Sleep(30 * time.Millisecond)

	err := breaker.Execute(func() error { return errRedisDown })
	if !errors.Is(err, errRedisDown) {
		t.Errorf("Expected the trial error, got %v", err)
	}
	if breaker.State() != StateOpen {
		t.Errorf("Expected OPEN after a failed trial, got %s", breaker.State())
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateClosed, "CLOSED"},
		{StateOpen, "OPEN"},
		{StateHalfOpen, "HALF_OPEN"},
		{State(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %s, want %s", tt.state, got, tt.expected)
		}
	}
}
