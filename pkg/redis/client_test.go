package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Payphone-Digital/jobboard/pkg/circuit"
	"github.com/Payphone-Digital/jobboard/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// unreachable points at a closed port so every command fails fast.
func unreachable(t *testing.T) *Client {
	t.Helper()
	logger.SetLogger(zap.NewNop())

	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewFromClient(rdb, circuit.Config{Threshold: 2, Cooldown: time.Hour, Trials: 1})
}

func TestClientOpensCircuit(t *testing.T) {
	client := unreachable(t)
	ctx := context.Background()

	var dest map[string]any
	for i := 0; i < 2; i++ {
		if _, err := client.GetJSON(ctx, "job:1", &dest); err == nil {
			t.Fatal("Expected an error from an unreachable server")
		}
	}

	if client.BreakerState() != circuit.StateOpen {
		t.Fatalf("Expected OPEN, got %s", client.BreakerState())
	}

	err := client.SetJSON(ctx, "job:1", map[string]string{"name": "x"}, time.Minute)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable while open, got %v", err)
	}

	_, err = client.SlidingWindow(ctx, "rate_limit:1.2.3.4", time.Minute, time.Now())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable while open, got %v", err)
	}
}

func TestDeleteWithoutKeys(t *testing.T) {
	client := unreachable(t)

	if err := client.Delete(context.Background()); err != nil {
		t.Errorf("Expected no-op for empty keys, got %v", err)
	}
	if client.BreakerState() != circuit.StateClosed {
		t.Errorf("Expected no command to be sent, got %s", client.BreakerState())
	}
}
