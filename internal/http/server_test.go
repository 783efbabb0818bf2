package httpserver

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/shiftcrew/shiftcrew/internal/config"
)

func TestServerStart_CleanShutdownOnContextCancel(t *testing.T) {
	cfg := config.Config{
		Port:             "0",
		AuthToken:        "secret",
		ReadTimeoutSecs:  1,
		WriteTimeoutSecs: 1,
		IdleTimeoutSecs:  1,
	}
	srv := New(cfg, nil, nil, nil, nil, nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	// Let the listener come up before stopping it.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		// A signal-driven stop must surface as context.Canceled so the
		// entrypoint can tell it apart from a real server failure.
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Start returned %v, want context.Canceled", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("Start did not return after context cancellation")
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown after stop: %v", err)
	}
}
