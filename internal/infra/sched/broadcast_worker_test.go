package sched

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type stubBroadcaster struct {
	ticks   atomic.Int64
	tickErr error
}

func (s *stubBroadcaster) Tick(ctx context.Context) (int, int, error) {
	s.ticks.Add(1)
	if s.tickErr != nil {
		return 0, 0, s.tickErr
	}
	return 1, 0, nil
}

func TestBroadcastWorker_TicksOnInterval(t *testing.T) {
	logger := zerolog.Nop()
	stub := &stubBroadcaster{}
	worker := NewBroadcastWorker(10*time.Millisecond, stub, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for stub.ticks.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("worker never ticked twice")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestBroadcastWorker_SurvivesTickError(t *testing.T) {
	logger := zerolog.Nop()
	stub := &stubBroadcaster{tickErr: errors.New("boom")}
	worker := NewBroadcastWorker(10*time.Millisecond, stub, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for stub.ticks.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("worker stopped ticking after an error")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done
}

func TestBroadcastWorker_StopsBeforeFirstTick(t *testing.T) {
	logger := zerolog.Nop()
	stub := &stubBroadcaster{}
	worker := NewBroadcastWorker(time.Hour, stub, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := worker.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if stub.ticks.Load() != 0 {
		t.Errorf("no tick should fire before the first interval")
	}
}
