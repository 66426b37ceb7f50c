package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MrSnakeDoc/marketboard/internal/logger"
)

type fakeSyncer struct {
	calls   atomic.Int32
	changed bool
	err     error
}

func (f *fakeSyncer) Sync(context.Context) (bool, error) {
	f.calls.Add(1)
	return f.changed, f.err
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSlotReloaderTicks(t *testing.T) {
	f := &fakeSyncer{}
	sr := NewSlotReloader(f, logger.NewNop(), 10*time.Millisecond, nil)
	sr.Start(context.Background())
	defer sr.Stop()

	waitFor(t, func() bool { return f.calls.Load() >= 2 })
}

func TestSlotReloaderManualTrigger(t *testing.T) {
	f := &fakeSyncer{changed: true}
	trigger := make(chan struct{}, 1)
	sr := NewSlotReloader(f, logger.NewNop(), 0, trigger)
	sr.Start(context.Background())
	defer sr.Stop()

	trigger <- struct{}{}
	waitFor(t, func() bool { return f.calls.Load() == 1 })
}

func TestSlotReloaderStopsOnContext(t *testing.T) {
	f := &fakeSyncer{}
	sr := NewSlotReloader(f, logger.NewNop(), time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	sr.Start(ctx)
	cancel()

	select {
	case <-sr.done:
	case <-time.After(time.Second):
		t.Fatal("loop did not exit on context cancel")
	}
	sr.Stop() // safe after the loop exited
}

func TestReload(t *testing.T) {
	tests := []struct {
		name    string
		changed bool
		err     error
		want    bool
	}{
		{"changed", true, nil, true},
		{"unchanged", false, nil, false},
		{"error", true, errors.New("redis down"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sr := NewSlotReloader(&fakeSyncer{changed: tt.changed, err: tt.err}, logger.NewNop(), 0, nil)
			if got := sr.Reload(context.Background()); got != tt.want {
				t.Errorf("Reload() = %v, want %v", got, tt.want)
			}
		})
	}
}
