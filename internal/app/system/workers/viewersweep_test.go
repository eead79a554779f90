package workers_test

import (
	"testing"
	"time"

	"github.com/dalemusser/templepulse/internal/app/system/analytics"
	"github.com/dalemusser/templepulse/internal/app/system/dashstate"
	"github.com/dalemusser/templepulse/internal/app/system/workers"
	"go.uber.org/zap"
)

func TestViewerSweep_RemovesIdleContainers(t *testing.T) {
	src := analytics.NewMockSource(analytics.Options{})
	reg := dashstate.NewRegistry(func() *dashstate.Container {
		return dashstate.New(src, time.Second, zap.NewNop())
	})
	c := reg.Get("viewer", "wat-pho")

	w := workers.NewViewerSweep(reg, zap.NewNop(), 5*time.Millisecond, time.Millisecond)
	w.Start()
	defer w.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for reg.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if reg.Len() != 0 {
		t.Fatalf("Len = %d, want 0", reg.Len())
	}
	if !c.Closed() {
		t.Error("swept container should be closed")
	}
}

func TestViewerSweep_StopIsIdempotent(t *testing.T) {
	reg := dashstate.NewRegistry(nil)
	w := workers.NewViewerSweep(reg, zap.NewNop(), time.Hour, time.Hour)
	w.Start()
	w.Stop()
	w.Stop()
}
