package timeouts_test

import (
	"testing"
	"time"

	"github.com/dalemusser/templepulse/internal/app/system/timeouts"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(timeouts.Reset)

	timeouts.Configure(timeouts.Config{Fetch: 3 * time.Second})
	if got := timeouts.Fetch(); got != 3*time.Second {
		t.Errorf("Fetch = %v, want 3s", got)
	}
	if got := timeouts.Short(); got != timeouts.DefaultShort {
		t.Errorf("Short = %v, want default", got)
	}

	timeouts.Reset()
	if got := timeouts.Fetch(); got != timeouts.DefaultFetch {
		t.Errorf("Fetch after Reset = %v, want default", got)
	}
}
