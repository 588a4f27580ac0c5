package timeouts_test

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/diocesehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

func TestConfigure_IgnoresZero(t *testing.T) {
	t.Cleanup(timeouts.Reset)

	timeouts.Configure(timeouts.Config{Medium: 20 * time.Second})
	if timeouts.Medium() != 20*time.Second {
		t.Errorf("Medium = %v", timeouts.Medium())
	}
	if timeouts.Short() != timeouts.DefaultShort {
		t.Errorf("Short changed to %v", timeouts.Short())
	}

	timeouts.Reset()
	if got := timeouts.Current(); got.Medium != timeouts.DefaultMedium || got.Ping != timeouts.DefaultPing {
		t.Errorf("after reset: %+v", got)
	}
}

func TestWithTimeout(t *testing.T) {
	ctx, cancel := timeouts.WithTimeout(context.Background(), time.Millisecond, zap.NewNop(), "test")
	<-ctx.Done()
	cancel()
	if ctx.Err() != context.DeadlineExceeded {
		t.Errorf("err = %v", ctx.Err())
	}
}
