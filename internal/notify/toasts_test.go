package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestToastsExpire(t *testing.T) {
	now := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	ts := NewToasts(2 * time.Second)
	ts.now = func() time.Time { return now }

	ts.Info("Button is now locked.")
	now = now.Add(time.Second)
	ts.Info("d20: 14")

	active := ts.Active()
	require.Len(t, active, 2)
	require.Equal(t, "Button is now locked.", active[0].Text)

	now = now.Add(1500 * time.Millisecond)
	active = ts.Active()
	require.Len(t, active, 1)
	require.Equal(t, "d20: 14", active[0].Text)

	now = now.Add(time.Hour)
	require.Empty(t, ts.Active())
}

func TestToastsDefaultTTL(t *testing.T) {
	ts := NewToasts(0)
	require.Equal(t, 3*time.Second, ts.ttl)
}
