package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFlushRunsInRequestOrder(t *testing.T) {
	l := NewLoop()
	var got []string
	l.Request(func(time.Time) { got = append(got, "a") })
	l.Request(func(time.Time) { got = append(got, "b") })
	l.Request(func(time.Time) { got = append(got, "c") })

	require.Equal(t, 3, l.Pending())
	require.Equal(t, 3, l.Flush(time.Unix(0, 0)))
	require.Equal(t, []string{"a", "b", "c"}, got)
	require.Zero(t, l.Pending())
}

func TestFlushPassesFrameTimestamp(t *testing.T) {
	l := NewLoop()
	now := time.Date(2025, 10, 2, 10, 0, 0, 0, time.UTC)
	var seen []time.Time
	l.Request(func(ts time.Time) { seen = append(seen, ts) })
	l.Request(func(ts time.Time) { seen = append(seen, ts) })
	l.Flush(now)
	require.Equal(t, []time.Time{now, now}, seen)
}

func TestRequestDuringFlushWaitsForNextFrame(t *testing.T) {
	l := NewLoop()
	calls := 0
	var cb Callback
	cb = func(time.Time) {
		calls++
		l.Request(cb)
	}
	l.Request(cb)

	require.Equal(t, 1, l.Flush(time.Unix(1, 0)))
	require.Equal(t, 1, calls)
	require.Equal(t, 1, l.Pending())

	require.Equal(t, 1, l.Flush(time.Unix(2, 0)))
	require.Equal(t, 2, calls)
}

func TestCancelQueued(t *testing.T) {
	l := NewLoop()
	ran := false
	id := l.Request(func(time.Time) { ran = true })
	l.Cancel(id)
	l.Cancel(id)

	require.Zero(t, l.Pending())
	require.Zero(t, l.Flush(time.Unix(0, 0)))
	require.False(t, ran)
}

func TestCancelWithinSameBatch(t *testing.T) {
	l := NewLoop()
	var second ID
	secondRan := false
	l.Request(func(time.Time) { l.Cancel(second) })
	second = l.Request(func(time.Time) { secondRan = true })

	require.Equal(t, 1, l.Flush(time.Unix(0, 0)))
	require.False(t, secondRan)
}

func TestCancelUnknownIsNoop(t *testing.T) {
	l := NewLoop()
	l.Request(func(time.Time) {})
	l.Cancel(ID(42))
	require.Equal(t, 1, l.Pending())
}

func TestFlushEmpty(t *testing.T) {
	require.Zero(t, NewLoop().Flush(time.Now()))
}
