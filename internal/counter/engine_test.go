package counter

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/campusboard/internal/frame"
	"github.com/jask/campusboard/internal/testdata"
)

const frameStep = 16 * time.Millisecond

var epoch = time.Date(2025, 10, 2, 10, 0, 0, 0, time.UTC)

// drive flushes frames every frameStep from start until nothing is pending or
// until has elapsed, and returns the display value seen after each frame.
func drive(l *frame.Loop, e *Engine, start time.Time, until time.Duration) []float64 {
	var seen []float64
	for off := time.Duration(0); l.Pending() > 0 && off <= until; off += frameStep {
		l.Flush(start.Add(off))
		seen = append(seen, e.Display())
	}
	return seen
}

func TestHeroCounterReachesTarget(t *testing.T) {
	l := frame.NewLoop()
	e := New(l, Options{Duration: HeroDuration})
	e.SetTarget(2850)

	seen := drive(l, e, epoch, HeroDuration)
	require.Len(t, seen, int(HeroDuration/frameStep)+1)
	require.Zero(t, l.Pending())
	require.True(t, e.Done())
	require.Equal(t, 2850.0, e.Display())
	require.Equal(t, "2,850", e.Text())
}

func TestDecoratedStringTarget(t *testing.T) {
	l := frame.NewLoop()
	e := New(l, Options{Prefix: "₹", Suffix: " Cr"})
	e.SetTarget("₹13.1 Cr")

	l.Flush(epoch)
	l.Flush(epoch.Add(CompactDuration))
	require.True(t, e.Done())
	require.Equal(t, 13.1, e.Display())
	require.Equal(t, "₹13.1 Cr", e.Text())
}

func TestFirstFrameRecordsStart(t *testing.T) {
	l := frame.NewLoop()
	e := New(l, Options{})
	e.SetTarget(100)
	require.Equal(t, 1, l.Pending())

	l.Flush(epoch.Add(time.Hour))
	require.Zero(t, e.Display())
	require.True(t, e.Running())
}

func TestQuarticEasing(t *testing.T) {
	l := frame.NewLoop()
	e := New(l, Options{Duration: time.Second})
	e.SetTarget(100)
	l.Flush(epoch)
	l.Flush(epoch.Add(500 * time.Millisecond))
	require.InDelta(t, 93.75, e.Display(), 1e-9)
}

func TestLinearEasing(t *testing.T) {
	l := frame.NewLoop()
	e := New(l, Options{Duration: time.Second, Easing: Linear})
	e.SetTarget(100)
	l.Flush(epoch)
	l.Flush(epoch.Add(250 * time.Millisecond))
	require.InDelta(t, 25, e.Display(), 1e-9)
}

func TestDisplayNeverDecreases(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, target := range testdata.Targets(r, 50) {
		l := frame.NewLoop()
		e := New(l, Options{Duration: HeroDuration})
		e.SetTarget(target)
		seen := drive(l, e, epoch, 2*HeroDuration)
		require.NotEmpty(t, seen)
		for i := 1; i < len(seen); i++ {
			require.GreaterOrEqual(t, seen[i], seen[i-1], "target %v frame %d", target, i)
			require.LessOrEqual(t, seen[i], target)
		}
		require.Equal(t, target, seen[len(seen)-1])
		require.True(t, e.Done())
	}
}

func TestNegativeTargetDescends(t *testing.T) {
	l := frame.NewLoop()
	e := New(l, Options{})
	e.SetTarget(-250)
	seen := drive(l, e, epoch, 2*CompactDuration)
	for i := 1; i < len(seen); i++ {
		require.LessOrEqual(t, seen[i], seen[i-1])
	}
	require.Equal(t, -250.0, e.Display())
	require.Equal(t, "-250", e.Text())
}

func TestInvalidTargetSchedulesNothing(t *testing.T) {
	for _, raw := range []any{math.NaN(), "N/A", "", math.Inf(1), nil, false} {
		l := frame.NewLoop()
		e := New(l, Options{})
		require.NotPanics(t, func() { e.SetTarget(raw)() })
		require.Zero(t, l.Pending(), "raw %v", raw)
		require.False(t, e.Running())
		_, ok := e.Target()
		require.False(t, ok)
		require.Equal(t, "0", e.Text())
	}
}

func TestInvalidTargetKeepsLastValue(t *testing.T) {
	l := frame.NewLoop()
	e := New(l, Options{})
	e.SetTarget(500)
	drive(l, e, epoch, 2*CompactDuration)
	require.True(t, e.Done())

	e.SetTarget("N/A")
	require.Zero(t, l.Pending())
	require.Equal(t, 500.0, e.Display())
	require.True(t, e.Done())
}

func TestInvalidTargetLeavesRunningAnimation(t *testing.T) {
	l := frame.NewLoop()
	e := New(l, Options{})
	e.SetTarget(500)
	l.Flush(epoch)
	l.Flush(epoch.Add(300 * time.Millisecond))
	before := e.Display()

	e.SetTarget("—")
	require.Equal(t, 1, l.Pending())
	require.Equal(t, before, e.Display())
	target, _ := e.Target()
	require.Equal(t, 500.0, target)
}

func TestZeroTargetCompletes(t *testing.T) {
	l := frame.NewLoop()
	e := New(l, Options{})
	e.SetTarget(0)
	for _, v := range drive(l, e, epoch, 2*CompactDuration) {
		require.Zero(t, v)
	}
	require.True(t, e.Done())
	require.Zero(t, l.Pending())
}

// A new target restarts from zero rather than from the value on screen.
func TestRetargetRestartsFromZero(t *testing.T) {
	l := frame.NewLoop()
	e := New(l, Options{Duration: time.Second})
	e.SetTarget(1000)
	l.Flush(epoch)
	l.Flush(epoch.Add(500 * time.Millisecond))
	mid := e.Display()
	require.Greater(t, mid, 900.0)

	e.SetTarget(2000)
	require.Equal(t, 1, l.Pending(), "old frame must be cancelled, new one queued")
	require.Zero(t, e.Display())

	l.Flush(epoch.Add(600 * time.Millisecond))
	require.Zero(t, e.Display(), "new run records its own start")
	l.Flush(epoch.Add(1100 * time.Millisecond))
	require.InDelta(t, 2000*EaseOutQuart(0.5), e.Display(), 1e-9)
	l.Flush(epoch.Add(1600 * time.Millisecond))
	require.Equal(t, 2000.0, e.Display())
}

func TestSameNumericTargetDoesNotRestart(t *testing.T) {
	l := frame.NewLoop()
	e := New(l, Options{Duration: time.Second, Suffix: "%"})
	e.SetTarget("92.1%")
	l.Flush(epoch)
	l.Flush(epoch.Add(400 * time.Millisecond))
	mid := e.Display()

	e.SetTarget("92.1 %")
	e.SetTarget(92.1)
	require.Equal(t, mid, e.Display())
	require.Equal(t, 1, l.Pending())

	l.Flush(epoch.Add(time.Second))
	require.Equal(t, "92.1%", e.Text())

	e.SetTarget("92.1%")
	require.Zero(t, l.Pending())
	require.True(t, e.Done())
}

func TestCancelStopsRun(t *testing.T) {
	l := frame.NewLoop()
	e := New(l, Options{})
	cancel := e.SetTarget(8535)
	l.Flush(epoch)
	l.Flush(epoch.Add(200 * time.Millisecond))
	frozen := e.Display()

	cancel()
	cancel()
	require.Zero(t, l.Pending())
	require.False(t, e.Running())
	require.False(t, e.Done())
	require.Equal(t, frozen, e.Display())

	// a stopped run can be restarted with the same target
	e.SetTarget(8535)
	require.Equal(t, 1, l.Pending())
	require.Zero(t, e.Display())
}

func TestStaleCancelDoesNotStopNewRun(t *testing.T) {
	l := frame.NewLoop()
	e := New(l, Options{})
	old := e.SetTarget(10)
	e.SetTarget(20)
	old()
	require.True(t, e.Running())
	require.Equal(t, 1, l.Pending())
}

func TestSettlePinsTarget(t *testing.T) {
	l := frame.NewLoop()
	e := New(l, Options{Suffix: "%"})
	e.SetTarget("71")
	e.Settle()
	require.Zero(t, l.Pending())
	require.True(t, e.Done())
	require.Equal(t, "71%", e.Text())

	idle := New(l, Options{})
	idle.Settle()
	require.False(t, idle.Done())
}

func TestNonPositiveDurationCompletesOnFirstFrame(t *testing.T) {
	l := frame.NewLoop()
	e := New(l, Options{Duration: -time.Millisecond})
	e.SetTarget(42)
	l.Flush(epoch)
	require.True(t, e.Done())
	require.Equal(t, 42.0, e.Display())
}

func TestEasingByName(t *testing.T) {
	for _, name := range EasingNames {
		fn, err := EasingByName(name)
		require.NoError(t, err)
		require.Zero(t, fn(0))
		require.Equal(t, 1.0, fn(1))
	}
	_, err := EasingByName("bounce")
	require.Error(t, err)
}
