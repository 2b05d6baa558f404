package frameloop

import (
	"math"
	"testing"
	"time"
)

// fakeClock advances only when the pacer sleeps or the test says so.
type fakeClock struct {
	t      time.Time
	slept  []time.Duration
	jitter time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.t = c.t.Add(d + c.jitter)
}

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestPacer(fps int, c *fakeClock) *Pacer {
	p := NewPacer(fps)
	p.now = c.now
	p.sleep = c.sleep
	return p
}

func TestPacerHoldsRate(t *testing.T) {
	c := newFakeClock()
	p := newTestPacer(90, c)
	frame := time.Second / 90

	if got := p.Tick(); got != 0 {
		t.Fatalf("first Tick = %v, want 0", got)
	}
	if len(c.slept) != 0 {
		t.Fatal("first Tick slept")
	}

	c.advance(3 * time.Millisecond)
	if got := p.Tick(); got != frame {
		t.Fatalf("Tick = %v, want %v", got, frame)
	}
	if len(c.slept) != 1 || c.slept[0] != frame-3*time.Millisecond {
		t.Fatalf("slept %v, want one sleep of %v", c.slept, frame-3*time.Millisecond)
	}
}

func TestPacerSlowFrameDoesNotSleep(t *testing.T) {
	c := newFakeClock()
	p := newTestPacer(90, c)
	p.Tick()
	c.advance(50 * time.Millisecond)
	if got := p.Tick(); got != 50*time.Millisecond {
		t.Fatalf("Tick = %v, want 50ms", got)
	}
	if len(c.slept) != 0 {
		t.Fatalf("slept %v on an over-budget frame", c.slept)
	}
}

func TestPacerFPS(t *testing.T) {
	c := newFakeClock()
	p := newTestPacer(50, c)
	if fps := p.FPS(); fps != 0 {
		t.Fatalf("FPS before any frame = %v, want 0", fps)
	}
	p.Tick()
	if fps := p.FPS(); fps != 0 {
		t.Fatalf("FPS after first tick = %v, want 0", fps)
	}
	for i := 0; i < 25; i++ {
		p.Tick()
	}
	if fps := p.FPS(); math.Abs(fps-50) > 1e-9 {
		t.Fatalf("FPS = %v, want 50", fps)
	}
	if math.IsInf(p.FPS(), 0) || math.IsNaN(p.FPS()) {
		t.Fatal("FPS is not finite")
	}
}

func TestNewPacerClampsRate(t *testing.T) {
	if p := NewPacer(0); p.frame != time.Second {
		t.Fatalf("frame = %v, want 1s", p.frame)
	}
}
