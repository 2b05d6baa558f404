package frameloop

import "time"

// fpsSamples is how many recent frame times the FPS average covers.
const fpsSamples = 10

// Pacer holds the loop to a target frame rate by sleeping away whatever is left
// of each frame's budget.
type Pacer struct {
	frame   time.Duration
	last    time.Time
	samples [fpsSamples]time.Duration
	count   int
	next    int

	now   func() time.Time
	sleep func(time.Duration)
}

// NewPacer returns a pacer targeting fps frames per second.
func NewPacer(fps int) *Pacer {
	if fps <= 0 {
		fps = 1
	}
	return &Pacer{
		frame: time.Second / time.Duration(fps),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Tick blocks until at least one frame interval has passed since the previous
// Tick and returns the time that actually elapsed. The first call returns 0
// without waiting.
func (p *Pacer) Tick() time.Duration {
	now := p.now()
	if p.last.IsZero() {
		p.last = now
		return 0
	}
	if wait := p.frame - now.Sub(p.last); wait > 0 {
		p.sleep(wait)
		now = p.now()
	}
	elapsed := now.Sub(p.last)
	p.last = now

	p.samples[p.next] = elapsed
	p.next = (p.next + 1) % fpsSamples
	if p.count < fpsSamples {
		p.count++
	}
	return elapsed
}

// FPS is the average frame rate over the last few ticks, 0 until one full frame
// has been measured.
func (p *Pacer) FPS() float64 {
	var total time.Duration
	for i := 0; i < p.count; i++ {
		total += p.samples[i]
	}
	if total <= 0 {
		return 0
	}
	return float64(p.count) / total.Seconds()
}

// Now is the pacer's clock.
func (p *Pacer) Now() time.Time {
	return p.now()
}
