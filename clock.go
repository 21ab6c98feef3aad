package bramble

import "time"

// maxFrameGapMS caps how far a single Update may advance a FrameClock, so a
// stalled frame (debugger, suspended window) does not teleport animations.
const maxFrameGapMS = 500

const maxFrameGap = maxFrameGapMS * time.Millisecond

// FrameClock is the time source read by every smooth value of a tree. It is
// advanced once per frame and read many times; reading never changes it.
//
// There is no global clock: the Engine owns one and hands it to the nodes it
// creates. Tests build their own and step it with Advance.
type FrameClock struct {
	elapsed time.Duration
	last    time.Time
	paused  bool
}

// NewFrameClock returns a clock at zero elapsed time.
func NewFrameClock() *FrameClock {
	return &FrameClock{}
}

// ElapsedMS returns the elapsed running time in milliseconds.
func (c *FrameClock) ElapsedMS() int64 {
	return c.elapsed.Milliseconds()
}

// ElapsedSec returns the elapsed running time in seconds.
func (c *FrameClock) ElapsedSec() float64 {
	return c.elapsed.Seconds()
}

// Update advances the clock by the wall-clock gap since the previous Update,
// capped at 500 ms. The first Update only records the reference time.
func (c *FrameClock) Update(now time.Time) {
	if c.last.IsZero() || c.paused {
		c.last = now
		return
	}
	gap := now.Sub(c.last)
	c.last = now
	if gap < 0 {
		return
	}
	if gap > maxFrameGap {
		gap = maxFrameGap
	}
	c.elapsed += gap
}

// Advance moves the clock forward by d regardless of wall time. Negative
// durations and paused clocks are ignored.
func (c *FrameClock) Advance(d time.Duration) {
	if c.paused || d <= 0 {
		return
	}
	c.elapsed += d
}

// Pause freezes the clock. Animations stay where they are until Unpause.
func (c *FrameClock) Pause() {
	c.paused = true
}

// Unpause resumes the clock. The time spent paused is not counted.
func (c *FrameClock) Unpause() {
	if !c.paused {
		return
	}
	c.paused = false
	c.last = time.Time{}
}

// Paused reports whether the clock is frozen.
func (c *FrameClock) Paused() bool {
	return c.paused
}

// --- Chrono ---

// Chrono measures time on a FrameClock. While active it stores its start
// time; while paused or stopped it stores the elapsed time.
type Chrono struct {
	clock  *FrameClock
	time   int64
	active bool
}

// NewChrono returns a stopped chrono reading clock.
func NewChrono(clock *FrameClock) *Chrono {
	return &Chrono{clock: clock}
}

// Active reports whether the chrono is running.
func (c *Chrono) Active() bool { return c.active }

// ElapsedMS returns the milliseconds counted since Start.
func (c *Chrono) ElapsedMS() int64 {
	if c.active {
		return c.clock.ElapsedMS() - c.time
	}
	return c.time
}

// ElapsedSec returns the seconds counted since Start.
func (c *Chrono) ElapsedSec() float64 {
	return float64(c.ElapsedMS()) / 1000
}

func (c *Chrono) startTimeMS() int64 {
	if c.active {
		return c.time
	}
	return c.clock.ElapsedMS() - c.time
}

// Start restarts counting from zero.
func (c *Chrono) Start() {
	c.time = c.clock.ElapsedMS()
	c.active = true
}

// Stop halts and resets the chrono.
func (c *Chrono) Stop() {
	c.active = false
	c.time = 0
}

// Pause halts counting and keeps the elapsed time.
func (c *Chrono) Pause() {
	if !c.active {
		return
	}
	c.time = c.ElapsedMS()
	c.active = false
}

// Unpause resumes counting from the kept elapsed time.
func (c *Chrono) Unpause() {
	if c.active {
		return
	}
	c.time = c.startTimeMS()
	c.active = true
}

// AddMS adds ms to the elapsed time.
func (c *Chrono) AddMS(ms int64) {
	if c.active {
		c.time -= ms
	} else {
		c.time += ms
	}
}

// RemoveMS removes ms from the elapsed time, never going below zero.
func (c *Chrono) RemoveMS(ms int64) {
	if c.active {
		if c.ElapsedMS() > ms {
			c.time += ms
		} else {
			c.time = c.clock.ElapsedMS()
		}
		return
	}
	if c.time > ms {
		c.time -= ms
	} else {
		c.time = 0
	}
}

// --- CountDown ---

// CountDown rings once RingTimeMS milliseconds have elapsed since Start.
type CountDown struct {
	RingTimeMS int64

	clock  *FrameClock
	time   int64
	active bool
}

// NewCountDown returns a stopped countdown of ringTime on clock. Negative
// durations ring immediately.
func NewCountDown(clock *FrameClock, ringTime time.Duration) *CountDown {
	ms := ringTime.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	return &CountDown{RingTimeMS: ms, clock: clock}
}

// Active reports whether the countdown is running.
func (c *CountDown) Active() bool { return c.active }

// Start restarts the countdown.
func (c *CountDown) Start() {
	c.time = c.clock.ElapsedMS()
	c.active = true
}

// Stop halts and resets the countdown.
func (c *CountDown) Stop() {
	c.active = false
	c.time = 0
}

func (c *CountDown) elapsedMS() int64 {
	if c.active {
		return c.clock.ElapsedMS() - c.time
	}
	return c.time
}

// IsRinging reports whether the ring time has passed.
func (c *CountDown) IsRinging() bool {
	return c.elapsedMS() > c.RingTimeMS
}

// RemainingMS returns the milliseconds left before ringing, or 0.
func (c *CountDown) RemainingMS() int64 {
	elapsed := c.elapsedMS()
	if elapsed > c.RingTimeMS {
		return 0
	}
	return c.RingTimeMS - elapsed
}

// RemainingSec returns the seconds left before ringing, or 0.
func (c *CountDown) RemainingSec() float64 {
	return float64(c.RemainingMS()) / 1000
}
