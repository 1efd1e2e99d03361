package engine

import "time"

// TimerKey names one of the engine's scheduled tasks
type TimerKey string

const (
	TimerDecay       TimerKey = "decay"
	TimerAutoDeliver TimerKey = "autoDeliver"
	TimerLevelUp     TimerKey = "levelUp"
	TimerActionFlash TimerKey = "actionFlash"
)

// Timer asks the driver to call Engine.Fire(Key, Gen) after Delay. A timer whose
// generation has moved on by the time it fires is dropped.
type Timer struct {
	Key   TimerKey
	Gen   uint64
	Delay time.Duration
}

type timerState struct {
	gen     uint64
	running bool
}

// timers tracks which scheduled tasks are live. Starting, stopping or re-arming a
// timer bumps its generation so anything already in flight goes stale.
type timers struct {
	state   map[TimerKey]*timerState
	pending []Timer
}

func newTimers() *timers {
	return &timers{state: make(map[TimerKey]*timerState)}
}

func (t *timers) get(key TimerKey) *timerState {
	ts, ok := t.state[key]
	if !ok {
		ts = &timerState{}
		t.state[key] = ts
	}
	return ts
}

// arm starts key under a new generation
func (t *timers) arm(key TimerKey, delay time.Duration) {
	ts := t.get(key)
	ts.gen++
	ts.running = true
	t.pending = append(t.pending, Timer{Key: key, Gen: ts.gen, Delay: delay})
}

// rearm schedules the next firing of a periodic timer under its current generation
func (t *timers) rearm(key TimerKey, delay time.Duration) {
	ts := t.get(key)
	t.pending = append(t.pending, Timer{Key: key, Gen: ts.gen, Delay: delay})
}

// cancel stops key and invalidates anything in flight
func (t *timers) cancel(key TimerKey) {
	ts := t.get(key)
	if !ts.running {
		return
	}
	ts.gen++
	ts.running = false
}

// ensure makes key's running state match want, arming it when it starts
func (t *timers) ensure(key TimerKey, want bool, delay time.Duration) {
	running := t.get(key).running
	switch {
	case want && !running:
		t.arm(key, delay)
	case !want && running:
		t.cancel(key)
	}
}

// current reports whether a firing of key with gen is still wanted
func (t *timers) current(key TimerKey, gen uint64) bool {
	ts, ok := t.state[key]
	return ok && ts.running && ts.gen == gen
}

func (t *timers) drain() []Timer {
	out := t.pending
	t.pending = nil
	return out
}

func (t *timers) cancelAll() {
	for key := range t.state {
		t.cancel(key)
	}
	t.pending = nil
}
