// Package clock provides a deterministic scheduler whose time only moves
// when the caller advances it. Callbacks run on the caller's goroutine.
package clock

import (
	"container/heap"
	"time"
)

type timer struct {
	at  time.Duration
	seq uint64
	fn  func()
}

type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) { *q = append(*q, x.(*timer)) }

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}

// Virtual is a manually advanced clock. The zero value is ready to use.
// It is not safe for concurrent use.
type Virtual struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
}

// NewVirtual returns a clock at time zero.
func NewVirtual() *Virtual {
	return &Virtual{}
}

// AfterFunc schedules fn to run once the clock has advanced by d.
// Callbacks due at the same instant run in scheduling order.
func (v *Virtual) AfterFunc(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	v.seq++
	heap.Push(&v.queue, &timer{at: v.now + d, seq: v.seq, fn: fn})
}

// Now returns the elapsed virtual time.
func (v *Virtual) Now() time.Duration {
	return v.now
}

// Pending returns the number of scheduled callbacks that have not run yet.
func (v *Virtual) Pending() int {
	return len(v.queue)
}

// Advance moves the clock forward by d, running every callback that becomes
// due, including ones scheduled by earlier callbacks within the window.
// It returns the number of callbacks run.
func (v *Virtual) Advance(d time.Duration) int {
	target := v.now + d
	ran := 0
	for len(v.queue) > 0 && v.queue[0].at <= target {
		t := heap.Pop(&v.queue).(*timer)
		v.now = t.at
		t.fn()
		ran++
	}
	v.now = target
	return ran
}

// Step jumps to the next scheduled callback and runs it.
// It reports false when nothing is scheduled.
func (v *Virtual) Step() bool {
	if len(v.queue) == 0 {
		return false
	}
	t := heap.Pop(&v.queue).(*timer)
	v.now = t.at
	t.fn()
	return true
}

// RunUntilIdle steps until no callbacks remain or limit callbacks have run.
// A limit <= 0 means no limit. It returns the number of callbacks run.
func (v *Virtual) RunUntilIdle(limit int) int {
	ran := 0
	for limit <= 0 || ran < limit {
		if !v.Step() {
			break
		}
		ran++
	}
	return ran
}
