package monitoring

import (
	"sync"
	"time"

	"github.com/sarchlab/dronesim/drone"
	"github.com/sarchlab/dronesim/sim"
)

// A ProgressBar is a tracker of the progress. It is also a hook that counts
// the ticks of a fleet as finished.
type ProgressBar struct {
	sync.Mutex
	ID         string
	Name       string
	StartTime  time.Time
	Total      uint64
	Finished   uint64
	InProgress uint64
}

type progressBarRsp struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

func (b *ProgressBar) snapshot() progressBarRsp {
	b.Lock()
	defer b.Unlock()

	return progressBarRsp{
		ID:         b.ID,
		Name:       b.Name,
		StartTime:  b.StartTime,
		Total:      b.Total,
		Finished:   b.Finished,
		InProgress: b.InProgress,
	}
}

// IncrementInProgress adds the number of in-progress element.
func (b *ProgressBar) IncrementInProgress(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress += amount
}

// IncrementFinished add a certain amount to finished element.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

// MoveInProgressToFinished reduces the number of in progress item by a certain
// amount and increase the finished item by the same amount.
func (b *ProgressBar) MoveInProgressToFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress -= amount
	b.Finished += amount
}

// Func counts a finished fleet tick.
func (b *ProgressBar) Func(ctx sim.HookCtx) {
	if ctx.Pos != drone.HookPosFleetTick {
		return
	}

	b.IncrementFinished(1)
}

// Pacer slows a simulation down to at most one fleet tick per Interval of
// wall time, so that it can be followed on the dashboard.
type Pacer struct {
	Interval time.Duration

	last time.Time
}

// Func waits until Interval has passed since the previous fleet tick.
func (p *Pacer) Func(ctx sim.HookCtx) {
	if ctx.Pos != drone.HookPosFleetTick || p.Interval <= 0 {
		return
	}

	if !p.last.IsZero() {
		if wait := p.Interval - time.Since(p.last); wait > 0 {
			time.Sleep(wait)
		}
	}

	p.last = time.Now()
}
