package scheduler

import "time"

// Task - a pending delayed call.
type Task interface {
	// Stop - prevents the call from firing; reports false if it already fired or was stopped.
	Stop() bool
}

type Scheduler interface {
	AfterFunc(delay time.Duration, f func()) Task
}

type timerScheduler struct{}

// New - scheduler backed by runtime timers.
func New() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) AfterFunc(delay time.Duration, f func()) Task {
	return time.AfterFunc(delay, f)
}
