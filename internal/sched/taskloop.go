// File: internal/sched/taskloop.go
// Package sched implements the single-threaded deferred-task loop used to
// serialize completion responses.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// One goroutine drains a FIFO inbox; tasks never overlap and run in
// submission order. Stop drains tasks already queued before exiting, so a
// completion accepted by Submit is always executed.

package sched

import (
	"sync"

	"github.com/momentics/hioload-video/api"
)

// TaskLoop is a single-goroutine FIFO executor.
type TaskLoop struct {
	inbox  chan func()
	quitCh chan struct{}
	doneCh chan struct{}

	mu      sync.RWMutex // serializes Submit sends against Stop
	stopped bool
}

// Compile-time contract check.
var _ api.Scheduler = (*TaskLoop)(nil)

// NewTaskLoop creates a loop with the given inbox depth and starts its
// worker goroutine.
func NewTaskLoop(depth int) *TaskLoop {
	if depth <= 0 {
		depth = 1024
	}
	l := &TaskLoop{
		inbox:  make(chan func(), depth),
		quitCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	go l.run()
	return l
}

// Submit schedules task for later execution on the worker. Blocks while
// the inbox is full; returns ErrSchedulerStopped after Stop. The send
// happens under the read lock, so Stop cannot close the quit channel
// between the stopped check and the send: an accepted task is always in
// the inbox before the worker starts its final drain.
func (l *TaskLoop) Submit(task func()) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.stopped {
		return api.ErrSchedulerStopped
	}
	l.inbox <- task
	return nil
}

// Pending returns the approximate number of queued tasks.
func (l *TaskLoop) Pending() int {
	return len(l.inbox)
}

// Stop drains already-queued tasks, stops the worker and waits for exit.
// Idempotent.
func (l *TaskLoop) Stop() {
	l.mu.Lock()
	if !l.stopped {
		l.stopped = true
		close(l.quitCh)
	}
	l.mu.Unlock()
	<-l.doneCh
}

func (l *TaskLoop) run() {
	defer close(l.doneCh)

	for {
		select {
		case task := <-l.inbox:
			l.safeExecute(task)
		case <-l.quitCh:
			// drain what was accepted before the stop
			for {
				select {
				case task := <-l.inbox:
					l.safeExecute(task)
				default:
					return
				}
			}
		}
	}
}

func (l *TaskLoop) safeExecute(task func()) {
	defer func() { recover() }()
	task()
}
