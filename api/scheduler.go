// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Scheduler contract for deferred single-threaded completion dispatch.

package api

// Scheduler abstracts deferred task execution on one dedicated goroutine.
// Tasks submitted against the same scheduler run in submission order (FIFO)
// and never overlap each other. Tasks must be short: serialization and
// transmission of already-produced results, never blocking work.
type Scheduler interface {
	// Submit schedules task for later execution. Returns
	// ErrSchedulerStopped after Stop.
	Submit(task func()) error

	// Pending returns the approximate number of queued tasks.
	Pending() int

	// Stop drains already-queued tasks, then stops the worker and waits
	// for it to exit.
	Stop()
}
