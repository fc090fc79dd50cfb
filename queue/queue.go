// Package queue provides an in-memory, next-run-time ordered job queue
// used by a scheduler to decide what to run next.
package queue

import (
	"errors"
	"fmt"

	"github.com/cronbit/cronbit/job"
	"github.com/cronbit/cronbit/trigger"
)

// Errors returned by JobQueue implementations.
var (
	ErrQueueEmpty  = errors.New("queue is empty")
	ErrJobNotFound = errors.New("job not found")
)

func jobNotFoundError(key Key) error {
	return fmt.Errorf("%w: %s", ErrJobNotFound, key)
}

// Key identifies an Entry within a JobQueue.
type Key interface {
	fmt.Stringer

	// Equals reports whether this key identifies the same entry as that.
	Equals(that Key) bool
}

// Entry is the unit of work tracked by a JobQueue: a job paired with the
// trigger driving it, ordered by its next scheduled run time.
type Entry interface {
	Job() job.Job
	Trigger() trigger.Trigger
	JobKey() Key
	NextRunTime() int64
}

// JobQueue is a priority queue of scheduled entries, ordered by next
// run time.
type JobQueue interface {
	// Push inserts a new entry into the queue.
	Push(entry Entry) error

	// Pop removes and returns the entry with the earliest next run time.
	Pop() (Entry, error)

	// Head returns the entry with the earliest next run time without
	// removing it from the queue.
	Head() (Entry, error)

	// Get returns the entry identified by key without removing it.
	Get(key Key) (Entry, error)

	// Remove removes and returns the entry identified by key.
	Remove(key Key) (Entry, error)

	// Size returns the number of entries in the queue.
	Size() int

	// Clear removes all entries from the queue.
	Clear() error

	// ScheduledJobs returns all entries currently held by the queue, in
	// no particular order.
	ScheduledJobs() []Entry
}
