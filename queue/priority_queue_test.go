package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cronbit/cronbit/job"
	"github.com/cronbit/cronbit/queue"
	"github.com/cronbit/cronbit/trigger"
)

type stringKey string

func (k stringKey) String() string             { return string(k) }
func (k stringKey) Equals(that queue.Key) bool { return k == that }

type testEntry struct {
	key         stringKey
	nextRunTime int64
}

func (e *testEntry) Job() job.Job             { return job.NewShellJob("true") }
func (e *testEntry) Trigger() trigger.Trigger { return trigger.NewSimpleTrigger(time.Second) }
func (e *testEntry) JobKey() queue.Key        { return e.key }
func (e *testEntry) NextRunTime() int64       { return e.nextRunTime }

func TestPriorityQueue_Errors(t *testing.T) {
	pq := queue.NewPriorityQueue()

	_, err := pq.Pop()
	assert.ErrorIs(t, err, queue.ErrQueueEmpty)

	_, err = pq.Head()
	assert.ErrorIs(t, err, queue.ErrQueueEmpty)

	_, err = pq.Get(stringKey("missing"))
	assert.ErrorIs(t, err, queue.ErrJobNotFound)

	_, err = pq.Remove(stringKey("missing"))
	assert.ErrorIs(t, err, queue.ErrJobNotFound)
}

func TestPriorityQueue_OrdersByNextRunTime(t *testing.T) {
	pq := queue.NewPriorityQueue()

	entries := []*testEntry{
		{key: "c", nextRunTime: 300},
		{key: "a", nextRunTime: 100},
		{key: "b", nextRunTime: 200},
	}
	for _, e := range entries {
		require.NoError(t, pq.Push(e))
	}
	require.Equal(t, 3, pq.Size())

	head, err := pq.Head()
	require.NoError(t, err)
	assert.Equal(t, stringKey("a"), head.JobKey())

	var order []string
	for pq.Size() > 0 {
		e, err := pq.Pop()
		require.NoError(t, err)
		order = append(order, e.JobKey().String())
	}
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestPriorityQueue_PushReplacesExistingKey(t *testing.T) {
	pq := queue.NewPriorityQueue()
	require.NoError(t, pq.Push(&testEntry{key: "a", nextRunTime: 500}))
	require.NoError(t, pq.Push(&testEntry{key: "a", nextRunTime: 50}))

	assert.Equal(t, 1, pq.Size())
	head, err := pq.Head()
	require.NoError(t, err)
	assert.EqualValues(t, 50, head.NextRunTime())
}

func TestPriorityQueue_RemoveAndClear(t *testing.T) {
	pq := queue.NewPriorityQueue()
	require.NoError(t, pq.Push(&testEntry{key: "a", nextRunTime: 100}))
	require.NoError(t, pq.Push(&testEntry{key: "b", nextRunTime: 200}))

	removed, err := pq.Remove(stringKey("a"))
	require.NoError(t, err)
	assert.Equal(t, stringKey("a"), removed.JobKey())
	assert.Equal(t, 1, pq.Size())

	require.NoError(t, pq.Clear())
	assert.Equal(t, 0, pq.Size())
	assert.Empty(t, pq.ScheduledJobs())
}

func TestPriorityQueue_ScheduledJobsAndContext(t *testing.T) {
	pq := queue.NewPriorityQueue()
	require.NoError(t, pq.Push(&testEntry{key: "a", nextRunTime: 100}))
	require.NoError(t, pq.Push(&testEntry{key: "b", nextRunTime: 200}))

	jobs := pq.ScheduledJobs()
	assert.Len(t, jobs, 2)

	// entries are usable outside the queue package, e.g. under a caller
	// supplied context, without any special adaptation.
	ctx := context.Background()
	for _, e := range jobs {
		assert.NotNil(t, e.Job())
		assert.NoError(t, e.Job().Execute(ctx))
	}
}
