// Package scheduler orchestrates job.Job executions against
// trigger.Trigger schedules, tracking pending work in a queue.JobQueue.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cronbit/cronbit/job"
	"github.com/cronbit/cronbit/logger"
	"github.com/cronbit/cronbit/queue"
	"github.com/cronbit/cronbit/trigger"
)

// Sentinel errors returned by StdScheduler. Use errors.Is to distinguish
// them from a wrapped error message.
var (
	// ErrIllegalArgument is returned by ScheduleJob when a job is
	// scheduled under a key that's already in use and its options
	// don't set Replace.
	ErrIllegalArgument = errors.New("illegal argument")

	// ErrJobNotFound is returned by GetScheduledJob, PauseJob,
	// ResumeJob, and DeleteJob when no job is scheduled under the
	// given key. It is the same value as queue.ErrJobNotFound.
	ErrJobNotFound = queue.ErrJobNotFound
)

// ScheduledJob represents a Job scheduled against a Trigger, together
// with its next run time.
type ScheduledJob interface {
	JobDetail() *JobDetail
	Trigger() trigger.Trigger
	NextRunTime() int64
}

// Matcher is satisfied by any predicate over a ScheduledJob, including
// the matcher package's generic Matcher[ScheduledJob] implementations;
// the method sets are structurally identical so no import is required
// in either direction.
type Matcher interface {
	IsMatch(ScheduledJob) bool
}

type scheduledJob struct {
	jobDetail   *JobDetail
	trig        trigger.Trigger
	nextRunTime int64
}

var _ ScheduledJob = (*scheduledJob)(nil)
var _ queue.Entry = (*scheduledJob)(nil)

func (s *scheduledJob) JobDetail() *JobDetail    { return s.jobDetail }
func (s *scheduledJob) Trigger() trigger.Trigger { return s.trig }
func (s *scheduledJob) NextRunTime() int64       { return s.nextRunTime }
func (s *scheduledJob) Job() job.Job             { return s.jobDetail.Job() }
func (s *scheduledJob) JobKey() queue.Key        { return s.jobDetail.JobKey() }

// Scheduler orchestrates Job executions when their associated Triggers fire.
type Scheduler interface {
	// Start starts the scheduler. It runs until Stop is called or the
	// context is canceled.
	Start(ctx context.Context)

	// IsStarted reports whether the scheduler has been started.
	IsStarted() bool

	// ScheduleJob schedules a job using the given trigger.
	ScheduleJob(ctx context.Context, jobDetail *JobDetail, trig trigger.Trigger) error

	// GetJobKeys returns the keys of scheduled jobs matching all of the
	// given matchers, or every scheduled job if none are given.
	GetJobKeys(matchers ...Matcher) []*JobKey

	// GetScheduledJob returns the scheduled job identified by key.
	GetScheduledJob(key *JobKey) (ScheduledJob, error)

	// PauseJob suspends the job identified by key without removing it
	// from the schedule.
	PauseJob(key *JobKey) error

	// ResumeJob un-suspends a previously paused job.
	ResumeJob(key *JobKey) error

	// DeleteJob removes the job identified by key from the schedule.
	DeleteJob(ctx context.Context, key *JobKey) error

	// Clear removes all scheduled jobs.
	Clear() error

	// Wait blocks until the scheduler stops and all running jobs have
	// returned, or until ctx expires.
	Wait(ctx context.Context)

	// Stop shuts the scheduler down.
	Stop()
}

// StdSchedulerOptions configures a StdScheduler.
type StdSchedulerOptions struct {
	// BlockingExecution, when true, runs jobs synchronously on the
	// execution loop goroutine, serializing all job execution.
	BlockingExecution bool

	// WorkerLimit, when greater than 0, dispatches jobs to a fixed pool
	// of goroutines of this size instead of spawning one per execution.
	// Ignored when BlockingExecution is set.
	WorkerLimit int

	// OutdatedThreshold bounds how stale a popped job may be before it
	// is skipped instead of executed. Default: 100ms.
	OutdatedThreshold time.Duration

	// Logger receives the scheduler's structured log records.
	// Default: logger.Default().
	Logger logger.Logger
}

// StdScheduler is the default Scheduler implementation.
type StdScheduler struct {
	mtx       sync.Mutex
	wg        sync.WaitGroup
	queue     queue.JobQueue
	interrupt chan struct{}
	cancel    context.CancelFunc
	feeder    chan *scheduledJob
	dispatch  chan *scheduledJob
	started   bool
	opts      StdSchedulerOptions
}

var _ Scheduler = (*StdScheduler)(nil)

// NewStdScheduler returns a new StdScheduler with default options and an
// in-memory queue.PriorityQueue.
func NewStdScheduler() *StdScheduler {
	return NewStdSchedulerWithOptions(StdSchedulerOptions{
		OutdatedThreshold: 100 * time.Millisecond,
	}, nil)
}

// NewStdSchedulerWithOptions returns a new StdScheduler configured as
// specified. Passing a nil jobQueue uses the in-memory
// queue.PriorityQueue implementation; a custom implementation can be
// supplied to back the schedule with persistent storage.
func NewStdSchedulerWithOptions(opts StdSchedulerOptions, jobQueue queue.JobQueue) *StdScheduler {
	if jobQueue == nil {
		jobQueue = queue.NewPriorityQueue()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	if opts.OutdatedThreshold == 0 {
		opts.OutdatedThreshold = 100 * time.Millisecond
	}
	return &StdScheduler{
		queue:     jobQueue,
		interrupt: make(chan struct{}, 1),
		feeder:    make(chan *scheduledJob),
		dispatch:  make(chan *scheduledJob),
		opts:      opts,
	}
}

func (sched *StdScheduler) log() logger.Logger {
	return sched.opts.Logger
}

// ScheduleJob schedules a job using the given trigger.
func (sched *StdScheduler) ScheduleJob(
	ctx context.Context,
	jobDetail *JobDetail,
	trig trigger.Trigger,
) error {
	sched.mtx.Lock()
	if !jobDetail.Options().Replace {
		if _, err := sched.queue.Get(jobDetail.JobKey()); err == nil {
			sched.mtx.Unlock()
			return fmt.Errorf("%w: job with key %s already scheduled", ErrIllegalArgument, jobDetail.JobKey())
		}
	}
	sched.mtx.Unlock()

	nextRunTime, err := trig.NextFireTime(nowNano())
	if err != nil {
		return err
	}

	sj := &scheduledJob{jobDetail: jobDetail, trig: trig, nextRunTime: nextRunTime}

	// Before Start there is no feed reader; queue the job directly.
	sched.mtx.Lock()
	if !sched.started {
		err := sched.queue.Push(sj)
		sched.mtx.Unlock()
		return err
	}
	sched.mtx.Unlock()

	select {
	case sched.feeder <- sj:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start starts the StdScheduler's execution loop.
func (sched *StdScheduler) Start(ctx context.Context) {
	sched.mtx.Lock()
	defer sched.mtx.Unlock()

	if sched.started {
		sched.log().Info("scheduler already running")
		return
	}

	ctx, sched.cancel = context.WithCancel(ctx)
	go func() { <-ctx.Done(); sched.Stop() }()

	sched.wg.Add(1)
	go sched.startFeedReader(ctx)

	sched.wg.Add(1)
	go sched.startExecutionLoop(ctx)

	sched.startWorkers(ctx)

	sched.started = true
}

// Wait blocks until the scheduler shuts down and all jobs have returned.
func (sched *StdScheduler) Wait(ctx context.Context) {
	sig := make(chan struct{})
	go func() { defer close(sig); sched.wg.Wait() }()
	select {
	case <-ctx.Done():
	case <-sig:
	}
}

// IsStarted reports whether the scheduler has been started.
func (sched *StdScheduler) IsStarted() bool {
	sched.mtx.Lock()
	defer sched.mtx.Unlock()
	return sched.started
}

// GetJobKeys returns the keys of scheduled jobs matching all of the
// given matchers, or every scheduled job if none are given.
func (sched *StdScheduler) GetJobKeys(matchers ...Matcher) []*JobKey {
	sched.mtx.Lock()
	defer sched.mtx.Unlock()

	keys := make([]*JobKey, 0, sched.queue.Size())
	for _, entry := range sched.queue.ScheduledJobs() {
		sj := entry.(*scheduledJob)
		if matchesAll(sj, matchers) {
			keys = append(keys, sj.jobDetail.JobKey())
		}
	}
	return keys
}

func matchesAll(sj ScheduledJob, matchers []Matcher) bool {
	for _, m := range matchers {
		if !m.IsMatch(sj) {
			return false
		}
	}
	return true
}

// GetScheduledJob returns the scheduled job identified by key.
func (sched *StdScheduler) GetScheduledJob(key *JobKey) (ScheduledJob, error) {
	sched.mtx.Lock()
	defer sched.mtx.Unlock()

	entry, err := sched.queue.Get(key)
	if err != nil {
		return nil, err
	}
	return entry.(*scheduledJob), nil
}

// PauseJob suspends the job identified by key without removing it from
// the schedule.
func (sched *StdScheduler) PauseJob(key *JobKey) error {
	return sched.setSuspended(key, true)
}

// ResumeJob un-suspends a previously paused job.
func (sched *StdScheduler) ResumeJob(key *JobKey) error {
	return sched.setSuspended(key, false)
}

func (sched *StdScheduler) setSuspended(key *JobKey, suspended bool) error {
	sched.mtx.Lock()
	defer sched.mtx.Unlock()

	entry, err := sched.queue.Get(key)
	if err != nil {
		return err
	}
	entry.(*scheduledJob).jobDetail.Options().Suspended = suspended
	return nil
}

// DeleteJob removes the job identified by key from the schedule.
func (sched *StdScheduler) DeleteJob(ctx context.Context, key *JobKey) error {
	sched.mtx.Lock()
	_, err := sched.queue.Remove(key)
	if err == nil {
		sched.reset(ctx)
	}
	sched.mtx.Unlock()
	return err
}

// Clear removes all scheduled jobs.
func (sched *StdScheduler) Clear() error {
	sched.mtx.Lock()
	defer sched.mtx.Unlock()
	return sched.queue.Clear()
}

// Stop shuts the scheduler down.
func (sched *StdScheduler) Stop() {
	sched.mtx.Lock()
	defer sched.mtx.Unlock()

	if !sched.started {
		sched.log().Info("scheduler not running")
		return
	}
	sched.log().Info("stopping scheduler")
	sched.cancel()
	sched.started = false
}

func (sched *StdScheduler) startExecutionLoop(ctx context.Context) {
	defer sched.wg.Done()
	for {
		if sched.queueLen() == 0 {
			select {
			case <-sched.interrupt:
			case <-ctx.Done():
				sched.log().Info("exiting empty execution loop")
				return
			}
			continue
		}

		t := time.NewTimer(sched.calculateNextTick())
		select {
		case <-t.C:
			sched.executeAndReschedule(ctx)
		case <-sched.interrupt:
			t.Stop()
		case <-ctx.Done():
			sched.log().Info("exiting execution loop")
			t.Stop()
			return
		}
	}
}

func (sched *StdScheduler) startWorkers(ctx context.Context) {
	if sched.opts.WorkerLimit <= 0 {
		return
	}
	sched.log().Debug("starting scheduler workers", "count", sched.opts.WorkerLimit)
	for i := 0; i < sched.opts.WorkerLimit; i++ {
		sched.wg.Add(1)
		go func() {
			defer sched.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case sj := <-sched.dispatch:
					sched.runJob(ctx, sj)
				}
			}
		}()
	}
}

func (sched *StdScheduler) queueLen() int {
	sched.mtx.Lock()
	defer sched.mtx.Unlock()
	return sched.queue.Size()
}

func (sched *StdScheduler) calculateNextTick() time.Duration {
	sched.mtx.Lock()
	defer sched.mtx.Unlock()

	if sched.queue.Size() > 0 {
		head, err := sched.queue.Head()
		if err != nil {
			sched.log().Warn("failed to calculate next tick", "error", err)
		} else {
			return time.Duration(parkTime(head.NextRunTime()))
		}
	}
	return sched.opts.OutdatedThreshold
}

func (sched *StdScheduler) executeAndReschedule(ctx context.Context) {
	sched.mtx.Lock()
	entry, err := sched.queue.Pop()
	sched.mtx.Unlock()
	if err != nil {
		sched.log().Error("failed to fetch job from queue", "error", err)
		return
	}
	sj := entry.(*scheduledJob)

	if sched.jobIsUpToDate(sj) {
		if sj.jobDetail.Options().Suspended {
			sched.log().Debug("skipping suspended job", "key", sj.jobDetail.JobKey())
		} else {
			sched.dispatchJob(ctx, sj)
		}
	} else {
		sched.log().Debug("skipping outdated job", "key", sj.jobDetail.JobKey(),
			"nextRunTime", sj.NextRunTime())
	}

	sched.rescheduleJob(ctx, sj)
}

func (sched *StdScheduler) dispatchJob(ctx context.Context, sj *scheduledJob) {
	switch {
	case sched.opts.BlockingExecution:
		sched.runJob(ctx, sj)
	case sched.opts.WorkerLimit > 0:
		select {
		case sched.dispatch <- sj:
		case <-ctx.Done():
		}
	default:
		sched.wg.Add(1)
		go func() {
			defer sched.wg.Done()
			sched.runJob(ctx, sj)
		}()
	}
}

// jobLogger returns a Logger that tags every message with sj's key and
// trigger description, so concurrent job executions can be told apart
// in the log stream without repeating those fields at each call site.
func (sched *StdScheduler) jobLogger(sj *scheduledJob) logger.Logger {
	return logger.WithFields(sched.log(),
		"key", sj.jobDetail.JobKey().String(),
		"trigger", sj.trig.Description())
}

func (sched *StdScheduler) runJob(ctx context.Context, sj *scheduledJob) {
	opts := sj.jobDetail.Options()
	ctx = job.WithFireTime(ctx, sj.NextRunTime())
	log := sched.jobLogger(sj)
	attempt := 0
	for {
		err := sj.jobDetail.Job().Execute(ctx)
		if err == nil || attempt >= opts.MaxRetries {
			if err != nil {
				log.Error("job failed", "error", err)
			}
			return
		}
		attempt++
		log.Warn("job failed, retrying", "attempt", attempt, "error", err)
		select {
		case <-time.After(opts.RetryInterval):
		case <-ctx.Done():
			return
		}
	}
}

func (sched *StdScheduler) rescheduleJob(ctx context.Context, sj *scheduledJob) {
	nextRunTime, err := sj.trig.NextFireTime(sj.nextRunTime)
	if err != nil {
		sched.log().Info("job exhausted its trigger", "key", sj.jobDetail.JobKey(), "reason", err)
		return
	}

	next := &scheduledJob{jobDetail: sj.jobDetail, trig: sj.trig, nextRunTime: nextRunTime}
	select {
	case <-ctx.Done():
	case sched.feeder <- next:
	}
}

func (sched *StdScheduler) jobIsUpToDate(sj *scheduledJob) bool {
	return sj.nextRunTime > nowNano()-sched.opts.OutdatedThreshold.Nanoseconds()
}

func (sched *StdScheduler) startFeedReader(ctx context.Context) {
	defer sched.wg.Done()
	for {
		select {
		case sj := <-sched.feeder:
			func() {
				sched.mtx.Lock()
				defer sched.mtx.Unlock()
				if err := sched.queue.Push(sj); err != nil {
					sched.log().Error("failed to schedule job", "key", sj.jobDetail.JobKey(), "error", err)
				} else {
					sched.reset(ctx)
				}
			}()
		case <-ctx.Done():
			sched.log().Info("exiting feed reader")
			return
		}
	}
}

func (sched *StdScheduler) reset(ctx context.Context) {
	select {
	case sched.interrupt <- struct{}{}:
	case <-ctx.Done():
	default:
	}
}

func nowNano() int64 {
	return time.Now().UTC().UnixNano()
}

func parkTime(ts int64) int64 {
	now := nowNano()
	if ts > now {
		return ts - now
	}
	return 0
}
