package matcher_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cronbit/cronbit/job"
	"github.com/cronbit/cronbit/matcher"
	"github.com/cronbit/cronbit/scheduler"
	"github.com/cronbit/cronbit/trigger"
)

// noReportJob implements job.Job without tracking a job.RunReport, so
// matcher.JobLastRunStatus must treat it as never matching.
type noReportJob struct{}

func (noReportJob) Execute(context.Context) error { return nil }
func (noReportJob) Description() string           { return "no-report" }

func TestMatcher_JobAll(t *testing.T) {
	sched := scheduler.NewStdScheduler()

	dummy := job.NewFunctionJob(func(_ context.Context) (bool, error) {
		return true, nil
	})

	jobKeys := []*scheduler.JobKey{
		scheduler.NewJobKey("job_monitor"),
		scheduler.NewJobKey("job_update"),
		scheduler.NewJobKeyWithGroup("job_monitor", "group_monitor"),
		scheduler.NewJobKeyWithGroup("job_update", "group_update"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, jobKey := range jobKeys {
		cron, err := trigger.NewCronTrigger("@daily")
		require.NoError(t, err)
		require.NoError(t, sched.ScheduleJob(ctx, scheduler.NewJobDetail(dummy, jobKey), cron))
	}
	sched.Start(ctx)

	require.Eventually(t, func() bool { return len(sched.GetJobKeys()) == 4 }, time.Second, 5*time.Millisecond)

	assert.Len(t, sched.GetJobKeys(matcher.JobActive()), 4)
	assert.Len(t, sched.GetJobKeys(matcher.JobPaused()), 0)

	assert.Len(t, sched.GetJobKeys(matcher.JobGroupEquals(scheduler.DefaultGroup)), 2)
	assert.Len(t, sched.GetJobKeys(matcher.JobGroupContains("_")), 2)
	assert.Len(t, sched.GetJobKeys(matcher.JobGroupStartsWith("group_")), 2)
	assert.Len(t, sched.GetJobKeys(matcher.JobGroupEndsWith("_update")), 1)

	assert.Len(t, sched.GetJobKeys(matcher.JobNameEquals("job_monitor")), 2)
	assert.Len(t, sched.GetJobKeys(matcher.JobNameContains("_")), 4)
	assert.Len(t, sched.GetJobKeys(matcher.JobNameStartsWith("job_")), 4)
	assert.Len(t, sched.GetJobKeys(matcher.JobNameEndsWith("_update")), 2)

	// multiple matchers
	assert.Len(t, sched.GetJobKeys(
		matcher.JobNameEquals("job_monitor"),
		matcher.JobGroupEquals(scheduler.DefaultGroup),
		matcher.JobActive(),
	), 1)

	assert.Len(t, sched.GetJobKeys(
		matcher.JobNameEquals("job_monitor"),
		matcher.JobGroupEquals(scheduler.DefaultGroup),
		matcher.JobPaused(),
	), 0)

	// no matchers
	assert.Len(t, sched.GetJobKeys(), 4)

	require.NoError(t, sched.PauseJob(scheduler.NewJobKey("job_monitor")))

	assert.Len(t, sched.GetJobKeys(matcher.JobActive()), 3)
	assert.Len(t, sched.GetJobKeys(matcher.JobPaused()), 1)

	sched.Stop()
}

func TestMatcher_JobSwitchType(t *testing.T) {
	tests := []struct {
		name string
		m    matcher.Matcher[scheduler.ScheduledJob]
	}{
		{
			name: "job-active",
			m:    matcher.JobActive(),
		},
		{
			name: "job-group-equals",
			m:    matcher.JobGroupEquals("group1"),
		},
		{
			name: "job-name-contains",
			m:    matcher.JobNameContains("name"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			switch jm := tt.m.(type) {
			case *matcher.JobStatus:
				assert.False(t, jm.Suspended)
			case *matcher.JobGroup:
				assert.Same(t, &matcher.StringEquals, jm.Operator)
			case *matcher.JobName:
				assert.Same(t, &matcher.StringContains, jm.Operator)
			default:
				t.Fatal("unexpected matcher type")
			}
		})
	}
}

func TestMatcher_CustomStringOperator(t *testing.T) {
	var op matcher.StringOperator = func(_, _ string) bool { return true }
	assert.NotNil(t, matcher.NewJobGroup(&op, "group1"))
}

func TestMatcher_EqualsFold(t *testing.T) {
	sched := scheduler.NewStdScheduler()

	dummy := job.NewFunctionJob(func(_ context.Context) (bool, error) {
		return true, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cron, err := trigger.NewCronTrigger("@daily")
	require.NoError(t, err)
	jobKey := scheduler.NewJobKeyWithGroup("Job_Monitor", "Group_Nightly")
	require.NoError(t, sched.ScheduleJob(ctx, scheduler.NewJobDetail(dummy, jobKey), cron))
	sched.Start(ctx)

	require.Eventually(t, func() bool { return len(sched.GetJobKeys()) == 1 }, time.Second, 5*time.Millisecond)

	assert.Len(t, sched.GetJobKeys(matcher.JobNameEquals("job_monitor")), 0)
	assert.Len(t, sched.GetJobKeys(matcher.JobNameEqualsFold("job_monitor")), 1)

	assert.Len(t, sched.GetJobKeys(matcher.JobGroupEquals("group_nightly")), 0)
	assert.Len(t, sched.GetJobKeys(matcher.JobGroupEqualsFold("group_nightly")), 1)

	sched.Stop()
}

func TestMatcher_JobLastRunStatus(t *testing.T) {
	sched := scheduler.NewStdScheduler()

	release := make(chan struct{})
	failing := job.NewFunctionJob(func(_ context.Context) (bool, error) {
		<-release
		return false, assert.AnError
	})
	plain := job.NewFunctionJob(func(_ context.Context) (bool, error) {
		return true, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	failingKey := scheduler.NewJobKey("job_failing")
	plainKey := scheduler.NewJobKey("job_plain")
	noReportKey := scheduler.NewJobKey("job_no_report")

	require.NoError(t, sched.ScheduleJob(ctx,
		scheduler.NewJobDetail(failing, failingKey), trigger.NewRunOnceTrigger(time.Millisecond)))
	require.NoError(t, sched.ScheduleJob(ctx,
		scheduler.NewJobDetail(plain, plainKey), trigger.NewRunOnceTrigger(time.Millisecond)))
	require.NoError(t, sched.ScheduleJob(ctx,
		scheduler.NewJobDetail(noReportJob{}, noReportKey), trigger.NewRunOnceTrigger(time.Millisecond)))

	sched.Start(ctx)

	require.Eventually(t, func() bool {
		return len(sched.GetJobKeys(matcher.JobNameEquals("job_plain"))) == 0
	}, time.Second, 5*time.Millisecond)

	close(release)

	require.Eventually(t, func() bool {
		return len(sched.GetJobKeys(matcher.JobLastFailed())) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Len(t, sched.GetJobKeys(matcher.JobLastFailed()), 1)
	assert.Len(t, sched.GetJobKeys(matcher.JobLastSkipped()), 0)

	sched.Stop()
}

func TestMatcher_TriggerDescriptionContains(t *testing.T) {
	sched := scheduler.NewStdScheduler()

	dummy := job.NewFunctionJob(func(_ context.Context) (bool, error) {
		return true, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	daily, err := trigger.NewCronTrigger("@daily")
	require.NoError(t, err)
	hourly, err := trigger.NewCronTrigger("@hourly")
	require.NoError(t, err)

	require.NoError(t, sched.ScheduleJob(ctx, scheduler.NewJobDetail(dummy, scheduler.NewJobKey("job_daily")), daily))
	require.NoError(t, sched.ScheduleJob(ctx, scheduler.NewJobDetail(dummy, scheduler.NewJobKey("job_hourly")), hourly))
	sched.Start(ctx)

	require.Eventually(t, func() bool { return len(sched.GetJobKeys()) == 2 }, time.Second, 5*time.Millisecond)

	assert.Len(t, sched.GetJobKeys(matcher.TriggerDescriptionContains(daily.Description())), 1)
	assert.Len(t, sched.GetJobKeys(matcher.NewTriggerDescription(&matcher.StringEquals, hourly.Description())), 1)

	sched.Stop()
}
