package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cronbit/cronbit/job"
	"github.com/cronbit/cronbit/logger"
	"github.com/cronbit/cronbit/scheduler"
	"github.com/cronbit/cronbit/trigger"
)

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <expr> <shell-command>",
		Short: "Run a shell command on a cron schedule until interrupted",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, shellCmd := args[0], args[1]

			log := logger.NewSlogLogger(context.Background(),
				slog.New(slog.NewTextHandler(cmd.OutOrStdout(), nil)))

			trig, err := trigger.NewCronTriggerWithLogger(expr, log)
			if err != nil {
				return fmt.Errorf("invalid expression: %w", err)
			}

			sched := scheduler.NewStdSchedulerWithOptions(scheduler.StdSchedulerOptions{
				Logger: log,
			}, nil)

			jobLog := log.With("key", "cronbit-run")
			shJob := job.NewShellJobWithCallback(shellCmd, func(_ context.Context, sh *job.ShellJob) {
				report := sh.LastReport()
				jobLog.Info("job finished", "status", report.Status, "drift", report.Drift,
					"exitCode", sh.ExitCode(), "stdout", sh.Stdout(), "stderr", sh.Stderr())
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sched.Start(ctx)
			key := scheduler.NewJobKey("cronbit-run")
			if err := sched.ScheduleJob(ctx, scheduler.NewJobDetail(shJob, key), trig); err != nil {
				return err
			}

			log.Info("scheduled job, waiting for fires", "expr", expr, "cmd", shellCmd)
			<-ctx.Done()

			sched.Stop()
			sched.Wait(context.Background())
			return nil
		},
	}
}
