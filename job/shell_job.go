package job

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"
)

// ShellJob represents a shell command Job, implements the Job interface.
// The command will be executed using bash if available; otherwise, sh will be used.
// Consider the interpreter type and target environment when formulating commands
// for execution.
//
// Each execution is timed against the fire time the scheduler stashes in
// its context (see WithFireTime), so a ShellJob run behind a cron
// schedule can report how late it actually started.
type ShellJob struct {
	mtx        sync.Mutex
	cmd        string
	exitCode   int
	stdout     string
	stderr     string
	jobStatus  Status
	lastReport RunReport
	callback   func(context.Context, *ShellJob)
}

var _ Job = (*ShellJob)(nil)

// NewShellJob returns a new [ShellJob] for the given command.
func NewShellJob(cmd string) *ShellJob {
	return &ShellJob{
		cmd:       cmd,
		jobStatus: StatusNA,
	}
}

// NewShellJobWithCallback returns a new [ShellJob] with the given callback function.
func NewShellJobWithCallback(cmd string, f func(context.Context, *ShellJob)) *ShellJob {
	return &ShellJob{
		cmd:       cmd,
		jobStatus: StatusNA,
		callback:  f,
	}
}

// Description returns the description of the ShellJob.
func (sh *ShellJob) Description() string {
	return fmt.Sprintf("ShellJob%s%s", Sep, sh.cmd)
}

var (
	shellOnce = sync.Once{}
	shellPath = "bash"
)

func getShell() string {
	shellOnce.Do(func() {
		_, err := exec.LookPath("/bin/bash")
		// if bash binary is not found, use `sh`.
		if err != nil {
			shellPath = "sh"
		}
	})
	return shellPath
}

// Execute is called by a Scheduler when the Trigger associated with this job fires.
func (sh *ShellJob) Execute(ctx context.Context) error {
	report := newRunReport(ctx, time.Now().UTC().UnixNano())

	shell := getShell()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, shell, "-c", sh.cmd)
	cmd.Stdout = io.Writer(&stdout)
	cmd.Stderr = io.Writer(&stderr)

	err := cmd.Run() // run the command

	sh.mtx.Lock()
	sh.stdout, sh.stderr = stdout.String(), stderr.String()
	sh.exitCode = cmd.ProcessState.ExitCode()

	if err != nil {
		sh.jobStatus = StatusFailure
	} else {
		sh.jobStatus = StatusOK
	}
	report.Status = sh.jobStatus
	report.Err = err
	sh.lastReport = report
	sh.mtx.Unlock()

	if sh.callback != nil {
		sh.callback(ctx, sh)
	}
	return err
}

// ExitCode returns the exit code of the ShellJob.
func (sh *ShellJob) ExitCode() int {
	sh.mtx.Lock()
	defer sh.mtx.Unlock()
	return sh.exitCode
}

// Stdout returns the captured stdout output of the ShellJob.
func (sh *ShellJob) Stdout() string {
	sh.mtx.Lock()
	defer sh.mtx.Unlock()
	return sh.stdout
}

// Stderr returns the captured stderr output of the ShellJob.
func (sh *ShellJob) Stderr() string {
	sh.mtx.Lock()
	defer sh.mtx.Unlock()
	return sh.stderr
}

// JobStatus returns the status of the ShellJob.
func (sh *ShellJob) JobStatus() Status {
	sh.mtx.Lock()
	defer sh.mtx.Unlock()
	return sh.jobStatus
}

// LastReport returns the RunReport from the most recent execution,
// including how far it drifted from its scheduled fire time.
func (sh *ShellJob) LastReport() RunReport {
	sh.mtx.Lock()
	defer sh.mtx.Unlock()
	return sh.lastReport
}
