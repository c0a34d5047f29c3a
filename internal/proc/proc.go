// Package proc runs one-shot helper processes (the formatter CLI) with stdin
// fed from memory and the whole process tree torn down on cancellation.
package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// Result is what a finished child produced.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Elapsed  time.Duration
}

// ExitError reports a child that ran but exited non-zero.
type ExitError struct {
	Name   string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Name, e.Code)
}

// waitDelay bounds how long Wait blocks on pipes after the child is killed.
const waitDelay = 2 * time.Second

// Run starts argv[0] with argv[1:], writes stdin to it and collects output.
// When ctx ends the child's process group is terminated.
func Run(ctx context.Context, argv []string, stdin string) (Result, error) {
	if len(argv) == 0 {
		return Result{}, errors.New("proc: empty command")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.SysProcAttr = newSysProcAttrForGroup()
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return killProcessGroupOS(cmd.Process.Pid)
	}
	cmd.WaitDelay = waitDelay
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Elapsed: time.Since(start),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}
	if err == nil {
		return res, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, fmt.Errorf("%s: %w", argv[0], ctxErr)
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return res, &ExitError{Name: argv[0], Code: ee.ExitCode(), Stderr: res.Stderr}
	}
	return res, fmt.Errorf("run %s: %w", argv[0], err)
}

// FindBinary resolves name on PATH, trying the .exe suffix on Windows.
// It returns "" when nothing was found.
func FindBinary(name string) string {
	if p, err := exec.LookPath(name); err == nil {
		return p
	}
	if runtime.GOOS == "windows" && !strings.HasSuffix(name, ".exe") {
		if p, err := exec.LookPath(name + ".exe"); err == nil {
			return p
		}
	}
	return ""
}
