//go:build !windows

package proc

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRunFeedsStdin(t *testing.T) {
	if FindBinary("cat") == "" {
		t.Skip("cat not available")
	}
	res, err := Run(context.Background(), []string{"cat"}, "hello\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Stdout != "hello\n" || res.ExitCode != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRunReportsExitCode(t *testing.T) {
	if FindBinary("sh") == "" {
		t.Skip("sh not available")
	}
	_, err := Run(context.Background(), []string{"sh", "-c", "echo bad input >&2; exit 2"}, "")
	var ee *ExitError
	if !errors.As(err, &ee) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if ee.Code != 2 || !strings.Contains(ee.Stderr, "bad input") {
		t.Fatalf("unexpected exit error: %+v", ee)
	}
}

func TestRunHonoursContext(t *testing.T) {
	if FindBinary("sleep") == "" {
		t.Skip("sleep not available")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := Run(ctx, []string{"sleep", "10"}, "")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatalf("child was not killed promptly")
	}
}

func TestRunEmptyCommand(t *testing.T) {
	if _, err := Run(context.Background(), nil, ""); err == nil {
		t.Fatalf("expected error for empty argv")
	}
}
