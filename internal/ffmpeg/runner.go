package ffmpeg

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrTimeout is wrapped into the error of an invocation that ran past its
// timeout.
var ErrTimeout = errors.New("ffmpeg timed out")

// stderrTail is how much of ffmpeg's stderr is kept on failure.
const stderrTail = 2048

// Runner executes one ffmpeg invocation with an explicit argument list.
type Runner interface {
	Run(ctx context.Context, args []string) error
}

// ExecRunner runs the ffmpeg binary as a subprocess. Arguments are passed
// straight to the process, never through a shell.
type ExecRunner struct {
	// Binary is the ffmpeg executable name or path
	Binary string

	// Timeout bounds every invocation; zero disables it
	Timeout time.Duration

	// Stderr, when set, receives ffmpeg's stderr as it is written
	Stderr io.Writer
}

// NewExecRunner returns a runner for binary, falling back to "ffmpeg" on PATH.
func NewExecRunner(binary string, timeout time.Duration) *ExecRunner {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &ExecRunner{Binary: binary, Timeout: timeout}
}

// Run starts the binary and waits for it. A non-zero exit, a signal, a
// timeout or a cancelled ctx all return an error carrying the tail of stderr.
func (r *ExecRunner) Run(ctx context.Context, args []string) error {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.WaitDelay = 5 * time.Second

	var stderrBuf bytes.Buffer
	if r.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderrBuf, r.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Wrapf(ErrTimeout, "after %s", r.Timeout)
	}
	if ctx.Err() != nil {
		return errors.Wrap(ctx.Err(), "ffmpeg interrupted")
	}
	if tail := tail(stderrBuf.String(), stderrTail); tail != "" {
		return errors.Wrapf(err, "ffmpeg failed: %s", tail)
	}
	return errors.Wrap(err, "ffmpeg failed")
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
