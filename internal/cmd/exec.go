package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/wtree-dev/wt/internal/log"
)

// ExitError describes a command that ran and exited unsuccessfully,
// or could not be started at all (Code -1).
type ExitError struct {
	Name   string
	Args   []string
	Code   int
	Stderr string
	Err    error
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit status of a failed command, or -1 when err does
// not carry one (e.g. the executable was not found).
func ExitCode(err error) int {
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	var xe *exec.ExitError
	if errors.As(err, &xe) {
		return xe.ExitCode()
	}
	return -1
}

// RunContext executes a command, returning stderr in the error if it fails.
// The command is logged through the context logger in verbose mode.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := run(ctx, dir, nil, name, args...)
	return err
}

// OutputContext executes a command and returns its stdout, with stderr in
// the error if it fails.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	var stdout bytes.Buffer
	_, err := run(ctx, dir, &stdout, name, args...)
	if err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}

func run(ctx context.Context, dir string, stdout io.Writer, name string, args ...string) (time.Duration, error) {
	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	c.Stdout = stdout
	var stderr bytes.Buffer
	c.Stderr = &stderr

	err := c.Run()
	elapsed := time.Since(start)
	done(elapsed)

	if err == nil {
		return elapsed, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return elapsed, ctxErr
	}

	code := -1
	var xe *exec.ExitError
	if errors.As(err, &xe) {
		code = xe.ExitCode()
	}
	return elapsed, &ExitError{
		Name:   name,
		Args:   args,
		Code:   code,
		Stderr: strings.TrimSpace(stderr.String()),
		Err:    err,
	}
}
