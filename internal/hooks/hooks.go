package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/wtree-dev/wt/internal/cmd"
	"github.com/wtree-dev/wt/internal/config"
	"github.com/wtree-dev/wt/internal/log"
	"github.com/wtree-dev/wt/internal/output"
)

// ShellEnv overrides the interpreter hook commands are passed to.
const ShellEnv = "WT_HOOK_SHELL"

// Phase is the position of a hook list relative to the operation.
type Phase int

const (
	// Pre runs in the hub root before the operation. Failures abort.
	Pre Phase = iota
	// Post runs in the worktree after the operation. Failures warn.
	Post
)

func (p Phase) String() string {
	if p == Pre {
		return "pre"
	}
	return "post"
}

// Event is the lifecycle operation a hook list belongs to.
type Event string

const (
	Create Event = "create"
	Switch Event = "switch"
	Remove Event = "remove"
)

// PreHookFailedError reports the pre hook that stopped an operation.
type PreHookFailedError struct {
	Event      Event
	Command    string
	ExitStatus int
	Err        error
}

func (e *PreHookFailedError) Error() string {
	return fmt.Sprintf("pre-%s hook %q failed (exit status %d)", e.Event, e.Command, e.ExitStatus)
}

func (e *PreHookFailedError) Unwrap() error {
	return e.Err
}

// PostHookWarning records a post hook that exited unsuccessfully.
type PostHookWarning struct {
	Command    string
	ExitStatus int
}

func (w PostHookWarning) String() string {
	return fmt.Sprintf("post hook %q failed (exit status %d)", w.Command, w.ExitStatus)
}

// Outcome summarizes a completed phase.
type Outcome struct {
	// Ran counts the commands that were started.
	Ran      int
	Warnings []PostHookWarning
}

// Runner executes hook commands through a shell.
type Runner struct {
	// Shell is the interpreter and its flags; the command is appended.
	Shell  []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner creates a runner attached to the process's standard streams.
func NewRunner() *Runner {
	return &Runner{
		Shell:  DetectShell(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// DetectShell returns $WT_HOOK_SHELL, else bash when it is on PATH, else sh.
func DetectShell() []string {
	if sh := os.Getenv(ShellEnv); sh != "" {
		return []string{sh, "-c"}
	}
	if _, err := exec.LookPath("bash"); err == nil {
		return []string{"bash", "-c"}
	}
	return []string{"sh", "-c"}
}

// Run executes the hooks cfg defines for the context's event and phase.
func (r *Runner) Run(ctx context.Context, phase Phase, cfg config.HookConfig, hctx Context) (Outcome, error) {
	eh := cfg.For(string(hctx.Command))
	commands := eh.Pre
	if phase == Post {
		commands = eh.Post
	}
	return r.RunPhase(ctx, phase, commands, hctx)
}

// RunPhase executes commands in order. In the Pre phase the first failure
// stops the list and is returned as a *PreHookFailedError. In the Post phase
// failures are logged and collected in the Outcome, and the remaining
// commands still run.
func (r *Runner) RunPhase(ctx context.Context, phase Phase, commands []string, hctx Context) (Outcome, error) {
	var out Outcome
	if len(commands) == 0 {
		return out, nil
	}

	l := log.FromContext(ctx)
	dir := hctx.Dir(phase)
	env := append(baseEnv(), hctx.Env()...)

	for _, command := range commands {
		l.Debug("hook", "phase", phase, "event", hctx.Command, "dir", dir)
		err := r.exec(ctx, dir, env, command)
		out.Ran++
		if err == nil {
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return out, ctxErr
		}

		status := cmd.ExitCode(err)
		if phase == Pre {
			return out, &PreHookFailedError{Event: hctx.Command, Command: command, ExitStatus: status, Err: err}
		}
		w := PostHookWarning{Command: command, ExitStatus: status}
		out.Warnings = append(out.Warnings, w)
		l.Warnf("%s", w)
	}
	return out, nil
}

// baseEnv is the process environment minus the shell wrapper's target file,
// so a nested wt inside a hook cannot redirect the outer command's shell.
func baseEnv() []string {
	environ := os.Environ()
	env := make([]string, 0, len(environ))
	for _, kv := range environ {
		if strings.HasPrefix(kv, output.CdFileEnv+"=") {
			continue
		}
		env = append(env, kv)
	}
	return env
}

func (r *Runner) exec(ctx context.Context, dir string, env []string, command string) error {
	shell := r.Shell
	if len(shell) == 0 {
		shell = DetectShell()
	}
	args := append(append([]string{}, shell[1:]...), command)

	done := log.FromContext(ctx).Command(dir, shell[0], args...)
	start := time.Now()
	defer func() { done(time.Since(start)) }()

	c := exec.CommandContext(ctx, shell[0], args...)
	c.Dir = dir
	c.Env = env
	c.Stdin = r.Stdin
	c.Stdout = r.Stdout
	c.Stderr = r.Stderr

	err := c.Run()
	var xe *exec.ExitError
	if err != nil && !errors.As(err, &xe) {
		return &cmd.ExitError{Name: shell[0], Args: args, Code: -1, Err: err}
	}
	return err
}
