package main

import (
	"context"
	"os"

	"github.com/wtree-dev/wt/internal/git"
	"github.com/wtree-dev/wt/internal/hooks"
	"github.com/wtree-dev/wt/internal/lifecycle"
	"github.com/wtree-dev/wt/internal/output"
)

// env is the invocation state shared by all commands.
type env struct {
	workDir    string
	globalPath string
}

type envKey struct{}

func withEnv(ctx context.Context, e env) context.Context {
	return context.WithValue(ctx, envKey{}, e)
}

// envFromContext returns the invocation state, falling back to the process
// working directory.
func envFromContext(ctx context.Context) env {
	if e, ok := ctx.Value(envKey{}).(env); ok {
		return e
	}
	wd, _ := os.Getwd()
	return env{workDir: wd}
}

// newManager builds the lifecycle manager for the invoking directory.
func newManager(ctx context.Context) *lifecycle.Manager {
	e := envFromContext(ctx)
	return lifecycle.New(git.Client{}, hooks.NewRunner(), e.workDir, e.globalPath)
}

// emitTarget hands the directory change to the shell wrapper.
func emitTarget(ctx context.Context, path string) error {
	return output.FromContext(ctx).Target(path)
}

// branchLabel describes the branch of a result for status messages.
func branchLabel(branch string) string {
	if branch == "" {
		return ""
	}
	return " (" + branch + ")"
}
