package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/wtree-dev/wt/internal/log"
	"github.com/wtree-dev/wt/internal/output"
)

// testIO captures what a command writes.
type testIO struct {
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	cdFile string
}

// testContext returns a context rooted at workDir with captured output and a
// cd file the shell wrapper would read.
func testContext(t *testing.T, workDir, globalPath string) (context.Context, *testIO) {
	t.Helper()

	tio := &testIO{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		cdFile: filepath.Join(t.TempDir(), "cd"),
	}

	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(tio.stderr, true, false))
	ctx = output.WithPrinter(ctx, output.New(tio.stdout, tio.cdFile))
	ctx = withEnv(ctx, env{workDir: workDir, globalPath: globalPath})
	return ctx, tio
}

// target returns the directory written for the shell wrapper, or "".
func (tio *testIO) target(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(tio.cdFile)
	if os.IsNotExist(err) {
		return ""
	}
	if err != nil {
		t.Fatalf("read cd file: %v", err)
	}
	return string(bytes.TrimSuffix(data, []byte("\n")))
}

// run executes cmd with args in ctx.
func run(ctx context.Context, cmd *cobra.Command, args ...string) error {
	cmd.SetContext(ctx)
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.Execute()
}

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// makeHub creates an empty hub skeleton without git.
func makeHub(t *testing.T) string {
	t.Helper()
	root := filepath.Join(resolvePath(t, t.TempDir()), "hub")
	if err := os.MkdirAll(filepath.Join(root, ".bare"), 0o755); err != nil {
		t.Fatalf("create hub: %v", err)
	}
	return root
}
