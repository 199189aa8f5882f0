package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wtree-dev/wt/internal/config"
	"github.com/wtree-dev/wt/internal/hub"
)

func TestInitCmd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell string
		want  []string
	}{
		{shell: "bash", want: []string{"wt() {", `WT_CD_FILE="$cd_file" command wt "$@"`, `cd "$(cat "$cd_file")"`}},
		{shell: "zsh", want: []string{"wt() {", `WT_CD_FILE="$cd_file" command wt "$@"`}},
		{shell: "fish", want: []string{"function wt", "WT_CD_FILE=$cd_file command wt $argv"}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			ctx, tio := testContext(t, t.TempDir(), "")

			if err := run(ctx, newInitCmd(), tt.shell); err != nil {
				t.Fatalf("init %s: %v", tt.shell, err)
			}
			for _, w := range tt.want {
				if !strings.Contains(tio.stdout.String(), w) {
					t.Errorf("init %s output missing %q:\n%s", tt.shell, w, tio.stdout.String())
				}
			}
		})
	}
}

// TestInitCmd_BashWrapper runs the bash wrapper against a stand-in wt that
// writes a target and exits with a given status.
func TestInitCmd_BashWrapper(t *testing.T) {
	t.Parallel()
	bash, err := exec.LookPath("bash")
	if err != nil {
		t.Skip("bash not available")
	}

	tests := []struct {
		name     string
		target   bool
		exitCode int
		wantRC   string
		wantCd   bool
	}{
		{name: "success with target", target: true, exitCode: 0, wantRC: "0", wantCd: true},
		{name: "failure with target", target: true, exitCode: 1, wantRC: "1", wantCd: true},
		{name: "failure without target", target: false, exitCode: 1, wantRC: "1", wantCd: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tmpDir := resolvePath(t, t.TempDir())
			hubRoot := filepath.Join(tmpDir, "hub")
			bin := filepath.Join(tmpDir, "bin")
			for _, dir := range []string{hubRoot, bin} {
				if err := os.Mkdir(dir, 0o755); err != nil {
					t.Fatal(err)
				}
			}

			script := "#!/bin/sh\n"
			if tt.target {
				script += `printf '%s' "$FAKE_TARGET" > "$WT_CD_FILE"` + "\n"
			}
			script += fmt.Sprintf("exit %d\n", tt.exitCode)
			if err := os.WriteFile(filepath.Join(bin, "wt"), []byte(script), 0o755); err != nil {
				t.Fatal(err)
			}

			c := exec.Command(bash, "-c", bashInit+`
wt remove current missing
rc=$?
printf '%s|%s' "$PWD" "$rc"`)
			c.Dir = tmpDir
			c.Env = append(os.Environ(),
				"PATH="+bin+string(os.PathListSeparator)+os.Getenv("PATH"),
				"FAKE_TARGET="+hubRoot,
				"TMPDIR="+tmpDir,
			)
			out, err := c.Output()
			if err != nil {
				t.Fatalf("bash: %v", err)
			}

			wantDir := tmpDir
			if tt.wantCd {
				wantDir = hubRoot
			}
			if got, want := string(out), wantDir+"|"+tt.wantRC; got != want {
				t.Errorf("got %q, want %q", got, want)
			}
		})
	}
}

func TestInitCmd_UnsupportedShell(t *testing.T) {
	t.Parallel()
	ctx, _ := testContext(t, t.TempDir(), "")

	if err := run(ctx, newInitCmd(), "powershell"); err == nil {
		t.Fatal("expected error for unsupported shell")
	}
}

func TestConfigPath(t *testing.T) {
	t.Parallel()

	hubRoot := makeHub(t)
	global := filepath.Join(t.TempDir(), "wt", config.FileName)

	// Nothing configured: built-in, nothing on stdout
	ctx, tio := testContext(t, hubRoot, global)
	if err := run(ctx, newConfigCmd(), "path"); err != nil {
		t.Fatalf("config path: %v", err)
	}
	if tio.stdout.Len() != 0 {
		t.Errorf("expected no path for built-in config, got %q", tio.stdout.String())
	}

	// Global file exists
	if err := config.WriteTemplate(global, false); err != nil {
		t.Fatal(err)
	}
	ctx, tio = testContext(t, hubRoot, global)
	if err := run(ctx, newConfigCmd(), "path"); err != nil {
		t.Fatalf("config path: %v", err)
	}
	if got := strings.TrimSpace(tio.stdout.String()); got != global {
		t.Errorf("config path = %q, want %q", got, global)
	}

	// Local file wins
	local := config.LocalPath(hubRoot)
	if err := config.WriteTemplate(local, false); err != nil {
		t.Fatal(err)
	}
	ctx, tio = testContext(t, hubRoot, global)
	if err := run(ctx, newConfigCmd(), "path"); err != nil {
		t.Fatalf("config path: %v", err)
	}
	if got := strings.TrimSpace(tio.stdout.String()); got != local {
		t.Errorf("config path = %q, want %q", got, local)
	}

	ctx, tio = testContext(t, hubRoot, global)
	if err := run(ctx, newConfigCmd(), "path", "--global"); err != nil {
		t.Fatalf("config path --global: %v", err)
	}
	if got := strings.TrimSpace(tio.stdout.String()); got != global {
		t.Errorf("config path --global = %q, want %q", got, global)
	}
}

func TestConfigShow(t *testing.T) {
	t.Parallel()

	hubRoot := makeHub(t)
	local := config.LocalPath(hubRoot)
	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		t.Fatal(err)
	}
	content := "[create]\npre = [\"echo hi\"]\n[deploy]\npre = []\n"
	if err := os.WriteFile(local, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, tio := testContext(t, hubRoot, "")
	if err := run(ctx, newConfigCmd(), "show"); err != nil {
		t.Fatalf("config show: %v", err)
	}

	out := tio.stdout.String()
	if !strings.HasPrefix(out, "# source: local ("+local+")\n") {
		t.Errorf("missing source header:\n%s", out)
	}
	if !strings.Contains(out, "# ignored unknown key: deploy") {
		t.Errorf("missing unknown key note:\n%s", out)
	}

	cfg, _, err := config.Decode(out)
	if err != nil {
		t.Fatalf("config show output does not decode: %v\n%s", err, out)
	}
	if len(cfg.Create.Pre) != 1 || cfg.Create.Pre[0] != "echo hi" {
		t.Errorf("create.pre = %v, want [echo hi]", cfg.Create.Pre)
	}
}

func TestConfigShow_Invalid(t *testing.T) {
	t.Parallel()

	hubRoot := makeHub(t)
	local := config.LocalPath(hubRoot)
	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(local, []byte("[create]\npre = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, _ := testContext(t, hubRoot, "")
	err := run(ctx, newConfigCmd(), "show")
	if !errors.Is(err, config.ErrInvalidHookConfig) {
		t.Fatalf("expected ErrInvalidHookConfig, got %v", err)
	}
}

func TestConfigInit(t *testing.T) {
	t.Parallel()

	hubRoot := makeHub(t)
	ctx, _ := testContext(t, hubRoot, "")

	if err := run(ctx, newConfigCmd(), "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	data, err := os.ReadFile(config.LocalPath(hubRoot))
	if err != nil {
		t.Fatalf("read hook config: %v", err)
	}
	if string(data) != config.Template() {
		t.Error("config init should write the template")
	}

	err = run(ctx, newConfigCmd(), "init")
	if !errors.Is(err, fs.ErrExist) {
		t.Fatalf("second init without --force: expected fs.ErrExist, got %v", err)
	}

	if err := run(ctx, newConfigCmd(), "init", "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}
}

func TestConfigInit_Global(t *testing.T) {
	t.Parallel()

	global := filepath.Join(t.TempDir(), "xdg", "wt", config.FileName)
	ctx, _ := testContext(t, t.TempDir(), global)

	if err := run(ctx, newConfigCmd(), "init", "--global"); err != nil {
		t.Fatalf("config init --global: %v", err)
	}
	if _, err := os.Stat(global); err != nil {
		t.Fatalf("global hook config not written: %v", err)
	}
}

func TestConfigInit_OutsideHub(t *testing.T) {
	t.Parallel()
	ctx, _ := testContext(t, t.TempDir(), "")

	err := run(ctx, newConfigCmd(), "init")
	if !errors.Is(err, hub.ErrNotInHub) {
		t.Fatalf("expected ErrNotInHub, got %v", err)
	}
}

func TestBranchLabel(t *testing.T) {
	t.Parallel()

	if got := branchLabel(""); got != "" {
		t.Errorf("branchLabel(\"\") = %q", got)
	}
	if got := branchLabel("main"); got != " (main)" {
		t.Errorf("branchLabel(main) = %q", got)
	}
}
