package git

import (
	"errors"
	"testing"
)

func TestCheckGit_Available(t *testing.T) {
	// git must be available in CI and dev environments
	if err := CheckGit(); err != nil {
		t.Fatalf("CheckGit() = %v, want nil (git should be in PATH)", err)
	}
}

func TestCheckGit_MissingFromPath(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if err := CheckGit(); !errors.Is(err, ErrGitNotFound) {
		t.Fatalf("CheckGit() = %v, want ErrGitNotFound", err)
	}
}
