package git

import (
	"context"
	"strings"
)

// Worktree is one entry of "git worktree list --porcelain".
type Worktree struct {
	Path     string
	Head     string
	Branch   string // short name, empty when detached or bare
	Bare     bool
	Detached bool
}

// ParseWorktreeList parses porcelain output into worktree entries.
// Entries are separated by blank lines; unknown attributes are ignored.
func ParseWorktreeList(output string) []Worktree {
	var worktrees []Worktree
	var current *Worktree

	flush := func() {
		if current != nil && current.Path != "" {
			worktrees = append(worktrees, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, "worktree "):
			flush()
			current = &Worktree{Path: strings.TrimPrefix(line, "worktree ")}
		case current == nil:
			continue
		case strings.HasPrefix(line, "HEAD "):
			current.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch "):
			current.Branch = strings.TrimPrefix(strings.TrimPrefix(line, "branch "), "refs/heads/")
		case line == "bare":
			current.Bare = true
		case line == "detached":
			current.Detached = true
		case line == "":
			flush()
		}
	}
	flush()

	return worktrees
}

// Client runs git operations. The zero value is ready to use.
type Client struct{}

// ListWorktrees returns all worktrees registered with the repository at dir,
// including the bare entry.
func (Client) ListWorktrees(ctx context.Context, dir string) ([]Worktree, error) {
	out, err := outputGit(ctx, dir, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}
	return ParseWorktreeList(string(out)), nil
}

// AddOptions describes a worktree to create.
type AddOptions struct {
	Path string
	// Commitish is checked out in the new worktree. With NewBranch set it is
	// the start point of the new branch. Empty means git's default (HEAD, or
	// the branch named after the path's leaf).
	Commitish string
	// NewBranch, when set, creates this branch (git worktree add -b).
	NewBranch string
}

// AddArgs returns the git arguments for creating the worktree.
func (o AddOptions) AddArgs() []string {
	args := []string{"worktree", "add"}
	if o.NewBranch != "" {
		args = append(args, "-b", o.NewBranch)
	}
	args = append(args, o.Path)
	if o.Commitish != "" {
		args = append(args, o.Commitish)
	}
	return args
}

// AddWorktree creates a worktree in the repository at dir.
func (Client) AddWorktree(ctx context.Context, dir string, opts AddOptions) error {
	return runGit(ctx, dir, opts.AddArgs()...)
}

// RemoveWorktree removes the worktree at path from the repository at dir.
func (Client) RemoveWorktree(ctx context.Context, dir, path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)
	return runGit(ctx, dir, args...)
}
