// Package registry is a read-through view of the worktrees registered with a
// hub's bare store. Git owns the state; nothing here is persisted or cached.
package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/wtree-dev/wt/internal/git"
)

var (
	// ErrNotFound matches errors for worktrees that are not registered.
	ErrNotFound = errors.New("worktree not found")
	// ErrAlreadyExists matches errors for names already taken in the hub.
	ErrAlreadyExists = errors.New("worktree already exists")
)

// maxSuggestions caps the "did you mean" list of a NotFoundError.
const maxSuggestions = 3

// minSuggestPrefix is the shortest prefix suggest falls back to.
const minSuggestPrefix = 3

// NotFoundError reports an unknown worktree name, with close matches.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("worktree %q not found", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	} else {
		msg += "; run 'wt list' to see available worktrees"
	}
	return msg
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ExistsError reports a worktree name that is already taken.
type ExistsError struct {
	Name string
	Path string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("worktree %q already exists at %s", e.Name, e.Path)
}

func (e *ExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// Worktree is one worktree of a hub.
type Worktree struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Branch   string `json:"branch,omitempty"`
	Head     string `json:"head"`
	Detached bool   `json:"detached,omitempty"`
	Current  bool   `json:"current"`
}

// ShortHead returns the first 7 characters of the commit hash.
func (w Worktree) ShortHead() string {
	return w.Head[:min(7, len(w.Head))]
}

// Ref returns the branch name, or the short commit hash when detached.
func (w Worktree) Ref() string {
	if w.Branch != "" {
		return w.Branch
	}
	return w.ShortHead()
}

// Lister is the part of the git collaborator the registry reads from.
type Lister interface {
	ListWorktrees(ctx context.Context, dir string) ([]git.Worktree, error)
}

// Registry resolves worktree names within a hub.
type Registry struct {
	git Lister
	// workDir is the directory used to flag the current worktree.
	workDir string
}

// New creates a registry. workDir marks which worktree is current; it may be empty.
func New(lister Lister, workDir string) *Registry {
	return &Registry{git: lister, workDir: workDir}
}

// PathFor returns the conventional location of a worktree named name.
func PathFor(hubRoot, name string) string {
	return filepath.Join(hubRoot, name)
}

// List returns the worktrees of the hub in git's order, skipping the bare store.
func (r *Registry) List(ctx context.Context, hubRoot string) ([]Worktree, error) {
	entries, err := r.git.ListWorktrees(ctx, hubRoot)
	if err != nil {
		return nil, fmt.Errorf("list worktrees: %w", err)
	}

	cwd := canonical(r.workDir)
	var worktrees []Worktree
	for _, e := range entries {
		if e.Bare {
			continue
		}
		wt := Worktree{
			Name:     filepath.Base(e.Path),
			Path:     e.Path,
			Branch:   e.Branch,
			Head:     e.Head,
			Detached: e.Detached,
		}
		if cwd != "" {
			wt.Current = within(cwd, canonical(e.Path))
		}
		worktrees = append(worktrees, wt)
	}
	return worktrees, nil
}

// Names returns the names of all worktrees in the hub.
func (r *Registry) Names(ctx context.Context, hubRoot string) ([]string, error) {
	worktrees, err := r.List(ctx, hubRoot)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(worktrees))
	for _, wt := range worktrees {
		names = append(names, wt.Name)
	}
	return names, nil
}

// Resolve finds the worktree called name.
func (r *Registry) Resolve(ctx context.Context, hubRoot, name string) (*Worktree, error) {
	worktrees, err := r.List(ctx, hubRoot)
	if err != nil {
		return nil, err
	}
	for i := range worktrees {
		if worktrees[i].Name == name {
			return &worktrees[i], nil
		}
	}

	names := make([]string, 0, len(worktrees))
	for _, wt := range worktrees {
		names = append(names, wt.Name)
	}
	return nil, &NotFoundError{Name: name, Suggestions: suggest(name, names)}
}

// EnsureAbsent fails if name is registered, or its directory already exists.
func (r *Registry) EnsureAbsent(ctx context.Context, hubRoot, name string) error {
	worktrees, err := r.List(ctx, hubRoot)
	if err != nil {
		return err
	}
	for _, wt := range worktrees {
		if wt.Name == name {
			return &ExistsError{Name: name, Path: wt.Path}
		}
	}
	path := PathFor(hubRoot, name)
	if _, err := os.Stat(path); err == nil {
		return &ExistsError{Name: name, Path: path}
	}
	return nil
}

// Current returns the worktree containing the working directory, or nil.
func (r *Registry) Current(ctx context.Context, hubRoot string) (*Worktree, error) {
	worktrees, err := r.List(ctx, hubRoot)
	if err != nil {
		return nil, err
	}
	for i := range worktrees {
		if worktrees[i].Current {
			return &worktrees[i], nil
		}
	}
	return nil, nil
}

// BranchCheckedOut returns the worktree that has branch checked out, or nil.
func (r *Registry) BranchCheckedOut(ctx context.Context, hubRoot, branch string) (*Worktree, error) {
	worktrees, err := r.List(ctx, hubRoot)
	if err != nil {
		return nil, err
	}
	for i := range worktrees {
		if worktrees[i].Branch == branch {
			return &worktrees[i], nil
		}
	}
	return nil, nil
}

// suggest returns up to maxSuggestions names similar to name. When name
// itself has no fuzzy match, shorter prefixes are tried so that a typo near
// the end still finds its neighbours.
func suggest(name string, names []string) []string {
	runes := []rune(name)
	for n := len(runes); n >= min(minSuggestPrefix, len(runes)) && n > 0; n-- {
		matches := fuzzy.Find(string(runes[:n]), names)
		if len(matches) == 0 {
			continue
		}
		var out []string
		for _, m := range matches {
			if len(out) == maxSuggestions {
				break
			}
			out = append(out, m.Str)
		}
		return out
	}
	return nil
}

// canonical makes a path absolute and resolves symlinks where possible.
func canonical(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// within reports whether path is dir or lies below it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
