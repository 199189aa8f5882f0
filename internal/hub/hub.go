// Package hub locates the hub root: the directory that holds the shared
// .bare object store and, as direct children, every worktree.
package hub

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MarkerDir is the name of the bare object store inside the hub root.
const MarkerDir = ".bare"

// ErrNotInHub is returned when no ancestor of the start directory is a hub.
var ErrNotInHub = errors.New("not inside a wt hub (cannot find " + MarkerDir + " directory)")

// FindFromCwd resolves the hub root from the current working directory.
func FindFromCwd() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return Find(wd)
}

// Find walks from start up to the filesystem root and returns the first
// directory that has a .bare directory as an immediate child.
//
// A directory whose .git file points at a .bare store also resolves, to the
// store's parent. This covers worktrees living outside the hub.
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}

	for {
		if isDir(filepath.Join(dir, MarkerDir)) {
			return dir, nil
		}
		if root, ok := fromGitFile(dir); ok {
			return root, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInHub
		}
		dir = parent
	}
}

// IsHub reports whether dir itself is a hub root.
func IsHub(dir string) bool {
	return isDir(filepath.Join(dir, MarkerDir))
}

// fromGitFile follows a "gitdir: <path>" .git file in dir to a .bare store.
func fromGitFile(dir string) (string, bool) {
	gitPath := filepath.Join(dir, ".git")
	info, err := os.Stat(gitPath)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	data, err := os.ReadFile(gitPath)
	if err != nil {
		return "", false
	}
	gitdir, ok := strings.CutPrefix(strings.TrimSpace(string(data)), "gitdir:")
	if !ok {
		return "", false
	}
	gitdir = strings.TrimSpace(gitdir)
	if !filepath.IsAbs(gitdir) {
		gitdir = filepath.Join(dir, gitdir)
	}

	// Worktrees point at .bare/worktrees/<name>; the hub itself at .bare.
	for p := filepath.Clean(gitdir); ; {
		if filepath.Base(p) == MarkerDir && isDir(p) {
			root := filepath.Dir(p)
			if resolved, err := filepath.EvalSymlinks(root); err == nil {
				root = resolved
			}
			return root, true
		}
		parent := filepath.Dir(p)
		if parent == p {
			return "", false
		}
		p = parent
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
