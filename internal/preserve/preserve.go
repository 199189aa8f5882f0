// Package preserve propagates untracked environment files between worktrees.
//
// `wt switch --envs` copies every .env* file of the current worktree into the
// target, keeping their relative paths, so local settings follow the user.
package preserve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/wtree-dev/wt/internal/log"
)

var (
	// EnvPatterns are matched against file base names.
	EnvPatterns = []string{".env*"}
	// Excluded base names are never copied, even when a pattern matches.
	Excluded = []string{".env.example"}
	// SkippedDirs are not descended into.
	SkippedDirs = []string{".git", "node_modules"}
)

// matchesPattern returns true if the file at relPath should be copied.
// Patterns are matched against the file's basename.
// If any directory segment is a skipped dir, the file is skipped.
func matchesPattern(relPath string, patterns, exclude, skipDirs []string) bool {
	segs := strings.Split(filepath.ToSlash(relPath), "/")
	for _, seg := range segs[:len(segs)-1] {
		if slices.Contains(skipDirs, seg) {
			return false
		}
	}

	base := segs[len(segs)-1]
	if slices.Contains(exclude, base) {
		return false
	}
	for _, pat := range patterns {
		if matched, _ := doublestar.Match(pat, base); matched {
			return true
		}
	}
	return false
}

// CopyFile copies src to dst, creating parent directories as needed.
// An existing dst is overwritten. The source file's permission bits are kept.
func CopyFile(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !srcInfo.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return err
	}
	if err := dstFile.Close(); err != nil {
		return err
	}
	// OpenFile leaves the mode of an existing file untouched.
	return os.Chmod(dst, srcInfo.Mode().Perm())
}

// CopyEnvFiles copies the .env* files below sourceDir into targetDir and
// returns the relative paths that were copied. A file that cannot be copied
// is reported as a warning and skipped.
func CopyEnvFiles(ctx context.Context, sourceDir, targetDir string) ([]string, error) {
	l := log.FromContext(ctx)

	if filepath.Clean(sourceDir) == filepath.Clean(targetDir) {
		return nil, nil
	}

	var copied []string
	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == sourceDir {
				return err
			}
			l.Debug("preserve: skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if path != sourceDir && slices.Contains(SkippedDirs, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		if !matchesPattern(relPath, EnvPatterns, Excluded, SkippedDirs) {
			return nil
		}

		if err := CopyFile(path, filepath.Join(targetDir, relPath)); err != nil {
			l.Warnf("could not copy %s: %v", relPath, err)
			return nil
		}
		copied = append(copied, relPath)
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return copied, err
		}
		return copied, fmt.Errorf("copy env files: %w", err)
	}
	return copied, nil
}
