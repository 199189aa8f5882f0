// Package history remembers the previously used worktree of a hub.
// This enables `wt switch -` to return to the last worktree.
package history

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/wtree-dev/wt/internal/storage"
)

const (
	stateDir  = ".wtree"
	stateFile = "state"
	lockFile  = "state.lock"

	previousKey = "previous"

	// LockTimeout bounds how long SavePrevious waits for another wt process.
	LockTimeout = 5 * time.Second
)

// ErrLockTimeout is returned when the state lock could not be acquired in time.
var ErrLockTimeout = errors.New("timed out waiting for state lock")

// Path returns the path to the state file of a hub.
func Path(hubRoot string) string {
	return filepath.Join(hubRoot, stateDir, stateFile)
}

// ReadPrevious returns the previous worktree name, or "" if none is recorded.
func ReadPrevious(hubRoot string) (string, error) {
	data, err := os.ReadFile(Path(hubRoot))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read state file: %w", err)
	}
	return parse(data, previousKey), nil
}

func parse(data []byte, key string) string {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		value, ok := strings.CutPrefix(sc.Text(), key+"=")
		if !ok {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}

// SavePrevious records name as the previous worktree, atomically and under
// an exclusive lock shared by concurrent wt processes.
func SavePrevious(ctx context.Context, hubRoot, name string) error {
	dir := filepath.Join(hubRoot, stateDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, lockFile))
	ctx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w (waited %v)", ErrLockTimeout, LockTimeout)
		}
		return fmt.Errorf("acquire state lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("%w (waited %v)", ErrLockTimeout, LockTimeout)
	}
	defer func() { _ = lock.Unlock() }()

	if err := storage.WriteFile(Path(hubRoot), []byte(previousKey+"="+name+"\n"), 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}
