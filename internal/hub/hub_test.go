package hub

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tempDir returns a symlink-resolved temp dir (macOS /var -> /private/var).
func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func mkdirs(t *testing.T, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, os.MkdirAll(p, 0o755))
	}
}

func TestFind_FromHubRoot(t *testing.T) {
	root := tempDir(t)
	mkdirs(t, filepath.Join(root, MarkerDir))

	got, err := Find(root)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFind_FromAnyDescendant(t *testing.T) {
	root := tempDir(t)
	mkdirs(t,
		filepath.Join(root, MarkerDir),
		filepath.Join(root, "feature-x", "src", "pkg"),
		filepath.Join(root, "main"),
	)

	for _, start := range []string{
		root,
		filepath.Join(root, "main"),
		filepath.Join(root, "feature-x"),
		filepath.Join(root, "feature-x", "src", "pkg"),
		filepath.Join(root, MarkerDir),
	} {
		got, err := Find(start)
		require.NoError(t, err, "start=%s", start)
		assert.Equal(t, root, got, "start=%s", start)
	}
}

func TestFind_MarkerDeeperThanChildDoesNotMatch(t *testing.T) {
	base := tempDir(t)
	// base/a/b/.bare exists, but searching from base/a must not see it.
	mkdirs(t, filepath.Join(base, "a", "b", MarkerDir))

	_, err := Find(filepath.Join(base, "a"))
	assert.ErrorIs(t, err, ErrNotInHub)

	got, err := Find(filepath.Join(base, "a", "b"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "a", "b"), got)
}

func TestFind_NestedHubsResolveToNearest(t *testing.T) {
	outer := tempDir(t)
	inner := filepath.Join(outer, "vendor", "inner")
	mkdirs(t,
		filepath.Join(outer, MarkerDir),
		filepath.Join(inner, MarkerDir),
		filepath.Join(inner, "wt"),
	)

	got, err := Find(filepath.Join(inner, "wt"))
	require.NoError(t, err)
	assert.Equal(t, inner, got)
}

func TestFind_MarkerFileIsNotHub(t *testing.T) {
	base := tempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(base, MarkerDir), nil, 0o644))

	_, err := Find(base)
	assert.ErrorIs(t, err, ErrNotInHub)
}

func TestFind_NotInHub(t *testing.T) {
	base := tempDir(t)
	mkdirs(t, filepath.Join(base, "x", "y"))

	_, err := Find(filepath.Join(base, "x", "y"))
	assert.ErrorIs(t, err, ErrNotInHub)
}

func TestFind_GitFileOutsideHub(t *testing.T) {
	base := tempDir(t)
	root := filepath.Join(base, "hub")
	outside := filepath.Join(base, "elsewhere", "feature")
	mkdirs(t, filepath.Join(root, MarkerDir, "worktrees", "feature"), outside)
	require.NoError(t, os.WriteFile(
		filepath.Join(outside, ".git"),
		[]byte("gitdir: "+filepath.Join(root, MarkerDir, "worktrees", "feature")+"\n"),
		0o644,
	))

	got, err := Find(filepath.Join(outside))
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFind_RelativeGitFile(t *testing.T) {
	root := tempDir(t)
	mkdirs(t, filepath.Join(root, MarkerDir), filepath.Join(root, "sub"))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git"), []byte("gitdir: ./.bare\n"), 0o644))

	got, err := Find(filepath.Join(root, "sub"))
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestIsHub(t *testing.T) {
	root := tempDir(t)
	assert.False(t, IsHub(root))
	mkdirs(t, filepath.Join(root, MarkerDir))
	assert.True(t, IsHub(root))
}
