package git

import (
	"context"
	"strings"
)

// FetchRefspec is the refspec bare clones lack; without it "git fetch"
// doesn't update remote-tracking branches.
const FetchRefspec = "+refs/heads/*:refs/remotes/origin/*"

// CloneBare clones url as a bare repository into dest.
func (Client) CloneBare(ctx context.Context, url, dest string) error {
	return runGit(ctx, "", "clone", "--bare", url, dest)
}

// ConfigureFetch sets the origin fetch refspec in the repository at dir.
func (Client) ConfigureFetch(ctx context.Context, dir string) error {
	return runGit(ctx, dir, "config", "remote.origin.fetch", FetchRefspec)
}

// DefaultBranch returns the branch HEAD points to in the repository at dir.
// For a fresh bare clone this is the remote's default branch.
// Returns "" when HEAD is detached or unborn outside refs/heads.
func (Client) DefaultBranch(ctx context.Context, dir string) (string, error) {
	out, err := outputGit(ctx, dir, "symbolic-ref", "HEAD")
	if err != nil {
		return "", err
	}
	ref := strings.TrimSpace(string(out))
	branch, ok := strings.CutPrefix(ref, "refs/heads/")
	if !ok {
		return "", nil
	}
	return branch, nil
}
