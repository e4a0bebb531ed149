// Package gitops implements the repository checkout collaborator on
// go-git. The pipeline only sees the Fetch contract; everything about
// how the working copy is obtained lives here.
package gitops

import (
	"context"
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Fetcher checks out a repository into a local directory.
type Fetcher struct {
	// Dir is the local directory for the working copy.
	Dir string

	// Branch is the branch to track; empty means the remote default.
	Branch string

	// Depth limits clone history; 0 means a full clone.
	Depth int
}

// NewFetcher creates a Fetcher with a shallow single-branch clone.
func NewFetcher(dir string) *Fetcher {
	return &Fetcher{Dir: dir, Depth: 1}
}

// Fetch clones the repository into Dir, or fast-forwards an existing
// working copy. An up-to-date copy is not an error.
func (f *Fetcher) Fetch(ctx context.Context, repoURL string) error {
	opts := &git.CloneOptions{
		URL:          repoURL,
		Depth:        f.Depth,
		SingleBranch: true,
	}
	if f.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(f.Branch)
	}

	_, err := git.PlainCloneContext(ctx, f.Dir, false, opts)
	if err == nil {
		return nil
	}
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		return f.pull(ctx)
	}

	return fmt.Errorf("clone %s: %w", repoURL, err)
}

// Head returns the current commit hash of the working copy.
func (f *Fetcher) Head() (string, error) {
	repo, err := git.PlainOpen(f.Dir)
	if err != nil {
		return "", fmt.Errorf("open repository: %w", err)
	}

	ref, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}

	return ref.Hash().String(), nil
}

func (f *Fetcher) pull(ctx context.Context) error {
	repo, err := git.PlainOpen(f.Dir)
	if err != nil {
		return fmt.Errorf("open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("open worktree: %w", err)
	}

	err = wt.PullContext(ctx, &git.PullOptions{SingleBranch: true})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("pull: %w", err)
	}

	return nil
}
