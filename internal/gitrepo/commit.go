package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Author overrides the identity from the repository configuration when Name
// is set.
type Author struct {
	Name  string
	Email string
}

// Commit records the staged changes and returns the new commit hash.
func (r *Repo) Commit(message string, author Author) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}
	// the whole index is committed, so excluded paths count too
	st, err := r.wt.Status()
	if err != nil {
		return "", fmt.Errorf("status: %w", err)
	}
	staged := false
	for _, fs := range st {
		if (FileStatus{Staging: fs.Staging, Worktree: fs.Worktree}).Staged() {
			staged = true
			break
		}
	}
	if !staged {
		return "", ErrNothingStaged
	}

	opts := &git.CommitOptions{}
	if author.Name != "" {
		opts.Author = &object.Signature{Name: author.Name, Email: author.Email, When: time.Now()}
	}
	h, err := r.wt.Commit(message, opts)
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	r.log.WithField("hash", h.String()).Info("committed")
	return h.String(), nil
}

// Push sends local branches to remote. An up to date remote is not an error.
func (r *Repo) Push(ctx context.Context, remote string) error {
	log := r.log.WithField("remote", remote)
	err := r.repo.PushContext(ctx, &git.PushOptions{RemoteName: remote})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		log.Info("remote already up to date")
		return nil
	}
	if err != nil {
		log.WithError(err).Warn("push failed")
		return fmt.Errorf("push %s: %w", remote, err)
	}
	log.Info("pushed")
	return nil
}
