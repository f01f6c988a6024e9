package gitrepo

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/index"
)

// ToggleStage stages p when it has no staged change and unstages it
// otherwise. It reports whether p is staged afterwards.
func (r *Repo) ToggleStage(p string) (bool, error) {
	st, err := r.wt.Status()
	if err != nil {
		return false, fmt.Errorf("status: %w", err)
	}
	fs, ok := st[p]
	if !ok {
		return false, fmt.Errorf("%s has no changes", p)
	}

	s := FileStatus{Staging: fs.Staging, Worktree: fs.Worktree}
	if s.Staged() {
		if err := r.unstage(p); err != nil {
			return true, err
		}
		r.log.WithField("path", p).Info("unstaged")
		return false, nil
	}
	if err := r.stage(p, s); err != nil {
		return false, err
	}
	r.log.WithField("path", p).Info("staged")
	return true, nil
}

func (r *Repo) stage(p string, s FileStatus) error {
	var err error
	if s.Worktree == git.Deleted {
		_, err = r.wt.Remove(p)
	} else {
		_, err = r.wt.Add(p)
	}
	if err != nil {
		return fmt.Errorf("stage %s: %w", p, err)
	}
	return nil
}

// unstage resets the index entry for p to its HEAD version, dropping it when
// HEAD does not know the path.
func (r *Repo) unstage(p string) error {
	idx, err := r.repo.Storer.Index()
	if err != nil {
		return fmt.Errorf("read index: %w", err)
	}
	head, err := r.headFile(p)
	if err != nil {
		return err
	}

	if head == nil {
		if _, err := idx.Remove(p); err != nil && !errors.Is(err, index.ErrEntryNotFound) {
			return fmt.Errorf("unstage %s: %w", p, err)
		}
	} else {
		e, err := idx.Entry(p)
		if errors.Is(err, index.ErrEntryNotFound) {
			e = idx.Add(p)
		} else if err != nil {
			return fmt.Errorf("unstage %s: %w", p, err)
		}
		e.Hash = head.Hash
		e.Mode = head.Mode
		e.Size = indexSize(head.Size)
		// zero the stat data so the next status rehashes the working file
		e.ModifiedAt = time.Time{}
		e.CreatedAt = time.Time{}
	}

	if err := r.repo.Storer.SetIndex(idx); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// indexSize keeps the low 32 bits of n, as git does for the index stat size.
// A wrapped size only forces a rehash, never a wrong status.
func indexSize(n int64) uint32 {
	return uint32(n & 0xffffffff)
}
