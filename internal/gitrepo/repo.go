// Package gitrepo wraps the go-git operations the browser needs: scanning the
// working copy for changed paths, diffing, staging, committing and pushing.
package gitrepo

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotRepository = errors.New("not a git repository")
	ErrNothingStaged = errors.New("no staged files found")
	ErrEmptyMessage  = errors.New("commit message is empty")
)

type Options struct {
	// Exclude holds gitignore-style patterns for paths that are hidden from
	// scans even though git reports them.
	Exclude []string
	Logger  logrus.FieldLogger
}

type Repo struct {
	repo     *git.Repository
	wt       *git.Worktree
	root     string
	excludes []gitignore.Pattern
	log      logrus.FieldLogger
}

// Open finds the repository containing path, walking up to the .git directory.
func Open(path string, opts Options) (*Repo, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotRepository)
		}
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree %s: %w", path, err)
	}

	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	var patterns []gitignore.Pattern
	for _, line := range opts.Exclude {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}

	root := wt.Filesystem.Root()
	return &Repo{
		repo:     repo,
		wt:       wt,
		root:     root,
		excludes: patterns,
		log:      log.WithField("repo", root),
	}, nil
}

// Root is the absolute path of the working copy.
func (r *Repo) Root() string {
	return r.root
}

// Scan lists every path with a staged or unstaged change, sorted.
func (r *Repo) Scan() (Snapshot, error) {
	st, err := r.wt.Status()
	if err != nil {
		return Snapshot{}, fmt.Errorf("status: %w", err)
	}

	snap := Snapshot{Statuses: make(map[string]FileStatus, len(st))}
	for p, fs := range st {
		s := FileStatus{Staging: fs.Staging, Worktree: fs.Worktree}
		if s.Clean() || r.isExcluded(p) {
			continue
		}
		snap.Paths = append(snap.Paths, p)
		snap.Statuses[p] = s
	}
	sort.Strings(snap.Paths)

	r.log.WithField("count", len(snap.Paths)).Debug("scanned working copy")
	return snap, nil
}

func (r *Repo) isExcluded(p string) bool {
	components := strings.Split(p, "/")
	for _, pattern := range r.excludes {
		if pattern.Match(components, false) == gitignore.Exclude {
			return true
		}
	}
	return false
}

// CurrentBranch names the checked out branch, or the abbreviated commit when
// HEAD is detached. An unborn branch still reports its name.
func (r *Repo) CurrentBranch() string {
	ref, err := r.repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return ""
	}
	if ref.Type() == plumbing.SymbolicReference {
		return ref.Target().Short()
	}
	h := ref.Hash().String()
	if len(h) > 7 {
		h = h[:7]
	}
	return h
}

func (r *Repo) Branches() ([]string, error) {
	iter, err := r.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer iter.Close()

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	sort.Strings(names)
	return names, nil
}
