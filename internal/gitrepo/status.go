package gitrepo

import "github.com/go-git/go-git/v5"

// Kind groups statuses the way the tree colors them.
type Kind int

const (
	KindOther Kind = iota
	KindStaged
	KindNew
	KindModified
	KindDeleted
	KindRenamed
	KindConflict
)

// FileStatus is the index and worktree state of one path.
type FileStatus struct {
	Staging  git.StatusCode
	Worktree git.StatusCode
}

// Staged reports whether the index differs from HEAD for the path.
func (s FileStatus) Staged() bool {
	switch s.Staging {
	case git.Unmodified, git.Untracked, git.UpdatedButUnmerged:
		return false
	}
	return true
}

func (s FileStatus) Clean() bool {
	return s.Staging == git.Unmodified && s.Worktree == git.Unmodified
}

func (s FileStatus) Kind() Kind {
	switch {
	case s.Staging == git.UpdatedButUnmerged || s.Worktree == git.UpdatedButUnmerged:
		return KindConflict
	case s.Staged():
		return KindStaged
	case s.Worktree == git.Untracked:
		return KindNew
	case s.Worktree == git.Modified:
		return KindModified
	case s.Worktree == git.Deleted:
		return KindDeleted
	case s.Worktree == git.Renamed || s.Worktree == git.Copied:
		return KindRenamed
	}
	return KindOther
}

// Icon is the short marker drawn in front of a file name.
func (s FileStatus) Icon() string {
	switch s.Kind() {
	case KindConflict:
		return "U"
	case KindStaged:
		return "S"
	case KindModified:
		return "M"
	case KindNew:
		return "N"
	case KindDeleted:
		return "D"
	case KindRenamed:
		return "R"
	}
	return "??"
}

// Snapshot is the result of one rescan.
type Snapshot struct {
	Paths    []string
	Statuses map[string]FileStatus
}

// Status returns the status recorded for p. Paths that are not part of the
// snapshot report ok == false.
func (s Snapshot) Status(p string) (FileStatus, bool) {
	st, ok := s.Statuses[p]
	return st, ok
}

func (s Snapshot) StagedCount() int {
	n := 0
	for _, st := range s.Statuses {
		if st.Staged() {
			n++
		}
	}
	return n
}
