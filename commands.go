package main

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"gitree/internal/gitrepo"
)

const pushTimeout = 2 * time.Minute

// repository is the part of *gitrepo.Repo the browser drives.
type repository interface {
	Root() string
	Scan() (gitrepo.Snapshot, error)
	Diff(path string) ([]gitrepo.DiffLine, error)
	ToggleStage(path string) (bool, error)
	Commit(message string, author gitrepo.Author) (string, error)
	Push(ctx context.Context, remote string) error
	CurrentBranch() string
}

// Results of background work. They are applied to the tree only in Update.
type (
	scanMsg struct {
		snap   gitrepo.Snapshot
		branch string
		err    error
	}
	diffMsg struct {
		path  string
		lines []gitrepo.DiffLine
		err   error
	}
	stageMsg struct {
		path   string
		staged bool
		err    error
	}
	commitMsg struct {
		hash string
		err  error
	}
	pushMsg struct {
		remote string
		err    error
	}
	copyMsg struct {
		path string
		err  error
	}
)

var writeClipboard = clipboard.WriteAll

func scanCmd(repo repository) tea.Cmd {
	return func() tea.Msg {
		snap, err := repo.Scan()
		return scanMsg{snap: snap, branch: repo.CurrentBranch(), err: err}
	}
}

func diffCmd(repo repository, path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := repo.Diff(path)
		return diffMsg{path: path, lines: lines, err: err}
	}
}

func stageCmd(repo repository, path string) tea.Cmd {
	return func() tea.Msg {
		staged, err := repo.ToggleStage(path)
		return stageMsg{path: path, staged: staged, err: err}
	}
}

func commitCmd(repo repository, message string, author gitrepo.Author) tea.Cmd {
	return func() tea.Msg {
		hash, err := repo.Commit(message, author)
		return commitMsg{hash: hash, err: err}
	}
}

func pushCmd(repo repository, remote string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()
		return pushMsg{remote: remote, err: repo.Push(ctx, remote)}
	}
}

func copyCmd(path string) tea.Cmd {
	return func() tea.Msg {
		return copyMsg{path: path, err: writeClipboard(path)}
	}
}
