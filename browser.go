package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"gitree/internal/config"
	"gitree/internal/filetree"
	"gitree/internal/gitrepo"
)

type pane int

const (
	paneTree pane = iota
	paneDiff
)

// browser is the main model. It is the only owner of the tree: background
// commands hand their results back as messages and Update applies them.
type browser struct {
	repo repository
	cfg  config.Config
	log  logrus.FieldLogger
	keys keyMap

	tree     *filetree.Tree
	statuses map[string]gitrepo.FileStatus
	staged   int
	branch   string

	diff     viewport.Model
	diffPath string
	diffErr  string

	// only a diff result for this path is shown; earlier requests may finish late
	pendingDiff string

	focus       pane
	committing  bool
	commitInput textinput.Model
	pushing     bool
	showHelp    bool
	status      string
	statusIsErr bool

	width, height int
}

func newBrowser(repo repository, cfg config.Config, log logrus.FieldLogger) *browser {
	ti := textinput.New()
	ti.Placeholder = "commit summary"
	ti.CharLimit = 256
	ti.Width = 60

	return &browser{
		repo:        repo,
		cfg:         cfg,
		log:         log,
		keys:        defaultKeyMap(),
		tree:        filetree.New(filetree.Options{PreserveExpansion: cfg.Tree.PreserveExpansion}),
		statuses:    map[string]gitrepo.FileStatus{},
		diff:        viewport.New(0, 0),
		commitInput: ti,
	}
}

func (b *browser) Init() tea.Cmd {
	return scanCmd(b.repo)
}

func (b *browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil

	case scanMsg:
		return b, b.applyScan(msg)

	case diffMsg:
		b.applyDiff(msg)
		return b, nil

	case stageMsg:
		if msg.err != nil {
			b.fail("stage", msg.err)
			return b, nil
		}
		verb := "Unstaged"
		if msg.staged {
			verb = "Staged"
		}
		b.info(fmt.Sprintf("%s %s", verb, msg.path))
		return b, scanCmd(b.repo)

	case commitMsg:
		if msg.err != nil {
			if errors.Is(msg.err, gitrepo.ErrNothingStaged) {
				b.fail("commit", errors.New("no staged files found, please stage files first"))
			} else {
				b.fail("commit", msg.err)
			}
			return b, nil
		}
		b.info("Committed " + shortHash(msg.hash))
		return b, scanCmd(b.repo)

	case pushMsg:
		b.pushing = false
		if msg.err != nil {
			b.fail("push", msg.err)
			return b, nil
		}
		b.info("Pushed to " + msg.remote)
		return b, nil

	case copyMsg:
		if msg.err != nil {
			b.fail("copy", msg.err)
			return b, nil
		}
		b.info("Copied " + msg.path)
		return b, nil

	case tea.KeyMsg:
		if b.committing {
			return b.updateCommit(msg)
		}
		if b.showHelp {
			b.showHelp = false
			return b, nil
		}
		return b.updateKeys(msg)
	}
	return b, nil
}

func (b *browser) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keys.Quit):
		return b, tea.Quit
	case key.Matches(msg, b.keys.Help):
		b.showHelp = true
		return b, nil
	case key.Matches(msg, b.keys.Focus):
		if b.focus == paneTree {
			b.focus = paneDiff
		} else {
			b.focus = paneTree
		}
		return b, nil
	case key.Matches(msg, b.keys.Rescan):
		b.info("Rescanning...")
		return b, scanCmd(b.repo)
	case key.Matches(msg, b.keys.Commit):
		b.committing = true
		b.commitInput.Reset()
		return b, b.commitInput.Focus()
	case key.Matches(msg, b.keys.Push):
		if b.pushing {
			return b, nil
		}
		b.pushing = true
		b.info("Pushing to " + b.cfg.Git.Remote + "...")
		return b, pushCmd(b.repo, b.cfg.Git.Remote)
	}

	if b.focus == paneDiff {
		return b.updateDiffPane(msg)
	}
	return b.updateTreePane(msg)
}

func (b *browser) updateTreePane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keys.Up):
		b.tree.Previous()
		return b, b.selectFile()
	case key.Matches(msg, b.keys.Down):
		b.tree.Next()
		return b, b.selectFile()
	case key.Matches(msg, b.keys.Expand):
		b.tree.ToggleExpand()
		return b, nil
	case key.Matches(msg, b.keys.Collapse):
		b.tree.CollapseOrSelectParent()
		return b, b.selectFile()
	case key.Matches(msg, b.keys.Open):
		row, ok := b.tree.SelectedRow()
		if !ok {
			return b, nil
		}
		if row.IsDir {
			b.tree.ToggleExpand()
			return b, nil
		}
		b.focus = paneDiff
		return b, b.loadDiff(row.Path)
	case key.Matches(msg, b.keys.Stage):
		row, ok := b.tree.SelectedRow()
		if !ok {
			return b, nil
		}
		if row.IsDir {
			b.info("Select a file to stage")
			return b, nil
		}
		return b, stageCmd(b.repo, row.Path)
	case key.Matches(msg, b.keys.Copy):
		row, ok := b.tree.SelectedRow()
		if !ok {
			return b, nil
		}
		return b, copyCmd(row.Path)
	}
	return b, nil
}

func (b *browser) updateDiffPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keys.Back):
		b.focus = paneTree
		return b, nil
	case key.Matches(msg, b.keys.Up):
		b.diff.LineUp(1)
	case key.Matches(msg, b.keys.Down):
		b.diff.LineDown(1)
	case key.Matches(msg, b.keys.PageUp):
		b.diff.HalfViewUp()
	case key.Matches(msg, b.keys.PageDown):
		b.diff.HalfViewDown()
	}
	return b, nil
}

func (b *browser) updateCommit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		b.committing = false
		b.commitInput.Blur()
		return b, nil
	case tea.KeyEnter:
		message := strings.TrimSpace(b.commitInput.Value())
		b.committing = false
		b.commitInput.Blur()
		author := gitrepo.Author{Name: b.cfg.Git.AuthorName, Email: b.cfg.Git.AuthorEmail}
		return b, commitCmd(b.repo, message, author)
	}
	var cmd tea.Cmd
	b.commitInput, cmd = b.commitInput.Update(msg)
	return b, cmd
}

// selectFile loads the diff for the selected row when it is a file.
func (b *browser) selectFile() tea.Cmd {
	row, ok := b.tree.SelectedRow()
	if !ok || row.IsDir || row.Path == b.pendingDiff {
		return nil
	}
	return b.loadDiff(row.Path)
}

func (b *browser) loadDiff(p string) tea.Cmd {
	b.pendingDiff = p
	return diffCmd(b.repo, p)
}

func (b *browser) applyScan(msg scanMsg) tea.Cmd {
	if msg.err != nil {
		b.fail("rescan", msg.err)
		return nil
	}
	b.tree.Rebuild(msg.snap.Paths)
	b.statuses = msg.snap.Statuses
	if b.statuses == nil {
		b.statuses = map[string]gitrepo.FileStatus{}
	}
	b.staged = msg.snap.StagedCount()
	b.branch = msg.branch
	b.log.WithField("count", len(msg.snap.Paths)).Debug("tree rebuilt")

	if b.pendingDiff == "" {
		return nil
	}
	if _, ok := b.statuses[b.pendingDiff]; !ok {
		b.clearDiff()
		return nil
	}
	// the file is still changed; its content may not be
	return b.loadDiff(b.pendingDiff)
}

func (b *browser) applyDiff(msg diffMsg) {
	if msg.path != b.pendingDiff {
		b.log.WithField("path", msg.path).Debug("dropped stale diff")
		return
	}
	if msg.err != nil {
		b.log.WithError(msg.err).WithField("path", msg.path).Warn("diff failed")
		b.diffPath = msg.path
		b.diffErr = msg.err.Error()
		b.diff.SetContent("")
		return
	}
	b.diffPath = msg.path
	b.diffErr = ""
	b.diff.SetContent(renderDiff(msg.lines))
	b.diff.GotoTop()
}

func (b *browser) clearDiff() {
	b.pendingDiff = ""
	b.diffPath = ""
	b.diffErr = ""
	b.diff.SetContent("")
}

func (b *browser) resize(width, height int) {
	b.width, b.height = width, height
	w, h := b.diffSize()
	b.diff.Width = w
	b.diff.Height = h
}

func (b *browser) info(s string) {
	b.status = s
	b.statusIsErr = false
}

func (b *browser) fail(op string, err error) {
	b.log.WithError(err).Error(op + " failed")
	b.status = fmt.Sprintf("%s failed: %v", op, err)
	b.statusIsErr = true
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}
