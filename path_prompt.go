package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"gitree/internal/config"
	"gitree/internal/gitrepo"
)

// pathPrompt asks for a working copy when gitree is started outside one.
// Once the path opens as a repository it replaces itself with a *browser.
type pathPrompt struct {
	ti     textinput.Model
	errMsg string
	cfg    config.Config
	log    logrus.FieldLogger
}

func newPathPrompt(cfg config.Config, log logrus.FieldLogger) *pathPrompt {
	ti := textinput.New()
	ti.Placeholder = "."
	ti.Focus()
	ti.CharLimit = 2048
	ti.Width = 40
	return &pathPrompt{ti: ti, cfg: cfg, log: log}
}

func (p *pathPrompt) Init() tea.Cmd {
	return textinput.Blink
}

func (p *pathPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return p, tea.Quit
		case tea.KeyEnter:
			return p.open()
		}
	}
	var cmd tea.Cmd
	p.ti, cmd = p.ti.Update(msg)
	return p, cmd
}

func (p *pathPrompt) open() (tea.Model, tea.Cmd) {
	path := p.ti.Value()
	if path == "" {
		path = "."
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		p.errMsg = fmt.Sprintf("invalid path: %v", err)
		return p, nil
	}
	info, err := os.Stat(absPath)
	if err != nil || !info.IsDir() {
		p.errMsg = fmt.Sprintf("%s is not a directory", absPath)
		return p, nil
	}

	repo, err := openRepo(absPath, p.cfg, p.log)
	if err != nil {
		if errors.Is(err, gitrepo.ErrNotRepository) {
			p.errMsg = fmt.Sprintf("%s is not inside a git repository", absPath)
		} else {
			p.errMsg = err.Error()
		}
		p.log.WithError(err).WithField("path", absPath).Warn("open repository failed")
		return p, nil
	}

	p.log.WithField("repo", repo.Root()).Info("starting browser")
	b := newBrowser(repo, p.cfg, p.log)
	return b, b.Init()
}

func (p *pathPrompt) View() string {
	prompt := "Enter a path inside a git repository (Enter to confirm):\n" + p.ti.View()
	if p.errMsg != "" {
		prompt += "\n\n" + errorStyle.Render(p.errMsg)
	}
	return prompt
}
