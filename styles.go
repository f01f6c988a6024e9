package main

import (
	"github.com/charmbracelet/lipgloss"

	"gitree/internal/gitrepo"
)

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("7"))
	focusedPaneStyle = paneStyle.
				BorderForeground(lipgloss.Color("3"))

	titleStyle    = lipgloss.NewStyle().Bold(true)
	dirStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("8"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	focusBadge    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2")).Padding(0, 1)
	branchStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	diffAddStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	diffDelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	diffHeadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func statusStyle(k gitrepo.Kind) lipgloss.Style {
	switch k {
	case gitrepo.KindStaged, gitrepo.KindNew:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case gitrepo.KindModified:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case gitrepo.KindDeleted, gitrepo.KindConflict:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case gitrepo.KindRenamed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
}
