package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitree/internal/filetree"
	"gitree/internal/gitrepo"
)

const (
	minTreeWidth = 24
	// border top and bottom, the pane title and the footer line
	chromeHeight = 4
)

func (b *browser) View() string {
	if b.showHelp {
		return b.helpView()
	}
	if b.committing {
		return b.commitView()
	}

	treeW := b.treeWidth()
	diffW, bodyH := b.diffSize()

	tree := b.paneStyle(paneTree).
		Width(treeW).
		Height(bodyH + 1).
		Render(titleStyle.Render("Changes") + "\n" + b.treeView(treeW, bodyH))

	diffTitle := "Select a file and press Enter"
	if b.diffPath != "" {
		diffTitle = "Diff: " + b.diffPath
	}
	body := b.diff.View()
	if b.diffErr != "" {
		body = errorStyle.Render(b.diffErr)
	}
	diff := b.paneStyle(paneDiff).
		Width(diffW).
		Height(bodyH + 1).
		Render(titleStyle.Render(truncate(diffTitle, diffW)) + "\n" + body)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, tree, diff),
		b.footerView(),
	)
}

func (b *browser) paneStyle(p pane) lipgloss.Style {
	if b.focus == p {
		return focusedPaneStyle
	}
	return paneStyle
}

func (b *browser) treeWidth() int {
	w := b.width * 2 / 5
	if w < minTreeWidth {
		w = minTreeWidth
	}
	return w
}

// diffSize is the inner size of the diff viewport.
func (b *browser) diffSize() (int, int) {
	w := b.width - b.treeWidth() - 4
	if w < 0 {
		w = 0
	}
	h := b.height - chromeHeight
	if h < 1 {
		h = 1
	}
	return w, h
}

// treeView renders the rows that fit in height, scrolled so the selected
// row stays visible.
func (b *browser) treeView(width, height int) string {
	rows := b.tree.Rows()
	if len(rows) == 0 {
		return dimStyle.Render("Working tree is clean")
	}

	sel, ok := b.tree.Selected()
	if !ok {
		sel = 0
	}
	start := 0
	if sel >= height {
		start = sel - height + 1
	}
	end := start + height
	if end > len(rows) {
		end = len(rows)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		line := truncate(b.rowLabel(rows[i]), width)
		if ok && i == sel {
			line = cursorStyle.Render(line)
		} else {
			line = b.rowStyle(rows[i]).Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (b *browser) rowLabel(r filetree.Row) string {
	indent := strings.Repeat(" ", b.cfg.Tree.Indent*r.Depth)
	if r.IsDir {
		marker := "▸ "
		if r.Expanded {
			marker = "▾ "
		}
		return indent + marker + r.Name() + "/"
	}
	icon := "  "
	if st, ok := b.statuses[r.Path]; ok {
		icon = fmt.Sprintf("%-2s", st.Icon())
	}
	return indent + icon + " " + r.Name()
}

func (b *browser) rowStyle(r filetree.Row) lipgloss.Style {
	if r.IsDir {
		return dirStyle
	}
	st, ok := b.statuses[r.Path]
	if !ok {
		return lipgloss.NewStyle()
	}
	return statusStyle(st.Kind())
}

func (b *browser) footerView() string {
	badge := "TREE"
	if b.focus == paneDiff {
		badge = "DIFF"
	}
	parts := []string{focusBadge.Render(badge)}
	if b.branch != "" {
		parts = append(parts, branchStyle.Render(b.branch))
	}
	parts = append(parts, dimStyle.Render(fmt.Sprintf("%d changed, %d staged", len(b.statuses), b.staged)))
	if b.status != "" {
		if b.statusIsErr {
			parts = append(parts, errorStyle.Render(b.status))
		} else {
			parts = append(parts, b.status)
		}
	}
	parts = append(parts, dimStyle.Render("? help"))
	return strings.Join(parts, " ")
}

func (b *browser) helpView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("gitree help"))
	sb.WriteString("\n\n")
	for _, k := range b.keys.all() {
		h := k.Help()
		fmt.Fprintf(&sb, "  %-8s %s\n", h.Key, h.Desc)
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("press any key to close"))
	return sb.String()
}

func (b *browser) commitView() string {
	return fmt.Sprintf(
		"Commit message for %s:\n%s\n\n%s",
		b.branch,
		b.commitInput.View(),
		dimStyle.Render("(enter to commit, esc to cancel)"),
	)
}

func renderDiff(lines []gitrepo.DiffLine) string {
	if len(lines) == 0 {
		return dimStyle.Render("No differences")
	}
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		switch l.Kind {
		case gitrepo.DiffAdd:
			out = append(out, diffAddStyle.Render("+"+l.Content))
		case gitrepo.DiffDelete:
			out = append(out, diffDelStyle.Render("-"+l.Content))
		case gitrepo.DiffHeader:
			out = append(out, diffHeadStyle.Render(l.Content))
		default:
			out = append(out, " "+l.Content)
		}
	}
	return strings.Join(out, "\n")
}

func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > width-1 {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
