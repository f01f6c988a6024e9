package gitrepo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sergi/go-diff/diffmatchpatch"
)

type DiffLineKind int

const (
	DiffContext DiffLineKind = iota
	DiffAdd
	DiffDelete
	DiffHeader
)

type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// unchanged lines kept around each change
const contextLines = 3

// Diff compares the HEAD version of p with the file in the working copy.
func (r *Repo) Diff(p string) ([]DiffLine, error) {
	old, err := r.headContent(p)
	if err != nil {
		return nil, err
	}
	cur, err := os.ReadFile(filepath.Join(r.root, filepath.FromSlash(p)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}

	lines := []DiffLine{
		{Kind: DiffHeader, Content: "--- a/" + p},
		{Kind: DiffHeader, Content: "+++ b/" + p},
	}
	if isBinary(old) || isBinary(string(cur)) {
		return append(lines, DiffLine{Kind: DiffHeader, Content: "Binary file differs"}), nil
	}

	dmp := diffmatchpatch.New()
	a, b, table := dmp.DiffLinesToChars(old, string(cur))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), table)

	for i, d := range diffs {
		text := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			lines = appendLines(lines, DiffAdd, text)
		case diffmatchpatch.DiffDelete:
			lines = appendLines(lines, DiffDelete, text)
		default:
			lines = appendContext(lines, text, i == 0, i == len(diffs)-1)
		}
	}
	return lines, nil
}

// appendContext trims long runs of unchanged lines down to the lines that
// border a change.
func appendContext(lines []DiffLine, text []string, first, last bool) []DiffLine {
	if first && last {
		return lines
	}
	switch {
	case first:
		if len(text) > contextLines {
			text = text[len(text)-contextLines:]
		}
		lines = append(lines, DiffLine{Kind: DiffHeader, Content: "@@"})
		return appendLines(lines, DiffContext, text)
	case last:
		if len(text) > contextLines {
			text = text[:contextLines]
		}
		return appendLines(lines, DiffContext, text)
	case len(text) > 2*contextLines:
		lines = appendLines(lines, DiffContext, text[:contextLines])
		lines = append(lines, DiffLine{Kind: DiffHeader, Content: "@@"})
		return appendLines(lines, DiffContext, text[len(text)-contextLines:])
	}
	return appendLines(lines, DiffContext, text)
}

func appendLines(lines []DiffLine, kind DiffLineKind, text []string) []DiffLine {
	for _, t := range text {
		lines = append(lines, DiffLine{Kind: kind, Content: t})
	}
	return lines
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func isBinary(s string) bool {
	return strings.IndexByte(s, 0) >= 0
}

// headFile returns the HEAD version of p, or nil when HEAD has no such file
// or there is no commit yet.
func (r *Repo) headFile(p string) (*object.File, error) {
	ref, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	commit, err := r.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("load HEAD commit: %w", err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("load HEAD tree: %w", err)
	}
	f, err := tree.File(p)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup %s in HEAD: %w", p, err)
	}
	return f, nil
}

func (r *Repo) headContent(p string) (string, error) {
	f, err := r.headFile(p)
	if err != nil || f == nil {
		return "", err
	}
	s, err := f.Contents()
	if err != nil {
		return "", fmt.Errorf("read %s from HEAD: %w", p, err)
	}
	return s, nil
}
