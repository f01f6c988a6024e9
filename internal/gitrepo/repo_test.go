package gitrepo

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAuthor = Author{Name: "Test", Email: "test@example.com"}

func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName("main")},
	})
	require.NoError(t, err)
	return dir, repo
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func commitAll(t *testing.T, repo *git.Repository, msg string) {
	t.Helper()
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.AddWithOptions(&git.AddOptions{All: true}))
	_, err = wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: testAuthor.Name, Email: testAuthor.Email, When: time.Now()},
	})
	require.NoError(t, err)
}

func openRepo(t *testing.T, dir string, opts Options) *Repo {
	t.Helper()
	r, err := Open(dir, opts)
	require.NoError(t, err)
	return r
}

func TestOpenNotRepository(t *testing.T) {
	_, err := Open(t.TempDir(), Options{})
	assert.ErrorIs(t, err, ErrNotRepository)
}

func TestOpenDetectsRootFromSubdirectory(t *testing.T) {
	dir, _ := initRepo(t)
	writeFile(t, dir, "src/main.go", "package main\n")

	r := openRepo(t, filepath.Join(dir, "src"), Options{})
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(r.Root())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestScan(t *testing.T) {
	dir, repo := initRepo(t)
	writeFile(t, dir, "readme.txt", "hello\n")
	writeFile(t, dir, "src/lib.go", "package src\n")
	commitAll(t, repo, "initial")

	writeFile(t, dir, "src/lib.go", "package src\n\nfunc A() {}\n")
	writeFile(t, dir, "src/main.go", "package main\n")
	writeFile(t, dir, "debug.log", "noise\n")

	r := openRepo(t, dir, Options{Exclude: []string{"*.log", "# comment", ""}})
	snap, err := r.Scan()
	require.NoError(t, err)

	assert.Equal(t, []string{"src/lib.go", "src/main.go"}, snap.Paths)

	st, ok := snap.Status("src/lib.go")
	require.True(t, ok)
	assert.Equal(t, KindModified, st.Kind())
	assert.Equal(t, "M", st.Icon())

	st, ok = snap.Status("src/main.go")
	require.True(t, ok)
	assert.Equal(t, KindNew, st.Kind())
	assert.Equal(t, "N", st.Icon())

	_, ok = snap.Status("readme.txt")
	assert.False(t, ok)
}

func TestScanCleanRepository(t *testing.T) {
	dir, repo := initRepo(t)
	writeFile(t, dir, "a.txt", "a\n")
	commitAll(t, repo, "initial")

	snap, err := openRepo(t, dir, Options{}).Scan()
	require.NoError(t, err)
	assert.Empty(t, snap.Paths)
	assert.Equal(t, 0, snap.StagedCount())
}

func TestToggleStageUntrackedFile(t *testing.T) {
	dir, repo := initRepo(t)
	writeFile(t, dir, "a.txt", "a\n")
	commitAll(t, repo, "initial")
	writeFile(t, dir, "b.txt", "b\n")

	r := openRepo(t, dir, Options{})
	staged, err := r.ToggleStage("b.txt")
	require.NoError(t, err)
	assert.True(t, staged)

	snap, err := r.Scan()
	require.NoError(t, err)
	st, _ := snap.Status("b.txt")
	assert.True(t, st.Staged())
	assert.Equal(t, "S", st.Icon())

	staged, err = r.ToggleStage("b.txt")
	require.NoError(t, err)
	assert.False(t, staged)

	snap, err = r.Scan()
	require.NoError(t, err)
	st, _ = snap.Status("b.txt")
	assert.False(t, st.Staged())
	assert.Equal(t, KindNew, st.Kind())
}

func TestToggleStageModifiedFile(t *testing.T) {
	dir, repo := initRepo(t)
	writeFile(t, dir, "a.txt", "one\n")
	commitAll(t, repo, "initial")
	writeFile(t, dir, "a.txt", "two\n")

	r := openRepo(t, dir, Options{})
	staged, err := r.ToggleStage("a.txt")
	require.NoError(t, err)
	assert.True(t, staged)

	staged, err = r.ToggleStage("a.txt")
	require.NoError(t, err)
	assert.False(t, staged)

	snap, err := r.Scan()
	require.NoError(t, err)
	st, ok := snap.Status("a.txt")
	require.True(t, ok)
	assert.Equal(t, git.Unmodified, st.Staging)
	assert.Equal(t, git.Modified, st.Worktree)
}

func TestToggleStageDeletedFile(t *testing.T) {
	dir, repo := initRepo(t)
	writeFile(t, dir, "a.txt", "a\n")
	writeFile(t, dir, "b.txt", "b\n")
	commitAll(t, repo, "initial")
	require.NoError(t, os.Remove(filepath.Join(dir, "a.txt")))

	r := openRepo(t, dir, Options{})
	snap, err := r.Scan()
	require.NoError(t, err)
	st, _ := snap.Status("a.txt")
	assert.Equal(t, KindDeleted, st.Kind())

	staged, err := r.ToggleStage("a.txt")
	require.NoError(t, err)
	assert.True(t, staged)

	snap, err = r.Scan()
	require.NoError(t, err)
	st, _ = snap.Status("a.txt")
	assert.Equal(t, git.Deleted, st.Staging)
}

func TestIndexSize(t *testing.T) {
	assert.Equal(t, uint32(0), indexSize(0))
	assert.Equal(t, uint32(1234), indexSize(1234))
	assert.Equal(t, uint32(0xffffffff), indexSize(1<<32-1))
	assert.Equal(t, uint32(0), indexSize(1<<32))
	assert.Equal(t, uint32(5), indexSize(1<<32+5))
}

func TestToggleStageUnknownPath(t *testing.T) {
	dir, repo := initRepo(t)
	writeFile(t, dir, "a.txt", "a\n")
	commitAll(t, repo, "initial")

	_, err := openRepo(t, dir, Options{}).ToggleStage("a.txt")
	assert.Error(t, err)
}

func TestDiffModifiedFile(t *testing.T) {
	dir, repo := initRepo(t)
	writeFile(t, dir, "a.txt", "one\ntwo\nthree\n")
	commitAll(t, repo, "initial")
	writeFile(t, dir, "a.txt", "one\nTWO\nthree\n")

	lines, err := openRepo(t, dir, Options{}).Diff("a.txt")
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, DiffLine{Kind: DiffHeader, Content: "--- a/a.txt"}, lines[0])
	assert.Equal(t, DiffLine{Kind: DiffHeader, Content: "+++ b/a.txt"}, lines[1])
	assert.Contains(t, lines, DiffLine{Kind: DiffDelete, Content: "two"})
	assert.Contains(t, lines, DiffLine{Kind: DiffAdd, Content: "TWO"})
	assert.Contains(t, lines, DiffLine{Kind: DiffContext, Content: "one"})
	assert.Contains(t, lines, DiffLine{Kind: DiffContext, Content: "three"})
}

func TestDiffNewFile(t *testing.T) {
	dir, _ := initRepo(t)
	writeFile(t, dir, "new.txt", "a\nb\n")

	lines, err := openRepo(t, dir, Options{}).Diff("new.txt")
	require.NoError(t, err)
	assert.Equal(t, []DiffLine{
		{Kind: DiffHeader, Content: "--- a/new.txt"},
		{Kind: DiffHeader, Content: "+++ b/new.txt"},
		{Kind: DiffAdd, Content: "a"},
		{Kind: DiffAdd, Content: "b"},
	}, lines)
}

func TestDiffDeletedFile(t *testing.T) {
	dir, repo := initRepo(t)
	writeFile(t, dir, "gone.txt", "x\n")
	commitAll(t, repo, "initial")
	require.NoError(t, os.Remove(filepath.Join(dir, "gone.txt")))

	lines, err := openRepo(t, dir, Options{}).Diff("gone.txt")
	require.NoError(t, err)
	assert.Equal(t, DiffLine{Kind: DiffDelete, Content: "x"}, lines[len(lines)-1])
}

func TestDiffBinaryFile(t *testing.T) {
	dir, _ := initRepo(t)
	writeFile(t, dir, "blob.bin", "a\x00b")

	lines, err := openRepo(t, dir, Options{}).Diff("blob.bin")
	require.NoError(t, err)
	assert.Equal(t, DiffLine{Kind: DiffHeader, Content: "Binary file differs"}, lines[len(lines)-1])
}

func TestDiffTrimsLongContext(t *testing.T) {
	dir, repo := initRepo(t)
	writeFile(t, dir, "a.txt", "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n")
	commitAll(t, repo, "initial")
	writeFile(t, dir, "a.txt", "1\n2\n3\n4\n5\n6\n7\n8\n9\nten\n")

	lines, err := openRepo(t, dir, Options{}).Diff("a.txt")
	require.NoError(t, err)
	assert.NotContains(t, lines, DiffLine{Kind: DiffContext, Content: "1"})
	assert.Contains(t, lines, DiffLine{Kind: DiffContext, Content: "9"})
	assert.Contains(t, lines, DiffLine{Kind: DiffAdd, Content: "ten"})
}

func TestCommit(t *testing.T) {
	dir, repo := initRepo(t)
	writeFile(t, dir, "a.txt", "a\n")
	commitAll(t, repo, "initial")
	writeFile(t, dir, "b.txt", "b\n")

	r := openRepo(t, dir, Options{})

	_, err := r.Commit("  ", testAuthor)
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = r.Commit("add b", testAuthor)
	assert.ErrorIs(t, err, ErrNothingStaged)

	_, err = r.ToggleStage("b.txt")
	require.NoError(t, err)

	hash, err := r.Commit("add b", testAuthor)
	require.NoError(t, err)
	assert.Len(t, hash, 40)

	snap, err := r.Scan()
	require.NoError(t, err)
	assert.Empty(t, snap.Paths)

	head, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, hash, head.Hash().String())
}

func TestCommitIncludesExcludedStagedFile(t *testing.T) {
	dir, repo := initRepo(t)
	writeFile(t, dir, "a.txt", "a\n")
	commitAll(t, repo, "initial")
	writeFile(t, dir, "build.log", "log\n")

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("build.log")
	require.NoError(t, err)

	r := openRepo(t, dir, Options{Exclude: []string{"*.log"}})
	snap, err := r.Scan()
	require.NoError(t, err)
	require.Empty(t, snap.Paths)

	hash, err := r.Commit("add log", testAuthor)
	require.NoError(t, err)

	head, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, hash, head.Hash().String())
	c, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	_, err = c.File("build.log")
	assert.NoError(t, err)
}

func TestCurrentBranchAndBranches(t *testing.T) {
	dir, repo := initRepo(t)
	r := openRepo(t, dir, Options{})
	assert.Equal(t, "main", r.CurrentBranch())

	writeFile(t, dir, "a.txt", "a\n")
	commitAll(t, repo, "initial")

	branches, err := r.Branches()
	require.NoError(t, err)
	assert.Equal(t, []string{"main"}, branches)
}

func TestPushUnknownRemote(t *testing.T) {
	dir, repo := initRepo(t)
	writeFile(t, dir, "a.txt", "a\n")
	commitAll(t, repo, "initial")

	err := openRepo(t, dir, Options{}).Push(context.Background(), "nowhere")
	assert.Error(t, err)
}
