package verify

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
)

const gitDir = ".git"

// worktree is the git working tree a project belongs to, with its ignore rules and index.
type worktree struct {
	root    string
	fs      billy.Filesystem
	matcher gitignore.Matcher
	repo    *git.Repository
}

// openWorktree opens the repository containing projectDir. A project outside any
// repository is treated as its own root and only its .gitignore files apply.
func openWorktree(projectDir string) (*worktree, error) {
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, errorutils.CheckError(err)
	}
	wt := &worktree{root: abs}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	switch {
	case errors.Is(err, git.ErrRepositoryNotExists):
		wt.fs = osfs.New(abs)
	case err != nil:
		return nil, errorutils.CheckError(err)
	default:
		tree, err := repo.Worktree()
		if err != nil {
			return nil, errorutils.CheckError(err)
		}
		wt.repo, wt.fs, wt.root = repo, tree.Filesystem, tree.Filesystem.Root()
	}
	patterns, err := gitignore.ReadPatterns(wt.fs, nil)
	if err != nil {
		return nil, errorutils.CheckError(err)
	}
	wt.matcher = gitignore.NewMatcher(patterns)
	return wt, nil
}

func (w *worktree) isRepo() bool {
	return w.repo != nil
}

// tracked reports whether a path relative to the root is in the git index.
func (w *worktree) tracked(rel string) (bool, error) {
	if w.repo == nil {
		return false, nil
	}
	idx, err := w.repo.Storer.Index()
	if err != nil {
		return false, errorutils.CheckError(err)
	}
	_, err = idx.Entry(filepath.ToSlash(rel))
	switch {
	case errors.Is(err, index.ErrEntryNotFound):
		return false, nil
	case err != nil:
		return false, errorutils.CheckError(err)
	}
	return true, nil
}

// rel returns path relative to the worktree root, or false when it lies outside.
func (w *worktree) rel(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(w.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// ignored reports whether a path relative to the root is ignored.
func (w *worktree) ignored(rel string, isDir bool) bool {
	if rel == "." || rel == "" {
		return false
	}
	return w.matcher.Match(strings.Split(filepath.ToSlash(rel), "/"), isDir)
}
