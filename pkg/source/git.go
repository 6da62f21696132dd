// Package source resolves skill artifacts inside branches of a remote git
// repository without materializing a working copy. Each branch is fetched once
// per run as a shallow, single-branch clone into in-memory storage, and all
// lookups are read-only operations against the resulting commit tree.
package source

import (
	"context"
	"path"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/pkg/errors"

	"github.com/skillsync/skillsync/pkg/logger"
)

const (
	// PrimaryFileName is the required document of every skill artifact.
	PrimaryFileName = "SKILL.md"

	// ReferencesDir is the optional subdirectory holding flat reference files.
	ReferencesDir = "references"
)

// GitLocator performs read-only artifact lookups against branches of a single
// remote repository. It is not safe for concurrent use; installation is
// strictly sequential.
type GitLocator struct {
	remoteURL string
	clone     func(ctx context.Context, branch string) (*git.Repository, error)

	// Per-branch snapshots and failures, cached so that a manifest with many
	// artifacts on one branch dials the remote once.
	snapshots map[string]*object.Tree
	failures  map[string]error
}

// NewGitLocator creates a locator for the given remote URL. Authentication is
// whatever the environment already provides (https token in the URL, ssh
// agent); the locator itself manages no credentials.
func NewGitLocator(remoteURL string) *GitLocator {
	l := &GitLocator{
		remoteURL: remoteURL,
		snapshots: make(map[string]*object.Tree),
		failures:  make(map[string]error),
	}
	l.clone = l.cloneBranch
	return l
}

// LocatePrimary returns the content of the artifact's primary document at the
// given branch and path. Returns ErrNotFound when the document is absent or
// empty, ErrBranchNotFound when the branch is missing, and ErrRemoteUnavailable
// when the remote could not be reached.
func (l *GitLocator) LocatePrimary(ctx context.Context, branch, artifactPath string) ([]byte, error) {
	tree, err := l.snapshot(ctx, branch)
	if err != nil {
		return nil, err
	}

	content, err := readTreeFile(tree, path.Join(artifactPath, PrimaryFileName))
	if err != nil {
		return nil, err
	}
	if len(content) == 0 {
		// A zero-byte primary document is as good as absent.
		return nil, errors.Wrapf(ErrNotFound, "%s is empty at %s:%s", PrimaryFileName, branch, artifactPath)
	}
	return content, nil
}

// ListReferenceFiles returns the filenames under the artifact's references
// subdirectory. Both a missing references directory and an empty one yield an
// empty list with no error. Nested directories are not descended into;
// reference files are flat by contract.
func (l *GitLocator) ListReferenceFiles(ctx context.Context, branch, artifactPath string) ([]string, error) {
	tree, err := l.snapshot(ctx, branch)
	if err != nil {
		return nil, err
	}

	subtree, err := tree.Tree(path.Join(artifactPath, ReferencesDir))
	if err != nil {
		if errors.Is(err, object.ErrDirectoryNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to list references at %s:%s", branch, artifactPath)
	}

	var names []string
	for _, entry := range subtree.Entries {
		if entry.Mode.IsFile() {
			names = append(names, entry.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// FetchReference returns the content of one reference file belonging to the
// artifact. Returns ErrNotFound if the file vanished between listing and fetch.
func (l *GitLocator) FetchReference(ctx context.Context, branch, artifactPath, name string) ([]byte, error) {
	tree, err := l.snapshot(ctx, branch)
	if err != nil {
		return nil, err
	}
	return readTreeFile(tree, path.Join(artifactPath, ReferencesDir, name))
}

// snapshot returns the cached commit tree for a branch, cloning it on first
// use. Clone failures are cached too so repeated lookups against an
// unreachable branch fail fast instead of re-dialing the remote.
func (l *GitLocator) snapshot(ctx context.Context, branch string) (*object.Tree, error) {
	if branch == "" {
		return nil, errors.New("branch cannot be empty")
	}
	if tree, ok := l.snapshots[branch]; ok {
		return tree, nil
	}
	if err, ok := l.failures[branch]; ok {
		return nil, err
	}

	tree, err := l.loadBranch(ctx, branch)
	if err != nil {
		l.failures[branch] = err
		return nil, err
	}
	l.snapshots[branch] = tree
	return tree, nil
}

func (l *GitLocator) loadBranch(ctx context.Context, branch string) (*object.Tree, error) {
	logger.G(ctx).WithField("branch", branch).Debug("fetching branch snapshot")

	repo, err := l.clone(ctx, branch)
	if err != nil {
		return nil, classifyCloneError(err, branch)
	}

	ref, err := repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, errors.Wrapf(ErrBranchNotFound, "branch %q", branch)
		}
		return nil, errors.Wrapf(ErrRemoteUnavailable, "failed to resolve branch %q: %v", branch, err)
	}

	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, errors.Wrapf(ErrRemoteUnavailable, "failed to read commit for branch %q: %v", branch, err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, errors.Wrapf(ErrRemoteUnavailable, "failed to read tree for branch %q: %v", branch, err)
	}

	return tree, nil
}

// cloneBranch shallow-clones a single branch into in-memory storage. No
// worktree is attached, so nothing is ever written to the local filesystem.
func (l *GitLocator) cloneBranch(ctx context.Context, branch string) (*git.Repository, error) {
	return git.CloneContext(ctx, memory.NewStorage(), nil, &git.CloneOptions{
		URL:           l.remoteURL,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
		Depth:         1,
		Tags:          git.NoTags,
	})
}

// classifyCloneError maps go-git clone failures onto the locator's error
// taxonomy. A refspec that matches nothing means the branch is missing;
// everything else counts as the remote being unavailable.
func classifyCloneError(err error, branch string) error {
	var noMatch git.NoMatchingRefSpecError
	if errors.As(err, &noMatch) ||
		errors.Is(err, plumbing.ErrReferenceNotFound) ||
		errors.Is(err, transport.ErrEmptyRemoteRepository) ||
		strings.Contains(err.Error(), "couldn't find remote ref") {
		return errors.Wrapf(ErrBranchNotFound, "branch %q", branch)
	}
	return errors.Wrapf(ErrRemoteUnavailable, "failed to fetch branch %q: %v", branch, err)
}

func readTreeFile(tree *object.Tree, filePath string) ([]byte, error) {
	file, err := tree.File(filePath)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, errors.Wrap(ErrNotFound, filePath)
		}
		return nil, errors.Wrapf(err, "failed to look up %s", filePath)
	}

	content, err := file.Contents()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", filePath)
	}
	return []byte(content), nil
}
