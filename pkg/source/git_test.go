package source

import (
	"context"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBranchRepo creates an in-memory repository whose given branch holds
// one commit containing the provided files.
func buildBranchRepo(t *testing.T, branch string, files map[string]string) *git.Repository {
	t.Helper()

	wfs := memfs.New()
	repo, err := git.Init(memory.NewStorage(), wfs)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	for path, content := range files {
		require.NoError(t, util.WriteFile(wfs, path, []byte(content), 0o644))
		_, err = wt.Add(path)
		require.NoError(t, err)
	}

	hash, err := wt.Commit("seed skills", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com"},
	})
	require.NoError(t, err)

	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(branch), hash)
	require.NoError(t, repo.Storer.SetReference(ref))

	return repo
}

// newTestLocator returns a locator whose clone step serves pre-built
// in-memory repositories instead of dialing a remote.
func newTestLocator(repos map[string]*git.Repository) (*GitLocator, *int) {
	clones := 0
	l := NewGitLocator("https://git.example.invalid/skills.git")
	l.clone = func(_ context.Context, branch string) (*git.Repository, error) {
		clones++
		repo, ok := repos[branch]
		if !ok {
			return nil, git.NoMatchingRefSpecError{}
		}
		return repo, nil
	}
	return l, &clones
}

func TestLocatePrimary(t *testing.T) {
	repo := buildBranchRepo(t, "main", map[string]string{
		"engineering/code-review/SKILL.md": "---\nname: code-review\n---\nReview carefully.",
	})
	locator, _ := newTestLocator(map[string]*git.Repository{"main": repo})

	content, err := locator.LocatePrimary(context.Background(), "main", "engineering/code-review")
	require.NoError(t, err)
	assert.Contains(t, string(content), "Review carefully.")
}

func TestLocatePrimaryNotFound(t *testing.T) {
	repo := buildBranchRepo(t, "main", map[string]string{
		"engineering/code-review/SKILL.md": "content",
	})
	locator, _ := newTestLocator(map[string]*git.Repository{"main": repo})

	_, err := locator.LocatePrimary(context.Background(), "main", "engineering/removed-skill")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrRemoteUnavailable))
}

func TestLocatePrimaryEmptyDocument(t *testing.T) {
	repo := buildBranchRepo(t, "main", map[string]string{
		"engineering/empty/SKILL.md": "",
		"engineering/empty/other.md": "keeps the directory non-empty",
	})
	locator, _ := newTestLocator(map[string]*git.Repository{"main": repo})

	_, err := locator.LocatePrimary(context.Background(), "main", "engineering/empty")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLocatePrimaryBranchMissing(t *testing.T) {
	locator, _ := newTestLocator(map[string]*git.Repository{})

	_, err := locator.LocatePrimary(context.Background(), "gone", "engineering/code-review")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBranchNotFound))
}

func TestLocatePrimaryRemoteUnavailable(t *testing.T) {
	locator := NewGitLocator("https://git.example.invalid/skills.git")
	locator.clone = func(_ context.Context, _ string) (*git.Repository, error) {
		return nil, errors.New("dial tcp: connection refused")
	}

	_, err := locator.LocatePrimary(context.Background(), "main", "engineering/code-review")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRemoteUnavailable))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestLocatePrimaryEmptyBranch(t *testing.T) {
	locator, _ := newTestLocator(map[string]*git.Repository{})

	_, err := locator.LocatePrimary(context.Background(), "", "engineering/code-review")
	require.Error(t, err)
}

func TestListReferenceFiles(t *testing.T) {
	repo := buildBranchRepo(t, "main", map[string]string{
		"writing/docs/SKILL.md":                "body",
		"writing/docs/references/style.md":     "style guide",
		"writing/docs/references/checklist.md": "checklist",
	})
	locator, _ := newTestLocator(map[string]*git.Repository{"main": repo})

	names, err := locator.ListReferenceFiles(context.Background(), "main", "writing/docs")
	require.NoError(t, err)
	assert.Equal(t, []string{"checklist.md", "style.md"}, names)
}

func TestListReferenceFilesNoDirectory(t *testing.T) {
	repo := buildBranchRepo(t, "main", map[string]string{
		"writing/docs/SKILL.md": "body",
	})
	locator, _ := newTestLocator(map[string]*git.Repository{"main": repo})

	names, err := locator.ListReferenceFiles(context.Background(), "main", "writing/docs")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestListReferenceFilesSkipsNestedDirectories(t *testing.T) {
	repo := buildBranchRepo(t, "main", map[string]string{
		"writing/docs/SKILL.md":                  "body",
		"writing/docs/references/style.md":       "style guide",
		"writing/docs/references/nested/deep.md": "not part of the flat model",
	})
	locator, _ := newTestLocator(map[string]*git.Repository{"main": repo})

	names, err := locator.ListReferenceFiles(context.Background(), "main", "writing/docs")
	require.NoError(t, err)
	assert.Equal(t, []string{"style.md"}, names)
}

func TestFetchReference(t *testing.T) {
	repo := buildBranchRepo(t, "main", map[string]string{
		"writing/docs/SKILL.md":            "body",
		"writing/docs/references/style.md": "style guide",
	})
	locator, _ := newTestLocator(map[string]*git.Repository{"main": repo})

	content, err := locator.FetchReference(context.Background(), "main", "writing/docs", "style.md")
	require.NoError(t, err)
	assert.Equal(t, "style guide", string(content))

	_, err = locator.FetchReference(context.Background(), "main", "writing/docs", "missing.md")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSnapshotCaching(t *testing.T) {
	repo := buildBranchRepo(t, "main", map[string]string{
		"a/one/SKILL.md": "one",
		"a/two/SKILL.md": "two",
	})
	locator, clones := newTestLocator(map[string]*git.Repository{"main": repo})
	ctx := context.Background()

	_, err := locator.LocatePrimary(ctx, "main", "a/one")
	require.NoError(t, err)
	_, err = locator.LocatePrimary(ctx, "main", "a/two")
	require.NoError(t, err)
	_, err = locator.ListReferenceFiles(ctx, "main", "a/one")
	require.NoError(t, err)

	assert.Equal(t, 1, *clones)
}

func TestSnapshotCachesFailures(t *testing.T) {
	locator, clones := newTestLocator(map[string]*git.Repository{})
	ctx := context.Background()

	_, err := locator.LocatePrimary(ctx, "gone", "a/one")
	require.Error(t, err)
	_, err = locator.LocatePrimary(ctx, "gone", "a/two")
	require.Error(t, err)

	assert.Equal(t, 1, *clones)
}

func TestClassifyCloneError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{"no matching refspec", git.NoMatchingRefSpecError{}, ErrBranchNotFound},
		{"missing remote ref message", errors.New(`couldn't find remote ref "refs/heads/x"`), ErrBranchNotFound},
		{"reference not found", plumbing.ErrReferenceNotFound, ErrBranchNotFound},
		{"network failure", errors.New("dial tcp: i/o timeout"), ErrRemoteUnavailable},
		{"auth failure", errors.New("authentication required"), ErrRemoteUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyCloneError(tt.err, "some-branch")
			assert.True(t, errors.Is(err, tt.expected))
		})
	}
}
