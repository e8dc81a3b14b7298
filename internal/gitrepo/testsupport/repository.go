// Package testsupport builds throwaway git repositories with controlled commit timestamps.
package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

const (
	fixtureFileNameConstant              = "EPOCH"
	fixtureAuthorNameConstant            = "Epoch Fixture"
	fixtureAuthorEmailConstant           = "fixture@example.com"
	fixtureCommitMessageTemplateConstant = "commit %d"
	fixtureFileContentTemplateConstant   = "%d\n"
	fixtureDefaultBranchConstant         = "master"
	fixtureTagReferencePrefixConstant    = "refs/tags/"
	fixtureFilePermissionsConstant       = 0o600
)

// Repository is a git repository rooted in a test temporary directory.
type Repository struct {
	Path        string
	Repository  *git.Repository
	commitCount int
}

// NewRepository initializes an empty non-bare repository whose default branch is master.
func NewRepository(testInstance testing.TB) *Repository {
	testInstance.Helper()

	repositoryPath := testInstance.TempDir()
	repository, initError := git.PlainInitWithOptions(repositoryPath, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName(fixtureDefaultBranchConstant)},
	})
	require.NoError(testInstance, initError)

	return &Repository{Path: repositoryPath, Repository: repository}
}

// CommitAt records a commit on the current branch whose author and committer dates equal committedAt.
func (fixture *Repository) CommitAt(testInstance testing.TB, committedAt time.Time) string {
	testInstance.Helper()

	fixture.commitCount++
	filePath := filepath.Join(fixture.Path, fixtureFileNameConstant)
	require.NoError(testInstance, os.WriteFile(filePath, []byte(fmt.Sprintf(fixtureFileContentTemplateConstant, fixture.commitCount)), fixtureFilePermissionsConstant))

	worktree, worktreeError := fixture.Repository.Worktree()
	require.NoError(testInstance, worktreeError)

	_, addError := worktree.Add(fixtureFileNameConstant)
	require.NoError(testInstance, addError)

	signature := &object.Signature{Name: fixtureAuthorNameConstant, Email: fixtureAuthorEmailConstant, When: committedAt}
	commitHash, commitError := worktree.Commit(fmt.Sprintf(fixtureCommitMessageTemplateConstant, fixture.commitCount), &git.CommitOptions{
		Author:    signature,
		Committer: signature,
	})
	require.NoError(testInstance, commitError)

	return commitHash.String()
}

// TagNames lists the short names of every tag in the repository.
func (fixture *Repository) TagNames(testInstance testing.TB) []string {
	testInstance.Helper()

	tagIterator, tagsError := fixture.Repository.Tags()
	require.NoError(testInstance, tagsError)
	defer tagIterator.Close()

	var tagNames []string
	require.NoError(testInstance, tagIterator.ForEach(func(reference *plumbing.Reference) error {
		tagNames = append(tagNames, strings.TrimPrefix(reference.Name().String(), fixtureTagReferencePrefixConstant))
		return nil
	}))
	return tagNames
}

// TagTarget returns the commit hash a tag points to.
func (fixture *Repository) TagTarget(testInstance testing.TB, tagName string) string {
	testInstance.Helper()

	reference, referenceError := fixture.Repository.Reference(plumbing.NewTagReferenceName(tagName), true)
	require.NoError(testInstance, referenceError)
	return reference.Hash().String()
}
