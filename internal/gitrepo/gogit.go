package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	tagReferencePrefixConstant          = "refs/tags/"
	openRepositoryErrorTemplateConstant = "unable to open repository at %s: %w"
	resolveBranchErrorTemplateConstant  = "unable to resolve branch %q: %w"
	readCommitsErrorTemplateConstant    = "unable to read commits from %q: %w"
	readTagsErrorTemplateConstant       = "unable to read tags: %w"
	createTagErrorTemplateConstant      = "unable to create tag %q at %s: %w"
	deleteTagErrorTemplateConstant      = "unable to delete tag %q: %w"
)

// GoGitRepository implements the repository backend in-process with go-git.
type GoGitRepository struct {
	repository *git.Repository
}

// OpenGoGitRepository opens the repository containing repositoryPath, searching parent directories for .git.
func OpenGoGitRepository(repositoryPath string) (*GoGitRepository, error) {
	repository, openError := git.PlainOpenWithOptions(repositoryPath, &git.PlainOpenOptions{DetectDotGit: true})
	if openError != nil {
		if errors.Is(openError, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf(openRepositoryErrorTemplateConstant, repositoryPath, ErrRepositoryNotFound)
		}
		return nil, fmt.Errorf(openRepositoryErrorTemplateConstant, repositoryPath, openError)
	}
	return NewGoGitRepository(repository), nil
}

// NewGoGitRepository wraps an already opened go-git repository.
func NewGoGitRepository(repository *git.Repository) *GoGitRepository {
	return &GoGitRepository{repository: repository}
}

// ListCommits returns every commit reachable from the named branch.
func (gitRepository *GoGitRepository) ListCommits(executionContext context.Context, branchName string) ([]Commit, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return nil, contextError
	}

	branchReference, referenceError := gitRepository.repository.Reference(plumbing.NewBranchReferenceName(branchName), true)
	if referenceError != nil {
		if errors.Is(referenceError, plumbing.ErrReferenceNotFound) {
			return nil, fmt.Errorf(resolveBranchErrorTemplateConstant, branchName, BranchNotFoundError{BranchName: branchName})
		}
		return nil, fmt.Errorf(resolveBranchErrorTemplateConstant, branchName, referenceError)
	}

	commitIterator, logError := gitRepository.repository.Log(&git.LogOptions{From: branchReference.Hash()})
	if logError != nil {
		return nil, fmt.Errorf(readCommitsErrorTemplateConstant, branchName, logError)
	}
	defer commitIterator.Close()

	var commits []Commit
	iterationError := commitIterator.ForEach(func(commitObject *object.Commit) error {
		if contextError := executionContext.Err(); contextError != nil {
			return contextError
		}
		commits = append(commits, Commit{Hash: commitObject.Hash.String(), CommittedAt: commitObject.Committer.When})
		return nil
	})
	if iterationError != nil {
		return nil, fmt.Errorf(readCommitsErrorTemplateConstant, branchName, iterationError)
	}

	return commits, nil
}

// ListTags returns all tags in the local tag namespace.
func (gitRepository *GoGitRepository) ListTags(executionContext context.Context) ([]Tag, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return nil, contextError
	}

	tagIterator, tagsError := gitRepository.repository.Tags()
	if tagsError != nil {
		return nil, fmt.Errorf(readTagsErrorTemplateConstant, tagsError)
	}
	defer tagIterator.Close()

	var tags []Tag
	iterationError := tagIterator.ForEach(func(reference *plumbing.Reference) error {
		tags = append(tags, Tag{Name: strings.TrimPrefix(reference.Name().String(), tagReferencePrefixConstant)})
		return nil
	})
	if iterationError != nil {
		return nil, fmt.Errorf(readTagsErrorTemplateConstant, iterationError)
	}

	return tags, nil
}

// CreateTag creates a lightweight tag. An existing tag of the same name is left untouched and reported as TagAlreadyExists.
func (gitRepository *GoGitRepository) CreateTag(executionContext context.Context, tagName string, commitHash string) (TagCreationOutcome, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return 0, contextError
	}

	_, creationError := gitRepository.repository.CreateTag(tagName, plumbing.NewHash(commitHash), nil)
	switch {
	case creationError == nil:
		return TagCreated, nil
	case errors.Is(creationError, git.ErrTagExists):
		return TagAlreadyExists, nil
	default:
		return 0, fmt.Errorf(createTagErrorTemplateConstant, tagName, commitHash, creationError)
	}
}

// DeleteTag removes the named tag from the local tag namespace.
func (gitRepository *GoGitRepository) DeleteTag(executionContext context.Context, tagName string) error {
	if contextError := executionContext.Err(); contextError != nil {
		return contextError
	}

	if deletionError := gitRepository.repository.DeleteTag(tagName); deletionError != nil {
		return fmt.Errorf(deleteTagErrorTemplateConstant, tagName, deletionError)
	}
	return nil
}
