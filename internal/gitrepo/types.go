package gitrepo

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	backendKindGoGitConstant               = "go-git"
	backendKindGitCLIConstant              = "git-cli"
	unsupportedBackendKindTemplateConstant = "unsupported repository backend %q (expected %s or %s)"
	repositoryNotFoundMessageConstant      = "git repository not found"
	branchNotFoundTemplateConstant         = "branch %q not found"
	tagOutcomeCreatedLabelConstant         = "created"
	tagOutcomeAlreadyExistsLabelConstant   = "already_exists"
	tagOutcomeUnknownLabelConstant         = "unknown"
)

// ErrRepositoryNotFound indicates the configured path is not inside a git repository.
var ErrRepositoryNotFound = errors.New(repositoryNotFoundMessageConstant)

// BranchNotFoundError indicates the requested branch does not exist in the repository.
type BranchNotFoundError struct {
	BranchName string
}

// Error describes the missing branch.
func (notFound BranchNotFoundError) Error() string {
	return fmt.Sprintf(branchNotFoundTemplateConstant, notFound.BranchName)
}

// Commit is the subset of commit metadata consumed by epoch detection.
type Commit struct {
	Hash        string
	CommittedAt time.Time
}

// Tag identifies a tag by its short name, without the refs/tags/ prefix.
type Tag struct {
	Name string
}

// TagCreationOutcome distinguishes a created tag from a pre-existing one.
type TagCreationOutcome int

// Supported tag creation outcomes.
const (
	TagCreated TagCreationOutcome = iota + 1
	TagAlreadyExists
)

// String returns a log-friendly label for the outcome.
func (outcome TagCreationOutcome) String() string {
	switch outcome {
	case TagCreated:
		return tagOutcomeCreatedLabelConstant
	case TagAlreadyExists:
		return tagOutcomeAlreadyExistsLabelConstant
	default:
		return tagOutcomeUnknownLabelConstant
	}
}

// BackendKind selects the repository backend implementation.
type BackendKind string

// Supported backend kinds.
const (
	BackendGoGit  BackendKind = BackendKind(backendKindGoGitConstant)
	BackendGitCLI BackendKind = BackendKind(backendKindGitCLIConstant)
)

// ParseBackendKind normalizes a configured backend name.
func ParseBackendKind(rawValue string) (BackendKind, error) {
	switch BackendKind(strings.ToLower(strings.TrimSpace(rawValue))) {
	case BackendGoGit:
		return BackendGoGit, nil
	case BackendGitCLI:
		return BackendGitCLI, nil
	default:
		return "", fmt.Errorf(unsupportedBackendKindTemplateConstant, rawValue, BackendGoGit, BackendGitCLI)
	}
}
