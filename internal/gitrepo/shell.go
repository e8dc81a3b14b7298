package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/temirov/git-epoch/internal/execshell"
)

const (
	gitRevParseSubcommandConstant               = "rev-parse"
	gitGitDirectoryFlagConstant                 = "--git-dir"
	gitLogSubcommandConstant                    = "log"
	gitLogFormatFlagConstant                    = "--format=%H %ct"
	gitTagSubcommandConstant                    = "tag"
	gitTagListFlagConstant                      = "--list"
	gitTagDeleteFlagConstant                    = "--delete"
	gitPathspecSeparatorConstant                = "--"
	gitBranchReferencePrefixConstant            = "refs/heads/"
	gitVerifyFlagConstant                       = "--verify"
	gitQuietFlagConstant                        = "--quiet"
	gitShowRefSubcommandConstant                = "show-ref"
	gitTagReferencePrefixConstant               = "refs/tags/"
	gitLocaleAllEnvironmentNameConstant         = "LC_ALL"
	gitLanguageEnvironmentNameConstant          = "LANGUAGE"
	gitNeutralLocaleConstant                    = "C"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
	gitExecutorMissingMessageConstant           = "git executor not configured"
	gitLogLineFieldCountConstant                = 2
	unexpectedLogLineTemplateConstant           = "unexpected git log line %q"
	commitTimestampParseTemplateConstant        = "unable to parse commit timestamp in %q: %w"
	shellListTagsErrorTemplateConstant          = "unable to list tags: %w"
	shellVerifyRepositoryErrorTemplateConstant  = "unable to open repository at %s: %w"
	shellLookupTagErrorTemplateConstant         = "unable to look up tag %s: %w"
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// GitExecutor exposes the subset of shell execution used by ShellRepository.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ShellRepository implements the repository backend by invoking the git executable.
type ShellRepository struct {
	executor       GitExecutor
	repositoryPath string
}

// OpenShellRepository verifies repositoryPath lies inside a git work tree and returns a ShellRepository for it.
func OpenShellRepository(executionContext context.Context, executor GitExecutor, repositoryPath string) (*ShellRepository, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}

	shellRepository := &ShellRepository{executor: executor, repositoryPath: repositoryPath}
	if _, verificationError := shellRepository.executeGit(executionContext, gitRevParseSubcommandConstant, gitGitDirectoryFlagConstant); verificationError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(verificationError, &commandFailure) {
			return nil, fmt.Errorf(shellVerifyRepositoryErrorTemplateConstant, repositoryPath, ErrRepositoryNotFound)
		}
		return nil, fmt.Errorf(shellVerifyRepositoryErrorTemplateConstant, repositoryPath, verificationError)
	}

	return shellRepository, nil
}

// ListCommits returns every commit reachable from the named branch.
func (shellRepository *ShellRepository) ListCommits(executionContext context.Context, branchName string) ([]Commit, error) {
	branchReference := gitBranchReferencePrefixConstant + branchName
	if _, verificationError := shellRepository.executeGit(
		executionContext,
		gitRevParseSubcommandConstant,
		gitVerifyFlagConstant,
		gitQuietFlagConstant,
		branchReference,
	); verificationError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(verificationError, &commandFailure) {
			return nil, fmt.Errorf(resolveBranchErrorTemplateConstant, branchName, BranchNotFoundError{BranchName: branchName})
		}
		return nil, fmt.Errorf(resolveBranchErrorTemplateConstant, branchName, verificationError)
	}

	executionResult, logError := shellRepository.executeGit(
		executionContext,
		gitLogSubcommandConstant,
		gitLogFormatFlagConstant,
		branchReference,
		gitPathspecSeparatorConstant,
	)
	if logError != nil {
		return nil, fmt.Errorf(readCommitsErrorTemplateConstant, branchName, logError)
	}

	return parseCommitLog(executionResult.StandardOutput)
}

// ListTags returns all tags in the local tag namespace.
func (shellRepository *ShellRepository) ListTags(executionContext context.Context) ([]Tag, error) {
	executionResult, listError := shellRepository.executeGit(executionContext, gitTagSubcommandConstant, gitTagListFlagConstant)
	if listError != nil {
		return nil, fmt.Errorf(shellListTagsErrorTemplateConstant, listError)
	}

	var tags []Tag
	for _, outputLine := range strings.Split(executionResult.StandardOutput, "\n") {
		tagName := strings.TrimSpace(outputLine)
		if len(tagName) == 0 {
			continue
		}
		tags = append(tags, Tag{Name: tagName})
	}
	return tags, nil
}

// CreateTag creates a lightweight tag. A tag that already exists, including one
// created concurrently between the lookup and the write, yields TagAlreadyExists.
func (shellRepository *ShellRepository) CreateTag(executionContext context.Context, tagName string, commitHash string) (TagCreationOutcome, error) {
	tagExists, lookupError := shellRepository.tagExists(executionContext, tagName)
	if lookupError != nil {
		return 0, lookupError
	}
	if tagExists {
		return TagAlreadyExists, nil
	}

	_, creationError := shellRepository.executeGit(executionContext, gitTagSubcommandConstant, tagName, commitHash)
	if creationError == nil {
		return TagCreated, nil
	}

	if createdConcurrently, _ := shellRepository.tagExists(executionContext, tagName); createdConcurrently {
		return TagAlreadyExists, nil
	}
	return 0, fmt.Errorf(createTagErrorTemplateConstant, tagName, commitHash, creationError)
}

// DeleteTag removes the named tag from the local tag namespace.
func (shellRepository *ShellRepository) DeleteTag(executionContext context.Context, tagName string) error {
	if _, deletionError := shellRepository.executeGit(executionContext, gitTagSubcommandConstant, gitTagDeleteFlagConstant, tagName); deletionError != nil {
		return fmt.Errorf(deleteTagErrorTemplateConstant, tagName, deletionError)
	}
	return nil
}

// tagExists reports whether refs/tags/<tagName> resolves. show-ref exits non-zero for a missing reference.
func (shellRepository *ShellRepository) tagExists(executionContext context.Context, tagName string) (bool, error) {
	_, lookupError := shellRepository.executeGit(
		executionContext,
		gitShowRefSubcommandConstant,
		gitVerifyFlagConstant,
		gitQuietFlagConstant,
		gitTagReferencePrefixConstant+tagName,
	)
	if lookupError == nil {
		return true, nil
	}

	var commandFailure execshell.CommandFailedError
	if errors.As(lookupError, &commandFailure) {
		return false, nil
	}
	return false, fmt.Errorf(shellLookupTagErrorTemplateConstant, tagName, lookupError)
}

func (shellRepository *ShellRepository) executeGit(executionContext context.Context, arguments ...string) (execshell.ExecutionResult, error) {
	return shellRepository.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: shellRepository.repositoryPath,
		EnvironmentVariables: map[string]string{
			gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableConstant,
			gitLocaleAllEnvironmentNameConstant:      gitNeutralLocaleConstant,
			gitLanguageEnvironmentNameConstant:       gitNeutralLocaleConstant,
		},
	})
}

// parseCommitLog reads "<hash> <unix seconds>" lines produced by git log.
func parseCommitLog(logOutput string) ([]Commit, error) {
	var commits []Commit
	for _, outputLine := range strings.Split(logOutput, "\n") {
		trimmedLine := strings.TrimSpace(outputLine)
		if len(trimmedLine) == 0 {
			continue
		}

		lineFields := strings.Fields(trimmedLine)
		if len(lineFields) != gitLogLineFieldCountConstant {
			return nil, fmt.Errorf(unexpectedLogLineTemplateConstant, trimmedLine)
		}

		unixSeconds, parseError := strconv.ParseInt(lineFields[1], 10, 64)
		if parseError != nil {
			return nil, fmt.Errorf(commitTimestampParseTemplateConstant, trimmedLine, parseError)
		}

		commits = append(commits, Commit{Hash: lineFields[0], CommittedAt: time.Unix(unixSeconds, 0)})
	}
	return commits, nil
}
