package epoch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/git-epoch/internal/gitrepo"
)

// DefaultBranchName is the only branch whose history is partitioned into epochs.
const DefaultBranchName = "master"

const (
	backendMissingMessageConstant         = "repository backend not configured"
	prompterMissingMessageConstant        = "confirmation prompter not configured"
	listCommitsErrorTemplateConstant      = "unable to list commits: %w"
	createEpochTagErrorTemplateConstant   = "unable to create tag %s: %w"
	listEpochTagsErrorTemplateConstant    = "unable to list tags: %w"
	deleteEpochTagErrorTemplateConstant   = "unable to delete tag %s: %w"
	confirmationErrorTemplateConstant     = "unable to read confirmation: %w"
	tagsToBeAddedHeaderConstant           = "Tags to be added:\n"
	pendingTagLineTemplateConstant        = "%s %s\n"
	confirmationPromptConstant            = "enter \"yes\" to confirm: "
	taggingAbortedMessageConstant         = "Tagging aborted.\n"
	tagsDeletedLocallyMessageConstant     = "git-epoch tags deleted locally.\n"
	remoteDeletionHintMessageConstant     = "To delete tags on remote run:\n"
	remoteDeletionCommandTemplateConstant = "    `git push origin --delete %s`\n"
	tagNamesJoinSeparatorConstant         = " "
	epochBoundariesFoundMessageConstant   = "epoch boundaries detected"
	epochTagCreatedMessageConstant        = "epoch tag created"
	epochTagSkippedMessageConstant        = "epoch tag already exists"
	epochTagDeletedMessageConstant        = "epoch tag deleted"
	logFieldBranchConstant                = "branch"
	logFieldCommitCountConstant           = "commit_count"
	logFieldBoundaryCountConstant         = "boundary_count"
	logFieldGapDaysConstant               = "epoch_gap_days"
	logFieldTagNameConstant               = "tag_name"
	logFieldCommitHashConstant            = "commit_hash"
)

// ErrBackendNotConfigured indicates the repository backend dependency was missing.
var ErrBackendNotConfigured = errors.New(backendMissingMessageConstant)

// ErrPrompterNotConfigured indicates the confirmation prompter dependency was missing.
var ErrPrompterNotConfigured = errors.New(prompterMissingMessageConstant)

// Backend exposes the repository operations needed to manage epoch tags.
type Backend interface {
	ListCommits(executionContext context.Context, branchName string) ([]gitrepo.Commit, error)
	ListTags(executionContext context.Context) ([]gitrepo.Tag, error)
	CreateTag(executionContext context.Context, tagName string, commitHash string) (gitrepo.TagCreationOutcome, error)
	DeleteTag(executionContext context.Context, tagName string) error
}

// ConfirmationPrompter asks the user to approve tag creation.
type ConfirmationPrompter interface {
	Confirm(prompt string) (bool, error)
}

// PendingTag pairs an epoch boundary commit with the tag name it receives.
type PendingTag struct {
	Name   string
	Commit gitrepo.Commit
}

// ApplyResult records which tags were created and which already existed.
type ApplyResult struct {
	Created []PendingTag
	Skipped []PendingTag
}

// CreateOptions controls a tag creation run.
type CreateOptions struct {
	GapDays float64
	Force   bool
}

// CreateResult summarizes a tag creation run.
type CreateResult struct {
	Boundaries []PendingTag
	Confirmed  bool
	Applied    ApplyResult
}

// Dependencies wires collaborators for Service.
type Dependencies struct {
	Backend  Backend
	Prompter ConfirmationPrompter
	Output   io.Writer
	Logger   *zap.Logger
	TagNamer TagNamer
}

// Service creates and removes epoch tags.
type Service struct {
	backend  Backend
	prompter ConfirmationPrompter
	output   io.Writer
	logger   *zap.Logger
	tagNamer TagNamer
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Backend == nil {
		return nil, ErrBackendNotConfigured
	}
	if dependencies.Prompter == nil {
		return nil, ErrPrompterNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	output := dependencies.Output
	if output == nil {
		output = io.Discard
	}

	return &Service{
		backend:  dependencies.Backend,
		prompter: dependencies.Prompter,
		output:   output,
		logger:   logger,
		tagNamer: dependencies.TagNamer,
	}, nil
}

// FindBoundaries lists the commits of the master branch and returns those starting a new epoch.
func (service *Service) FindBoundaries(executionContext context.Context, gapDays float64) ([]gitrepo.Commit, error) {
	if validationError := ValidateEpochGap(gapDays); validationError != nil {
		return nil, validationError
	}

	commits, listError := service.backend.ListCommits(executionContext, DefaultBranchName)
	if listError != nil {
		return nil, fmt.Errorf(listCommitsErrorTemplateConstant, listError)
	}

	boundaries := FindEpochs(commits, gapDays)
	service.logger.Debug(
		epochBoundariesFoundMessageConstant,
		zap.String(logFieldBranchConstant, DefaultBranchName),
		zap.Float64(logFieldGapDaysConstant, gapDays),
		zap.Int(logFieldCommitCountConstant, len(commits)),
		zap.Int(logFieldBoundaryCountConstant, len(boundaries)),
	)
	return boundaries, nil
}

// PendingTags names each boundary commit.
func (service *Service) PendingTags(boundaries []gitrepo.Commit) []PendingTag {
	pendingTags := make([]PendingTag, 0, len(boundaries))
	for _, boundary := range boundaries {
		pendingTags = append(pendingTags, PendingTag{Name: service.tagNamer.TagName(boundary.CommittedAt), Commit: boundary})
	}
	return pendingTags
}

// ApplyTags tags every boundary commit. Existing tags are kept and reported as skipped.
// The first backend failure stops the run; tags created before it remain.
func (service *Service) ApplyTags(executionContext context.Context, boundaries []gitrepo.Commit) (ApplyResult, error) {
	var result ApplyResult
	for _, pendingTag := range service.PendingTags(boundaries) {
		outcome, creationError := service.backend.CreateTag(executionContext, pendingTag.Name, pendingTag.Commit.Hash)
		if creationError != nil {
			return result, fmt.Errorf(createEpochTagErrorTemplateConstant, pendingTag.Name, creationError)
		}

		tagFields := []zap.Field{
			zap.String(logFieldTagNameConstant, pendingTag.Name),
			zap.String(logFieldCommitHashConstant, pendingTag.Commit.Hash),
		}
		if outcome == gitrepo.TagAlreadyExists {
			service.logger.Debug(epochTagSkippedMessageConstant, tagFields...)
			result.Skipped = append(result.Skipped, pendingTag)
			continue
		}

		service.logger.Info(epochTagCreatedMessageConstant, tagFields...)
		result.Created = append(result.Created, pendingTag)
	}
	return result, nil
}

// Confirm lists the tags about to be added and asks the user to approve them.
func (service *Service) Confirm(boundaries []gitrepo.Commit) (bool, error) {
	if _, writeError := io.WriteString(service.output, tagsToBeAddedHeaderConstant); writeError != nil {
		return false, writeError
	}
	for _, pendingTag := range service.PendingTags(boundaries) {
		if _, writeError := fmt.Fprintf(service.output, pendingTagLineTemplateConstant, pendingTag.Name, pendingTag.Commit.Hash); writeError != nil {
			return false, writeError
		}
	}

	confirmed, promptError := service.prompter.Confirm(confirmationPromptConstant)
	if promptError != nil {
		return false, fmt.Errorf(confirmationErrorTemplateConstant, promptError)
	}
	return confirmed, nil
}

// CreateTags finds epoch boundaries on master and tags them once forced or confirmed.
func (service *Service) CreateTags(executionContext context.Context, options CreateOptions) (CreateResult, error) {
	boundaries, boundariesError := service.FindBoundaries(executionContext, options.GapDays)
	if boundariesError != nil {
		return CreateResult{}, boundariesError
	}

	result := CreateResult{Boundaries: service.PendingTags(boundaries), Confirmed: options.Force}
	if !options.Force {
		confirmed, confirmationError := service.Confirm(boundaries)
		if confirmationError != nil {
			return result, confirmationError
		}
		result.Confirmed = confirmed
	}

	if !result.Confirmed {
		if _, writeError := io.WriteString(service.output, taggingAbortedMessageConstant); writeError != nil {
			return result, writeError
		}
		return result, nil
	}

	applied, applyError := service.ApplyTags(executionContext, boundaries)
	result.Applied = applied
	return result, applyError
}

// RemoveTags deletes every local tag whose name starts with the git-epoch prefix and prints
// the command that removes them from the remote.
func (service *Service) RemoveTags(executionContext context.Context) ([]string, error) {
	tags, listError := service.backend.ListTags(executionContext)
	if listError != nil {
		return nil, fmt.Errorf(listEpochTagsErrorTemplateConstant, listError)
	}

	var deletedTagNames []string
	for _, tag := range tags {
		if !IsEpochTag(tag.Name) {
			continue
		}
		if deletionError := service.backend.DeleteTag(executionContext, tag.Name); deletionError != nil {
			return deletedTagNames, fmt.Errorf(deleteEpochTagErrorTemplateConstant, tag.Name, deletionError)
		}
		service.logger.Info(epochTagDeletedMessageConstant, zap.String(logFieldTagNameConstant, tag.Name))
		deletedTagNames = append(deletedTagNames, tag.Name)
	}

	if len(deletedTagNames) == 0 {
		return nil, nil
	}

	guidance := tagsDeletedLocallyMessageConstant +
		remoteDeletionHintMessageConstant +
		fmt.Sprintf(remoteDeletionCommandTemplateConstant, strings.Join(deletedTagNames, tagNamesJoinSeparatorConstant))
	if _, writeError := io.WriteString(service.output, guidance); writeError != nil {
		return deletedTagNames, writeError
	}
	return deletedTagNames, nil
}
