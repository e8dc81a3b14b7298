package epoch

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/git-epoch/internal/execshell"
	"github.com/temirov/git-epoch/internal/gitrepo"
	"github.com/temirov/git-epoch/internal/utils"
	pathutils "github.com/temirov/git-epoch/internal/utils/path"
)

const (
	commandUseConstant                  = "git-epoch"
	commandShortDescriptionConstant     = "Tag the first commit of every development epoch"
	commandLongDescriptionConstant      = "git-epoch splits the history of the master branch into development epochs separated by quiet periods longer than the epoch gap and tags the first commit of each later epoch as git-epoch/YYYY-MM-DD. With --delete it removes those tags instead."
	tagCreationErrorTemplateConstant    = "epoch tagging failed: %w"
	tagRemovalErrorTemplateConstant     = "epoch tag removal failed: %w"
	repositoryPathErrorTemplateConstant = "unable to resolve repository path: %w"
	flagDeleteNameConstant              = "delete"
	flagDeleteDescriptionConstant       = "Remove all git-epoch tags from the local repository"
	flagEpochGapNameConstant            = "epoch-gap"
	flagEpochGapDescriptionConstant     = "Minimum number of days without commits that starts a new epoch"
	flagForceNameConstant               = "force"
	flagForceDescriptionConstant        = "Create tags without asking for confirmation"
	flagRepositoryNameConstant          = "repository"
	flagRepositoryDescriptionConstant   = "Path inside the git repository to tag"
	commandStartedMessageConstant       = "git-epoch started"
	logFieldDeleteConstant              = "delete"
	logFieldForceConstant               = "force"
	logFieldRepositoryConstant          = "repository"
	logFieldBackendConstant             = "backend"
	logFieldTimezoneConstant            = "timezone"
	logFieldCreatedCountConstant        = "created_count"
	logFieldSkippedCountConstant        = "skipped_count"
	logFieldDeletedCountConstant        = "deleted_count"
	tagCreationCompletedMessageConstant = "epoch tagging completed"
	tagRemovalCompletedMessageConstant  = "epoch tag removal completed"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the loaded git-epoch configuration.
type ConfigurationProvider func() CommandConfiguration

// BackendFactory opens the repository backend described by options.
type BackendFactory func(executionContext context.Context, options BackendOptions, logger *zap.Logger) (Backend, error)

// BackendOptions select and locate the repository backend.
type BackendOptions struct {
	Kind           gitrepo.BackendKind
	RepositoryPath string
}

// CommandOptions are the resolved settings of one git-epoch invocation.
type CommandOptions struct {
	Delete       bool
	EpochGapDays int
	Force        bool
	Backend      BackendOptions
	Location     *time.Location
}

// CommandBuilder assembles the git-epoch Cobra command.
type CommandBuilder struct {
	LoggerProvider         LoggerProvider
	ConfigurationProvider  ConfigurationProvider
	BackendFactory         BackendFactory
	RepositoryPathResolver *pathutils.RepositoryPathResolver
}

// Build constructs the git-epoch command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().Bool(flagDeleteNameConstant, false, flagDeleteDescriptionConstant)
	command.Flags().Int(flagEpochGapNameConstant, defaults.EpochGapDays, flagEpochGapDescriptionConstant)
	command.Flags().Bool(flagForceNameConstant, defaults.Force, flagForceDescriptionConstant)
	command.Flags().String(flagRepositoryNameConstant, defaults.RepositoryPath, flagRepositoryDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	options, optionsError := builder.parseOptions(command)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	logger.Debug(
		commandStartedMessageConstant,
		zap.Bool(logFieldDeleteConstant, options.Delete),
		zap.Int(logFieldGapDaysConstant, options.EpochGapDays),
		zap.Bool(logFieldForceConstant, options.Force),
		zap.String(logFieldRepositoryConstant, options.Backend.RepositoryPath),
		zap.String(logFieldBackendConstant, string(options.Backend.Kind)),
		zap.String(logFieldTimezoneConstant, options.Location.String()),
	)

	executionContext := command.Context()
	backend, backendError := builder.resolveBackendFactory()(executionContext, options.Backend, logger)
	if backendError != nil {
		return backendError
	}

	outputWriter := utils.NewConsoleWriter(command.OutOrStdout())
	service, serviceError := NewService(Dependencies{
		Backend:  backend,
		Prompter: NewIOConfirmationPrompter(command.InOrStdin(), outputWriter),
		Output:   outputWriter,
		Logger:   logger,
		TagNamer: NewTagNamer(options.Location),
	})
	if serviceError != nil {
		return serviceError
	}

	if options.Delete {
		deletedTagNames, removalError := service.RemoveTags(executionContext)
		if removalError != nil {
			return fmt.Errorf(tagRemovalErrorTemplateConstant, removalError)
		}
		logger.Info(tagRemovalCompletedMessageConstant, zap.Int(logFieldDeletedCountConstant, len(deletedTagNames)))
		return nil
	}

	creationResult, creationError := service.CreateTags(executionContext, CreateOptions{
		GapDays: float64(options.EpochGapDays),
		Force:   options.Force,
	})
	if creationError != nil {
		return fmt.Errorf(tagCreationErrorTemplateConstant, creationError)
	}
	logger.Info(
		tagCreationCompletedMessageConstant,
		zap.Int(logFieldBoundaryCountConstant, len(creationResult.Boundaries)),
		zap.Int(logFieldCreatedCountConstant, len(creationResult.Applied.Created)),
		zap.Int(logFieldSkippedCountConstant, len(creationResult.Applied.Skipped)),
	)
	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (CommandOptions, error) {
	configuration := builder.resolveConfiguration()

	deleteValue, _ := command.Flags().GetBool(flagDeleteNameConstant)

	epochGapDays := configuration.EpochGapDays
	if command.Flags().Changed(flagEpochGapNameConstant) {
		epochGapDays, _ = command.Flags().GetInt(flagEpochGapNameConstant)
	}
	if validationError := ValidateEpochGap(float64(epochGapDays)); validationError != nil {
		return CommandOptions{}, validationError
	}

	forceValue := configuration.Force
	if command.Flags().Changed(flagForceNameConstant) {
		forceValue, _ = command.Flags().GetBool(flagForceNameConstant)
	}

	repositoryPath := configuration.RepositoryPath
	if command.Flags().Changed(flagRepositoryNameConstant) {
		repositoryPath, _ = command.Flags().GetString(flagRepositoryNameConstant)
	}
	resolvedRepositoryPath, resolutionError := builder.resolveRepositoryPathResolver().Resolve(repositoryPath)
	if resolutionError != nil {
		return CommandOptions{}, fmt.Errorf(repositoryPathErrorTemplateConstant, resolutionError)
	}

	backendKind, backendError := gitrepo.ParseBackendKind(configuration.Backend)
	if backendError != nil {
		return CommandOptions{}, backendError
	}

	location, locationError := ResolveLocation(configuration.Timezone)
	if locationError != nil {
		return CommandOptions{}, locationError
	}

	return CommandOptions{
		Delete:       deleteValue,
		EpochGapDays: epochGapDays,
		Force:        forceValue,
		Backend:      BackendOptions{Kind: backendKind, RepositoryPath: resolvedRepositoryPath},
		Location:     location,
	}, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveRepositoryPathResolver() *pathutils.RepositoryPathResolver {
	if builder.RepositoryPathResolver != nil {
		return builder.RepositoryPathResolver
	}
	return pathutils.NewRepositoryPathResolver()
}

func (builder *CommandBuilder) resolveBackendFactory() BackendFactory {
	if builder.BackendFactory != nil {
		return builder.BackendFactory
	}
	return OpenBackend
}

// OpenBackend opens the go-git or git CLI backend for options.RepositoryPath.
func OpenBackend(executionContext context.Context, options BackendOptions, logger *zap.Logger) (Backend, error) {
	switch options.Kind {
	case gitrepo.BackendGitCLI:
		shellExecutor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
		if executorError != nil {
			return nil, executorError
		}
		shellRepository, openError := gitrepo.OpenShellRepository(executionContext, shellExecutor, options.RepositoryPath)
		if openError != nil {
			return nil, openError
		}
		return shellRepository, nil
	default:
		goGitRepository, openError := gitrepo.OpenGoGitRepository(options.RepositoryPath)
		if openError != nil {
			return nil, openError
		}
		return goGitRepository, nil
	}
}
