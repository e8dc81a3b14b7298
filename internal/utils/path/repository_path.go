package pathutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	tildeSymbolConstant                      = "~"
	currentDirectoryConstant                 = "."
	repositoryPathResolutionTemplateConstant = "unable to resolve repository path %q: %w"
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// RepositoryPathResolver turns user supplied repository paths into absolute paths.
type RepositoryPathResolver struct {
	homeDirectoryProvider HomeDirectoryProvider
}

// NewRepositoryPathResolver constructs a resolver using the operating system home lookup.
func NewRepositoryPathResolver() *RepositoryPathResolver {
	return NewRepositoryPathResolverWithProvider(os.UserHomeDir)
}

// NewRepositoryPathResolverWithProvider constructs a resolver with a custom home directory provider.
func NewRepositoryPathResolverWithProvider(provider HomeDirectoryProvider) *RepositoryPathResolver {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &RepositoryPathResolver{homeDirectoryProvider: provider}
}

// Resolve trims the candidate, expands a leading "~" and returns an absolute, cleaned path.
// An empty candidate resolves to the working directory.
func (resolver *RepositoryPathResolver) Resolve(candidatePath string) (string, error) {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		trimmedPath = currentDirectoryConstant
	}

	expandedPath, expansionError := resolver.expandHome(trimmedPath)
	if expansionError != nil {
		return "", fmt.Errorf(repositoryPathResolutionTemplateConstant, candidatePath, expansionError)
	}

	absolutePath, absoluteError := filepath.Abs(expandedPath)
	if absoluteError != nil {
		return "", fmt.Errorf(repositoryPathResolutionTemplateConstant, candidatePath, absoluteError)
	}
	return absolutePath, nil
}

func (resolver *RepositoryPathResolver) expandHome(candidatePath string) (string, error) {
	if candidatePath != tildeSymbolConstant && !strings.HasPrefix(candidatePath, tildeSymbolConstant+"/") && !strings.HasPrefix(candidatePath, tildeSymbolConstant+string(os.PathSeparator)) {
		return candidatePath, nil
	}

	homeDirectory, homeDirectoryError := resolver.homeDirectoryProvider()
	if homeDirectoryError != nil {
		return "", homeDirectoryError
	}

	return filepath.Join(homeDirectory, strings.TrimPrefix(candidatePath, tildeSymbolConstant)), nil
}
