package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/git-epoch/internal/gitrepo/testsupport"
)

const (
	integrationCommandTimeout               = 2 * time.Minute
	integrationCreatedMessageConstant       = "\"msg\":\"epoch tag created\""
	integrationConfigurationMessageConstant = "\"msg\":\"configuration initialized\""
	integrationHelpSnippetConstant          = "git-epoch splits the history of the master branch into development epochs"
	integrationSubtestNameTemplateConstant  = "%d_%s"
)

var integrationBaseTime = time.Date(2018, time.February, 10, 15, 0, 0, 0, time.UTC)

func runIntegrationCommand(testInstance *testing.T, arguments ...string) (string, error) {
	testInstance.Helper()

	executionContext, cancel := context.WithTimeout(context.Background(), integrationCommandTimeout)
	defer cancel()

	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	command := exec.CommandContext(executionContext, "go", append([]string{"run", "."}, arguments...)...)
	command.Dir = workingDirectory
	command.Env = append(os.Environ(), "GITEPOCH_EPOCH_TIMEZONE=UTC", "XDG_CONFIG_HOME="+testInstance.TempDir())

	outputBytes, runError := command.CombinedOutput()
	return string(outputBytes), runError
}

func TestCLIIntegration(testInstance *testing.T) {
	if testing.Short() {
		testInstance.Skip("integration test builds the binary")
	}

	fixture := testsupport.NewRepository(testInstance)
	for _, day := range []int{0, 2, 40} {
		fixture.CommitAt(testInstance, integrationBaseTime.AddDate(0, 0, day))
	}

	testCases := []struct {
		name             string
		arguments        []string
		expectedSnippets []string
		expectedTags     []string
	}{
		{
			name:             "help_output",
			arguments:        []string{"--help"},
			expectedSnippets: []string{"Usage:", integrationHelpSnippetConstant, "--epoch-gap"},
			expectedTags:     nil,
		},
		{
			name:             "forced_tagging_with_structured_logs",
			arguments:        []string{"--repository", fixture.Path, "--force", "--log-level", "info", "--log-format", "structured"},
			expectedSnippets: []string{integrationConfigurationMessageConstant, integrationCreatedMessageConstant},
			expectedTags:     []string{"git-epoch/2018-03-22"},
		},
		{
			name:             "delete_prints_remote_hint",
			arguments:        []string{"--repository", fixture.Path, "--delete"},
			expectedSnippets: []string{"`git push origin --delete git-epoch/2018-03-22`"},
			expectedTags:     nil,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(integrationSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			output, runError := runIntegrationCommand(testInstance, testCase.arguments...)
			require.NoError(testInstance, runError, output)
			for _, expectedSnippet := range testCase.expectedSnippets {
				require.True(testInstance, strings.Contains(output, expectedSnippet), output)
			}
			require.Equal(testInstance, testCase.expectedTags, fixture.TagNames(testInstance))
		})
	}
}

func TestCLIIntegrationFailsOutsideRepository(testInstance *testing.T) {
	if testing.Short() {
		testInstance.Skip("integration test builds the binary")
	}

	output, runError := runIntegrationCommand(testInstance, "--repository", testInstance.TempDir())
	require.Error(testInstance, runError)
	require.Contains(testInstance, output, "git repository not found")
}
