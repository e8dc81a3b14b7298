package utils_test

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/git-epoch/internal/utils"
)

const consoleWriterTestPromptConstant = `enter "yes" to confirm: `

type failingFlushWriter struct {
	bytes.Buffer
	flushError error
}

func (writer *failingFlushWriter) Flush() error {
	return writer.flushError
}

func TestConsoleWriterFlushesBufferedDestination(testInstance *testing.T) {
	destination := &bytes.Buffer{}
	consoleWriter := utils.NewConsoleWriter(bufio.NewWriter(destination))

	bytesWritten, writeError := consoleWriter.Write([]byte(consoleWriterTestPromptConstant))
	require.NoError(testInstance, writeError)
	require.Equal(testInstance, len(consoleWriterTestPromptConstant), bytesWritten)
	require.Equal(testInstance, consoleWriterTestPromptConstant, destination.String())
}

func TestConsoleWriterReportsFlushFailure(testInstance *testing.T) {
	flushFailure := errors.New("broken pipe")
	consoleWriter := utils.NewConsoleWriter(&failingFlushWriter{flushError: flushFailure})

	_, writeError := consoleWriter.Write([]byte("Tags to be added:\n"))
	require.ErrorIs(testInstance, writeError, flushFailure)
}

func TestConsoleWriterTerminateLine(testInstance *testing.T) {
	testCases := []struct {
		name           string
		writes         []string
		expectedOutput string
	}{
		{name: "nothing_written", writes: nil, expectedOutput: ""},
		{name: "open_prompt", writes: []string{consoleWriterTestPromptConstant}, expectedOutput: consoleWriterTestPromptConstant + "\n"},
		{name: "complete_line", writes: []string{"Tags to be added:\n"}, expectedOutput: "Tags to be added:\n"},
		{name: "prompt_after_lines", writes: []string{"Tags to be added:\n", consoleWriterTestPromptConstant}, expectedOutput: "Tags to be added:\n" + consoleWriterTestPromptConstant + "\n"},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			destination := &bytes.Buffer{}
			consoleWriter := utils.NewConsoleWriter(destination)
			for _, text := range testCase.writes {
				_, writeError := consoleWriter.Write([]byte(text))
				require.NoError(testInstance, writeError)
			}

			require.NoError(testInstance, consoleWriter.TerminateLine())
			require.NoError(testInstance, consoleWriter.TerminateLine())
			require.Equal(testInstance, testCase.expectedOutput, destination.String())
		})
	}
}

func TestConsoleWriterWrapping(testInstance *testing.T) {
	consoleWriter := utils.NewConsoleWriter(&bytes.Buffer{})
	require.Same(testInstance, consoleWriter, utils.NewConsoleWriter(consoleWriter))

	discardingWriter := utils.NewConsoleWriter(nil)
	bytesWritten, writeError := discardingWriter.Write([]byte("ignored"))
	require.NoError(testInstance, writeError)
	require.Equal(testInstance, len("ignored"), bytesWritten)
	require.NoError(testInstance, discardingWriter.TerminateLine())
}
