package epoch

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

const confirmationAnswerConstant = "yes"

// lineTerminator is implemented by output writers that can close a prompt left open when input ends without a newline.
type lineTerminator interface {
	TerminateLine() error
}

// IOConfirmationPrompter reads confirmation responses from an io.Reader.
type IOConfirmationPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOConfirmationPrompter constructs a prompter from the provided reader and writer.
func NewIOConfirmationPrompter(input io.Reader, output io.Writer) *IOConfirmationPrompter {
	return &IOConfirmationPrompter{reader: bufio.NewReader(input), writer: output}
}

// Confirm writes the prompt and accepts only the exact answer "yes". End of input counts as a refusal.
func (prompter *IOConfirmationPrompter) Confirm(prompt string) (bool, error) {
	if prompter.writer != nil {
		if _, writeError := io.WriteString(prompter.writer, prompt); writeError != nil {
			return false, writeError
		}
	}

	response, readError := prompter.reader.ReadString('\n')
	if readError != nil && !errors.Is(readError, io.EOF) {
		return false, readError
	}
	if errors.Is(readError, io.EOF) {
		if terminator, isLineTerminator := prompter.writer.(lineTerminator); isLineTerminator {
			if terminateError := terminator.TerminateLine(); terminateError != nil {
				return false, terminateError
			}
		}
	}

	return strings.TrimSpace(response) == confirmationAnswerConstant, nil
}
