package utils

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yeimages/resfinder/constants/lipgloss"
)

// ConfirmPrompt asks a yes/no question on w and reads the answer from r.
// Anything but "y" or "yes" is a no, and so is an empty input stream.
func ConfirmPrompt(ctx context.Context, r io.Reader, w io.Writer, question string) (bool, error) {
	answerChan := make(chan string, 1)
	errChan := make(chan error, 1)

	fmt.Fprint(w, lipgloss.BlueSky.Render(question+" (y/N): "))

	go func() {
		answer, err := bufio.NewReader(r).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			errChan <- fmt.Errorf("failed to read answer: %w", err)
			return
		}
		answerChan <- answer
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(w)
		return false, ctx.Err()
	case err := <-errChan:
		return false, err
	case answer := <-answerChan:
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes", nil
	}
}
