package utils

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmPrompt(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "  yes  \n", want: true},
		{input: "yes", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
		{input: "sure\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var out bytes.Buffer
			got, err := ConfirmPrompt(context.Background(), strings.NewReader(tt.input), &out, "Reset?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Reset? (y/N): ")
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestConfirmPrompt_ReadError(t *testing.T) {
	_, err := ConfirmPrompt(context.Background(), failingReader{}, io.Discard, "Reset?")
	assert.ErrorContains(t, err, "broken pipe")
}

func TestConfirmPrompt_Cancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := ConfirmPrompt(ctx, r, io.Discard, "Reset?")
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}
