package runner_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/runner"
)

func pipe() (*io.PipeReader, *io.PipeWriter) {
	return io.Pipe()
}

func TestTextHandler_Input(t *testing.T) {
	var out bytes.Buffer
	h := runner.NewTextHandler(strings.NewReader("hello\r\nlast"), &out)
	ctx := context.Background()

	got, err := h.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	got, err = h.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "last", got)

	_, err = h.Input(ctx)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "> > > ", out.String())
}

func TestTextHandler_InputCancelled(t *testing.T) {
	r, w := pipe()
	defer w.Close()
	h := runner.NewTextHandler(r, &bytes.Buffer{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := h.Input(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTextHandler_OutputUsesRenderer(t *testing.T) {
	var out bytes.Buffer
	h := runner.NewTextHandler(nil, &out, runner.WithTextHandlerRenderer(func(s string) (string, error) {
		return strings.ToUpper(s), nil
	}))

	resp := &domain.Response{
		Ops:    []domain.Op{{Kind: domain.OpEntry, Field: "name"}},
		Notice: "value required",
	}
	require.NoError(t, h.Output(context.Background(), resp))
	assert.Contains(t, out.String(), "**NAME**: _ENTER A VALUE_")
	assert.Contains(t, out.String(), "Error: value required. Please try again.")
}

func TestJSONHandler_Input(t *testing.T) {
	h := runner.NewJSONHandler(strings.NewReader("\"quoted\"\nraw text\n{\"x\":1}"), &bytes.Buffer{})
	ctx := context.Background()

	got, err := h.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "quoted", got)

	got, err = h.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "raw text", got)

	got, err = h.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, got)

	_, err = h.Input(ctx)
	assert.ErrorIs(t, err, io.EOF)
}
