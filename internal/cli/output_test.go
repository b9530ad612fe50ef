package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := NewExitError(ExitCommandError, "bad path")
		assert.Equal(t, "bad path", err.Error())
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})

	t.Run("wrapped", func(t *testing.T) {
		inner := errors.New("no such file")
		err := WrapExitError(ExitCommandError, "opening input", inner)
		assert.Equal(t, "opening input: no such file", err.Error())
		assert.ErrorIs(t, err, inner)
	})

	t.Run("wrapped through fmt", func(t *testing.T) {
		err := fmt.Errorf("context: %w", NewExitError(ExitFailure, "odd sequences"))
		assert.Equal(t, ExitFailure, GetExitCode(err))
	})
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
}

func TestFormatterError(t *testing.T) {
	t.Run("json envelope", func(t *testing.T) {
		var buf bytes.Buffer
		f := &OutputFormatter{Format: "json", Writer: &buf}
		require.NoError(t, f.Error("E005", "not found", nil))

		var resp CLIResponse
		require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
		assert.Equal(t, "error", resp.Status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "E005", resp.Error.Code)
		assert.Equal(t, "not found", resp.Error.Message)
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		f := &OutputFormatter{Format: "text", Writer: &buf}
		require.NoError(t, f.Error("E005", "not found", nil))
		assert.Equal(t, "Error [E005]: not found\n", buf.String())
	})
}

func TestVerboseLog(t *testing.T) {
	var out, errOut bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &out, ErrWriter: &errOut, Verbose: true}

	f.VerboseLog("processed %d", 3)
	assert.Empty(t, out.String())
	assert.Equal(t, "processed 3\n", errOut.String())

	f.Verbose = false
	f.VerboseLog("suppressed")
	assert.Equal(t, "processed 3\n", errOut.String())
}
