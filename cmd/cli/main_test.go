package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A bundle directory whose library.hcl has a syntax error is guaranteed
	// to make app.NewApp panic during the discovery phase.
	tempDir := t.TempDir()
	libDir := filepath.Join(tempDir, "dev-lib")
	require.NoError(t, os.MkdirAll(libDir, 0750))
	invalidHCL := `
		library {
			name = "dev-lib"
		// Missing closing brace here
	`
	err := os.WriteFile(filepath.Join(libDir, "library.hcl"), []byte(invalidHCL), 0600)
	require.NoError(t, err, "failed to set up test file")

	args := []string{tempDir}
	out := &bytes.Buffer{}

	// --- Act ---
	// The run function should recover the panic and return it as an error.
	runErr := run(out, args)

	// --- Assert ---
	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")

	errStr := runErr.Error()
	require.True(t, strings.Contains(errStr, "application startup panicked"), "The error message should indicate that a panic was recovered.")
	require.True(t, strings.Contains(errStr, "failed to"), "The error message should contain the underlying reason for the panic.")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_LoadsLibraries(t *testing.T) {
	t.Parallel()

	// An empty libraries directory yields an empty, valid catalog.
	tempDir := t.TempDir()
	out := &bytes.Buffer{}

	err := run(out, []string{"--log-format", "text", tempDir})
	require.NoError(t, err)
	require.Contains(t, out.String(), "Loaded 0 stage definitions")
}
