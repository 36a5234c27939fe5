package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sarchart/sarchart/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource_Fetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("Linux\n\n00:00:01 CPU %user\n"), 0o644))
	src := NewFileSource(path)

	lines, err := src.Fetch(context.Background(), Query{Start: "10:00:00"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Linux", "", "00:00:01 CPU %user"}, lines)
}

func TestFileSource_Stdin(t *testing.T) {
	src := NewFileSource("-")
	src.in = strings.NewReader("a\nb\n")

	lines, err := src.Fetch(context.Background(), Query{})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lines)
}

func TestFileSource_Missing(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "nope.txt"))

	_, err := src.Fetch(context.Background(), Query{})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSourceUnavailable))
}

func TestFileSource_RejectsLive(t *testing.T) {
	src := NewFileSource("report.txt")

	_, err := src.Fetch(context.Background(), Live(5, 1))

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}
