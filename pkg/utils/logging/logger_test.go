package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerWritesEnvTaggedFile(t *testing.T) {
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	logger, err := InitLogger("test")
	require.NoError(t, err)

	logger.Info("allocation engine starting")
	_ = logger.Sync()

	entries, err := os.ReadDir("logs")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "test_"))

	content, err := os.ReadFile(filepath.Join("logs", entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"env":"test"`)
	assert.Contains(t, string(content), "allocation engine starting")
}
