package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gitree.log")
	logger, closer, err := New(path, "debug")
	require.NoError(t, err)

	logger.WithField("count", 3).Debug("scanned working copy")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "scanned working copy")
	assert.Contains(t, string(data), "count=3")
}

func TestNewDiscard(t *testing.T) {
	logger, closer, err := New("-", "info")
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.NoError(t, closer.Close())
}

func TestNewBadLevel(t *testing.T) {
	_, _, err := New("-", "loud")
	assert.Error(t, err)
}
