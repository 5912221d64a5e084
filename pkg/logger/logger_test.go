package logger

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, logrus.WarnLevel)

	l.Info("hidden %d", 1)
	l.Warn("shown %d", 2)

	assert.NotContains(t, buf.String(), "hidden 1")
	assert.Contains(t, buf.String(), "shown 2")
}

func TestLogger_WithField(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, logrus.InfoLevel).WithField("request_id", "abc")

	l.Info("hello")

	assert.Contains(t, buf.String(), "request_id=abc")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("", "loud")
	assert.Error(t, err)
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	l, err := New(path, "info")
	require.NoError(t, err)
	l.Info("written")
	require.NoError(t, l.Close())

	assert.FileExists(t, path)
}
