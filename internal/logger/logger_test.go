package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IlTetta/CoWorkSpace-sub001/internal/config"
)

func TestInitLevels(t *testing.T) {
	Init(config.LogConfig{Level: "warn", Format: "json"})

	assert.Equal(t, logrus.WarnLevel, InfoLogger.GetLevel())
	assert.Equal(t, logrus.WarnLevel, ErrorLogger.GetLevel())
	_, isJSON := InfoLogger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)

	Init(config.LogConfig{Level: "not-a-level"})
	assert.Equal(t, logrus.InfoLevel, InfoLogger.GetLevel())
}

func TestNewFileLogger(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "booking.log")

	l := NewFileLogger(config.LogConfig{MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}, path)
	l.WithField("reservation_id", 7).Info("reservation.created")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"reservation_id":7`)
	assert.Contains(t, string(data), `"msg":"reservation.created"`)
}
