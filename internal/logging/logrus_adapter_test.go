package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLogrusAdapterLevels(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
	}{
		{"debug text", "debug", "text"},
		{"info json", "info", "json"},
		{"invalid level falls back", "nonsense", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tt.level, tt.format)
			assert.NotNil(t, logger)
		})
	}
}

func TestLogrusAdapterFieldsReachOutput(t *testing.T) {
	underlying := logrus.New()
	var buf bytes.Buffer
	underlying.SetOutput(&buf)
	underlying.SetFormatter(&logrus.JSONFormatter{})

	logger := NewLogrusAdapterFromLogger(underlying)
	logger.Info("processing statement", Field{Key: "rows", Value: 42})

	out := buf.String()
	assert.Contains(t, out, "processing statement")
	assert.Contains(t, out, "\"rows\":42")
}

func TestLogrusAdapterWithError(t *testing.T) {
	underlying := logrus.New()
	var buf bytes.Buffer
	underlying.SetOutput(&buf)

	logger := NewLogrusAdapterFromLogger(underlying)
	logger.WithError(errors.New("boom")).Warn("extraction failed")

	assert.Contains(t, buf.String(), "boom")
}

func TestMockLoggerRecordsMessages(t *testing.T) {
	mock := NewMockLogger()
	mock.Debug("d")
	mock.Info("i")
	mock.Warn("w")
	mock.Error("e")

	assert.Equal(t, []string{"d"}, mock.DebugMessages)
	assert.Equal(t, []string{"i"}, mock.InfoMessages)
	assert.Equal(t, []string{"w"}, mock.WarnMessages)
	assert.Equal(t, []string{"e"}, mock.ErrorMessages)
}
