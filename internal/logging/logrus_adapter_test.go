package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
	}{
		{name: "debug level with text format", level: "debug", format: "text", expectLevel: logrus.DebugLevel},
		{name: "info level with json format", level: "info", format: "json", expectLevel: logrus.InfoLevel},
		{name: "upper case level", level: "WARN", format: "text", expectLevel: logrus.WarnLevel},
		{name: "invalid level defaults to info", level: "invalid", format: "text", expectLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tt.level, tt.format)
			require.NotNil(t, logger)

			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok, "logger should be a LogrusAdapter")
			assert.Equal(t, tt.expectLevel, adapter.Level())

			if tt.format == "json" {
				_, ok := adapter.logger.Formatter.(*logrus.JSONFormatter)
				assert.True(t, ok, "formatter should be JSONFormatter")
			} else {
				_, ok := adapter.logger.Formatter.(*logrus.TextFormatter)
				assert.True(t, ok, "formatter should be TextFormatter")
			}
		})
	}
}

func TestNewLogrusAdapterWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusAdapterWithWriter("debug", "json", &buf)

	logger.WithField(FieldAccountNumber, "87-40798").Info("account registered", F(FieldCount, 3))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "account registered", entry["msg"])
	assert.Equal(t, "87-40798", entry[FieldAccountNumber])
	assert.Equal(t, float64(3), entry[FieldCount])
}

func TestNewLogrusAdapterWithWriter_TextToFileIsPlain(t *testing.T) {
	var buf bytes.Buffer
	adapter, ok := NewLogrusAdapterWithWriter("info", "text", &buf).(*LogrusAdapter)
	require.True(t, ok)

	formatter, ok := adapter.logger.Formatter.(*logrus.TextFormatter)
	require.True(t, ok)
	assert.True(t, formatter.DisableColors)

	stderr, ok := NewLogrusAdapter("info", "text").(*LogrusAdapter)
	require.True(t, ok)
	assert.False(t, stderr.logger.Formatter.(*logrus.TextFormatter).DisableColors)
}

func TestNewLogrusAdapterFromLogger(t *testing.T) {
	t.Run("with existing logger", func(t *testing.T) {
		existingLogger := logrus.New()
		existingLogger.SetLevel(logrus.DebugLevel)

		adapter, ok := NewLogrusAdapterFromLogger(existingLogger).(*LogrusAdapter)
		require.True(t, ok)
		assert.Equal(t, existingLogger, adapter.logger)
	})

	t.Run("with nil logger creates new one", func(t *testing.T) {
		adapter, ok := NewLogrusAdapterFromLogger(nil).(*LogrusAdapter)
		require.True(t, ok)
		assert.NotNil(t, adapter.logger)
	})
}

func newBufferedLogger(level logrus.Level) (Logger, *bytes.Buffer) {
	logrusLogger := logrus.New()
	var buf bytes.Buffer
	logrusLogger.SetOutput(&buf)
	logrusLogger.SetLevel(level)
	logrusLogger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return NewLogrusAdapterFromLogger(logrusLogger), &buf
}

func TestLogrusAdapter_LoggingMethods(t *testing.T) {
	tests := []struct {
		name    string
		logFunc func(Logger, string, ...Field)
		message string
		fields  []Field
	}{
		{"Debug with fields", func(l Logger, m string, f ...Field) { l.Debug(m, f...) }, "debug message", []Field{F("key1", "value1")}},
		{"Info with fields", func(l Logger, m string, f ...Field) { l.Info(m, f...) }, "info message", []Field{F("key2", "value2")}},
		{"Warn with fields", func(l Logger, m string, f ...Field) { l.Warn(m, f...) }, "warn message", []Field{F("key3", "value3")}},
		{"Error with fields", func(l Logger, m string, f ...Field) { l.Error(m, f...) }, "error message", []Field{F("key4", "value4")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferedLogger(logrus.DebugLevel)
			tt.logFunc(logger, tt.message, tt.fields...)

			output := buf.String()
			assert.Contains(t, output, tt.message)
			assert.Contains(t, output, tt.fields[0].Key)
		})
	}
}

func TestLogrusAdapter_ChainedCalls(t *testing.T) {
	logger, buf := newBufferedLogger(logrus.InfoLevel)

	logger.
		WithField(FieldSource, "statement.pdf").
		WithFields(F(FieldLayout, "bank_account")).
		WithError(errors.New("disk full")).
		Error("ingestion failed")

	output := buf.String()
	assert.Contains(t, output, "ingestion failed")
	assert.Contains(t, output, "statement.pdf")
	assert.Contains(t, output, "bank_account")
	assert.Contains(t, output, "disk full")
}

func TestLogrusAdapter_LevelFilters(t *testing.T) {
	logger, buf := newBufferedLogger(logrus.WarnLevel)
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestConvertFields(t *testing.T) {
	logrusFields := convertFields([]Field{F("key1", "value1"), F("key2", 42), F("key3", true)})

	assert.Len(t, logrusFields, 3)
	assert.Equal(t, "value1", logrusFields["key1"])
	assert.Equal(t, 42, logrusFields["key2"])
	assert.Equal(t, true, logrusFields["key3"])
	assert.Empty(t, convertFields(nil))
}

func TestOrDefault(t *testing.T) {
	mock := NewMockLogger()
	assert.Same(t, mock, OrDefault(mock))
	assert.NotNil(t, OrDefault(nil))
}

func TestLogrusAdapter_ImplementsInterface(t *testing.T) {
	var _ Logger = (*LogrusAdapter)(nil)
	var _ Logger = (*MockLogger)(nil)
}
