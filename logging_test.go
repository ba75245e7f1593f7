package arena

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNopSinkDiscardsEverything(t *testing.T) {
	assert.NotPanics(t, func() {
		NopSink{}.Log("component", "message", LevelError)
	})
}

func TestLogrusSinkWritesStructuredFields(t *testing.T) {
	defer SetConfig(DefaultConfig())
	SetConfig(DefaultConfig())

	var buf bytes.Buffer
	logger := logrus.New()
	logger.Out = &buf
	logger.SetFormatter(&logrus.JSONFormatter{})

	sink := NewLogrusSink(logger)
	sink.Log("arena", "allocate: ok", LevelInfo)

	assert.Contains(t, buf.String(), `"component":"arena"`)
	assert.Contains(t, buf.String(), `"msg":"allocate: ok"`)
}

func TestLogrusSinkSilencedWhenLoggingDisabled(t *testing.T) {
	defer SetConfig(DefaultConfig())
	SetConfig(Config{EnableLogging: false, TrackAllocations: true, TrackAlignmentLoss: true})

	var buf bytes.Buffer
	logger := logrus.New()
	logger.Out = &buf

	sink := NewLogrusSink(logger)
	sink.Log("arena", "should not appear", LevelError)

	assert.Empty(t, buf.String())
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "error", LevelError.String())
	assert.Equal(t, "success", LevelSuccess.String())
}
