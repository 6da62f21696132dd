package logger

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoggerFallsBackToGlobal(t *testing.T) {
	ctx := context.Background()
	entry := G(ctx)
	require.NotNil(t, entry)
	assert.Equal(t, L.Logger, entry.Logger)
}

func TestWithLoggerRoundTrip(t *testing.T) {
	custom := logrus.NewEntry(logrus.New()).WithField("component", "installer")
	ctx := WithLogger(context.Background(), custom)

	entry := GetLogger(ctx)
	assert.Equal(t, "installer", entry.Data["component"])
}

func TestSetLogLevel(t *testing.T) {
	defer func() { _ = SetLogLevel("warn") }()

	require.NoError(t, SetLogLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())

	assert.Error(t, SetLogLevel("not-a-level"))
}

func TestSetLogFormat(t *testing.T) {
	defer SetLogFormat("text")

	SetLogFormat("json")
	_, ok := L.Logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)

	SetLogFormat("text")
	_, ok = L.Logger.Formatter.(*logrus.TextFormatter)
	assert.True(t, ok)
}
