package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/pkgdb/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		logging.SetDefault(original)
		zerolog.SetGlobalLevel(originalLevel)
	})

	buf := &bytes.Buffer{}
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logging.SetDefault(zerolog.New(buf).Level(zerolog.DebugLevel))

	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")
	logging.Error().Msg("error message")
	logging.Err(assert.AnError).Msg("err message")

	output := buf.String()
	for _, want := range []string{"debug message", "info message", "warning message", "error message", assert.AnError.Error()} {
		assert.Contains(t, output, want)
	}
}

func TestNew(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	logger := logging.New(&buf)
	logger.Info().Msg("json test")

	assert.Contains(t, buf.String(), "json test")
	assert.Contains(t, buf.String(), `"level":"info"`)
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithDatabase(ctx, "/tmp/pkgdb.plist")
	ctx = logging.WithPackage(ctx, "foo")
	ctx = logging.WithOperation(ctx, "register")

	logging.FromContext(ctx).Info().Msg("registering")

	testLogger.AssertContains(t, `"db":"/tmp/pkgdb.plist"`)
	testLogger.AssertContains(t, `"pkgname":"foo"`)
	testLogger.AssertContains(t, `"operation":"register"`)
	testLogger.AssertContains(t, "registering")
	testLogger.AssertCount(t, 1)
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	tl.Info().Msg("first")
	tl.Warn().Str("pkgname", "bar").Msg("second")

	assert.Len(t, tl.Lines(), 2)
	assert.True(t, tl.ContainsAll("first", "second", "bar"))
	tl.AssertNotContains(t, "third")

	tl.Clear()
	assert.Empty(t, tl.Lines())
	assert.Equal(t, 0, tl.Count())
}

func TestDisableLoggingForTest(t *testing.T) {
	t.Run("silenced", func(t *testing.T) {
		logging.DisableLoggingForTest(t)
		// Nop logger must accept events without output or panics.
		logging.Error().Msg("discarded")
	})
	assert.NotNil(t, logging.Default())
}
