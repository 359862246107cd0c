package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLIsNopBeforeInit(t *testing.T) {
	Replace(nil)
	assert.NotPanics(t, func() { Info("nothing to see") })
	assert.NotNil(t, L())
}

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filegrip.log")
	require.NoError(t, Init(Config{Level: "debug", Format: "json", OutputPath: path}))
	defer Replace(nil)

	Info("directory loaded", String("path", "/docs"))
	require.NoError(t, Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "directory loaded")
	assert.Contains(t, string(data), `"path":"/docs"`)
}

func TestWithRequestIDTagsEntries(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	Replace(zap.New(core))
	defer Replace(nil)

	ctx := WithRequestID(context.Background(), "req-1")
	WithContext(ctx).Info("list")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "req-1", logs.All()[0].ContextMap()["request_id"])
}
