package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filegrip/internal/api"
	"filegrip/internal/browser"
	"filegrip/internal/ui/state"
)

func newExecutor(t *testing.T) (*Executor, *browser.Controller) {
	t.Helper()
	src := api.NewMemorySource(1 << 20)
	src.AddFile("/docs/a.pdf", 10)
	b := browser.New(src, nil, browser.DefaultOptions())
	return NewExecutor(context.Background(), state.NewAppState(), b), b
}

func TestLoadReportsMove(t *testing.T) {
	e, _ := newExecutor(t)

	msg := e.ExecuteLoad("/docs")()
	loadedMsg, ok := msg.(LoadedMsg)
	require.True(t, ok)
	assert.Equal(t, "/docs", loadedMsg.Path)
	assert.True(t, loadedMsg.Moved)
	assert.NoError(t, loadedMsg.Err)
}

func TestUpAtRootIsNoop(t *testing.T) {
	e, _ := newExecutor(t)
	assert.Nil(t, e.ExecuteUp())
}

func TestStaleLoadSendsNothing(t *testing.T) {
	_, b := newExecutor(t)
	assert.Nil(t, loaded(b, "/", browser.ErrStaleLoad))

	msg := loaded(b, "/docs", nil)
	assert.Equal(t, LoadedMsg{Path: "/", Moved: true}, msg)
}
