//go:build e2e && unix

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuitCancels(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartDemo())
	require.True(t, tf.Ready())

	require.NoError(t, tf.Quit())
	code, err := tf.WaitExit(defaultWait)
	if err != nil {
		tf.DumpTailOnFail(t, "quit-failure", 4096)
	}
	require.NoError(t, err)
	assert.Equal(t, 1, code, "cancelling exits with 1")
}

func TestEscCancels(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartDemo())
	require.True(t, tf.Ready())

	require.NoError(t, tf.Esc())
	code, err := tf.WaitExit(defaultWait)
	require.NoError(t, err)
	assert.Equal(t, 1, code)
}

func TestCtrlCExits(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartDemo())
	require.True(t, tf.Ready())

	require.NoError(t, tf.SendCtrlC())
	code, err := tf.WaitExit(defaultWait)
	require.NoError(t, err)
	assert.NotEqual(t, 0, code)
}
