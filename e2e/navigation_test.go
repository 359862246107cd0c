//go:build e2e && unix

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenFolderAndGoBack(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartDemo())
	require.True(t, tf.Ready())

	// audio, documents, images
	require.NoError(t, tf.SendKeys(KeyDown+KeyDown))
	require.NoError(t, tf.Enter())
	require.True(t, tf.SeePlain("cat.jpg"), "Should list /images")
	require.True(t, tf.SeePlain("holiday"), "Should list the nested folder")

	require.NoError(t, tf.SendKeys("h"))
	require.True(t, tf.SeePlain("readme.txt"), "Should be back at the root")
}

func TestStartPath(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartDemo("-path", "/documents"))
	require.True(t, tf.Ready())
	require.True(t, tf.SeePlain("invoice.pdf"))
	require.True(t, tf.SeePlain("budget.xlsx"))
}

func TestMissingFolderReportsError(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartDemo("-path", "/nowhere"))
	require.True(t, tf.SeePlain("Could not open /nowhere"), "Should report the failed load")
}
