//go:build e2e && unix

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpOpensInPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartDemo())
	require.True(t, tf.Ready())

	require.NoError(t, tf.SendKeys(KeyHelp))
	require.True(t, tf.SeePlain("Navigation"), "Should show help sections")
	require.True(t, tf.SeePlain("type:image"), "Should document search terms")

	// Leave the pager and get the listing back
	require.NoError(t, tf.Quit())
	require.NoError(t, tf.WaitForE(func(s string) bool {
		return contains(lastFrame(s), "readme.txt")
	}, defaultWait, "listing should be redrawn after the pager"))
}
