//go:build e2e && unix

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchFiltersListing(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartDemo())
	require.True(t, tf.Ready())

	require.NoError(t, tf.Search("read"))
	require.NoError(t, tf.Enter())
	require.True(t, tf.SeePlain("[Search: read]"))

	require.NoError(t, tf.WaitForE(func(s string) bool {
		frame := lastFrame(s)
		return contains(frame, "readme.txt") && !contains(frame, "logo.svg")
	}, defaultWait, "only readme.txt should match"))

	require.NoError(t, tf.Esc())
	require.NoError(t, tf.WaitForE(func(s string) bool {
		return contains(lastFrame(s), "logo.svg")
	}, defaultWait, "esc should clear the search"))
}

func TestSearchWithoutMatches(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartDemo())
	require.True(t, tf.Ready())

	require.NoError(t, tf.Search("zzz"))
	require.NoError(t, tf.Enter())
	require.True(t, tf.SeePlain(`No files match "zzz"`))
}

func TestTypeSearchTerm(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartDemo())
	require.True(t, tf.Ready())

	require.NoError(t, tf.Search("type:folder"))
	require.NoError(t, tf.Enter())
	require.NoError(t, tf.WaitForE(func(s string) bool {
		frame := lastFrame(s)
		return contains(frame, "videos") && !contains(frame, "readme.txt")
	}, defaultWait, "type:folder should hide files"))
}
