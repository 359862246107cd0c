package logic

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"filegrip/internal/domain"
)

func file(id, name string, size int64, typ domain.FileType) domain.FileEntry {
	return domain.FileEntry{ID: id, Name: name, Size: size, Type: typ}
}

func dir(id, name string) domain.FileEntry {
	return domain.FileEntry{ID: id, Name: name, IsDirectory: true, Type: domain.TypeFolder}
}

func names(entries []domain.FileEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func ids(entries []domain.FileEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func sampleListing() []domain.FileEntry {
	return []domain.FileEntry{
		file("1", "b.txt", 10, domain.TypeDocument),
		dir("2", "a"),
		file("3", "a.txt", 20, domain.TypeDocument),
	}
}

func TestSortByNameFoldersFirst(t *testing.T) {
	got := Sort(sampleListing(), SortConfig{Key: SortByName, Direction: Ascending, FoldersFirst: true})
	assert.Equal(t, []string{"a", "a.txt", "b.txt"}, names(got))
	assert.True(t, got[0].IsDirectory)
}

func TestSortBySizeDescendingMixed(t *testing.T) {
	// directories report no size and sort as 0 bytes
	got := Sort(sampleListing(), SortConfig{Key: SortBySize, Direction: Descending, FoldersFirst: false})
	assert.Equal(t, []string{"a.txt", "b.txt", "a"}, names(got))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	in := sampleListing()
	before := slices.Clone(in)
	_ = Sort(in, SortConfig{Key: SortBySize, Direction: Descending})
	assert.Equal(t, before, in)
}

func TestSortEmpty(t *testing.T) {
	got := Sort(nil, DefaultSortConfig())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSortTieBreaksOnName(t *testing.T) {
	when := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	entries := []domain.FileEntry{
		{ID: "1", Name: "c.txt", Size: 5, ModifiedAt: when},
		{ID: "2", Name: "a.txt", Size: 5, ModifiedAt: when},
		{ID: "3", Name: "b.txt", Size: 5, ModifiedAt: when},
	}

	for _, key := range []SortKey{SortBySize, SortByDate} {
		t.Run(key.String(), func(t *testing.T) {
			asc := Sort(entries, SortConfig{Key: key})
			assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, names(asc))

			desc := Sort(entries, SortConfig{Key: key, Direction: Descending})
			assert.Equal(t, []string{"c.txt", "b.txt", "a.txt"}, names(desc))
		})
	}
}

func TestSortByDate(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []domain.FileEntry{
		{ID: "1", Name: "new", ModifiedAt: base.Add(48 * time.Hour)},
		{ID: "2", Name: "old", ModifiedAt: base},
		{ID: "3", Name: "mid", ModifiedAt: base.Add(24 * time.Hour)},
	}
	got := Sort(entries, SortConfig{Key: SortByDate})
	assert.Equal(t, []string{"old", "mid", "new"}, names(got))
}

func TestSortByType(t *testing.T) {
	entries := []domain.FileEntry{
		file("1", "z.png", 1, domain.TypeImage),
		file("2", "b.pdf", 1, domain.TypeDocument),
		dir("3", "photos"),
		file("4", "a.pdf", 1, domain.TypeDocument),
		dir("5", "archive"),
	}

	t.Run("folders first", func(t *testing.T) {
		got := Sort(entries, SortConfig{Key: SortByType, FoldersFirst: true})
		assert.Equal(t, []string{"archive", "photos", "a.pdf", "b.pdf", "z.png"}, names(got))
	})

	t.Run("mixed puts directories before files", func(t *testing.T) {
		got := Sort(entries, SortConfig{Key: SortByType})
		assert.Equal(t, []string{"archive", "photos", "a.pdf", "b.pdf", "z.png"}, names(got))
	})

	t.Run("mixed descending reverses everything", func(t *testing.T) {
		got := Sort(entries, SortConfig{Key: SortByType, Direction: Descending})
		assert.Equal(t, []string{"z.png", "b.pdf", "a.pdf", "photos", "archive"}, names(got))
	})
}

func TestSortNameIsLocaleAware(t *testing.T) {
	entries := []domain.FileEntry{
		file("1", "Zebra.txt", 1, ""),
		file("2", "apple.txt", 1, ""),
		file("3", "eve.txt", 1, ""),
		file("4", "étude.txt", 1, ""),
	}
	got := NewSorter(language.English).Sort(entries, SortConfig{Key: SortByName})
	assert.Equal(t, []string{"apple.txt", "étude.txt", "eve.txt", "Zebra.txt"}, names(got))
}

func randomListing(r *rand.Rand, n int) []domain.FileEntry {
	types := []domain.FileType{domain.TypeImage, domain.TypeDocument, domain.TypeVideo, domain.TypeOther}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]domain.FileEntry, n)
	for i := range out {
		e := domain.FileEntry{
			ID:          fmt.Sprintf("id-%d", i),
			Name:        fmt.Sprintf("entry-%03d-%d", r.IntN(50), i),
			Size:        int64(r.IntN(5) * 100),
			ModifiedAt:  base.Add(time.Duration(r.IntN(4)) * time.Hour),
			IsDirectory: r.IntN(4) == 0,
		}
		if !e.IsDirectory {
			e.Type = types[r.IntN(len(types))]
		}
		out[i] = e
	}
	return out
}

func allConfigs() []SortConfig {
	var out []SortConfig
	for _, k := range SortKeys {
		for _, d := range []Direction{Ascending, Descending} {
			for _, ff := range []bool{true, false} {
				out = append(out, SortConfig{Key: k, Direction: d, FoldersFirst: ff})
			}
		}
	}
	return out
}

func TestSortProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for round := 0; round < 20; round++ {
		entries := randomListing(r, r.IntN(40))

		for _, cfg := range allConfigs() {
			name := fmt.Sprintf("%d/%s-%s-ff=%v", round, cfg.Key, cfg.Direction, cfg.FoldersFirst)
			got := Sort(entries, cfg)

			// permutation of the input
			want := ids(entries)
			have := ids(got)
			slices.Sort(want)
			slices.Sort(have)
			require.Equal(t, want, have, name)

			// every directory precedes every file
			if cfg.FoldersFirst {
				seenFile := false
				for _, e := range got {
					if !e.IsDirectory {
						seenFile = true
					} else {
						require.False(t, seenFile, "%s: directory %s after a file", name, e.Name)
					}
				}
			}

			// names are unique, so descending is exactly ascending reversed
			if cfg.Direction == Ascending && !cfg.FoldersFirst {
				desc := Sort(entries, SortConfig{Key: cfg.Key, Direction: Descending})
				rev := slices.Clone(got)
				slices.Reverse(rev)
				require.Equal(t, ids(rev), ids(desc), name)
			}
		}
	}
}

func TestParseSortKey(t *testing.T) {
	for _, k := range SortKeys {
		got, err := ParseSortKey(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseSortKey("colour")
	assert.ErrorIs(t, err, ErrUnknownSortKey)
}

func TestDirectionToggle(t *testing.T) {
	assert.Equal(t, Descending, Ascending.Toggle())
	assert.Equal(t, Ascending, Descending.Toggle())
	assert.Equal(t, SortConfig{Key: SortByName, Direction: Ascending, FoldersFirst: true}, DefaultSortConfig())
}
