package iostore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "downloads.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t)

	arch := Archive{
		Key:         "0001234-240216155721649",
		DOI:         "10.15468/dl.abc123",
		Path:        "/tmp/0001234-240216155721649.zip",
		Size:        1024,
		RecordCount: 42,
	}
	require.NoError(t, s.Save(arch))

	got, found, err := s.Get(arch.Key)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, arch.DOI, got.DOI)
	assert.Equal(t, arch.Path, got.Path)
	assert.Equal(t, int64(42), got.RecordCount)
	assert.False(t, got.FetchedAt.IsZero())

	_, found, err = s.Get("no-such-key")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSaveReplaces(t *testing.T) {
	s := newTestStore(t)

	arch := Archive{Key: "0001234-x", DOI: "10.15468/dl.old"}
	require.NoError(t, s.Save(arch))

	arch.DOI = "10.15468/dl.new"
	arch.Size = 2048
	require.NoError(t, s.Save(arch))

	got, found, err := s.Get("0001234-x")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "10.15468/dl.new", got.DOI)
	assert.Equal(t, int64(2048), got.Size)

	// Replacement never duplicates the entry.
	all, err := s.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestListOrder(t *testing.T) {
	s := newTestStore(t)

	older := Archive{
		Key:       "0001111-x",
		FetchedAt: time.Now().Add(-time.Hour),
	}
	newer := Archive{Key: "0002222-x", FetchedAt: time.Now()}
	require.NoError(t, s.Save(older))
	require.NoError(t, s.Save(newer))

	all, err := s.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "0002222-x", all[0].Key)
	assert.Equal(t, "0001111-x", all[1].Key)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(Archive{Key: "0001234-x"}))
	require.NoError(t, s.Delete("0001234-x"))

	_, found, err := s.Get("0001234-x")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting an absent key is not an error.
	require.NoError(t, s.Delete("0001234-x"))
}
