package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

type failingBackend struct{}

func (failingBackend) get(string) (string, bool, error) { return "", false, errors.New("quota exceeded") }
func (failingBackend) set(string, string) error         { return errors.New("quota exceeded") }
func (failingBackend) remove(string) error              { return errors.New("quota exceeded") }
func (failingBackend) close() error                     { return nil }

func TestGetSet(t *testing.T) {
	s := testStore(t)
	assert.Equal(t, "", s.Get("missing"))

	s.Set("k", "v1")
	assert.Equal(t, "v1", s.Get("k"))
	s.Set("k", "v2")
	assert.Equal(t, "v2", s.Get("k"))
}

func TestPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "prefs.db")
	s, err := Open(path)
	require.NoError(t, err)
	s.Accept()
	s.AddVisited("a1")
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	assert.True(t, s.Consented())
	assert.Equal(t, []string{"a1"}, s.VisitedIDs())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestNoWritesWithoutConsent(t *testing.T) {
	s := testStore(t)
	s.AddVisited("a1")
	s.SetTheme("dark")

	assert.Equal(t, "", s.Get(KeyVisited), "visited must not be written")
	assert.Equal(t, "", s.Get(KeyTheme), "theme must not be written")
	assert.False(t, s.Decided())
}

func TestNoReadsWithoutConsent(t *testing.T) {
	s := testStore(t)
	s.Set(KeyVisited, `["x","y"]`)
	s.Set(KeyTheme, "dark")

	assert.Empty(t, s.VisitedIDs())
	assert.False(t, s.Visited("x"))
	assert.Equal(t, "", s.Theme())

	s.Accept()
	assert.Equal(t, []string{"x", "y"}, s.VisitedIDs())
	assert.Equal(t, "dark", s.Theme())
}

func TestAddVisitedDedupes(t *testing.T) {
	s := testStore(t)
	s.Accept()
	s.AddVisited("a")
	s.AddVisited("b")
	s.AddVisited("a")
	assert.Equal(t, []string{"a", "b"}, s.VisitedIDs())
	assert.True(t, s.Visited("b"))
	assert.False(t, s.Visited("c"))
}

func TestAddVisitedCapEvictsOldest(t *testing.T) {
	s := testStore(t)
	s.Accept()
	for i := 0; i < MaxVisited+5; i++ {
		s.AddVisited(fmt.Sprintf("id-%d", i))
	}

	ids := s.VisitedIDs()
	require.Len(t, ids, MaxVisited)
	assert.Equal(t, "id-5", ids[0])
	assert.Equal(t, fmt.Sprintf("id-%d", MaxVisited+4), ids[len(ids)-1])
}

func TestCorruptVisitedIsEmpty(t *testing.T) {
	s := testStore(t)
	s.Accept()
	s.Set(KeyVisited, "{not json")
	assert.Empty(t, s.VisitedIDs())

	s.AddVisited("fresh")
	assert.Equal(t, []string{"fresh"}, s.VisitedIDs())
}

func TestRevokeDeletesProtectedData(t *testing.T) {
	s := testStore(t)
	s.Accept()
	s.AddVisited("a")
	s.SetTheme("light")

	s.Revoke()
	assert.False(t, s.Consented())
	assert.True(t, s.Decided())
	assert.Equal(t, "", s.Get(KeyVisited))
	assert.Equal(t, "", s.Get(KeyTheme))
}

func TestUnavailableStore(t *testing.T) {
	s := Unavailable()
	s.Accept()
	s.AddVisited("a")
	s.SetTheme("dark")

	assert.False(t, s.Consented())
	assert.Empty(t, s.VisitedIDs())
	assert.Equal(t, "", s.Theme())
	assert.NoError(t, s.Close())
}

func TestFailingBackendIsSwallowed(t *testing.T) {
	s := &Store{kv: failingBackend{}}
	assert.NotPanics(t, func() {
		s.Set("k", "v")
		s.Accept()
		s.AddVisited("a")
		s.Revoke()
	})
	assert.Equal(t, "", s.Get("k"))
	assert.False(t, s.Consented())
}
