package deps

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRecordsInputs(t *testing.T) {
	s, err := NewStore(":memory:", "proj")
	require.NoError(t, err)
	defer s.Close()

	s.AddInput("proj/src")
	s.AddInput("proj")
	s.AddInput("proj/src") // cache should prevent this, but it must be harmless

	inputs, err := s.Inputs(s.Session())
	require.NoError(t, err)
	assert.Equal(t, []string{"proj", "proj/src"}, inputs)
}

func TestStoreSessionsAreDistinct(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "girder", "deps.db")

	first, err := NewStore(dbPath, "proj")
	require.NoError(t, err)
	first.AddInput("proj/a")
	firstSession := first.Session()
	require.NoError(t, first.Close())

	second, err := NewStore(dbPath, "proj")
	require.NoError(t, err)
	defer second.Close()
	second.AddInput("proj/b")

	assert.NotEqual(t, firstSession, second.Session())

	inputs, err := second.Inputs(firstSession)
	require.NoError(t, err)
	assert.Equal(t, []string{"proj/a"}, inputs)

	inputs, err = second.Inputs(second.Session())
	require.NoError(t, err)
	assert.Equal(t, []string{"proj/b"}, inputs)
}

func TestStoreConcurrentAddInput(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "deps.db"), "proj")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		dir := string(rune('a' + i))
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddInput(dir)
		}()
	}
	wg.Wait()

	inputs, err := s.Inputs(s.Session())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, inputs)

	require.NoError(t, s.Close())
}

func TestStoreCreatesParentDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "state", "deps.db")

	s, err := NewStore(dbPath, "proj")
	require.NoError(t, err)
	require.NoError(t, s.Close())
}
