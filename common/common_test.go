package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetImplementationUID(t *testing.T) {
	t.Parallel()
	assert.Equal(t, fmt.Sprintf("%s%s.1", RootUID, Version), GetImplementationUID(true))
	assert.Equal(t, fmt.Sprintf("%s%s.0", RootUID, Version), GetImplementationUID(false))
	assert.LessOrEqual(t, len(ImplementationVersionName), 16)
}

func TestNewRandInstanceUID(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		uid, err := NewRandInstanceUID()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(uid, RootUID))
		assert.LessOrEqual(t, len(uid), maxUIDLength)
		assert.NotEqual(t, byte('0'), uid[len(RootUID)])
		assert.False(t, seen[uid])
		seen[uid] = true
	}
}

func TestConcurrentlyWalkDir(t *testing.T) {
	t.Parallel()
	tmpdir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpdir, "nested"), 0o755))
	for i := 0; i < 10; i++ {
		dir := tmpdir
		if i%2 == 0 {
			dir = filepath.Join(tmpdir, "nested")
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, strconv.Itoa(i)), nil, 0o644))
	}

	var mu sync.Mutex
	var files []string
	var inFlight, peak int32
	err := ConcurrentlyWalkDir(tmpdir, func(path string) {
		n := atomic.AddInt32(&inFlight, 1)
		defer atomic.AddInt32(&inFlight, -1)
		mu.Lock()
		defer mu.Unlock()
		if n > peak {
			peak = n
		}
		files = append(files, path)
	})
	require.NoError(t, err)
	assert.Len(t, files, 10)
	assert.LessOrEqual(t, int(peak), OpenFileLimit)
}

func TestConcurrentlyWalkDirMissing(t *testing.T) {
	t.Parallel()
	err := ConcurrentlyWalkDir(filepath.Join(t.TempDir(), "absent"), func(string) {
		t.Error("unexpected call")
	})
	assert.Error(t, err)
}
