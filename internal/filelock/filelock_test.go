package filelock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockUnlock_KeepsLockFile(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "target.tsx.lock")
	lock := NewFileLock(lockPath)

	require.NoError(t, lock.Lock(context.Background()))
	assert.FileExists(t, lockPath)

	require.NoError(t, lock.Unlock())
	assert.FileExists(t, lockPath)

	// The same path can be locked again after release.
	again := NewFileLock(lockPath)
	require.NoError(t, again.Lock(context.Background()))
	require.NoError(t, again.Unlock())
}

func TestLock_ContextCancelled(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "held.lock")

	holder := NewFileLock(lockPath)
	require.NoError(t, holder.Lock(context.Background()))
	defer holder.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := NewFileLock(lockPath).Lock(ctx)
	assert.Error(t, err)
}

func TestAtomicWrite_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")

	require.NoError(t, AtomicWrite(path, []byte("hello\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestAtomicWrite_PreservesMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.sh")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0755))
	require.NoError(t, os.Chmod(path, 0755))

	require.NoError(t, AtomicWrite(path, []byte("new")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestAtomicWrite_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "target.txt")

	require.NoError(t, AtomicWrite(path, []byte("content")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".linekit-"), "leftover temp file %s", e.Name())
	}
}

func TestAtomicWrite_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "target.txt")
	assert.Error(t, AtomicWrite(path, []byte("x")))
}

func TestLock_SerializesReadModifyWrite(t *testing.T) {
	dir := t.TempDir()
	counterPath := filepath.Join(dir, "counter.txt")
	lockPath := counterPath + ".lock"
	require.NoError(t, os.WriteFile(counterPath, []byte("0"), 0644))

	const goroutines = 8
	const iterations = 10

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				lock := NewFileLock(lockPath)
				if !assert.NoError(t, lock.Lock(context.Background())) {
					return
				}

				data, err := os.ReadFile(counterPath)
				assert.NoError(t, err)
				var n int
				fmt.Sscanf(string(data), "%d", &n)
				assert.NoError(t, AtomicWrite(counterPath, []byte(fmt.Sprintf("%d", n+1))))

				assert.NoError(t, lock.Unlock())
			}
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(counterPath)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d", goroutines*iterations), string(data))
}
