package filelock

import (
	"path/filepath"
	"sync"
	"testing"
)

func TestLockUnlock(t *testing.T) {
	lock := NewFileLock(filepath.Join(t.TempDir(), "deps.lock"))

	if err := lock.Lock(); err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
}

func TestTryLock(t *testing.T) {
	lock := NewFileLock(filepath.Join(t.TempDir(), "deps.lock"))

	acquired, err := lock.TryLock()
	if err != nil {
		t.Fatalf("TryLock: %v", err)
	}
	if !acquired {
		t.Fatal("TryLock on a free lock returned false")
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
}

func TestPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deps.lock")
	if got := NewFileLock(path).Path(); got != path {
		t.Errorf("Path() = %q, want %q", got, path)
	}
}

func TestLockSerializesGoroutines(t *testing.T) {
	lock := NewFileLock(filepath.Join(t.TempDir(), "deps.lock"))

	var mu sync.Mutex
	var wg sync.WaitGroup
	count := 0
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := lock.Lock(); err != nil {
				t.Errorf("Lock: %v", err)
				return
			}
			mu.Lock()
			count++
			mu.Unlock()
			if err := lock.Unlock(); err != nil {
				t.Errorf("Unlock: %v", err)
			}
		}()
	}
	wg.Wait()

	if count != 5 {
		t.Errorf("count = %d, want 5", count)
	}
}
