package docstore

import "sync"

// pathLocks hands out one mutex per document path so read-modify-write
// sequences within this process cannot interleave on the same document.
// Entries are reference counted and released when the last holder unlocks.
type pathLocks struct {
	mu      sync.Mutex
	entries map[string]*pathLockEntry
}

type pathLockEntry struct {
	refs int
	mu   sync.Mutex
}

func newPathLocks() *pathLocks {
	return &pathLocks{entries: make(map[string]*pathLockEntry)}
}

// lock acquires the mutex for path and returns the unlock func.
func (p *pathLocks) lock(path string) func() {
	p.mu.Lock()
	e, ok := p.entries[path]
	if !ok {
		e = &pathLockEntry{}
		p.entries[path] = e
	}
	e.refs++
	p.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()
		p.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(p.entries, path)
		}
		p.mu.Unlock()
	}
}
