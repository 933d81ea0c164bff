package services

import "sync"

// taskLocks is a keyed mutex. Entries live only while someone holds or
// waits for them.
type taskLocks struct {
	mu    sync.Mutex
	locks map[int64]*taskLock
}

type taskLock struct {
	mu   sync.Mutex
	refs int
}

func newTaskLocks() *taskLocks {
	return &taskLocks{locks: make(map[int64]*taskLock)}
}

// lock blocks until the task's lock is held and returns its release func
func (l *taskLocks) lock(taskID int64) func() {
	l.mu.Lock()
	entry, ok := l.locks[taskID]
	if !ok {
		entry = &taskLock{}
		l.locks[taskID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, taskID)
		}
		l.mu.Unlock()
	}
}

func (l *taskLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
