package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskLocks_SerialisesPerTask(t *testing.T) {
	locks := newTaskLocks()

	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock(7)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Zero(t, locks.size())
}

func TestTaskLocks_IndependentKeys(t *testing.T) {
	locks := newTaskLocks()

	unlockA := locks.lock(1)
	unlockB := locks.lock(2) // would deadlock if keys shared a mutex
	assert.Equal(t, 2, locks.size())

	unlockA()
	assert.Equal(t, 1, locks.size())
	unlockB()
	assert.Zero(t, locks.size())
}
