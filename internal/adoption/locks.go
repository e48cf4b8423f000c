package adoption

import "sync"

// animalLocks serializes approve/finalize/submit per animal: the animal's
// adoption slot is the contended resource, so every mutating operation on any
// request for that animal goes through one mutex.
type animalLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAnimalLocks() *animalLocks {
	return &animalLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *animalLocks) lock(animalID string) func() {
	l.mu.Lock()
	m, ok := l.locks[animalID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[animalID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
