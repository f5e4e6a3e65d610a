package accesscontrol

import "sync"

// MemorySessionStore keeps company selections in process memory. It is
// good enough for a single instance; a multi-instance deployment would
// swap in a shared store behind the same interface.
type MemorySessionStore struct {
	mu         sync.RWMutex
	selections map[int64]int64
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		selections: make(map[int64]int64),
	}
}

func (s *MemorySessionStore) Get(userID int64) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	code, ok := s.selections[userID]
	return code, ok
}

func (s *MemorySessionStore) Set(userID int64, companyCode int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections[userID] = companyCode
}

func (s *MemorySessionStore) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selections, userID)
}
