package slot

import (
	"context"
	"sync"
)

// MemorySlot keeps the blob in memory. Contents do not survive a restart;
// meant for tests and throwaway runs.
type MemorySlot struct {
	mutex sync.RWMutex
	data  []byte
	set   bool
}

var _ Slot = (*MemorySlot)(nil)

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Read(ctx context.Context) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if !s.set {
		return nil, nil
	}
	data := make([]byte, len(s.data))
	copy(data, s.data)
	return data, nil
}

func (s *MemorySlot) Write(ctx context.Context, data []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data = make([]byte, len(data))
	copy(s.data, data)
	s.set = true
	return nil
}
