package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps sessions in process memory
type MemoryStore struct {
	sessions sync.Map
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) SetLoggedEnterprise(_ context.Context, correlationID uuid.UUID, enterpriseID int64) error {
	s.sessions.Store(correlationID, enterpriseID)
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, correlationID uuid.UUID) error {
	s.sessions.Delete(correlationID)
	return nil
}

func (s *MemoryStore) GetLoggedEnterprise(_ context.Context, correlationID uuid.UUID) (int64, error) {
	if correlationID == uuid.Nil {
		return 0, nil
	}
	v, ok := s.sessions.Load(correlationID)
	if !ok {
		return 0, nil
	}
	return v.(int64), nil
}
