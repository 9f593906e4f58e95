package storage

import (
	"sync"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
)

// ContextStorage provides in-memory storage for per-chat game contexts.
type ContextStorage struct {
	mu       sync.RWMutex
	contexts map[int64]*entities.GameContext
}

// NewContextStorage creates a new ContextStorage.
func NewContextStorage() *ContextStorage {
	return &ContextStorage{
		contexts: make(map[int64]*entities.GameContext),
	}
}

// Store saves the context under its chat ID.
func (s *ContextStorage) Store(gc *entities.GameContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts[gc.ChatID] = gc
}

// Get retrieves the context of a chat.
func (s *ContextStorage) Get(chatID int64) (*entities.GameContext, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	gc, ok := s.contexts[chatID]
	return gc, ok
}

// Delete removes the context of a chat.
func (s *ContextStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contexts, chatID)
}

// Len returns the number of stored contexts.
func (s *ContextStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contexts)
}
