package storage

import (
	"sync"
	"time"
)

// QuestionMessage points at the chat message holding a question keyboard.
type QuestionMessage struct {
	ChatID    int64
	MessageID int
	Number    int // question number inside the quiz
	SentAt    time.Time
}

// MessageStorage remembers the last question message of each chat so its
// keyboard can be closed when the question is replaced.
type MessageStorage struct {
	mu       sync.RWMutex
	messages map[int64]QuestionMessage
}

func NewMessageStorage() *MessageStorage {
	return &MessageStorage{
		messages: make(map[int64]QuestionMessage),
	}
}

func (s *MessageStorage) Get(chatID int64) (QuestionMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.messages[chatID]
	return msg, ok
}

func (s *MessageStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.messages, chatID)
}

// UpsertAndGetPrev records a new question message and returns the one it replaces.
func (s *MessageStorage) UpsertAndGetPrev(chatID int64, messageID, number int) (prev QuestionMessage, hadPrev bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev = s.messages[chatID]

	s.messages[chatID] = QuestionMessage{
		ChatID:    chatID,
		MessageID: messageID,
		Number:    number,
		SentAt:    time.Now(),
	}

	return prev, hadPrev
}
