package services

import (
	"sync"
	"time"

	"chainmind-api/pkg/models"

	"github.com/google/uuid"
)

// ChatService keeps the per-session chat transcript in memory. Transcripts
// are append-only for the lifetime of the process; a typing flag is held
// for the duration of each pending advisor call.
type ChatService struct {
	mu       sync.RWMutex
	sessions map[string]*chatSession
}

type chatSession struct {
	messages []models.ChatMessage
	typing   bool
}

// NewChatService creates an empty transcript store.
func NewChatService() *ChatService {
	return &ChatService{
		sessions: make(map[string]*chatSession),
	}
}

// EnsureSession returns the given session id, or a fresh one when empty.
func (cs *ChatService) EnsureSession(sessionID string) string {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.sessions[sessionID]; !ok {
		cs.sessions[sessionID] = &chatSession{}
	}
	return sessionID
}

// Append adds one message to a session transcript.
func (cs *ChatService) Append(sessionID, role, content string) models.ChatMessage {
	msg := models.ChatMessage{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	session, ok := cs.sessions[sessionID]
	if !ok {
		session = &chatSession{}
		cs.sessions[sessionID] = session
	}
	session.messages = append(session.messages, msg)
	return msg
}

// SetTyping flips the typing indicator for a session.
func (cs *ChatService) SetTyping(sessionID string, typing bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if session, ok := cs.sessions[sessionID]; ok {
		session.typing = typing
	}
}

// Transcript returns a copy of a session's messages and its typing flag.
func (cs *ChatService) Transcript(sessionID string) ([]models.ChatMessage, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	session, ok := cs.sessions[sessionID]
	if !ok {
		return nil, false
	}
	return append([]models.ChatMessage(nil), session.messages...), session.typing
}
