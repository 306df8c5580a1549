package handlers

import (
	"net/http"
	"time"

	"chainmind-api/pkg/models"
	"chainmind-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// ChatHandler owns the advisor conversation endpoints.
type ChatHandler struct {
	advisor    *services.AdvisorService
	simulation *services.SimulationService
	chats      *services.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(advisor *services.AdvisorService, simulation *services.SimulationService, chats *services.ChatService) *ChatHandler {
	return &ChatHandler{
		advisor:    advisor,
		simulation: simulation,
		chats:      chats,
	}
}

// SendMessage appends the user message, runs the narrative analysis against
// the current snapshot and appends the assistant reply. The advisor never
// fails hard, so neither does this endpoint.
func (ch *ChatHandler) SendMessage(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A chat message is required: " + err.Error()})
		return
	}

	sessionID := ch.chats.EnsureSession(req.SessionID)
	ch.chats.Append(sessionID, "user", req.Message)

	// Typing indicator is held for the duration of the advisor call.
	ch.chats.SetTyping(sessionID, true)
	defer ch.chats.SetTyping(sessionID, false)

	reply := ch.advisor.ChainAnalysis(c.Request.Context(), req.Message, ch.simulation.Snapshot())
	ch.chats.Append(sessionID, "assistant", reply)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"response": models.ChatResponse{
			Response:  reply,
			SessionID: sessionID,
			Timestamp: time.Now().Format(time.RFC3339),
		},
	})
}

// GetTranscript returns the append-only transcript for a session.
func (ch *ChatHandler) GetTranscript(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A session_id query parameter is required."})
		return
	}

	messages, typing := ch.chats.Transcript(sessionID)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"messages": messages,
		"typing":   typing,
	})
}
