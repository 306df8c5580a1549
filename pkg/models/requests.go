package models

// ChatRequest represents an incoming chat request
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse represents the response from the chat API
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
	Timestamp string `json:"timestamp"`
}

// LoginRequest represents the demo login form. Any credentials are accepted.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token for the demo gate.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// IncidentRequest triggers a manual incident tick.
type IncidentRequest struct {
	Label string `json:"label" binding:"required"`
}

// VoiceClientFrame is one message from the dashboard client on the voice
// socket. Audio is base64 16-bit PCM at 16kHz.
type VoiceClientFrame struct {
	Type  string `json:"type"` // "audio" or "close"
	Audio string `json:"audio,omitempty"`
}

// VoiceServerFrame is one message to the dashboard client. Audio is base64
// 16-bit PCM at 24kHz.
type VoiceServerFrame struct {
	Type  string `json:"type"` // "audio", "closed" or "error"
	Audio string `json:"audio,omitempty"`
	Error string `json:"error,omitempty"`
}
