package handlers

import (
	"log"
	"net/http"

	"chainmind-api/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// VoiceHandler upgrades voice-mode clients to a WebSocket and hands the
// connection to the bridge.
type VoiceHandler struct {
	bridge   *services.VoiceBridge
	upgrader websocket.Upgrader
}

// NewVoiceHandler creates a new VoiceHandler.
func NewVoiceHandler(bridge *services.VoiceBridge) *VoiceHandler {
	return &VoiceHandler{
		bridge: bridge,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  8192,
			WriteBufferSize: 8192,
			// The dashboard is served from a separate origin in development.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Session opens one voice session. The credential check happens before the
// upgrade so a misconfigured server answers with plain JSON.
func (vh *VoiceHandler) Session(c *gin.Context) {
	if !vh.bridge.HasCredential() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "Voice mode is unavailable: no API key is configured.",
		})
		return
	}

	conn, err := vh.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Voice socket upgrade failed: %v", err)
		return
	}

	vh.bridge.Attach(c.Request.Context(), conn)
}
