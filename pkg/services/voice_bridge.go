package services

import (
	"context"
	"encoding/json"
	"log"

	"chainmind-api/pkg/gemini"
	"chainmind-api/pkg/models"

	"github.com/gorilla/websocket"
)

// VoiceBridge relays audio between a dashboard client socket and one
// upstream live session. Each activation owns exactly one session; client
// close, upstream close and upstream error all converge on teardown, and
// there is no reconnection.
type VoiceBridge struct {
	liveURL string
	apiKey  string
	model   string
}

// NewVoiceBridge creates a new VoiceBridge.
func NewVoiceBridge(liveURL, apiKey, model string) *VoiceBridge {
	return &VoiceBridge{
		liveURL: liveURL,
		apiKey:  apiKey,
		model:   model,
	}
}

// HasCredential reports whether the upstream API key is configured.
func (vb *VoiceBridge) HasCredential() bool {
	return vb.apiKey != ""
}

// Attach runs one voice session over an upgraded client connection. It
// blocks until the session terminates, for any reason, and closes the
// client connection on return.
func (vb *VoiceBridge) Attach(ctx context.Context, clientConn *websocket.Conn) {
	defer clientConn.Close()

	session, err := gemini.DialLive(ctx, vb.liveURL, vb.apiKey, vb.model)
	if err != nil {
		log.Printf("Voice session setup failed: %v", err)
		vb.writeFrame(clientConn, models.VoiceServerFrame{Type: "error", Error: "voice session unavailable"})
		return
	}
	defer session.Close()

	done := make(chan struct{})
	defer close(done)

	clientFrames := make(chan models.VoiceClientFrame)
	go vb.readClient(clientConn, clientFrames, done)

	for {
		select {
		case <-ctx.Done():
			vb.writeFrame(clientConn, models.VoiceServerFrame{Type: "closed"})
			return

		case <-session.Done():
			if err := session.Err(); err != nil {
				log.Printf("Voice session ended with error: %v", err)
				vb.writeFrame(clientConn, models.VoiceServerFrame{Type: "error", Error: "voice session lost"})
			} else {
				vb.writeFrame(clientConn, models.VoiceServerFrame{Type: "closed"})
			}
			return

		case audio, ok := <-session.Frames():
			if !ok {
				continue // terminal state arrives via Done
			}
			if err := vb.writeFrame(clientConn, models.VoiceServerFrame{Type: "audio", Audio: audio}); err != nil {
				return
			}

		case frame, ok := <-clientFrames:
			if !ok {
				return // client hung up
			}
			switch frame.Type {
			case "close":
				vb.writeFrame(clientConn, models.VoiceServerFrame{Type: "closed"})
				return
			case "audio":
				if frame.Audio == "" {
					continue
				}
				if err := session.SendAudio(frame.Audio); err != nil {
					log.Printf("Failed to forward audio frame: %v", err)
					vb.writeFrame(clientConn, models.VoiceServerFrame{Type: "error", Error: "voice session lost"})
					return
				}
			}
		}
	}
}

// readClient pumps decoded client frames into out until the connection
// fails or the bridge stops consuming, then closes out.
func (vb *VoiceBridge) readClient(conn *websocket.Conn, out chan<- models.VoiceClientFrame, done <-chan struct{}) {
	defer close(out)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var frame models.VoiceClientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}

		select {
		case out <- frame:
		case <-done:
			return
		}
	}
}

func (vb *VoiceBridge) writeFrame(conn *websocket.Conn, frame models.VoiceServerFrame) error {
	return conn.WriteJSON(frame)
}
