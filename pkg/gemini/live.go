package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// Audio formats on the live session wire.
const (
	InputMIMEType  = "audio/pcm;rate=16000"
	OutputMIMEType = "audio/pcm;rate=24000"
)

// LiveSession is one bidirectional audio session with the Gemini live API.
// Inbound audio frames and the terminal event are delivered on channels;
// outbound frames are written through SendAudio. Close is idempotent and
// all three terminal triggers (local close, remote close, remote error)
// converge on the same closed state.
type LiveSession struct {
	conn *websocket.Conn

	frames chan string // inbound base64 PCM frames
	done   chan struct{}

	closeOnce sync.Once
	mu        sync.Mutex // guards err and concurrent writes to conn
	err       error
}

// setupMessage starts the session and selects audio responses.
type setupMessage struct {
	Setup struct {
		Model            string `json:"model"`
		GenerationConfig struct {
			ResponseModalities []string `json:"responseModalities"`
		} `json:"generationConfig"`
	} `json:"setup"`
}

// realtimeInputMessage carries outbound microphone audio.
type realtimeInputMessage struct {
	RealtimeInput struct {
		MediaChunks []mediaChunk `json:"mediaChunks"`
	} `json:"realtimeInput"`
}

type mediaChunk struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

// serverMessage is the subset of inbound messages the bridge cares about.
type serverMessage struct {
	SetupComplete *struct{} `json:"setupComplete,omitempty"`
	ServerContent *struct {
		ModelTurn *struct {
			Parts []struct {
				InlineData *struct {
					MIMEType string `json:"mimeType"`
					Data     string `json:"data"`
				} `json:"inlineData,omitempty"`
			} `json:"parts"`
		} `json:"modelTurn,omitempty"`
		TurnComplete bool `json:"turnComplete,omitempty"`
	} `json:"serverContent,omitempty"`
}

// DialLive opens a live session and sends the setup message. The returned
// session owns the connection; the caller must Close it.
func DialLive(ctx context.Context, liveURL, apiKey, model string) (*LiveSession, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, fmt.Sprintf("%s?key=%s", liveURL, apiKey), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial live session: %w", err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	var setup setupMessage
	setup.Setup.Model = fmt.Sprintf("models/%s", model)
	setup.Setup.GenerationConfig.ResponseModalities = []string{"AUDIO"}
	if err := conn.WriteJSON(setup); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to send live setup message: %w", err)
	}

	s := &LiveSession{
		conn:   conn,
		frames: make(chan string, 16),
		done:   make(chan struct{}),
	}
	go s.readLoop()
	return s, nil
}

// SendAudio transmits one base64 16-bit PCM frame at 16kHz.
func (s *LiveSession) SendAudio(b64 string) error {
	select {
	case <-s.done:
		return fmt.Errorf("live session is closed")
	default:
	}

	var msg realtimeInputMessage
	msg.RealtimeInput.MediaChunks = []mediaChunk{{MIMEType: InputMIMEType, Data: b64}}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(msg)
}

// Frames returns the inbound audio channel. It is closed when the session
// terminates, for any reason.
func (s *LiveSession) Frames() <-chan string {
	return s.frames
}

// Done is closed when the session has terminated.
func (s *LiveSession) Done() <-chan struct{} {
	return s.done
}

// Err returns the terminal error, or nil for a clean close. Only meaningful
// after Done is closed.
func (s *LiveSession) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close tears the session down. Safe to call from any goroutine, any
// number of times.
func (s *LiveSession) Close() {
	s.closeWith(nil)
}

func (s *LiveSession) closeWith(err error) {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		s.conn.Close()
		close(s.done)
	})
}

// readLoop decodes inbound messages and forwards audio frames until the
// connection terminates. It is the only sender on frames and closes it on
// exit.
func (s *LiveSession) readLoop() {
	defer close(s.frames)
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.closeWith(nil)
			} else {
				s.closeWith(err)
			}
			return
		}

		var msg serverMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue // skip unrecognized frames
		}

		if msg.ServerContent == nil || msg.ServerContent.ModelTurn == nil {
			continue
		}
		for _, part := range msg.ServerContent.ModelTurn.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			select {
			case s.frames <- part.InlineData.Data:
			case <-s.done:
				return
			}
		}
	}
}
