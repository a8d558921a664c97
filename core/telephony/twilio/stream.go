// Package twilio bridges a Twilio media-stream websocket to the call
// orchestration core: inbound frames are decoded into raw mu-law audio,
// outbound audio is wrapped back into media frames.
package twilio

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Frame events Twilio sends and accepts on a media stream.
const (
	eventConnected = "connected"
	eventStart     = "start"
	eventMedia     = "media"
	eventMark      = "mark"
	eventStop      = "stop"
	eventClear     = "clear"
)

type inboundFrame struct {
	Event string      `json:"event"`
	Start *startFrame `json:"start,omitempty"`
	Media *mediaFrame `json:"media,omitempty"`
	Mark  *markFrame  `json:"mark,omitempty"`
}

type startFrame struct {
	StreamSID        string            `json:"streamSid"`
	CallSID          string            `json:"callSid"`
	CustomParameters map[string]string `json:"customParameters,omitempty"`
}

type mediaFrame struct {
	Payload string `json:"payload"`
}

type markFrame struct {
	Name string `json:"name"`
}

type outboundMediaFrame struct {
	Event     string     `json:"event"`
	StreamSID string     `json:"streamSid"`
	Media     mediaFrame `json:"media"`
}

type outboundMarkFrame struct {
	Event     string    `json:"event"`
	StreamSID string    `json:"streamSid"`
	Mark      markFrame `json:"mark"`
}

type outboundClearFrame struct {
	Event     string `json:"event"`
	StreamSID string `json:"streamSid"`
}

// socket is the subset of *websocket.Conn the media stream needs. Narrowed
// for stubbing in tests.
type socket interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteJSON(v any) error
	Close() error
}

// StreamCallbacks receive decoded inbound frames. Unset callbacks are
// skipped.
type StreamCallbacks struct {
	// AudioCallback is called with each decoded chunk of caller audio
	// (8kHz mu-law).
	AudioCallback func(audio []byte)
	// MarkCallback is called when Twilio confirms playback reached a
	// previously sent mark.
	MarkCallback func(name string)
	// StopCallback is called once when the stream ends, either by a stop
	// frame or a closed socket.
	StopCallback func()
}

// MediaStream is one live Twilio media-stream connection. It implements the
// orchestration core's outbound audio path.
type MediaStream struct {
	conn socket
	mu   sync.Mutex

	streamSID   string
	callSID     string
	callerPhone string
}

// NewMediaStream consumes frames until Twilio's start frame arrives and
// returns the bound stream. Twilio sends connected and start before any
// media.
func NewMediaStream(ctx context.Context, conn socket) (*MediaStream, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		_, msg, err := conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("failed to read media stream frame: %w", err)
		}

		var frame inboundFrame
		if err := json.Unmarshal(msg, &frame); err != nil {
			return nil, fmt.Errorf("failed to decode media stream frame: %w", err)
		}

		switch frame.Event {
		case eventConnected:
			continue
		case eventStart:
			if frame.Start == nil {
				return nil, fmt.Errorf("start frame missing payload")
			}
			return &MediaStream{
				conn:        conn,
				streamSID:   frame.Start.StreamSID,
				callSID:     frame.Start.CallSID,
				callerPhone: frame.Start.CustomParameters["from"],
			}, nil
		case eventStop:
			return nil, fmt.Errorf("media stream stopped before start frame")
		}
	}
}

// CallSID is Twilio's call identifier, used as the session ID.
func (s *MediaStream) CallSID() string { return s.callSID }

func (s *MediaStream) StreamSID() string { return s.streamSID }

// CallerPhone is the caller's number when passed as a custom "from"
// parameter in the stream TwiML; empty otherwise.
func (s *MediaStream) CallerPhone() string { return s.callerPhone }

// Run reads frames until the stream stops, dispatching decoded audio and
// mark confirmations. It blocks for the lifetime of the stream.
func (s *MediaStream) Run(ctx context.Context, callbacks StreamCallbacks) error {
	defer func() {
		if callbacks.StopCallback != nil {
			callbacks.StopCallback()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			// Twilio closes the socket when the caller hangs up.
			return nil
		}

		var frame inboundFrame
		if err := json.Unmarshal(msg, &frame); err != nil {
			continue
		}

		switch frame.Event {
		case eventMedia:
			if frame.Media == nil || callbacks.AudioCallback == nil {
				continue
			}
			audio, err := base64.StdEncoding.DecodeString(frame.Media.Payload)
			if err != nil {
				continue
			}
			callbacks.AudioCallback(audio)
		case eventMark:
			if frame.Mark != nil && callbacks.MarkCallback != nil {
				callbacks.MarkCallback(frame.Mark.Name)
			}
		case eventStop:
			return nil
		}
	}
}

// SendAudio wraps one chunk of mu-law audio into a media frame.
func (s *MediaStream) SendAudio(audio []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conn.WriteJSON(outboundMediaFrame{
		Event:     eventMedia,
		StreamSID: s.streamSID,
		Media:     mediaFrame{Payload: base64.StdEncoding.EncodeToString(audio)},
	}); err != nil {
		return fmt.Errorf("failed to send media frame: %w", err)
	}
	return nil
}

// SendMark asks Twilio to confirm once playback reaches this point. Returns
// the generated mark name.
func (s *MediaStream) SendMark() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := uuid.NewString()
	if err := s.conn.WriteJSON(outboundMarkFrame{
		Event:     eventMark,
		StreamSID: s.streamSID,
		Mark:      markFrame{Name: name},
	}); err != nil {
		return "", fmt.Errorf("failed to send mark frame: %w", err)
	}
	return name, nil
}

// Clear drops audio Twilio has buffered but not yet played. Used on
// barge-in.
func (s *MediaStream) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conn.WriteJSON(outboundClearFrame{
		Event:     eventClear,
		StreamSID: s.streamSID,
	}); err != nil {
		return fmt.Errorf("failed to send clear frame: %w", err)
	}
	return nil
}

func (s *MediaStream) Close() error {
	return s.conn.Close()
}
