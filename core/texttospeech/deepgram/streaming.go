package deepgram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/venla-ai/intake-core/core/audio"
	"github.com/venla-ai/intake-core/core/texttospeech"
)

type speechStream struct {
	ws *websocket.Conn
	mu sync.Mutex // serializes websocket writes

	options texttospeech.SynthesisOptions

	// Lifecycle flags are atomic: the read loop inspects them while Cancel,
	// EndOfText, and Close flip them from other goroutines.
	textComplete atomic.Bool
	cancelled    atomic.Bool
	closed       atomic.Bool
}

func (c *TextToSpeechClient) NewSpeechStream(ctx context.Context, opts ...texttospeech.SynthesisOption) (texttospeech.SpeechStream, error) {
	stream := &speechStream{
		options: texttospeech.SynthesisOptions{
			SpeechAudioCallback: func([]byte) {},
			SpeechEndedCallback: func() {},
			ErrorCallback:       func(error) {},
			EncodingInfo:        c.encodingInfo,
		},
	}

	for _, opt := range opts {
		opt(&stream.options)
	}

	var err error
	if stream.ws, err = c.connectWebsocket(ctx, stream.options.EncodingInfo); err != nil {
		return nil, fmt.Errorf("failed to open websocket: %w", err)
	}

	go stream.processIncomingMessages()

	return stream, nil
}

func (c *TextToSpeechClient) connectWebsocket(ctx context.Context, encodingInfo audio.EncodingInfo) (*websocket.Conn, error) {
	urlValues := url.Values{}
	urlValues.Set("encoding", encodingInfo.Format.Name())
	urlValues.Set("sample_rate", strconv.Itoa(encodingInfo.SampleRate))
	urlValues.Set("model", string(c.voice))
	urlValues.Set("container", "none")

	conn, _, err := websocket.DefaultDialer.DialContext(ctx,
		(&url.URL{
			Scheme: "wss",
			Host:   "api.deepgram.com", Path: "/v1/speak",
			RawQuery: urlValues.Encode(),
		}).String(),
		http.Header{"Authorization": {"token " + c.apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, nil
}

func (r *speechStream) processIncomingMessages() {
	for {
		msgType, msg, err := r.ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				log.Printf("Websocket read error: %v", err)
				if !r.cancelled.Load() && !r.closed.Load() {
					r.options.ErrorCallback(err)
				}
			}
			_ = r.Close()
			return
		}

		switch msgType {
		case websocket.BinaryMessage:
			if !r.cancelled.Load() && len(msg) > 0 {
				r.options.SpeechAudioCallback(msg)
			}
		case websocket.TextMessage:
			var parsedMsg struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(msg, &parsedMsg); err != nil {
				continue
			}

			switch parsedMsg.Type {
			case "Flushed":
				// All text sent before the flush has been synthesized and
				// delivered; the stream is done.
				if r.textComplete.Load() && !r.cancelled.Load() {
					r.options.SpeechEndedCallback()
					_ = r.Close()
					return
				}
			case "Warning":
				log.Printf("Deepgram speak warning: %s", msg)
			}
		}
	}
}

func (r *speechStream) SendText(text string) error {
	if r.closed.Load() {
		return fmt.Errorf("speech stream closed")
	} else if r.cancelled.Load() {
		return fmt.Errorf("speech stream cancelled")
	} else if r.textComplete.Load() {
		return fmt.Errorf("speech stream text already completed")
	}

	if err := r.sendWebsocketMessage(sendTextMsg(text)); err != nil {
		return fmt.Errorf("failed to send websocket send text message: %w", err)
	}
	return nil
}

func (r *speechStream) EndOfText() error {
	if r.closed.Load() {
		return fmt.Errorf("speech stream closed")
	} else if r.cancelled.Load() {
		return fmt.Errorf("speech stream cancelled")
	} else if !r.textComplete.CompareAndSwap(false, true) {
		return nil
	}

	if err := r.sendWebsocketMessage(flushMsg); err != nil {
		return fmt.Errorf("failed to send websocket flush message: %w", err)
	}
	return nil
}

func (r *speechStream) Cancel() error {
	if r.closed.Load() {
		return fmt.Errorf("speech stream closed")
	} else if !r.cancelled.CompareAndSwap(false, true) {
		return nil
	}

	if err := r.sendWebsocketMessage(clearMsg); err != nil {
		_ = r.Close()
		return fmt.Errorf("failed to send websocket clear message: %w", err)
	}

	return r.Close()
}

func (r *speechStream) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ws == nil {
		return nil
	}

	err := r.ws.WriteJSON(closeMsg)
	if closeErr := r.ws.Close(); closeErr != nil && err != nil {
		return fmt.Errorf("failed to close websocket: %w", errors.Join(err, closeErr))
	}
	return nil
}

type websocketMessage struct {
	Type string `json:"type"`
}

type speakMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

var (
	sendTextMsg = func(text string) speakMessage {
		return speakMessage{Type: "Speak", Text: text}
	}
	flushMsg = websocketMessage{Type: "Flush"}
	clearMsg = websocketMessage{Type: "Clear"}
	closeMsg = websocketMessage{Type: "Close"}
)

func (r *speechStream) sendWebsocketMessage(msg any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed.Load() || r.ws == nil {
		return fmt.Errorf("websocket connection closed")
	}

	if err := r.ws.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write to websocket: %w", err)
	}
	return nil
}
