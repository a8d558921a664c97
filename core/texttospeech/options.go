package texttospeech

import (
	"context"

	"github.com/venla-ai/intake-core/core/audio"
)

// Synthesizer opens speech streams, one per agent utterance.
type Synthesizer interface {
	NewSpeechStream(ctx context.Context, opts ...SynthesisOption) (SpeechStream, error)
}

// SpeechStream is one cancellable synthesis request.
type SpeechStream interface {
	// SendText queues text for synthesis. Speech is generated in the order
	// text is sent.
	//
	// SendText errors if EndOfText, Cancel or Close has been called.
	SendText(text string) error
	// EndOfText signals that no more text will be sent. The stream closes
	// itself once all queued speech has been generated and delivered.
	//
	// EndOfText errors if Cancel or Close has been called.
	EndOfText() error
	// Cancel immediately stops further speech generation and closes the
	// stream. Audio already generated may still be in flight downstream.
	//
	// Repeated calls to Cancel are ignored.
	Cancel() error
	// Close immediately closes the stream. No more audio is produced after
	// this call.
	//
	// Repeated calls to Close are ignored.
	Close() error
}

type SynthesisOptions struct {
	// SpeechAudioCallback is called with each chunk of synthesized audio.
	SpeechAudioCallback func(audio []byte)
	// SpeechEndedCallback is called once all speech for the stream has been
	// generated and delivered.
	SpeechEndedCallback func()
	// ErrorCallback is called when the stream fails mid-synthesis.
	ErrorCallback func(error)

	EncodingInfo audio.EncodingInfo
}

type SynthesisOption func(*SynthesisOptions)

func WithSpeechAudioCallback(callback func(audio []byte)) SynthesisOption {
	return func(o *SynthesisOptions) { o.SpeechAudioCallback = callback }
}

func WithSpeechEndedCallback(callback func()) SynthesisOption {
	return func(o *SynthesisOptions) { o.SpeechEndedCallback = callback }
}

func WithErrorCallback(callback func(error)) SynthesisOption {
	return func(o *SynthesisOptions) { o.ErrorCallback = callback }
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) SynthesisOption {
	return func(o *SynthesisOptions) {
		if encodingInfo.IsZero() {
			return
		}
		o.EncodingInfo = encodingInfo
	}
}
