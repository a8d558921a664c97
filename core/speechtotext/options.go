package speechtotext

import (
	"context"

	"github.com/venla-ai/intake-core/core/audio"
)

// Client is a live speech-recognition stream for one call.
type Client interface {
	// Transcribe opens the recognition stream and starts dispatching
	// callbacks. It returns once the stream is established.
	Transcribe(ctx context.Context, opts ...TranscriptionOption) error
	// SendAudio forwards one chunk of caller audio to the recognizer.
	SendAudio(audio []byte) error
	// Close flushes and tears down the recognition stream.
	Close(ctx context.Context) error
}

type TranscriptionOptions struct {
	// InterimTranscriptionCallback is called with the full cumulative
	// hypothesis for the utterance in progress. Each call supersedes the
	// previous one.
	InterimTranscriptionCallback func(transcript string)
	// TranscriptionCallback is called once per utterance with its final
	// transcript.
	TranscriptionCallback func(transcript string)

	SpeechStartedCallback func()
	SpeechEndedCallback   func()

	EncodingInfo audio.EncodingInfo
}

type TranscriptionOption func(*TranscriptionOptions)

func WithInterimTranscriptionCallback(callback func(transcript string)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.InterimTranscriptionCallback = callback
	}
}

func WithTranscriptionCallback(callback func(transcript string)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.TranscriptionCallback = callback
	}
}

func WithSpeechStartedCallback(callback func()) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.SpeechStartedCallback = callback
	}
}

func WithSpeechEndedCallback(callback func()) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.SpeechEndedCallback = callback
	}
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.EncodingInfo = encodingInfo
	}
}
