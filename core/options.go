package orchestration

import (
	"time"

	"github.com/venla-ai/intake-core/core/audio"
	"github.com/venla-ai/intake-core/core/events"
	"github.com/venla-ai/intake-core/core/reasoning"
	"github.com/venla-ai/intake-core/core/speechtotext"
	"github.com/venla-ai/intake-core/core/texttospeech"
)

const (
	defaultSilenceWindow = 5 * time.Second
	defaultCallTimeout   = 5 * time.Minute
	defaultMaxAttempts   = 3
	defaultQueueCapacity = 10
)

type orchestratorOptions struct {
	sessionID   string
	callerPhone string

	silenceWindow time.Duration
	callTimeout   time.Duration
	maxAttempts   int
	queueCapacity int
	encodingInfo  audio.EncodingInfo

	speechToText speechtotext.Client
	synthesizer  texttospeech.Synthesizer
	egress       AudioEgress
	reasoner     reasoning.Client
	recorder     TranscriptRecorder

	eventHandler func(events.Event)
}

func defaultOrchestratorOptions() orchestratorOptions {
	return orchestratorOptions{
		silenceWindow: defaultSilenceWindow,
		callTimeout:   defaultCallTimeout,
		maxAttempts:   defaultMaxAttempts,
		queueCapacity: defaultQueueCapacity,
		encodingInfo:  audio.GetTelephonyEncodingInfo(),
	}
}

type OrchestratorOption func(*orchestratorOptions)

// WithSessionID pins the session ID, usually to the telephony provider's
// call SID. A random ID is generated when unset.
func WithSessionID(id string) OrchestratorOption {
	return func(o *orchestratorOptions) { o.sessionID = id }
}

func WithCallerPhone(phone string) OrchestratorOption {
	return func(o *orchestratorOptions) { o.callerPhone = phone }
}

// WithSilenceWindow sets how long the caller may pause before buffered
// interim transcription is settled as an implicit final.
func WithSilenceWindow(window time.Duration) OrchestratorOption {
	return func(o *orchestratorOptions) { o.silenceWindow = window }
}

// WithCallTimeout bounds the total call duration. On expiry the call is
// wound down with a partial record.
func WithCallTimeout(timeout time.Duration) OrchestratorOption {
	return func(o *orchestratorOptions) { o.callTimeout = timeout }
}

// WithMaxAttempts bounds consecutive failed exchanges per dialogue state.
func WithMaxAttempts(attempts int) OrchestratorOption {
	return func(o *orchestratorOptions) {
		if attempts > 0 {
			o.maxAttempts = attempts
		}
	}
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) OrchestratorOption {
	return func(o *orchestratorOptions) {
		if !encodingInfo.IsZero() {
			o.encodingInfo = encodingInfo
		}
	}
}

func WithSpeechToTextClient(client speechtotext.Client) OrchestratorOption {
	return func(o *orchestratorOptions) { o.speechToText = client }
}

func WithSynthesizer(synthesizer texttospeech.Synthesizer) OrchestratorOption {
	return func(o *orchestratorOptions) { o.synthesizer = synthesizer }
}

func WithAudioEgress(egress AudioEgress) OrchestratorOption {
	return func(o *orchestratorOptions) { o.egress = egress }
}

func WithReasoningClient(client reasoning.Client) OrchestratorOption {
	return func(o *orchestratorOptions) { o.reasoner = client }
}

func WithTranscriptRecorder(recorder TranscriptRecorder) OrchestratorOption {
	return func(o *orchestratorOptions) { o.recorder = recorder }
}

// WithEventHandler registers a callback for call lifecycle events. The
// handler is invoked synchronously and must not block.
func WithEventHandler(handler func(events.Event)) OrchestratorOption {
	return func(o *orchestratorOptions) { o.eventHandler = handler }
}
