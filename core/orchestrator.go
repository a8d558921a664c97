package orchestration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/venla-ai/intake-core/core/events"
	"github.com/venla-ai/intake-core/core/speechtotext"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Orchestrator runs one call end to end: it feeds caller audio through
// recognition, settles utterances, advances the intake dialogue, and
// delivers the agent's replies, cancelling them on barge-in.
type Orchestrator struct {
	session *CallSession
	store   *SessionStore
	engine  *dialogueEngine

	processor *transcriptProcessor
	options   orchestratorOptions

	settled chan string

	closeOnce   sync.Once
	closeCh     chan struct{}
	closeReason events.HangupReason

	// stopCh is closed at the start of teardown so blocked producers are
	// released before the processor and streams are torn down.
	stopCh     chan struct{}
	done       chan struct{}
	finishOnce sync.Once

	// currentDelivery and its rollback snapshot are owned by the Orchestrate
	// loop; nothing else touches them.
	currentDelivery  *delivery
	deliveryRollback dialogueSnapshot
}

// NewOrchestrator binds a new call session in the store and prepares the
// orchestrator. The call does not start until [Orchestrator.Orchestrate].
func NewOrchestrator(store *SessionStore, opts ...OrchestratorOption) (*Orchestrator, error) {
	options := defaultOrchestratorOptions()
	for _, opt := range opts {
		opt(&options)
	}

	if options.reasoner == nil {
		return nil, fmt.Errorf("reasoning client is required")
	}

	sessionID := options.sessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	session, err := store.Create(sessionID, options.callerPhone)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	o := &Orchestrator{
		session: session,
		store:   store,
		engine:  newDialogueEngine(options.reasoner, options.maxAttempts),
		options: options,
		settled: make(chan string, options.queueCapacity),
		closeCh: make(chan struct{}),
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}
	o.processor = newTranscriptProcessor(session, options.silenceWindow, o.onSettledUtterance)

	return o, nil
}

func (o *Orchestrator) Session() *CallSession { return o.session }

// SendAudio forwards caller audio into the recognition stream.
func (o *Orchestrator) SendAudio(audio []byte) error {
	if o.options.speechToText == nil {
		return fmt.Errorf("no speech-to-text client configured")
	}
	return o.options.speechToText.SendAudio(audio)
}

// Close winds the call down. The first caller decides the hangup reason;
// later calls are no-ops. Close returns without waiting; use
// [Orchestrator.Done] to observe teardown completion.
func (o *Orchestrator) Close(reason events.HangupReason) {
	o.closeOnce.Do(func() {
		o.closeReason = reason
		close(o.closeCh)
	})
}

// Done is closed once the call has fully wound down and the transcript has
// been persisted.
func (o *Orchestrator) Done() <-chan struct{} { return o.done }

func (o *Orchestrator) onSettledUtterance(text string) {
	o.emit(events.NewCallerUtteranceSettled(text))
	select {
	case o.settled <- text:
	case <-o.closeCh:
	case <-o.stopCh:
	}
}

// Orchestrate runs the call loop until the caller hangs up, the dialogue
// completes, the call times out, or the context is cancelled. It blocks for
// the lifetime of the call.
func (o *Orchestrator) Orchestrate(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "orchestrate call")
	defer span.End()
	span.SetAttributes(attribute.String("session.id", o.session.ID))

	if o.options.speechToText != nil {
		err := o.options.speechToText.Transcribe(ctx,
			speechtotext.WithEncodingInfo(o.options.encodingInfo),
			speechtotext.WithInterimTranscriptionCallback(func(transcript string) {
				o.emit(events.NewCallerTranscriptInterim(transcript))
				o.processor.OnInterim(transcript)
			}),
			speechtotext.WithTranscriptionCallback(func(transcript string) {
				o.emit(events.NewCallerTranscriptFinal(transcript))
				o.processor.OnFinal(transcript)
			}),
			speechtotext.WithSpeechStartedCallback(func() {
				o.emit(events.NewCallerSpeechStarted())
			}),
			speechtotext.WithSpeechEndedCallback(func() {
				o.emit(events.NewCallerSpeechEnded())
			}),
		)
		if err != nil {
			err = fmt.Errorf("failed to start transcription: %w", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "transcription failed to start")
			o.finish(ctx, events.HangupReasonError)
			return err
		}
	}

	o.emit(events.NewCallStarted(o.session.ID, o.session.CallerPhone))
	logger.InfoContext(ctx, "call started",
		"session_id", o.session.ID, "caller_phone", o.session.CallerPhone)

	// The agent speaks first.
	greeting := o.engine.Greet(o.session)
	o.startDelivery(ctx, o.session.dialogueSnapshot(), greeting)

	var timeoutCh <-chan time.Time
	if o.options.callTimeout > 0 {
		timer := time.NewTimer(o.options.callTimeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	for {
		var deliveryDone <-chan struct{}
		if o.currentDelivery != nil {
			deliveryDone = o.currentDelivery.Done()
		}

		select {
		case <-ctx.Done():
			// Context cancellation comes from the hosting process (shutdown),
			// not from the caller.
			o.finish(ctx, events.HangupReasonError)
			return nil

		case <-o.closeCh:
			o.finish(ctx, o.closeReason)
			return nil

		case <-timeoutCh:
			o.resolveDelivery()
			o.session.setCompletion(CompletionPartialTimeout)
			o.session.setState(StateClosing)
			o.deliverAndWait(ctx, timeoutClosingLine)
			o.finish(ctx, events.HangupReasonTimeout)
			return nil

		case <-deliveryDone:
			o.resolveDelivery()
			if o.session.State() == StateClosing {
				// The closing line has been delivered; hang up.
				o.finish(ctx, events.HangupReasonAgent)
				return nil
			}

		case text := <-o.settled:
			if err := o.processUtterance(ctx, text); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed to process utterance")
				o.deliverAndWait(ctx, apologyLine)
				o.finish(ctx, events.HangupReasonError)
				return err
			}
		}
	}
}

func (o *Orchestrator) processUtterance(ctx context.Context, text string) error {
	ctx, span := tracer.Start(ctx, "process settled utterance")
	defer span.End()

	// Barge-in: a new settled utterance supersedes whatever the agent is
	// saying right now.
	o.resolveDelivery()

	o.session.appendTurn(SpeakerCaller, text)

	reply, err := o.engine.Advance(ctx, o.session, text)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if reply == "" {
		return nil
	}

	// The rollback snapshot is taken after the dialogue advanced: cancelling
	// the delivery drops only the undelivered line, never the commits the
	// exchange already produced.
	o.startDelivery(ctx, o.session.dialogueSnapshot(), reply)
	return nil
}

func (o *Orchestrator) startDelivery(ctx context.Context, rollback dialogueSnapshot, text string) {
	d := newDelivery(text, o.options.synthesizer, o.options.egress, o.options.encodingInfo)
	o.currentDelivery = d
	o.deliveryRollback = rollback
	o.emit(events.NewAgentUtteranceStarted(text))
	d.start(ctx)
}

// resolveDelivery settles the in-flight delivery, cancelling it first if it
// is still running. A completed delivery appends the agent's turn; a
// cancelled or failed one rolls the dialogue back to where it was before the
// utterance was produced, as if the exchange never happened.
func (o *Orchestrator) resolveDelivery() {
	d := o.currentDelivery
	if d == nil {
		return
	}

	select {
	case <-d.Done():
	default:
		d.Cancel()
		<-d.Done()
	}
	o.currentDelivery = nil

	if err := d.Err(); err != nil {
		o.session.restore(o.deliveryRollback)
		o.emit(events.NewAgentUtteranceCancelled(d.text))
		if !errors.Is(err, ErrDeliveryCancelled) {
			logger.Warn("agent utterance delivery failed",
				"session_id", o.session.ID, "error", err)
		}
		return
	}

	o.session.appendTurn(SpeakerAgent, d.text)
	o.emit(events.NewAgentUtteranceDelivered(d.text))
}

// awaitDelivery lets the in-flight delivery run to completion, then settles
// it.
func (o *Orchestrator) awaitDelivery() {
	if o.currentDelivery == nil {
		return
	}
	<-o.currentDelivery.Done()
	o.resolveDelivery()
}

// deliverAndWait synchronously delivers one agent line. Used on wind-down
// paths where barge-in no longer matters.
func (o *Orchestrator) deliverAndWait(ctx context.Context, text string) {
	o.startDelivery(ctx, o.session.dialogueSnapshot(), text)
	o.awaitDelivery()
}

func (o *Orchestrator) finish(ctx context.Context, reason events.HangupReason) {
	o.finishOnce.Do(func() {
		ctx, span := tracer.Start(ctx, "finish call")
		defer span.End()
		span.SetAttributes(
			attribute.String("session.id", o.session.ID),
			attribute.String("hangup.reason", string(reason)),
		)

		close(o.stopCh)
		o.resolveDelivery()
		o.processor.Close()

		if o.options.speechToText != nil {
			if err := o.options.speechToText.Close(ctx); err != nil {
				logger.Warn("failed to close transcription stream",
					"session_id", o.session.ID, "error", err)
			}
		}

		// A call torn down before the flow finished still gets a status.
		if o.session.Completion() == "" {
			if reason == events.HangupReasonTimeout {
				o.session.setCompletion(CompletionPartialTimeout)
			} else if o.session.ExtractedName() != "" && o.session.ExtractedEmail() != "" {
				o.session.setCompletion(CompletionComplete)
			} else {
				o.session.setCompletion(CompletionPartialError)
			}
		}
		o.session.setState(StateEnded)

		if o.options.recorder != nil {
			record := buildTranscriptRecord(o.session, reason)
			if err := o.options.recorder.Log(ctx, record); err != nil {
				span.RecordError(err)
				logger.Error("failed to persist call transcript",
					"session_id", o.session.ID, "error", err)
			}
		}

		o.store.Remove(o.session.ID)
		o.emit(events.NewCallEnded(o.session.ID, reason))
		logger.InfoContext(ctx, "call ended",
			"session_id", o.session.ID,
			"reason", string(reason),
			"completion", string(o.session.Completion()))

		close(o.done)
	})
}

func (o *Orchestrator) emit(event events.Event) {
	if o.options.eventHandler != nil {
		o.options.eventHandler(event)
	}
}
