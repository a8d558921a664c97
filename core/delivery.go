package orchestration

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/venla-ai/intake-core/core/audio"
	"github.com/venla-ai/intake-core/core/texttospeech"
	"go.opentelemetry.io/otel/codes"
)

// ErrDeliveryCancelled marks a delivery that was cut short by barge-in or
// call teardown.
var ErrDeliveryCancelled = errors.New("delivery cancelled")

// AudioEgress is the outbound audio path back to the caller.
type AudioEgress interface {
	// SendAudio forwards one chunk of synthesized agent audio to the caller.
	SendAudio(audio []byte) error
	// Clear drops any audio buffered downstream but not yet played.
	Clear() error
}

// delivery carries one agent utterance through synthesis to the caller. It
// runs on its own goroutine so inbound transcription is never blocked by
// outbound speech.
type delivery struct {
	text         string
	synthesizer  texttospeech.Synthesizer
	egress       AudioEgress
	encodingInfo audio.EncodingInfo

	cancelled  atomic.Bool
	cancelOnce sync.Once
	cancelCh   chan struct{}

	done chan struct{}
	err  error
}

func newDelivery(text string, synthesizer texttospeech.Synthesizer, egress AudioEgress, encodingInfo audio.EncodingInfo) *delivery {
	return &delivery{
		text:         text,
		synthesizer:  synthesizer,
		egress:       egress,
		encodingInfo: encodingInfo,
		cancelCh:     make(chan struct{}),
		done:         make(chan struct{}),
	}
}

func (d *delivery) start(ctx context.Context) {
	go func() {
		defer close(d.done)
		d.err = d.run(ctx)
	}()
}

func (d *delivery) run(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "deliver agent utterance")
	defer span.End()

	if d.synthesizer == nil {
		// Text-only operation; nothing to synthesize.
		return nil
	}

	ended := make(chan struct{})
	var endedOnce sync.Once
	streamErr := make(chan error, 1)

	stream, err := d.synthesizer.NewSpeechStream(ctx,
		texttospeech.WithEncodingInfo(d.encodingInfo),
		texttospeech.WithSpeechAudioCallback(func(chunk []byte) {
			if d.cancelled.Load() {
				return
			}
			if err := d.egress.SendAudio(chunk); err != nil {
				logger.Warn("failed to forward synthesized audio", "error", err)
			}
		}),
		texttospeech.WithSpeechEndedCallback(func() {
			endedOnce.Do(func() { close(ended) })
		}),
		texttospeech.WithErrorCallback(func(err error) {
			select {
			case streamErr <- err:
			default:
			}
		}),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open speech stream")
		return err
	}

	if err := stream.SendText(d.text); err != nil {
		span.RecordError(err)
		_ = stream.Close()
		return err
	}
	if err := stream.EndOfText(); err != nil {
		span.RecordError(err)
		_ = stream.Close()
		return err
	}

	select {
	case <-ctx.Done():
		_ = stream.Cancel()
		_ = d.egress.Clear()
		return errors.Join(ErrDeliveryCancelled, ctx.Err())
	case <-d.cancelCh:
		_ = stream.Cancel()
		_ = d.egress.Clear()
		return ErrDeliveryCancelled
	case err := <-streamErr:
		span.RecordError(err)
		span.SetStatus(codes.Error, "speech stream failed")
		_ = stream.Close()
		return err
	case <-ended:
		return nil
	}
}

// Cancel stops the delivery and flushes downstream audio. Safe to call more
// than once and after completion.
func (d *delivery) Cancel() {
	d.cancelOnce.Do(func() {
		d.cancelled.Store(true)
		close(d.cancelCh)
	})
}

func (d *delivery) Done() <-chan struct{} { return d.done }

// Err is only valid after Done is closed.
func (d *delivery) Err() error { return d.err }
