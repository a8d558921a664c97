package orchestration

import (
	"strings"
	"sync"
	"time"
)

// transcriptProcessor turns the raw recognition event stream into settled
// caller utterances. Interim hypotheses replace the session's pending buffer
// wholesale; a final result settles the buffer; silence longer than the
// configured window settles whatever is buffered as an implicit final.
type transcriptProcessor struct {
	mu sync.Mutex

	session       *CallSession
	silenceWindow time.Duration
	onSettled     func(text string)

	silenceTimer *time.Timer
	closed       bool
}

func newTranscriptProcessor(session *CallSession, silenceWindow time.Duration, onSettled func(text string)) *transcriptProcessor {
	return &transcriptProcessor{
		session:       session,
		silenceWindow: silenceWindow,
		onSettled:     onSettled,
	}
}

func (p *transcriptProcessor) OnInterim(transcript string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	p.session.setPendingUtterance(transcript)
	p.armSilenceTimer()
}

func (p *transcriptProcessor) OnFinal(transcript string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	p.session.setPendingUtterance(transcript)
	p.settleLocked()
}

func (p *transcriptProcessor) onSilenceElapsed() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.settleLocked()
}

// settleLocked drains the pending buffer and emits it as one settled
// utterance. Whitespace-only buffers are discarded without emitting.
func (p *transcriptProcessor) settleLocked() {
	p.stopSilenceTimer()

	text := strings.TrimSpace(p.session.takePendingUtterance())
	if text == "" {
		return
	}
	p.onSettled(text)
}

func (p *transcriptProcessor) armSilenceTimer() {
	p.stopSilenceTimer()
	if p.silenceWindow <= 0 {
		return
	}
	p.silenceTimer = time.AfterFunc(p.silenceWindow, p.onSilenceElapsed)
}

func (p *transcriptProcessor) stopSilenceTimer() {
	if p.silenceTimer != nil {
		p.silenceTimer.Stop()
		p.silenceTimer = nil
	}
}

func (p *transcriptProcessor) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.stopSilenceTimer()
}
