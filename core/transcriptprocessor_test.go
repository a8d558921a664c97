package orchestration

import (
	"testing"
	"time"
)

func TestTranscriptProcessorFinalSettlesLatestText(t *testing.T) {
	session := newCallSession("call-1", "")
	var settled []string
	processor := newTranscriptProcessor(session, 0, func(text string) {
		settled = append(settled, text)
	})
	defer processor.Close()

	processor.OnInterim("my")
	processor.OnInterim("my name")
	processor.OnInterim("my name is john")
	processor.OnFinal("My name is John Smith")

	if len(settled) != 1 {
		t.Fatalf("expected exactly one settled utterance, got %d", len(settled))
	}
	if settled[0] != "My name is John Smith" {
		t.Fatalf("expected final text to settle, got %q", settled[0])
	}
	if session.PendingUtterance() != "" {
		t.Fatalf("expected empty buffer after settling, got %q", session.PendingUtterance())
	}
}

func TestTranscriptProcessorInterimReplacesBuffer(t *testing.T) {
	session := newCallSession("call-1", "")
	processor := newTranscriptProcessor(session, 0, func(string) {})
	defer processor.Close()

	processor.OnInterim("hel")
	processor.OnInterim("hello there")

	if got := session.PendingUtterance(); got != "hello there" {
		t.Fatalf("expected interim to replace buffer, got %q", got)
	}
}

func TestTranscriptProcessorSilenceSettlesBuffer(t *testing.T) {
	session := newCallSession("call-1", "")
	settled := make(chan string, 1)
	processor := newTranscriptProcessor(session, 20*time.Millisecond, func(text string) {
		settled <- text
	})
	defer processor.Close()

	processor.OnInterim("yes that's right")

	select {
	case text := <-settled:
		if text != "yes that's right" {
			t.Fatalf("expected buffered text to settle on silence, got %q", text)
		}
	case <-time.After(time.Second):
		t.Fatal("expected silence to settle the buffered utterance")
	}
	if session.PendingUtterance() != "" {
		t.Fatalf("expected empty buffer after silence settle, got %q", session.PendingUtterance())
	}
}

func TestTranscriptProcessorDiscardsEmptySettles(t *testing.T) {
	session := newCallSession("call-1", "")
	var count int
	processor := newTranscriptProcessor(session, 0, func(string) { count++ })
	defer processor.Close()

	processor.OnFinal("")
	processor.OnFinal("   ")

	if count != 0 {
		t.Fatalf("expected empty finals to be discarded, got %d settles", count)
	}
}

func TestTranscriptProcessorIgnoresEventsAfterClose(t *testing.T) {
	session := newCallSession("call-1", "")
	var count int
	processor := newTranscriptProcessor(session, 0, func(string) { count++ })

	processor.Close()
	processor.OnInterim("hello")
	processor.OnFinal("hello")

	if count != 0 {
		t.Fatalf("expected no settles after close, got %d", count)
	}
}
