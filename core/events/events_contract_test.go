package events

import "testing"

func TestConstructorsEmitExpectedKinds(t *testing.T) {
	testCases := []struct {
		name     string
		event    Event
		expected Kind
	}{
		{name: "call started", event: NewCallStarted("sid", "+15550001111"), expected: KindCallStarted},
		{name: "call ended", event: NewCallEnded("sid", HangupReasonCaller), expected: KindCallEnded},
		{name: "caller speech started", event: NewCallerSpeechStarted(), expected: KindCallerSpeechStarted},
		{name: "caller speech ended", event: NewCallerSpeechEnded(), expected: KindCallerSpeechEnded},
		{name: "caller transcript interim", event: NewCallerTranscriptInterim("hel"), expected: KindCallerTranscriptInterim},
		{name: "caller transcript final", event: NewCallerTranscriptFinal("hello"), expected: KindCallerTranscriptFinal},
		{name: "caller utterance settled", event: NewCallerUtteranceSettled("hello"), expected: KindCallerUtteranceSettled},
		{name: "agent utterance started", event: NewAgentUtteranceStarted("hi"), expected: KindAgentUtteranceStarted},
		{name: "agent utterance delivered", event: NewAgentUtteranceDelivered("hi"), expected: KindAgentUtteranceDelivered},
		{name: "agent utterance cancelled", event: NewAgentUtteranceCancelled("hi"), expected: KindAgentUtteranceCancelled},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.event.Kind(); got != testCase.expected {
				t.Fatalf("expected kind %q, got %q", testCase.expected, got)
			}
			if testCase.event.Timestamp().IsZero() {
				t.Fatalf("expected a non-zero timestamp for %q", testCase.expected)
			}
		})
	}
}
