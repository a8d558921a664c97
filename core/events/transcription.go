package events

const (
	KindCallerSpeechStarted     Kind = "caller_input.speech_started"
	KindCallerSpeechEnded       Kind = "caller_input.speech_ended"
	KindCallerTranscriptInterim Kind = "caller_input.transcript_interim"
	KindCallerTranscriptFinal   Kind = "caller_input.transcript_final"
	KindCallerUtteranceSettled  Kind = "caller_input.utterance_settled"
)

type CallerSpeechStarted struct{ Base }

func NewCallerSpeechStarted() CallerSpeechStarted {
	return CallerSpeechStarted{Base: newBase(KindCallerSpeechStarted)}
}

type CallerSpeechEnded struct{ Base }

func NewCallerSpeechEnded() CallerSpeechEnded {
	return CallerSpeechEnded{Base: newBase(KindCallerSpeechEnded)}
}

type CallerTranscriptInterim struct {
	Base
	Transcript string
}

func NewCallerTranscriptInterim(transcript string) CallerTranscriptInterim {
	return CallerTranscriptInterim{Base: newBase(KindCallerTranscriptInterim), Transcript: transcript}
}

type CallerTranscriptFinal struct {
	Base
	Transcript string
}

func NewCallerTranscriptFinal(transcript string) CallerTranscriptFinal {
	return CallerTranscriptFinal{Base: newBase(KindCallerTranscriptFinal), Transcript: transcript}
}

type CallerUtteranceSettled struct {
	Base
	Text string
}

func NewCallerUtteranceSettled(text string) CallerUtteranceSettled {
	return CallerUtteranceSettled{Base: newBase(KindCallerUtteranceSettled), Text: text}
}
