// Package events defines the typed call-session event contract.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - call.*
//   - caller_input.*
//   - agent_output.*
//
// Semantics used across the package:
//
//   - Interim: mutable point-in-time hypothesis that can be replaced.
//   - Final: terminal immutable text for the current utterance.
//   - Settled: an utterance boundary was decided and downstream processing
//     may act on the text.
//
// call events
//
//   - CallStarted (call.started): a new inbound call was bound to a session.
//   - CallEnded (call.ended): the call ended; carries the hangup reason.
//
// caller_input events
//
//   - CallerSpeechStarted (caller_input.speech_started): speech activity began.
//   - CallerSpeechEnded (caller_input.speech_ended): speech activity ended.
//   - CallerTranscriptInterim (caller_input.transcript_interim): cumulative
//     interim hypothesis for the current utterance.
//   - CallerTranscriptFinal (caller_input.transcript_final): finalized
//     transcript text from the recognizer.
//   - CallerUtteranceSettled (caller_input.utterance_settled): the utterance
//     boundary was decided; the text is ready for the dialogue engine.
//
// agent_output events
//
//   - AgentUtteranceStarted (agent_output.utterance_started): outbound
//     synthesis/delivery of an agent utterance began.
//   - AgentUtteranceDelivered (agent_output.utterance_delivered): the
//     utterance was fully delivered to the caller.
//   - AgentUtteranceCancelled (agent_output.utterance_cancelled): in-flight
//     delivery was cancelled, usually by barge-in.
package events
