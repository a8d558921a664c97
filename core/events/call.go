package events

const (
	KindCallStarted Kind = "call.started"
	KindCallEnded   Kind = "call.ended"
)

// HangupReason describes why a call ended.
type HangupReason string

const (
	HangupReasonCaller  HangupReason = "caller_hangup"
	HangupReasonAgent   HangupReason = "agent_hangup"
	HangupReasonTimeout HangupReason = "call_timeout"
	HangupReasonError   HangupReason = "error"
)

type CallStarted struct {
	Base
	SessionID   string
	CallerPhone string
}

func NewCallStarted(sessionID, callerPhone string) CallStarted {
	return CallStarted{Base: newBase(KindCallStarted), SessionID: sessionID, CallerPhone: callerPhone}
}

type CallEnded struct {
	Base
	SessionID string
	Reason    HangupReason
}

func NewCallEnded(sessionID string, reason HangupReason) CallEnded {
	return CallEnded{Base: newBase(KindCallEnded), SessionID: sessionID, Reason: reason}
}
