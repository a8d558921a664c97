package events

const (
	KindAgentUtteranceStarted   Kind = "agent_output.utterance_started"
	KindAgentUtteranceDelivered Kind = "agent_output.utterance_delivered"
	KindAgentUtteranceCancelled Kind = "agent_output.utterance_cancelled"
)

type AgentUtteranceStarted struct {
	Base
	Text string
}

func NewAgentUtteranceStarted(text string) AgentUtteranceStarted {
	return AgentUtteranceStarted{Base: newBase(KindAgentUtteranceStarted), Text: text}
}

type AgentUtteranceDelivered struct {
	Base
	Text string
}

func NewAgentUtteranceDelivered(text string) AgentUtteranceDelivered {
	return AgentUtteranceDelivered{Base: newBase(KindAgentUtteranceDelivered), Text: text}
}

type AgentUtteranceCancelled struct {
	Base
	Text string
}

func NewAgentUtteranceCancelled(text string) AgentUtteranceCancelled {
	return AgentUtteranceCancelled{Base: newBase(KindAgentUtteranceCancelled), Text: text}
}
