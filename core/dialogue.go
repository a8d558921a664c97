package orchestration

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/venla-ai/intake-core/core/reasoning"
)

var emailShapePattern = regexp.MustCompile(`^[\w.\-]+@[\w.\-]+\.[a-zA-Z]{2,}$`)

// dialogueEngine drives the slot-filling conversation: collect the caller's
// name, confirm it, collect the email, confirm it, close. It never touches
// audio; it consumes settled utterances and produces the agent's next line.
type dialogueEngine struct {
	reasoner reasoning.Client

	// maxAttempts bounds consecutive failed exchanges per state before the
	// call is forced to closing with a partial record.
	maxAttempts int
}

func newDialogueEngine(reasoner reasoning.Client, maxAttempts int) *dialogueEngine {
	return &dialogueEngine{reasoner: reasoner, maxAttempts: maxAttempts}
}

// Greet opens the conversation. The agent speaks first; the session moves to
// collecting the caller's name.
func (e *dialogueEngine) Greet(session *CallSession) string {
	session.setState(StateCollectingName)
	return greetingLine
}

// Advance consumes one settled caller utterance and returns the agent's next
// line. Reasoning failures are absorbed into re-prompts up to the retry
// bound; a non-nil error means the exchange could not be handled at all.
func (e *dialogueEngine) Advance(ctx context.Context, session *CallSession, utterance string) (string, error) {
	history := reasoningHistory(session)

	switch state := session.State(); state {
	case StateGreeting:
		// Caller spoke before (or over) the greeting; start collecting.
		session.setState(StateCollectingName)
		fallthrough
	case StateCollectingName:
		return e.collectName(ctx, session, utterance, history)
	case StateConfirmingName:
		return e.confirmName(ctx, session, utterance, history)
	case StateCollectingEmail:
		return e.collectEmail(ctx, session, utterance, history)
	case StateConfirmingEmail:
		return e.confirmEmail(ctx, session, utterance, history)
	case StateClosing, StateEnded:
		// The flow is over; nothing left to say.
		return "", nil
	default:
		return "", fmt.Errorf("unexpected dialogue state %q", state)
	}
}

func (e *dialogueEngine) collectName(ctx context.Context, session *CallSession, utterance string, history []reasoning.Turn) (string, error) {
	extraction, err := e.reasoner.ExtractName(ctx, utterance, history)
	if err != nil {
		return e.failedExchange(session, StateCollectingName, nameRepromptLine, err)
	}
	if extraction.Name == "" {
		return e.failedExchange(session, StateCollectingName, nameRepromptLine, nil)
	}

	session.setPendingName(extraction.Name)
	session.setState(StateConfirmingName)
	return confirmNameLine(extraction.Name), nil
}

func (e *dialogueEngine) confirmName(ctx context.Context, session *CallSession, utterance string, history []reasoning.Turn) (string, error) {
	affirmation, err := e.reasoner.JudgeAffirmation(ctx, utterance, history)
	if err != nil {
		return e.failedExchange(session, StateConfirmingName, confirmRepromptLine, err)
	}

	switch affirmation.Verdict {
	case reasoning.VerdictAffirmed:
		session.commitName()
		session.resetRetries(StateCollectingName)
		session.resetRetries(StateConfirmingName)
		session.setState(StateCollectingEmail)
		return emailPromptLine, nil
	case reasoning.VerdictDenied:
		session.setPendingName("")
		session.setState(StateCollectingName)
		return nameCorrectionLine, nil
	default:
		return e.failedExchange(session, StateConfirmingName, confirmRepromptLine, nil)
	}
}

func (e *dialogueEngine) collectEmail(ctx context.Context, session *CallSession, utterance string, history []reasoning.Turn) (string, error) {
	extraction, err := e.reasoner.ExtractEmail(ctx, utterance, history)
	if err != nil {
		return e.failedExchange(session, StateCollectingEmail, emailRepromptLine, err)
	}
	if !emailShapePattern.MatchString(extraction.Email) {
		return e.failedExchange(session, StateCollectingEmail, emailRepromptLine, nil)
	}

	session.setPendingEmail(extraction.Email)
	session.setState(StateConfirmingEmail)
	return confirmEmailLine(extraction.Email), nil
}

func (e *dialogueEngine) confirmEmail(ctx context.Context, session *CallSession, utterance string, history []reasoning.Turn) (string, error) {
	affirmation, err := e.reasoner.JudgeAffirmation(ctx, utterance, history)
	if err != nil {
		return e.failedExchange(session, StateConfirmingEmail, confirmRepromptLine, err)
	}

	switch affirmation.Verdict {
	case reasoning.VerdictAffirmed:
		session.commitEmail()
		session.resetRetries(StateCollectingEmail)
		session.resetRetries(StateConfirmingEmail)
		session.setCompletion(CompletionComplete)
		session.setState(StateClosing)
		return closingLine, nil
	case reasoning.VerdictDenied:
		session.setPendingEmail("")
		session.setState(StateCollectingEmail)
		return emailCorrectionLine, nil
	default:
		return e.failedExchange(session, StateConfirmingEmail, confirmRepromptLine, nil)
	}
}

// failedExchange records one failed attempt for the state and either
// re-prompts or, once the retry bound is reached, forces the call to closing
// with a partial record.
func (e *dialogueEngine) failedExchange(session *CallSession, state SessionState, reprompt string, cause error) (string, error) {
	if cause != nil {
		if errors.Is(cause, reasoning.ErrUnavailable) {
			logger.Warn("reasoning unavailable, re-prompting", "session_id", session.ID, "state", state, "error", cause)
		} else {
			logger.Error("reasoning failed, re-prompting", "session_id", session.ID, "state", state, "error", cause)
		}
	}

	attempts := session.bumpRetry(state)
	if attempts >= e.maxAttempts {
		session.setCompletion(CompletionPartialError)
		session.setState(StateClosing)
		return incompleteClosingLine, nil
	}
	return reprompt, nil
}

func reasoningHistory(session *CallSession) []reasoning.Turn {
	turns := session.Turns()
	history := make([]reasoning.Turn, 0, len(turns))
	for _, turn := range turns {
		role := reasoning.RoleCaller
		if turn.Speaker == SpeakerAgent {
			role = reasoning.RoleAgent
		}
		history = append(history, reasoning.Turn{Role: role, Text: turn.Text})
	}
	return history
}
