// Package reasoning defines the contract for the external reasoning
// capability the dialogue engine delegates free-form understanding to:
// extracting a name or email from noisy spoken text, and judging whether a
// reply affirms or denies a confirmation question.
//
// Every result is a typed payload; a provider that cannot be reached reports
// [ErrUnavailable] so callers can fall back instead of failing the call.
package reasoning

import (
	"context"
	"errors"
)

// ErrUnavailable indicates a transient provider failure. Callers are expected
// to recover with a bounded retry or a deterministic fallback.
var ErrUnavailable = errors.New("reasoning service unavailable")

type Role string

const (
	RoleCaller Role = "user"
	RoleAgent  Role = "assistant"
)

// Turn is one conversation-history entry passed to a provider for context.
type Turn struct {
	Role Role
	Text string
}

// NameExtraction is the structured result of a name-extraction task. An empty
// Name means the utterance carried no recognizable name; that is not an error.
type NameExtraction struct {
	Name string `json:"name"`
}

// EmailExtraction is the structured result of an email-extraction task.
// Spoken forms ("j o h n at gmail dot com") are normalized to standard
// format. An empty Email means nothing parseable was found.
type EmailExtraction struct {
	Email string `json:"email"`
}

// Verdict is the outcome of an affirmation judgment.
type Verdict string

const (
	VerdictAffirmed Verdict = "affirmed"
	VerdictDenied   Verdict = "denied"
	// VerdictUnclear means the reply neither affirms nor denies; callers
	// should re-ask rather than guess.
	VerdictUnclear Verdict = "unclear"
)

// Affirmation is the structured result of an affirmation judgment.
type Affirmation struct {
	Verdict Verdict `json:"verdict"`
}

// Client is a stateless reasoning capability. Implementations must be safe
// for concurrent use across sessions and must honor context cancellation.
type Client interface {
	ExtractName(ctx context.Context, utterance string, history []Turn) (NameExtraction, error)
	ExtractEmail(ctx context.Context, utterance string, history []Turn) (EmailExtraction, error)
	JudgeAffirmation(ctx context.Context, utterance string, history []Turn) (Affirmation, error)
}
