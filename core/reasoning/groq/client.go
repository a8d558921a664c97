// Package groq implements the reasoning contract on top of groq's
// OpenAI-compatible chat completions API using strict JSON-schema responses.
package groq

import (
	"context"
	"fmt"
	"os"

	"github.com/venla-ai/intake-core/core/reasoning"
)

const defaultModel = "llama-3.3-70b-versatile"

const nameInstructions = `You are an assistant that extracts a caller's name from noisy call-transcript text.
Extract only the person's name from the utterance, preserving it exactly as stated.
If the utterance contains no name, return an empty string.`

const emailInstructions = `You are an assistant that extracts an email address from noisy call-transcript text.
If the email contains spoken phrases (e.g. "at", "dot"), normalize them to standard format (e.g. "@", ".") and use digits for spoken numbers (e.g. "thirteen" as "13").
Example: the utterance "v n a t a zero zero one at g mail dot com" yields "vnata001@gmail.com".
If the utterance contains no email address, return an empty string.`

const affirmationInstructions = `You are an assistant that judges whether a caller's reply affirms or denies the agent's previous confirmation question.
Respond with verdict "affirmed" if the reply agrees, "denied" if it disagrees or corrects, and "unclear" if it does neither.`

var _ reasoning.Client = (*Client)(nil)

type Client struct {
	apiKey string
	model  string
}

type Option func(*Client)

func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

func WithAPIKey(apiKey string) Option {
	return func(c *Client) { c.apiKey = apiKey }
}

func NewClient(opts ...Option) (*Client, error) {
	client := &Client{model: defaultModel}
	for _, opt := range opts {
		opt(client)
	}

	if client.apiKey == "" {
		apiKey, ok := os.LookupEnv("GROQ_API_KEY")
		if !ok {
			return nil, fmt.Errorf("groq api key not found")
		}
		client.apiKey = apiKey
	}

	return client, nil
}

func (c *Client) ExtractName(ctx context.Context, utterance string, history []reasoning.Turn) (reasoning.NameExtraction, error) {
	var extraction reasoning.NameExtraction
	if err := promptJSONSchema(ctx, c.apiKey, c.model, utterance, nameInstructions, history, &extraction); err != nil {
		return reasoning.NameExtraction{}, fmt.Errorf("failed to extract name: %w", err)
	}
	return extraction, nil
}

func (c *Client) ExtractEmail(ctx context.Context, utterance string, history []reasoning.Turn) (reasoning.EmailExtraction, error) {
	var extraction reasoning.EmailExtraction
	if err := promptJSONSchema(ctx, c.apiKey, c.model, utterance, emailInstructions, history, &extraction); err != nil {
		return reasoning.EmailExtraction{}, fmt.Errorf("failed to extract email: %w", err)
	}
	return extraction, nil
}

func (c *Client) JudgeAffirmation(ctx context.Context, utterance string, history []reasoning.Turn) (reasoning.Affirmation, error) {
	var affirmation reasoning.Affirmation
	if err := promptJSONSchema(ctx, c.apiKey, c.model, utterance, affirmationInstructions, history, &affirmation); err != nil {
		return reasoning.Affirmation{}, fmt.Errorf("failed to judge affirmation: %w", err)
	}

	switch affirmation.Verdict {
	case reasoning.VerdictAffirmed, reasoning.VerdictDenied, reasoning.VerdictUnclear:
	default:
		affirmation.Verdict = reasoning.VerdictUnclear
	}
	return affirmation, nil
}
