package reasoning

import (
	"context"
	"errors"
)

// Chain tries the primary client first and falls back to the secondary when
// the primary reports [ErrUnavailable]. Any other error is returned as-is.
type Chain struct {
	Primary  Client
	Fallback Client
}

func NewChain(primary, fallback Client) Chain {
	return Chain{Primary: primary, Fallback: fallback}
}

func (c Chain) ExtractName(ctx context.Context, utterance string, history []Turn) (NameExtraction, error) {
	result, err := c.Primary.ExtractName(ctx, utterance, history)
	if errors.Is(err, ErrUnavailable) && c.Fallback != nil {
		return c.Fallback.ExtractName(ctx, utterance, history)
	}
	return result, err
}

func (c Chain) ExtractEmail(ctx context.Context, utterance string, history []Turn) (EmailExtraction, error) {
	result, err := c.Primary.ExtractEmail(ctx, utterance, history)
	if errors.Is(err, ErrUnavailable) && c.Fallback != nil {
		return c.Fallback.ExtractEmail(ctx, utterance, history)
	}
	return result, err
}

func (c Chain) JudgeAffirmation(ctx context.Context, utterance string, history []Turn) (Affirmation, error) {
	result, err := c.Primary.JudgeAffirmation(ctx, utterance, history)
	if errors.Is(err, ErrUnavailable) && c.Fallback != nil {
		return c.Fallback.JudgeAffirmation(ctx, utterance, history)
	}
	return result, err
}
