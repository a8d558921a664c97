package reasoning

import (
	"context"
	"errors"
	"testing"
)

type stubClient struct {
	name        NameExtraction
	email       EmailExtraction
	affirmation Affirmation
	err         error

	calls int
}

func (s *stubClient) ExtractName(context.Context, string, []Turn) (NameExtraction, error) {
	s.calls++
	return s.name, s.err
}

func (s *stubClient) ExtractEmail(context.Context, string, []Turn) (EmailExtraction, error) {
	s.calls++
	return s.email, s.err
}

func (s *stubClient) JudgeAffirmation(context.Context, string, []Turn) (Affirmation, error) {
	s.calls++
	return s.affirmation, s.err
}

func TestChainPrefersPrimary(t *testing.T) {
	primary := &stubClient{name: NameExtraction{Name: "Ada"}}
	fallback := &stubClient{name: NameExtraction{Name: "Grace"}}

	chain := NewChain(primary, fallback)

	result, err := chain.ExtractName(context.Background(), "my name is ada", nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Name != "Ada" {
		t.Fatalf("expected primary result, got %q", result.Name)
	}
	if fallback.calls != 0 {
		t.Fatalf("expected fallback to stay untouched, got %d calls", fallback.calls)
	}
}

func TestChainFallsBackWhenPrimaryUnavailable(t *testing.T) {
	primary := &stubClient{err: ErrUnavailable}
	fallback := &stubClient{affirmation: Affirmation{Verdict: VerdictAffirmed}}

	chain := NewChain(primary, fallback)

	result, err := chain.JudgeAffirmation(context.Background(), "yes", nil)
	if err != nil {
		t.Fatalf("expected fallback to succeed, got %v", err)
	}
	if result.Verdict != VerdictAffirmed {
		t.Fatalf("expected affirmed verdict, got %q", result.Verdict)
	}
	if primary.calls != 1 || fallback.calls != 1 {
		t.Fatalf("expected one call each, got primary=%d fallback=%d", primary.calls, fallback.calls)
	}
}

func TestChainPropagatesOtherErrors(t *testing.T) {
	wantErr := errors.New("bad schema")
	primary := &stubClient{err: wantErr}
	fallback := &stubClient{}

	chain := NewChain(primary, fallback)

	if _, err := chain.ExtractEmail(context.Background(), "whatever", nil); !errors.Is(err, wantErr) {
		t.Fatalf("expected error to propagate, got %v", err)
	}
	if fallback.calls != 0 {
		t.Fatalf("expected fallback to stay untouched on non-availability errors, got %d calls", fallback.calls)
	}
}

func TestChainWithoutFallbackReturnsUnavailable(t *testing.T) {
	chain := NewChain(&stubClient{err: ErrUnavailable}, nil)

	if _, err := chain.ExtractName(context.Background(), "my name is ada", nil); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
