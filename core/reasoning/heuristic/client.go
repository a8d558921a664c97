// Package heuristic implements the reasoning contract with deterministic
// text heuristics: regex-based name and email extraction over normalized
// spoken forms, and a word-list affirmation judge. It never reports
// [reasoning.ErrUnavailable], which makes it the natural fallback behind a
// remote provider.
package heuristic

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/venla-ai/intake-core/core/reasoning"
)

var _ reasoning.Client = Client{}

var (
	emailPattern     = regexp.MustCompile(`[\w.\-]+@[\w.\-]+\.[a-zA-Z]{2,}`)
	namePattern      = regexp.MustCompile(`(?i)(?:my name is|this is|i am|i'm|it's)\s+([a-zA-Z]+(?:\s+[a-zA-Z]+)*)`)
	plainNamePattern = regexp.MustCompile(`^[a-zA-Z'\-]+$`)

	// Preamble before the address proper would otherwise glue onto the local
	// part once whitespace is stripped ("it's john at …" -> "it'sjohn@…").
	emailPreamblePattern = regexp.MustCompile(`(?i)\b(?:my email(?: address)? is|email is|address is|it is|it's|this is)\b`)

	salvagePatterns = func() []*regexp.Regexp {
		hosts := []string{"gmail", "yahoo", "outlook", "hotmail", "icloud"}
		patterns := make([]*regexp.Regexp, 0, len(hosts))
		for _, host := range hosts {
			patterns = append(patterns, regexp.MustCompile(`([\w.\-]+@`+host+`)(?:com|\.com)?`))
		}
		return patterns
	}()
)

var (
	denialWords      = []string{"no", "nope", "nah", "not", "wrong", "incorrect"}
	affirmationWords = []string{"yes", "yeah", "yep", "yup", "correct", "right", "sure", "absolutely", "ok", "okay", "exactly", "perfect"}
)

type Client struct{}

func NewClient() Client { return Client{} }

func (Client) ExtractName(_ context.Context, utterance string, _ []reasoning.Turn) (reasoning.NameExtraction, error) {
	return reasoning.NameExtraction{Name: ExtractName(utterance)}, nil
}

func (Client) ExtractEmail(_ context.Context, utterance string, _ []reasoning.Turn) (reasoning.EmailExtraction, error) {
	return reasoning.EmailExtraction{Email: ExtractEmail(utterance)}, nil
}

func (Client) JudgeAffirmation(_ context.Context, utterance string, _ []reasoning.Turn) (reasoning.Affirmation, error) {
	return reasoning.Affirmation{Verdict: JudgeAffirmation(utterance)}, nil
}

// ExtractName pulls a person's name out of a spoken utterance. Declarations
// like "my name is …" are preferred; a short bare reply ("John Smith") is
// accepted as the name itself. Returns "" when nothing name-like is found.
func ExtractName(text string) string {
	s := strings.TrimSpace(text)
	s = strings.TrimRight(s, ".!?")
	if s == "" {
		return ""
	}

	if match := namePattern.FindStringSubmatch(s); match != nil {
		name := strings.TrimSpace(match[1])
		if hasUpperBeyondFirst(name) {
			return name
		}
		return titleCase(name)
	}

	// A bare reply of a few plain words is taken to be the name itself.
	words := strings.Fields(s)
	if len(words) == 0 || len(words) > 4 || len(s) > 40 {
		return ""
	}
	for _, word := range words {
		if !plainNamePattern.MatchString(word) {
			return ""
		}
	}
	return titleCase(s)
}

// ExtractEmail pulls an email address out of a spoken utterance, normalizing
// spelled-out sequences and spoken symbols first. Returns "" when nothing
// parseable is found.
func ExtractEmail(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	if loc := emailPreamblePattern.FindStringIndex(text); loc != nil {
		text = text[loc[1]:]
	}

	normalized := NormalizeEmailText(text)
	if match := emailPattern.FindString(normalized); match != "" {
		return match
	}

	// Salvage a missing ".com" for common hosts, e.g. "john@gmailcom".
	for _, pattern := range salvagePatterns {
		if match := pattern.FindStringSubmatch(normalized); match != nil {
			return match[1] + ".com"
		}
	}

	return ""
}

// JudgeAffirmation classifies a confirmation reply. Denial words win over
// affirmation words so "no, that's not right" is a denial even though it
// contains "right".
func JudgeAffirmation(text string) reasoning.Verdict {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(text)))
	contains := func(vocabulary []string) bool {
		for _, word := range words {
			cleaned := strings.Trim(word, ".,!?'\"")
			cleaned = strings.TrimSuffix(cleaned, "'s")
			for _, candidate := range vocabulary {
				if cleaned == candidate {
					return true
				}
			}
		}
		return false
	}

	if contains(denialWords) {
		return reasoning.VerdictDenied
	}
	if contains(affirmationWords) {
		return reasoning.VerdictAffirmed
	}
	return reasoning.VerdictUnclear
}

func hasUpperBeyondFirst(s string) bool {
	for i, r := range s {
		if i == 0 {
			continue
		}
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
