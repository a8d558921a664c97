package heuristic

import (
	"testing"

	"github.com/venla-ai/intake-core/core/reasoning"
)

func TestNormalizeSpelledOut(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "single letters collapse", input: "v n a t a", expected: "vnata"},
		{name: "hyphen spelled collapses", input: "J-O-H-N doe", expected: "john doe"},
		{name: "mixed letters and words", input: "j o h n at gmail", expected: "john at gmail"},
		{name: "plain words untouched", input: "my name is ada", expected: "my name is ada"},
		{name: "trailing letter run flushes", input: "call me v n a", expected: "call me vna"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := NormalizeSpelledOut(testCase.input); got != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestNormalizeEmailText(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "spoken symbols", input: "john dot smith at gmail dot com", expected: "john.smith@gmail.com"},
		{name: "spelled out with digits", input: "v n a t a zero zero one at g mail dot com", expected: "vnata001@gmail.com"},
		{name: "underscore and dash", input: "jane underscore doe dash one at yahoo dot com", expected: "jane_doe-1@yahoo.com"},
		{name: "double zero", input: "john double zero at outlook dot com", expected: "john00@outlook.com"},
		{name: "oh as zero", input: "agent oh seven at hotmail dot com", expected: "agent07@hotmail.com"},
		{name: "phonetic alias", input: "z for zebra one at gmail dot com", expected: "z1@gmail.com"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := NormalizeEmailText(testCase.input); got != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestExtractEmail(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "spoken form", input: "sure, it's john dot smith at gmail dot com", expected: "john.smith@gmail.com"},
		{name: "written form", input: "john.smith@gmail.com", expected: "john.smith@gmail.com"},
		{name: "missing dot com salvage", input: "john at gmailcom", expected: "john@gmail.com"},
		{name: "nothing parseable", input: "I like cake", expected: ""},
		{name: "empty input", input: "   ", expected: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := ExtractEmail(testCase.input); got != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestExtractName(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "declaration", input: "My name is John Smith", expected: "John Smith"},
		{name: "declaration with period", input: "my name is john smith.", expected: "John Smith"},
		{name: "this is", input: "Hi, this is Ada Lovelace", expected: "Ada Lovelace"},
		{name: "bare name", input: "john smith", expected: "John Smith"},
		{name: "too long for a bare name", input: "well let me think about that for a moment first", expected: ""},
		{name: "empty", input: "", expected: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := ExtractName(testCase.input); got != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestJudgeAffirmation(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected reasoning.Verdict
	}{
		{name: "plain yes", input: "yes", expected: reasoning.VerdictAffirmed},
		{name: "thats right", input: "yeah, that's right", expected: reasoning.VerdictAffirmed},
		{name: "plain no", input: "no", expected: reasoning.VerdictDenied},
		{name: "denial beats affirmation word", input: "no, that's not right", expected: reasoning.VerdictDenied},
		{name: "unrelated reply", input: "what time do you open", expected: reasoning.VerdictUnclear},
		{name: "empty", input: "", expected: reasoning.VerdictUnclear},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := JudgeAffirmation(testCase.input); got != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, got)
			}
		})
	}
}
