package heuristic

import (
	"regexp"
	"strings"
)

var (
	hyphenSpelledPattern = regexp.MustCompile(`^(?:[A-Za-z]-)+[A-Za-z]$`)
	singleLetterPattern  = regexp.MustCompile(`^[A-Za-z]$`)

	atPattern         = regexp.MustCompile(`\b(at|@)\b`)
	dotPattern        = regexp.MustCompile(`\b(dot|period)\b`)
	underscorePattern = regexp.MustCompile(`\bunderscore\b`)
	dashPattern       = regexp.MustCompile(`\b(hyphen|dash)\b`)
	phoneticPattern   = regexp.MustCompile(`\b([a-z]) for \w+\b`)
	doubleOPattern    = regexp.MustCompile(`\bdouble (o|zero)\b`)
	whitespacePattern = regexp.MustCompile(`[,\s]+`)
)

type digitWord struct {
	pattern *regexp.Regexp
	digit   string
}

// digitWords maps spoken digits to their written form. "oh" is the common
// spoken zero; the single letter "o" is handled by spelled-sequence collapse
// before this map applies.
var digitWords = func() []digitWord {
	words := []struct{ word, digit string }{
		{"zero", "0"}, {"oh", "0"},
		{"one", "1"}, {"two", "2"}, {"three", "3"}, {"four", "4"}, {"five", "5"},
		{"six", "6"}, {"seven", "7"}, {"eight", "8"}, {"nine", "9"},
		{"ten", "10"}, {"eleven", "11"}, {"twelve", "12"},
	}

	compiled := make([]digitWord, 0, len(words))
	for _, w := range words {
		compiled = append(compiled, digitWord{
			pattern: regexp.MustCompile(`\b` + w.word + `\b`),
			digit:   w.digit,
		})
	}
	return compiled
}()

// collapseSpelledSequences merges runs of single-letter tokens ("v n a t a")
// and hyphen-spelled tokens ("J-O-H-N") into plain words.
func collapseSpelledSequences(words []string) []string {
	out := make([]string, 0, len(words))
	buffer := []string{}

	flush := func() {
		if len(buffer) > 0 {
			out = append(out, strings.Join(buffer, ""))
			buffer = buffer[:0]
		}
	}

	for _, word := range words {
		clean := strings.ToLower(strings.Trim(word, " -"))
		if singleLetterPattern.MatchString(clean) {
			buffer = append(buffer, clean)
			continue
		}
		if hyphenSpelledPattern.MatchString(word) {
			flush()
			out = append(out, strings.ToLower(strings.ReplaceAll(word, "-", "")))
			continue
		}
		flush()
		out = append(out, word)
	}
	flush()

	return out
}

// NormalizeSpelledOut collapses spelled-out letter sequences in free text,
// e.g. "j o h n smith" becomes "john smith".
func NormalizeSpelledOut(text string) string {
	words := strings.Fields(strings.TrimSpace(text))
	return strings.Join(collapseSpelledSequences(words), " ")
}

// NormalizeEmailText rewrites a spoken email into standard form: spelled-out
// sequences are collapsed, spoken symbols ("at", "dot", "underscore",
// "dash") become their characters, digit words become digits, and all
// whitespace is removed.
func NormalizeEmailText(text string) string {
	s := strings.ToLower(text)
	s = NormalizeSpelledOut(s)

	s = atPattern.ReplaceAllString(s, "@")
	s = dotPattern.ReplaceAllString(s, ".")
	s = underscorePattern.ReplaceAllString(s, "_")
	s = dashPattern.ReplaceAllString(s, "-")

	// "z for zebra" means the letter z
	s = phoneticPattern.ReplaceAllString(s, "$1")

	s = doubleOPattern.ReplaceAllString(s, "00")
	for _, w := range digitWords {
		s = w.pattern.ReplaceAllString(s, w.digit)
	}

	return whitespacePattern.ReplaceAllString(s, "")
}
