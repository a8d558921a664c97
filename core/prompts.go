package orchestration

import (
	"fmt"
	"strings"
	"unicode"
)

// Agent lines for the Blanka's Bakery contact-intake flow.
const (
	greetingLine = "Hello! Thank you for calling Blanka's Bakery. Let's start with your name. Could you please tell me your full name?"

	nameRepromptLine      = "Sorry, I didn't catch your name. Could you please tell me your full name?"
	nameCorrectionLine    = "No problem, could you please tell me your full name again?"
	emailPromptLine       = "Thank you! Now please tell me your email address."
	emailRepromptLine     = "Sorry, I didn't catch that. Could you please spell out your email address for me?"
	emailCorrectionLine   = "No problem, could you please spell out your email address again?"
	confirmRepromptLine   = "Sorry, was that a yes or a no?"
	closingLine           = "Thank you! Your name and email have been recorded. We look forward to serving you at Blanka's Bakery. Have a wonderful day!"
	incompleteClosingLine = "I'm having trouble understanding, so let's stop here. You can call back any time to finish. Thank you for calling Blanka's Bakery, goodbye!"
	timeoutClosingLine    = "It seems we got disconnected. Please call back any time to finish. Thank you for calling Blanka's Bakery, goodbye!"
	apologyLine           = "I'm sorry, something went wrong on our end. Please call back later. Goodbye!"
)

func confirmNameLine(name string) string {
	return fmt.Sprintf("Just to confirm, your name is %s, spelled %s. Is that correct?", name, spellOut(name))
}

func confirmEmailLine(email string) string {
	return fmt.Sprintf("Let me confirm, your email is %s. Is that correct?", email)
}

// spellOut renders a name letter by letter ("John Doe" -> "J-O-H-N D-O-E")
// so the synthesized confirmation is unambiguous over the phone.
func spellOut(name string) string {
	words := strings.Fields(strings.ToUpper(name))
	spelled := make([]string, 0, len(words))
	for _, word := range words {
		var letters []string
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				letters = append(letters, string(r))
			}
		}
		if len(letters) > 0 {
			spelled = append(spelled, strings.Join(letters, "-"))
		}
	}
	return strings.Join(spelled, " ")
}
