package challenge

import (
	"strconv"
	"strings"
)

// CheckAnswer compares the learner's input against a card instance.
// Returns true if the answer is correct.
//
// Normalization rules:
// - Blank input is never correct
// - Multiple choice: the selected option must equal an accepted answer exactly
// - Free text: surrounding whitespace is trimmed and inner runs collapse to one space
// - Free text: comparison is case-insensitive (Unicode case folding)
// - Free text: numbers compare by value (e.g., "3.50" matches "3.5")
func CheckAnswer(inst CardInstance, answer string) bool {
	if strings.TrimSpace(answer) == "" {
		return false
	}

	if inst.Type == TypeMCQ {
		for _, correct := range inst.CorrectAnswers {
			if answer == correct {
				return true
			}
		}
		return false
	}

	given := NormalizeText(answer)
	for _, correct := range inst.CorrectAnswers {
		want := NormalizeText(correct)
		if want == "" {
			continue
		}
		if strings.EqualFold(given, want) || sameNumber(given, want) {
			return true
		}
	}
	return false
}

// NormalizeText trims s and collapses every whitespace run to a single space.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// OptionAt resolves a 1-based option index typed by the learner ("1".."4")
// to the option text. ok is false for anything else.
func OptionAt(inst CardInstance, input string) (string, bool) {
	idx, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || idx < 1 || idx > len(inst.Options) {
		return "", false
	}
	return inst.Options[idx-1], true
}

func sameNumber(a, b string) bool {
	x, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return false
	}
	y, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return false
	}
	return x == y
}
