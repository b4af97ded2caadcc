package domain

import (
	"regexp"
	"sort"
	"strings"
)

// AnswerPlaceholder replaces the answer word inside a displayed prompt.
const AnswerPlaceholder = "_________"

// MatchesAnswer compares a chosen option to the correct answer, ignoring case
// and surrounding whitespace.
func MatchesAnswer(option, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(option), strings.TrimSpace(correct))
}

// MaskPrompt hides every case-insensitive occurrence of answer in prompt.
func MaskPrompt(prompt, answer string) string {
	answer = strings.TrimSpace(answer)
	if prompt == "" || answer == "" {
		return prompt
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(answer))
	return re.ReplaceAllLiteralString(prompt, AnswerPlaceholder)
}

// Validate checks the authoring invariants of a question: four distinct
// options that include the correct answer and a non-negative XP value.
func (q Question) Validate() error {
	if q.XP < 0 {
		return ErrInvalidQuestion("negative xp value")
	}
	seen := make(map[string]struct{}, len(q.Options))
	hasAnswer := false
	for _, opt := range q.Options {
		key := strings.ToLower(strings.TrimSpace(opt))
		if key == "" {
			return ErrInvalidQuestion("empty option")
		}
		if _, dup := seen[key]; dup {
			return ErrInvalidQuestion("duplicate option " + opt)
		}
		seen[key] = struct{}{}
		if MatchesAnswer(opt, q.CorrectAnswer) {
			hasAnswer = true
		}
	}
	if !hasAnswer {
		return ErrInvalidQuestion("correct answer is not among the options")
	}
	return nil
}

// ErrInvalidQuestion reports a question that breaks an authoring invariant.
type ErrInvalidQuestion string

func (e ErrInvalidQuestion) Error() string { return "invalid question: " + string(e) }

// SortedOptions returns a sorted copy of opts.
func SortedOptions(opts []string) []string {
	out := append([]string(nil), opts...)
	sort.Strings(out)
	return out
}
