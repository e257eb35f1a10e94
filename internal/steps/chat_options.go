package steps

import (
	"github.com/sero63211/daye-course-builder/internal/models"
)

// DeriveChatOptions collects the answer choices for a chat fill-in exercise
// from the conversations' missing words: non-empty correct answers in order
// of first occurrence, de-duplicated. The result replaces any previous
// option list wholesale; options are never edited directly.
func DeriveChatOptions(conversations []models.ChatMessage) []string {
	options := []string{}
	seen := make(map[string]struct{})
	for _, msg := range conversations {
		if msg.MissingWord == nil {
			continue
		}
		answer := msg.MissingWord.CorrectAnswer
		if answer == "" {
			continue
		}
		if _, ok := seen[answer]; ok {
			continue
		}
		seen[answer] = struct{}{}
		options = append(options, answer)
	}
	return options
}

// RefreshChatOptions re-derives the option list of a fill-in-chat payload
// in place. Payloads of other types are left untouched.
func RefreshChatOptions(data models.StepData) {
	if d, ok := data.(*models.FillInChatData); ok {
		d.Options = DeriveChatOptions(d.Conversations)
	}
}
