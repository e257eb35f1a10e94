package steps

import (
	"strings"

	"github.com/sero63211/daye-course-builder/internal/models"
)

// IsComplete reports whether all required fields of a step payload are
// populated. It is a presence check, not a consistency check: it does not
// verify that a fill-in-the-blank answer appears among its options, or that
// a sentence completion's blank index is a valid index. The save action is
// gated on this predicate and it is re-evaluated on every edit; a stored
// completeness flag is never trusted.
//
// The true/false rule reads CorrectAnswer even though the authored payload
// uses IsTrueStatement. The two disagree in the original behavior and the
// mismatch is kept on purpose until product clarifies which field governs.
func IsComplete(data models.StepData) bool {
	switch d := data.(type) {
	case *models.ListenVocabularyData:
		return d.MainText != "" && d.SecondaryText != ""
	case *models.FillInTheBlanksData:
		return d.Question != "" && d.CorrectAnswer != ""
	case *models.TrueFalseData:
		return d.Statement != "" && d.CorrectAnswer != ""
	case *models.LanguageQuestionData:
		return d.QuestionText != "" && d.CorrectOption != "" && len(d.Options) > 0
	case *models.SentenceCompletionData:
		return d.InstructionText != "" && len(d.SentenceParts) > 0
	case *models.WordOrderingData:
		return d.InstructionText != "" && d.CorrectSentence != "" &&
			len(d.WordOptions) > 0 && len(strings.Fields(d.CorrectSentence)) >= 2
	case *models.LessonInformationData:
		return d.Title != "" && d.MainText != ""
	case *models.LanguagePhrasesData:
		return d.Title != "" && len(d.Phrases) > 0
	case *models.MatchingPairsData:
		return d.Title != "" && len(d.Pairs) > 0
	case *models.FillInChatData:
		return d.Title != "" && len(d.Conversations) > 0
	case *models.CompletedData:
		return d.CompletionMessage != ""
	default:
		// Unmatched types are permissively treated as complete.
		return true
	}
}
