// Package steps implements the typed learning-step model: the empty-model
// factory, the completeness predicate, content-item mapping, and the
// derivation of chat options.
package steps

import (
	"github.com/sero63211/daye-course-builder/internal/models"
)

// EmptyModel produces the blank payload for a step type. It must be called
// again whenever the active step type changes so no fields from a previous
// type's shape survive. candidateItems only affects fill-in-the-blank steps,
// where the option list is seeded from the candidates' texts as a starting
// point for the author, not a guarantee of correctness.
func EmptyModel(stepType models.StepType, candidateItems []models.ContentItem) models.StepData {
	switch stepType {
	case models.StepTypeListenVocabulary:
		return &models.ListenVocabularyData{
			Facts: []models.Fact{},
		}
	case models.StepTypeFillInTheBlanks:
		options := make([]string, 0, len(candidateItems))
		for _, item := range candidateItems {
			options = append(options, item.Text)
		}
		return &models.FillInTheBlanksData{
			Options: options,
		}
	case models.StepTypeTrueFalse:
		return &models.TrueFalseData{
			Facts: []models.Fact{},
		}
	case models.StepTypeLanguageQuestion:
		return &models.LanguageQuestionData{
			Options: []string{},
		}
	case models.StepTypeSentenceCompletion:
		return &models.SentenceCompletionData{
			SentenceParts: []string{},
		}
	case models.StepTypeWordOrdering:
		return &models.WordOrderingData{
			WordOptions: []string{},
		}
	case models.StepTypeLessonInformation:
		return &models.LessonInformationData{}
	case models.StepTypeLanguagePhrases:
		return &models.LanguagePhrasesData{
			Phrases: []models.LanguagePair{},
		}
	case models.StepTypeMatchingPairs:
		return &models.MatchingPairsData{
			Pairs: []models.LanguagePair{},
		}
	case models.StepTypeFillInChat:
		return &models.FillInChatData{
			Conversations: []models.ChatMessage{},
			Options:       []string{},
		}
	case models.StepTypeCompleted:
		return &models.CompletedData{
			LearnedVocabulary: []models.VocabularyEntry{},
		}
	default:
		// Unknown and extension types fall back to an empty generic
		// payload rather than an error.
		d := models.GenericStepData{}
		return &d
	}
}
