package steps

import (
	"strings"

	"github.com/sero63211/daye-course-builder/internal/models"
)

// ApplyContentItem maps a selected content item onto the fields of the
// active step payload and returns the updated payload. The mapped subset is
// fully replaced on every selection so no residue from a previous item can
// survive; fields outside the mapping are left untouched. The item's values
// are copied, never referenced.
func ApplyContentItem(data models.StepData, item models.ContentItem) models.StepData {
	switch d := data.(type) {
	case *models.LessonInformationData:
		if item.ContentType == models.ContentTypeInformation {
			d.Title = item.Title
			d.MainText = item.Text
		} else {
			d.Title = item.Text
			d.MainText = item.Translation
		}
		return d
	case *models.FillInTheBlanksData:
		d.Question = item.Text
		d.Translation = item.Translation
		d.ImageURL = item.ImageURL
		d.SoundFileName = item.AudioURL
		return d
	case *models.SentenceCompletionData:
		d.CorrectAnswer = item.Text
		d.ImageURL = item.ImageURL
		d.SoundFileName = item.AudioURL
		return d
	case *models.WordOrderingData:
		d.CorrectSentence = item.Text
		d.WordOptions = strings.Fields(item.Text)
		d.ImageURL = item.ImageURL
		d.SoundFileName = item.AudioURL
		return d
	case *models.LanguagePhrasesData:
		d.Phrases = []models.LanguagePair{{
			ForeignText: item.Text,
			NativeText:  item.Translation,
		}}
		return d
	case *models.ListenVocabularyData:
		// The vocabulary card consumes the raw item downstream; pass it
		// through as a single-element list instead of flattening fields.
		d.Items = []models.ContentItem{copyItem(item)}
		return d
	case *models.MatchingPairsData:
		d.Items = []models.ContentItem{copyItem(item)}
		return d
	case *models.LanguageQuestionData:
		d.QuestionText = item.Text
		d.CorrectOption = item.Translation
		d.ImageURL = item.ImageURL
		d.SoundFileName = item.AudioURL
		return d
	case *models.GenericStepData:
		(*d)["mainText"] = item.Text
		(*d)["secondaryText"] = item.Translation
		return d
	default:
		// Types without a content mapping keep their payload as is.
		return data
	}
}

func copyItem(item models.ContentItem) models.ContentItem {
	c := item
	c.Examples = append([]string(nil), item.Examples...)
	return c
}
