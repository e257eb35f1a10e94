package models

import (
	"encoding/json"
	"fmt"
)

// StepType identifies the exercise variant of a learning step
type StepType string

const (
	StepTypeListenVocabulary   StepType = "listenVocabulary"
	StepTypeFillInTheBlanks    StepType = "fillInTheBlanks"
	StepTypeTrueFalse          StepType = "trueFalse"
	StepTypeLanguageQuestion   StepType = "languageQuestion"
	StepTypeSentenceCompletion StepType = "sentenceCompletion"
	StepTypeWordOrdering       StepType = "wordOrdering"
	StepTypeLessonInformation  StepType = "lessonInformation"
	StepTypeLanguagePhrases    StepType = "languagePhrases"
	StepTypeMatchingPairs      StepType = "matchingPairs"
	StepTypeFillInChat         StepType = "fillInChat"
	StepTypeCompleted          StepType = "completed"
)

// Extension step types are registered but have no payload shape yet.
// The editor treats them with a generic payload.
const (
	StepTypeVocabularyCheck   StepType = "vocabularyCheck"
	StepTypeNativeToForeign   StepType = "nativeToForeign"
	StepTypeForeignToNative   StepType = "foreignToNative"
	StepTypeFillSentence      StepType = "fillSentence"
	StepTypeTrueFalseQuestion StepType = "trueFalseQuestion"
)

// LearningStep is one exercise inside a lesson. The shape of Data is
// determined entirely by Type; changing the type discards the data.
type LearningStep struct {
	ID   string   `json:"id"`
	Type StepType `json:"type"`
	Data StepData `json:"data"`
}

// learningStepEnvelope is the wire form of a learning step
type learningStepEnvelope struct {
	ID   string          `json:"id"`
	Type StepType        `json:"type"`
	Data json.RawMessage `json:"data"`
}

// UnmarshalJSON decodes a learning step, picking the payload struct from the
// type tag. Unknown types decode into GenericStepData.
func (s *LearningStep) UnmarshalJSON(raw []byte) error {
	var env learningStepEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to unmarshal learning step: %w", err)
	}

	s.ID = env.ID
	s.Type = env.Type

	data := NewStepData(env.Type)
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			return fmt.Errorf("failed to unmarshal %s step data: %w", env.Type, err)
		}
	}
	s.Data = data
	return nil
}

// NewStepData returns a zero-value payload for the given step type.
// Unknown or extension types get a generic payload.
func NewStepData(t StepType) StepData {
	switch t {
	case StepTypeListenVocabulary:
		return &ListenVocabularyData{}
	case StepTypeFillInTheBlanks:
		return &FillInTheBlanksData{}
	case StepTypeTrueFalse:
		return &TrueFalseData{}
	case StepTypeLanguageQuestion:
		return &LanguageQuestionData{}
	case StepTypeSentenceCompletion:
		return &SentenceCompletionData{}
	case StepTypeWordOrdering:
		return &WordOrderingData{}
	case StepTypeLessonInformation:
		return &LessonInformationData{}
	case StepTypeLanguagePhrases:
		return &LanguagePhrasesData{}
	case StepTypeMatchingPairs:
		return &MatchingPairsData{}
	case StepTypeFillInChat:
		return &FillInChatData{}
	case StepTypeCompleted:
		return &CompletedData{}
	default:
		return &GenericStepData{}
	}
}
