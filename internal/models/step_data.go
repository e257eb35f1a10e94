package models

// StepData is the variant payload of a learning step. Exactly one payload
// shape exists per step type; a reader can never see another type's fields.
type StepData interface {
	// StepType returns the type tag this payload belongs to
	StepType() StepType
	// Clone returns a full structural copy sharing no references
	Clone() StepData
}

// MediaCarrier is implemented by payloads holding media references. The
// returned pointers let the editor rewrite staged URLs in place at commit.
type MediaCarrier interface {
	MediaRefs() []*string
}

// Fact is a supplementary note attached to vocabulary and true/false steps
type Fact struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// LanguagePair couples a foreign-language text with its native translation
type LanguagePair struct {
	ForeignText string `json:"foreignText"`
	NativeText  string `json:"nativeText"`
}

// MissingWord is the blank inside a chat message
type MissingWord struct {
	CorrectAnswer string `json:"correctAnswer"`
}

// ChatMessage is one entry of a fill-in-chat conversation
type ChatMessage struct {
	Speaker     string       `json:"speaker"`
	Message     string       `json:"message"`
	Translation string       `json:"translation,omitempty"`
	MissingWord *MissingWord `json:"missingWord,omitempty"`
}

// VocabularyEntry is a learned word shown on the completion screen
type VocabularyEntry struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

// ListenVocabularyData is the payload of a vocabulary listening step
type ListenVocabularyData struct {
	MainText        string        `json:"mainText"`
	SecondaryText   string        `json:"secondaryText"`
	DescriptionText string        `json:"descriptionText"`
	ImageURL        string        `json:"imageUrl"`
	SoundFileName   string        `json:"soundFileName"`
	Facts           []Fact        `json:"facts"`
	Items           []ContentItem `json:"items,omitempty"`
}

func (d *ListenVocabularyData) StepType() StepType { return StepTypeListenVocabulary }

func (d *ListenVocabularyData) Clone() StepData {
	c := *d
	c.Facts = append([]Fact(nil), d.Facts...)
	c.Items = cloneContentItems(d.Items)
	return &c
}

func (d *ListenVocabularyData) MediaRefs() []*string {
	return []*string{&d.ImageURL, &d.SoundFileName}
}

// FillInTheBlanksData is the payload of a fill-in-the-blank step
type FillInTheBlanksData struct {
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correctAnswer"`
	Options       []string `json:"options"`
	Translation   string   `json:"translation"`
	ImageURL      string   `json:"imageUrl"`
	SoundFileName string   `json:"soundFileName"`
}

func (d *FillInTheBlanksData) StepType() StepType { return StepTypeFillInTheBlanks }

func (d *FillInTheBlanksData) Clone() StepData {
	c := *d
	c.Options = append([]string(nil), d.Options...)
	return &c
}

func (d *FillInTheBlanksData) MediaRefs() []*string {
	return []*string{&d.ImageURL, &d.SoundFileName}
}

// TrueFalseData is the payload of a true/false statement step.
// CorrectAnswer is absent from the authored field set but is what the
// completeness predicate reads; see the predicate for details.
type TrueFalseData struct {
	Statement       string `json:"statement"`
	IsTrueStatement bool   `json:"isTrueStatement"`
	ImageURL        string `json:"imageUrl"`
	SoundFileName   string `json:"soundFileName"`
	Translation     string `json:"translation"`
	Facts           []Fact `json:"facts"`
	CorrectAnswer   string `json:"correctAnswer,omitempty"`
}

func (d *TrueFalseData) StepType() StepType { return StepTypeTrueFalse }

func (d *TrueFalseData) Clone() StepData {
	c := *d
	c.Facts = append([]Fact(nil), d.Facts...)
	return &c
}

func (d *TrueFalseData) MediaRefs() []*string {
	return []*string{&d.ImageURL, &d.SoundFileName}
}

// LanguageQuestionData is the payload of a multiple-choice question step
type LanguageQuestionData struct {
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectOption string   `json:"correctOption"`
	ImageURL      string   `json:"imageUrl"`
	SoundFileName string   `json:"soundFileName"`
}

func (d *LanguageQuestionData) StepType() StepType { return StepTypeLanguageQuestion }

func (d *LanguageQuestionData) Clone() StepData {
	c := *d
	c.Options = append([]string(nil), d.Options...)
	return &c
}

func (d *LanguageQuestionData) MediaRefs() []*string {
	return []*string{&d.ImageURL, &d.SoundFileName}
}

// SentenceCompletionData is the payload of a sentence completion step
type SentenceCompletionData struct {
	InstructionText string   `json:"instructionText"`
	SentenceParts   []string `json:"sentenceParts"`
	BlankIndex      int      `json:"blankIndex"`
	CorrectAnswer   string   `json:"correctAnswer"`
	ImageURL        string   `json:"imageUrl"`
	SoundFileName   string   `json:"soundFileName"`
}

func (d *SentenceCompletionData) StepType() StepType { return StepTypeSentenceCompletion }

func (d *SentenceCompletionData) Clone() StepData {
	c := *d
	c.SentenceParts = append([]string(nil), d.SentenceParts...)
	return &c
}

func (d *SentenceCompletionData) MediaRefs() []*string {
	return []*string{&d.ImageURL, &d.SoundFileName}
}

// WordOrderingData is the payload of a word ordering step
type WordOrderingData struct {
	InstructionText string   `json:"instructionText"`
	WordOptions     []string `json:"wordOptions"`
	CorrectSentence string   `json:"correctSentence"`
	ImageURL        string   `json:"imageUrl"`
	SoundFileName   string   `json:"soundFileName"`
}

func (d *WordOrderingData) StepType() StepType { return StepTypeWordOrdering }

func (d *WordOrderingData) Clone() StepData {
	c := *d
	c.WordOptions = append([]string(nil), d.WordOptions...)
	return &c
}

func (d *WordOrderingData) MediaRefs() []*string {
	return []*string{&d.ImageURL, &d.SoundFileName}
}

// LessonInformationData is the payload of an informational step
type LessonInformationData struct {
	Title    string `json:"title"`
	MainText string `json:"mainText"`
}

func (d *LessonInformationData) StepType() StepType { return StepTypeLessonInformation }

func (d *LessonInformationData) Clone() StepData {
	c := *d
	return &c
}

// LanguagePhrasesData is the payload of a phrase list step
type LanguagePhrasesData struct {
	Title       string         `json:"title"`
	Explanation string         `json:"explanation"`
	Phrases     []LanguagePair `json:"phrases"`
}

func (d *LanguagePhrasesData) StepType() StepType { return StepTypeLanguagePhrases }

func (d *LanguagePhrasesData) Clone() StepData {
	c := *d
	c.Phrases = append([]LanguagePair(nil), d.Phrases...)
	return &c
}

// MatchingPairsData is the payload of a matching pairs step
type MatchingPairsData struct {
	Title string         `json:"title"`
	Pairs []LanguagePair `json:"pairs"`
	Items []ContentItem  `json:"items,omitempty"`
}

func (d *MatchingPairsData) StepType() StepType { return StepTypeMatchingPairs }

func (d *MatchingPairsData) Clone() StepData {
	c := *d
	c.Pairs = append([]LanguagePair(nil), d.Pairs...)
	c.Items = cloneContentItems(d.Items)
	return &c
}

// FillInChatData is the payload of a chat fill-in step. Options is always
// derived from the conversations' missing words, never edited directly.
type FillInChatData struct {
	Title         string        `json:"title"`
	Conversations []ChatMessage `json:"conversations"`
	Options       []string      `json:"options"`
}

func (d *FillInChatData) StepType() StepType { return StepTypeFillInChat }

func (d *FillInChatData) Clone() StepData {
	c := *d
	c.Conversations = make([]ChatMessage, len(d.Conversations))
	for i, msg := range d.Conversations {
		c.Conversations[i] = msg
		if msg.MissingWord != nil {
			mw := *msg.MissingWord
			c.Conversations[i].MissingWord = &mw
		}
	}
	c.Options = append([]string(nil), d.Options...)
	return &c
}

// CompletedData is the payload of the lesson completion summary step
type CompletedData struct {
	CompletionMessage string            `json:"completionMessage"`
	LearnedVocabulary []VocabularyEntry `json:"learnedVocabulary"`
}

func (d *CompletedData) StepType() StepType { return StepTypeCompleted }

func (d *CompletedData) Clone() StepData {
	c := *d
	c.LearnedVocabulary = append([]VocabularyEntry(nil), d.LearnedVocabulary...)
	return &c
}

// GenericStepData is the payload for step types without a dedicated shape
type GenericStepData map[string]any

func (d *GenericStepData) StepType() StepType { return "" }

func (d *GenericStepData) Clone() StepData {
	c := GenericStepData(cloneAnyMap(*d))
	return &c
}

func cloneAnyMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = cloneAnyValue(v)
	}
	return dst
}

func cloneAnyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneAnyMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneAnyValue(item)
		}
		return out
	default:
		return v
	}
}

func cloneContentItems(items []ContentItem) []ContentItem {
	if items == nil {
		return nil
	}
	out := make([]ContentItem, len(items))
	for i, item := range items {
		out[i] = item
		out[i].Examples = append([]string(nil), item.Examples...)
	}
	return out
}
