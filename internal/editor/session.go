// Package editor owns the in-memory editing state of one lesson: the step
// draft lifecycle, the working copy of the step list, and the staging store
// for media attached before commit.
package editor

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sero63211/daye-course-builder/internal/models"
	"github.com/sero63211/daye-course-builder/internal/steps"
)

// draft is the step currently open in the editor. A draft for an existing
// step carries that step's id; a draft for a new step has none until save.
type draft struct {
	stepID   string
	stepType models.StepType
	data     models.StepData
}

// Session is one author's editing session over one lesson. All edits happen
// on a working copy; nothing reaches the lesson document until commit.
type Session struct {
	ID       string
	LessonID int
	AuthorID int

	mu      sync.Mutex
	steps   []models.LearningStep
	learned []models.ContentItem
	draft   *draft
	staging *Staging
}

// NewSession creates a session over a lesson's saved steps and learned
// content. The steps are deep-copied so session edits can never leak into
// the caller's data.
func NewSession(lessonID, authorID int, saved []models.LearningStep, learned []models.ContentItem) *Session {
	working := make([]models.LearningStep, len(saved))
	for i, step := range saved {
		working[i] = models.LearningStep{ID: step.ID, Type: step.Type, Data: step.Data.Clone()}
	}

	return &Session{
		ID:       uuid.New().String(),
		LessonID: lessonID,
		AuthorID: authorID,
		steps:    working,
		learned:  append([]models.ContentItem(nil), learned...),
		staging:  NewStaging(),
	}
}

// Staging returns the session's media staging store
func (s *Session) Staging() *Staging {
	return s.staging
}

// StartDraft begins a new step of the given type. The draft always starts
// from a fresh empty model, never from leftovers of a previous draft.
func (s *Session) StartDraft(stepType models.StepType) (models.StepData, error) {
	if stepType == "" {
		return nil, fmt.Errorf("step type is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data := steps.EmptyModel(stepType, s.learned)
	s.draft = &draft{stepType: stepType, data: data}
	return data.Clone(), nil
}

// OpenStep re-opens a saved step for editing. The draft works on a deep
// copy, so edits cannot mutate the saved step until an explicit save.
func (s *Session) OpenStep(stepID string) (models.StepData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, step := range s.steps {
		if step.ID == stepID {
			s.draft = &draft{
				stepID:   step.ID,
				stepType: step.Type,
				data:     step.Data.Clone(),
			}
			return s.draft.data.Clone(), nil
		}
	}
	return nil, fmt.Errorf("step not found")
}

// ChangeDraftType switches the open draft to another step type, discarding
// every edit made for the previous type. A draft opened from a saved step
// keeps its identity, so saving afterwards replaces the original step.
func (s *Session) ChangeDraftType(stepType models.StepType) (models.StepData, error) {
	if stepType == "" {
		return nil, fmt.Errorf("step type is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return nil, fmt.Errorf("no step is being edited")
	}

	s.draft.stepType = stepType
	s.draft.data = steps.EmptyModel(stepType, s.learned)
	return s.draft.data.Clone(), nil
}

// SetDraftData replaces the draft payload with edited field values. Chat
// options are re-derived from the conversations on every update.
func (s *Session) SetDraftData(data models.StepData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return fmt.Errorf("no step is being edited")
	}

	if expected := models.NewStepData(s.draft.stepType).StepType(); data.StepType() != expected {
		return fmt.Errorf("payload does not match step type %s", s.draft.stepType)
	}

	s.draft.data = data.Clone()
	steps.RefreshChatOptions(s.draft.data)
	return nil
}

// ApplyContent maps a selected content item onto the draft payload
func (s *Session) ApplyContent(item models.ContentItem) (models.StepData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return nil, fmt.Errorf("no step is being edited")
	}

	s.draft.data = steps.ApplyContentItem(s.draft.data, item)
	return s.draft.data.Clone(), nil
}

// Draft returns the current draft type, payload and completeness
func (s *Session) Draft() (models.StepType, models.StepData, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return "", nil, false, fmt.Errorf("no step is being edited")
	}
	return s.draft.stepType, s.draft.data.Clone(), steps.IsComplete(s.draft.data), nil
}

// SaveStep commits the draft into the session's step list. The completeness
// predicate is the sole gate; an incomplete draft cannot be saved.
func (s *Session) SaveStep() (models.LearningStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return models.LearningStep{}, fmt.Errorf("no step is being edited")
	}
	if !steps.IsComplete(s.draft.data) {
		return models.LearningStep{}, fmt.Errorf("step is not complete")
	}

	step := models.LearningStep{
		ID:   s.draft.stepID,
		Type: s.draft.stepType,
		Data: s.draft.data,
	}
	if step.ID == "" {
		step.ID = uuid.New().String()
		s.steps = append(s.steps, step)
	} else {
		replaced := false
		for i := range s.steps {
			if s.steps[i].ID == step.ID {
				s.steps[i] = step
				replaced = true
				break
			}
		}
		if !replaced {
			s.steps = append(s.steps, step)
		}
	}

	s.draft = nil
	return models.LearningStep{ID: step.ID, Type: step.Type, Data: step.Data.Clone()}, nil
}

// DiscardDraft drops the open draft without saving
func (s *Session) DiscardDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = nil
}

// DeleteStep removes a step from the session's step list
func (s *Session) DeleteStep(stepID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.steps {
		if s.steps[i].ID == stepID {
			s.steps = append(s.steps[:i], s.steps[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("step not found")
}

// Steps returns a deep copy of the session's current step list
func (s *Session) Steps() []models.LearningStep {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.LearningStep, len(s.steps))
	for i, step := range s.steps {
		out[i] = models.LearningStep{ID: step.ID, Type: step.Type, Data: step.Data.Clone()}
	}
	return out
}

// LearnedContent returns the content items offered to the step editor
func (s *Session) LearnedContent() []models.ContentItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ContentItem(nil), s.learned...)
}

// FlushStagedMedia uploads every staged media reference in the step list and
// rewrites the payloads to the returned durable URLs. A staged handle with
// no file in the store, or a failed upload, keeps its current reference so
// the author's attachment is not lost; the handles are returned so the
// caller can log them.
func (s *Session) FlushStagedMedia(upload func(file StagedFile) (string, error)) (kept []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.steps {
		carrier, ok := s.steps[i].Data.(models.MediaCarrier)
		if !ok {
			continue
		}
		for _, ref := range carrier.MediaRefs() {
			if !IsStagedRef(*ref) {
				continue
			}
			file, found := s.staging.Get(*ref)
			if !found {
				kept = append(kept, *ref)
				continue
			}
			url, err := upload(file)
			if err != nil {
				kept = append(kept, *ref)
				continue
			}
			s.staging.Remove(*ref)
			*ref = url
		}
	}
	return kept
}
