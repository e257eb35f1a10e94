package models

// Lesson is the aggregate root for authoring: an ordered list of learning
// steps plus the content items learned in this lesson. Steps and learned
// content are always persisted wholesale, never patched below lesson
// granularity.
type Lesson struct {
	ID             int            `json:"id"`
	Slug           string         `json:"slug"`
	ChapterID      int            `json:"chapterId,omitempty"`
	Title          string         `json:"title"`
	Order          int            `json:"order"`
	LearningSteps  []LearningStep `json:"learningSteps"`
	LearnedContent []ContentItem  `json:"learnedContent"`
}

// LessonListItem represents a lesson in list responses (without step payloads)
type LessonListItem struct {
	ID        int    `json:"id"`
	Slug      string `json:"slug"`
	ChapterID int    `json:"chapterId,omitempty"`
	Title     string `json:"title"`
	Order     int    `json:"order"`
	StepCount int    `json:"stepCount"`
}

// CreateLessonRequest represents a request to create a lesson
type CreateLessonRequest struct {
	Slug      string `json:"slug"`
	ChapterID int    `json:"chapterId"`
	Title     string `json:"title"`
	Order     int    `json:"order"`
}

// UpdateLessonRequest represents a request to update lesson metadata (partial update)
type UpdateLessonRequest struct {
	Slug      string `json:"slug,omitempty"`
	ChapterID *int   `json:"chapterId,omitempty"`
	Title     string `json:"title,omitempty"`
	Order     *int   `json:"order,omitempty"`
}

// LessonShortInfo represents a lesson with only ID and Title (for select options)
type LessonShortInfo struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}
