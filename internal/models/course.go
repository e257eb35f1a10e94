package models

// LanguageLevel represents the CEFR level a course targets
type LanguageLevel string

const (
	LanguageLevelA1 LanguageLevel = "A1"
	LanguageLevelA2 LanguageLevel = "A2"
	LanguageLevelB1 LanguageLevel = "B1"
	LanguageLevelB2 LanguageLevel = "B2"
	LanguageLevelC1 LanguageLevel = "C1"
	LanguageLevelC2 LanguageLevel = "C2"
)

// Course represents a language course authored in the builder
type Course struct {
	ID          int           `json:"id"`
	Slug        string        `json:"slug"`
	AuthorID    int           `json:"authorId"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Language    string        `json:"language"`
	Level       LanguageLevel `json:"level"`
}

// CourseListItem represents a course in list responses
type CourseListItem struct {
	ID       int           `json:"id,omitempty"`
	Slug     string        `json:"slug"`
	Title    string        `json:"title"`
	Language string        `json:"language"`
	Level    LanguageLevel `json:"level"`
	AuthorID int           `json:"authorId,omitempty"`
}

// CreateCourseRequest represents a request to create a course
type CreateCourseRequest struct {
	AuthorID    int           `json:"authorId"`
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Language    string        `json:"language"`
	Level       LanguageLevel `json:"level"`
}

// UpdateCourseRequest represents a request to update a course (partial update)
type UpdateCourseRequest struct {
	AuthorID    *int          `json:"authorId,omitempty"`
	Slug        string        `json:"slug,omitempty"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Language    string        `json:"language,omitempty"`
	Level       LanguageLevel `json:"level,omitempty"`
}

// CourseShortInfo represents a course with only ID and Title (for select options)
type CourseShortInfo struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}
