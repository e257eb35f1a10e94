package models

// Chapter groups an ordered run of lessons within a course
type Chapter struct {
	ID       int    `json:"id"`
	CourseID int    `json:"courseId,omitempty"`
	Title    string `json:"title"`
	Order    int    `json:"order"`
}

// CreateChapterRequest represents a request to create a chapter
type CreateChapterRequest struct {
	CourseID int    `json:"courseId"`
	Title    string `json:"title"`
	Order    int    `json:"order"`
}

// UpdateChapterRequest represents a request to update a chapter (partial update)
type UpdateChapterRequest struct {
	CourseID *int   `json:"courseId,omitempty"`
	Title    string `json:"title,omitempty"`
	Order    *int   `json:"order,omitempty"`
}

// ChapterShortInfo represents a chapter with only ID and Title (for select options)
type ChapterShortInfo struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}
