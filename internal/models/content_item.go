package models

// ContentType classifies a content item created in the content-entry flow
type ContentType string

const (
	ContentTypeVocabulary  ContentType = "vocabulary"
	ContentTypeSentence    ContentType = "sentence"
	ContentTypeInformation ContentType = "information"
)

// ContentItem is a reusable text/translation/media record offered to the
// step editor as raw material. Selecting one copies its fields into the
// active step's data, never a live reference.
type ContentItem struct {
	ID          string      `json:"id"`
	AuthorID    int         `json:"authorId,omitempty"`
	Title       string      `json:"title,omitempty"`
	Text        string      `json:"text"`
	Translation string      `json:"translation,omitempty"`
	Examples    []string    `json:"examples,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	AudioURL    string      `json:"audioUrl,omitempty"`
	ContentType ContentType `json:"contentType"`
}

// ContentItemListItem represents a content item in list responses
type ContentItemListItem struct {
	ID          string      `json:"id"`
	Title       string      `json:"title,omitempty"`
	Text        string      `json:"text"`
	Translation string      `json:"translation,omitempty"`
	ContentType ContentType `json:"contentType"`
}

// CreateContentItemRequest represents a request to create a content item
type CreateContentItemRequest struct {
	Title       string      `json:"title"`
	Text        string      `json:"text"`
	Translation string      `json:"translation"`
	Examples    []string    `json:"examples"`
	ImageURL    string      `json:"imageUrl"`
	AudioURL    string      `json:"audioUrl"`
	ContentType ContentType `json:"contentType"`
}

// UpdateContentItemRequest represents a request to update a content item (partial update)
type UpdateContentItemRequest struct {
	Title       string      `json:"title,omitempty"`
	Text        string      `json:"text,omitempty"`
	Translation string      `json:"translation,omitempty"`
	Examples    []string    `json:"examples,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	AudioURL    string      `json:"audioUrl,omitempty"`
	ContentType ContentType `json:"contentType,omitempty"`
}
